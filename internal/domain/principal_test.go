package domain

import "testing"

func TestAuthorize_None_AlwaysAllows(t *testing.T) {
	t.Parallel()

	if err := Authorize(Anonymous(), RoleNone); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if err := Authorize(SignedIn(1, false), RoleNone); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestAuthorize_User_RequiresAuthentication(t *testing.T) {
	t.Parallel()

	err := Authorize(Anonymous(), RoleUser)
	if !Is(err, "unauthenticated") {
		t.Fatalf("expected unauthenticated, got %v", err)
	}

	if err := Authorize(SignedIn(7, false), RoleUser); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if err := Authorize(SignedIn(7, true), RoleUser); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestAuthorize_Admin_TruthTable(t *testing.T) {
	t.Parallel()

	if err := Authorize(Anonymous(), RoleAdmin); !Is(err, "unauthenticated") {
		t.Fatalf("anonymous: expected unauthenticated, got %v", err)
	}
	if err := Authorize(SignedIn(7, false), RoleAdmin); !Is(err, "forbidden") {
		t.Fatalf("non-admin: expected forbidden, got %v", err)
	}
	if err := Authorize(SignedIn(7, true), RoleAdmin); err != nil {
		t.Fatalf("admin: expected nil, got %v", err)
	}
}

func TestAuthorize_UnknownRole_Denies(t *testing.T) {
	t.Parallel()

	if err := Authorize(SignedIn(7, true), Role("superuser")); !Is(err, "forbidden") {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestAuthorize_DeniesDistinguishably(t *testing.T) {
	t.Parallel()

	unauth := Authorize(Anonymous(), RoleAdmin)
	forbidden := Authorize(SignedIn(1, false), RoleAdmin)

	var ue, fe *Error
	if !asDomain(unauth, &ue) || !asDomain(forbidden, &fe) {
		t.Fatalf("expected domain errors, got %v / %v", unauth, forbidden)
	}
	if ue.Code == fe.Code {
		t.Fatalf("expected distinct codes, both %q", ue.Code)
	}
	if ue.Kind != KindAuth || fe.Kind != KindForbidden {
		t.Fatalf("unexpected kinds: %v / %v", ue.Kind, fe.Kind)
	}
}
