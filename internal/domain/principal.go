package domain

// Principal is the resolved identity attached to a request after session
// evaluation. Its claims are exactly what was embedded at issuance; a later
// role change does not propagate to live sessions.
type Principal struct {
	UserID        int64
	IsAdmin       bool
	Authenticated bool
}

// Anonymous is the principal for requests with no (or an unreadable) session.
func Anonymous() Principal {
	return Principal{}
}

// SignedIn builds an authenticated principal carrying the claims embedded in
// the session at issuance time.
func SignedIn(userID int64, isAdmin bool) Principal {
	return Principal{UserID: userID, IsAdmin: isAdmin, Authenticated: true}
}

// Authorize is the single enforcement point for role checks. It must run
// before any side effect of the guarded operation.
//
//	RoleNone  -> always allowed
//	RoleUser  -> any authenticated principal
//	RoleAdmin -> authenticated principal with the admin claim
//
// Denial distinguishes "log in" (unauthenticated) from "you lack privilege"
// (forbidden) without revealing anything else.
func Authorize(p Principal, required Role) error {
	switch required {
	case RoleNone:
		return nil
	case RoleUser:
		if !p.Authenticated {
			return ErrUnauthenticated()
		}
		return nil
	case RoleAdmin:
		if !p.Authenticated {
			return ErrUnauthenticated()
		}
		if !p.IsAdmin {
			return ErrForbidden()
		}
		return nil
	default:
		// Unknown required role is a wiring bug; deny rather than allow.
		return ErrForbidden()
	}
}
