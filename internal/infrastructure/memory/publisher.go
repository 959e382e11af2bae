package memory

import (
	"context"
	"sync"

	"github.com/inkpress/identity-service/internal/application/auth"
)

// Publisher records published events instead of delivering them. Tests use it
// to assert on the reset pipeline; local development uses it to run without a
// broker.
type Publisher struct {
	mu     sync.Mutex
	events []auth.PasswordResetRequested

	// Err, when set, is returned from every publish.
	Err error
}

func NewPublisher() *Publisher { return &Publisher{} }

func (p *Publisher) PublishPasswordResetRequested(_ context.Context, evt auth.PasswordResetRequested) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Err != nil {
		return p.Err
	}
	p.events = append(p.events, evt)
	return nil
}

// Events returns a copy of everything published so far.
func (p *Publisher) Events() []auth.PasswordResetRequested {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]auth.PasswordResetRequested, len(p.events))
	copy(out, p.events)
	return out
}
