package entitlement

import (
	"context"
	"log"
	"sync"

	"aicitybuilders/backend/models"
)

// GateState enumerates access gate states. Checking is the sole initial
// state; Granted and Denied are terminal for a page load.
type GateState int

const (
	GateChecking GateState = iota
	GateGranted
	GateDenied
)

func (s GateState) String() string {
	switch s {
	case GateGranted:
		return "granted"
	case GateDenied:
		return "denied"
	default:
		return "checking"
	}
}

// Redirect targets issued on denial.
const (
	LoginPath    = "/login"
	PurchasePath = "/"
)

// SessionProvider exposes the signed-in user, synchronously.
type SessionProvider interface {
	CurrentUser() (models.SessionUser, bool)
}

// Navigator receives the gate's redirect instruction. Fire-and-forget; the
// gate does not track what the UI does with it.
type Navigator interface {
	Navigate(path string)
}

// Gate drives a content page through checking -> granted | denied. A page
// stays in Checking, showing its loading affordance, until the entitlement
// call resolves; protected content renders only on Granted. Denied is
// final: no automatic retry, a fresh page load re-evaluates.
type Gate struct {
	mu       sync.Mutex
	state    GateState
	storeErr error

	sessions SessionProvider
	checker  *Checker
	nav      Navigator
	logger   *log.Logger
}

func NewGate(sessions SessionProvider, checker *Checker, nav Navigator, logger *log.Logger) *Gate {
	return &Gate{state: GateChecking, sessions: sessions, checker: checker, nav: nav, logger: logger}
}

// Evaluate runs the gate for one course. Without a signed-in user it denies
// and redirects to login without any store call. Once a terminal state is
// reached further calls return it unchanged, and a late entitlement
// response cannot overwrite it.
func (g *Gate) Evaluate(ctx context.Context, courseID string) GateState {
	g.mu.Lock()
	if g.state != GateChecking {
		state := g.state
		g.mu.Unlock()
		return state
	}

	user, signedIn := g.sessions.CurrentUser()
	if !signedIn {
		g.state = GateDenied
		g.mu.Unlock()
		g.logger.Printf("Access denied for course %s: no signed-in user", courseID)
		g.nav.Navigate(LoginPath)
		return GateDenied
	}
	g.mu.Unlock()

	// Suspension point: the page stays in Checking while this resolves.
	result := g.checker.CheckAccess(ctx, user.Email, courseID)

	g.mu.Lock()
	if g.state != GateChecking {
		// a stale response must not overwrite a newer state
		state := g.state
		g.mu.Unlock()
		return state
	}
	if result.HasAccess {
		g.state = GateGranted
		g.mu.Unlock()
		return GateGranted
	}
	g.state = GateDenied
	g.storeErr = result.StoreErr
	g.mu.Unlock()

	g.logger.Printf("Access denied for course %s (store error: %v)", courseID, result.StoreErr)
	g.nav.Navigate(PurchasePath)
	return GateDenied
}

// State reports the gate's current state.
func (g *Gate) State() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// StoreErr reports the store failure behind a denial, if any, so the page
// can show a retry affordance instead of a hard "not paid" message.
func (g *Gate) StoreErr() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.storeErr
}
