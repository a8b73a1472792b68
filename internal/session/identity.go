package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/golang-jwt/jwt/v4"

	"github.com/ganot/taskdeck/internal/domain/user"
)

// ErrNoIdentity indicates no authenticated user could be resolved.
var ErrNoIdentity = errors.New("no authenticated identity")

// ProfileGateway is the slice of the entity gateway the provider needs.
type ProfileGateway interface {
	GetProfile(ctx context.Context) (*user.User, error)
}

// Provider resolves the current authenticated user. The profile is fetched
// once and cached; a credential change drops the cache.
type Provider struct {
	store   Store
	profile ProfileGateway
	logger  *slog.Logger

	mu      sync.Mutex
	current *user.User
}

// NewProvider creates an identity provider bound to a credential store.
func NewProvider(store Store, profile ProfileGateway, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	p := &Provider{store: store, profile: profile, logger: logger}
	store.OnChange(func(string) {
		p.mu.Lock()
		p.current = nil
		p.mu.Unlock()
	})
	return p
}

// CurrentUser returns the authenticated user, fetching the profile from the
// gateway on first use.
func (p *Provider) CurrentUser(ctx context.Context) (*user.User, error) {
	p.mu.Lock()
	if p.current != nil {
		u := p.current
		p.mu.Unlock()
		return u, nil
	}
	p.mu.Unlock()

	if _, err := p.store.Get(); err != nil {
		return nil, ErrNoIdentity
	}

	u, err := p.profile.GetProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}

	p.mu.Lock()
	p.current = u
	p.mu.Unlock()
	return u, nil
}

// CurrentUserID resolves the authenticated user's id. The bearer token's
// subject claim answers without a network call when it decodes to a numeric
// id; otherwise the profile endpoint is consulted.
func (p *Provider) CurrentUserID(ctx context.Context) (int64, error) {
	if id, ok := p.UserIDHint(); ok {
		return id, nil
	}
	u, err := p.CurrentUser(ctx)
	if err != nil {
		return 0, err
	}
	return u.ID, nil
}

// UserIDHint extracts the user id from the bearer token's subject claim
// without a network call. The token is decoded, not verified; the remote API
// remains the authority and rejects a forged credential on first use.
func (p *Provider) UserIDHint() (int64, bool) {
	token, err := p.store.Get()
	if err != nil {
		return 0, false
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		p.logger.Debug("could not decode bearer token", "error", err)
		return 0, false
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
