package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/auth_service/internal/db"
	"github.com/Skotchmaster/auth_service/internal/events"
	"github.com/Skotchmaster/auth_service/internal/hash"
	"github.com/Skotchmaster/auth_service/internal/repo"
	"github.com/Skotchmaster/auth_service/internal/tokens"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	repo   *repo.GormRepo
	pub    *recordingPublisher
	issuer *tokens.Issuer
	users  *UserService
	auth   *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb, err := db.Open(context.Background(), db.SQLiteScheme+":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() { _ = db.Close(gdb) })

	r := repo.New(gdb)
	hasher := hash.Bcrypt{Cost: bcrypt.MinCost}
	pub := &recordingPublisher{}
	issuer := tokens.NewIssuer([]byte("service-test-secret"), 0)

	return &fixture{
		repo:   r,
		pub:    pub,
		issuer: issuer,
		users:  &UserService{Repo: r, Hasher: hasher, Events: pub},
		auth: &AuthService{
			Users:       r,
			Revocations: r,
			Tokens:      issuer,
			Hasher:      hasher,
			Events:      pub,
		},
	}
}
