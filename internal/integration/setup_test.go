package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Skotchmaster/auth_service/internal/db"
	"github.com/Skotchmaster/auth_service/internal/events"
	"github.com/Skotchmaster/auth_service/internal/hash"
	"github.com/Skotchmaster/auth_service/internal/repo"
	"github.com/Skotchmaster/auth_service/internal/service"
	"github.com/Skotchmaster/auth_service/internal/tokens"
)

type integrationEnv struct {
	dsn    string
	db     *gorm.DB
	rp     *repo.GormRepo
	issuer *tokens.Issuer
	users  *service.UserService
	auth   *service.AuthService
}

func setupPostgresContainer(t *testing.T, ctx context.Context) string {
	t.Helper()

	testcontainers.SkipIfProviderIsNotHealthy(t)

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("authdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	t.Cleanup(func() {
		if pgContainer != nil {
			require.NoError(t, pgContainer.Terminate(context.Background()))
		}
	})
	require.NoError(t, err, "failed to start postgres container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return connStr
}

func newIntegrationEnv(t *testing.T) *integrationEnv {
	t.Helper()

	if testing.Short() {
		t.Skip("integration tests are skipped in short mode")
	}

	ctx := context.Background()
	dsn := os.Getenv("AUTH_TEST_DATABASE_URL")
	if dsn == "" {
		dsn = setupPostgresContainer(t, ctx)
	}

	gdb, err := db.Open(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() {
		truncateTables(t, gdb)
		_ = db.Close(gdb)
	})

	rp := repo.New(gdb)
	hasher := hash.Bcrypt{Cost: bcrypt.MinCost}
	issuer := tokens.NewIssuer([]byte("integration-secret"), time.Hour)
	users := &service.UserService{Repo: rp, Hasher: hasher, Events: events.Nop{}}

	return &integrationEnv{
		dsn:    dsn,
		db:     gdb,
		rp:     rp,
		issuer: issuer,
		users:  users,
		auth: &service.AuthService{
			Users:       rp,
			Revocations: rp,
			Tokens:      issuer,
			Hasher:      hasher,
			Events:      events.Nop{},
		},
	}
}

func truncateTables(t *testing.T, gdb *gorm.DB) {
	t.Helper()

	if err := gdb.Exec("TRUNCATE TABLE revoked_tokens, users").Error; err != nil {
		t.Logf("truncate: %v", err)
	}
}

func uniqueUsername(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}
