package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pinwords/keyword-backend/internal/store"
	"github.com/pinwords/keyword-backend/internal/store/storetest"
)

// makePGStore prefers an externally provided DSN; otherwise it starts a
// throwaway postgres container. Environments without docker skip.
func makePGStore(t *testing.T) store.Store {
	t.Helper()
	ctx := context.Background()

	dsn := os.Getenv("KEYWORD_BACKEND_POSTGRES_DSN")
	if dsn == "" {
		if testing.Short() {
			t.Skip("KEYWORD_BACKEND_POSTGRES_DSN not set; skipping postgres store integration test")
		}
		dsn = startPostgres(ctx, t)
	}

	s, err := Bootstrap(ctx, dsn)
	if err != nil {
		t.Fatalf("postgres bootstrap: %v", err)
	}
	return s
}

func startPostgres(ctx context.Context, t *testing.T) string {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "keywords",
			"POSTGRES_PASSWORD": "keywords",
			"POSTGRES_DB":       "keywords",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("docker unavailable, skipping postgres store integration test: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("container port: %v", err)
	}
	return fmt.Sprintf("postgres://keywords:keywords@%s:%s/keywords?sslmode=disable", host, port.Port())
}

func TestPostgresStore_Compliance(t *testing.T) {
	storetest.Run(t, makePGStore)
}
