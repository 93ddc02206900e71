package helper

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testDatabaseName     = "database"
	testDatabaseUser     = "user"
	testDatabasePassword = "password"
)

// MustStartPostgresContainer starts a PostgreSQL container for tests and examples.
// It returns the terminate function and the mapped host port.
func MustStartPostgresContainer() (func(ctx context.Context, opts ...testcontainers.TerminateOption) error, string, error) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(
		ctx,
		"postgres:17-alpine",
		postgres.WithDatabase(testDatabaseName),
		postgres.WithUsername(testDatabaseUser),
		postgres.WithPassword(testDatabasePassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", NewError("start postgres container", err)
	}

	port, err := pgContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return nil, "", NewError("get mapped port", err)
	}

	return pgContainer.Terminate, port.Port(), nil
}

// SetTestDatabaseConfigEnvs sets the database environment for the test container on port
func SetTestDatabaseConfigEnvs(t *testing.T, port string) {
	t.Setenv(EnvDatabaseHost, "localhost")
	t.Setenv(EnvDatabasePort, port)
	t.Setenv(EnvDatabaseName, testDatabaseName)
	t.Setenv(EnvDatabaseUsername, testDatabaseUser)
	t.Setenv(EnvDatabasePassword, testDatabasePassword)
	t.Setenv(EnvDatabaseSchema, "public")
	t.Setenv(EnvDatabaseSSLMode, "disable")
}
