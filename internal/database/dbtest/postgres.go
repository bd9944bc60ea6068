// Package dbtest starts throwaway databases for integration tests.
package dbtest

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresImage is the container image used by integration tests
const PostgresImage = "postgres:15-alpine"

// StartPostgres runs a postgres container and returns its connection string.
// When docker is unavailable the string is empty and terminate is a no-op,
// so callers can skip instead of failing.
func StartPostgres(ctx context.Context) (connStr string, terminate func()) {
	terminate = func() {}

	// testcontainers panics when no docker daemon can be found
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic starting postgres container: %v\n", r)
			connStr = ""
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		PostgresImage,
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return "", terminate
	}

	connStr, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		_ = pgContainer.Terminate(ctx)
		return "", terminate
	}

	return connStr, func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}
}
