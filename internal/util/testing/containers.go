package test_utils

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/SH20RAJ/sketchflow-sub001/internal/storage"
	"github.com/SH20RAJ/sketchflow-sub001/internal/util/logger"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/valkey-io/valkey-go"
	"gorm.io/gorm"
)

var (
	sharedDB     *gorm.DB
	sharedDBOnce sync.Once
	sharedDBErr  error

	sharedValkey     valkey.Client
	sharedValkeyOnce sync.Once
	sharedValkeyErr  error
)

// GetTestDB returns a PostgreSQL container shared by the whole test run,
// with migrations applied
func GetTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	sharedDBOnce.Do(func() {
		sharedDB, sharedDBErr = setupTestDB()
	})

	if sharedDBErr != nil {
		t.Fatalf("Failed to setup test database: %v", sharedDBErr)
	}

	return sharedDB
}

// GetTestValkey returns a Valkey container shared by the whole test run
func GetTestValkey(t *testing.T) valkey.Client {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	sharedValkeyOnce.Do(func() {
		sharedValkey, sharedValkeyErr = setupTestValkey()
	})

	if sharedValkeyErr != nil {
		t.Fatalf("Failed to setup test valkey: %v", sharedValkeyErr)
	}

	return sharedValkey
}

func setupTestDB() (*gorm.DB, error) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       "sketchflow_test",
				"POSTGRES_USER":     "sketchflow",
				"POSTGRES_PASSWORD": "test_password",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	dsn := fmt.Sprintf("postgres://sketchflow:test_password@%s:%s/sketchflow_test?sslmode=disable", host, port.Port())

	database, err := storage.Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open test database: %w", err)
	}

	if err := storage.RunMigrations(database, migrationsPath(), logger.GetLogger()); err != nil {
		return nil, err
	}

	storage.SetDb(database)

	return database, nil
}

func setupTestValkey() (valkey.Client, error) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "valkey/valkey:8-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start valkey container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	return valkey.NewClient(valkey.ClientOption{
		InitAddress:  []string{host + ":" + port.Port()},
		DisableCache: true,
	})
}

func migrationsPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "migrations")
}
