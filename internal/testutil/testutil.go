// Package testutil provides shared helpers for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"

	"github.com/lumeo/lumeo/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 515151

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// applyMigrationPair runs the down then up migration with the given number.
func applyMigrationPair(ctx context.Context, pool *pgxpool.Pool, name string) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	downPath := filepath.Join(root, "migrations", name+".down.sql")
	upPath := filepath.Join(root, "migrations", name+".up.sql")

	downSQL, err := os.ReadFile(downPath)
	if err != nil {
		return fmt.Errorf("read down migration %s: %w", name, err)
	}
	if _, err := pool.Exec(ctx, string(downSQL)); err != nil {
		return fmt.Errorf("apply down migration %s: %w", name, err)
	}

	upSQL, err := os.ReadFile(upPath)
	if err != nil {
		return fmt.Errorf("read up migration %s: %w", name, err)
	}
	if _, err := pool.Exec(ctx, string(upSQL)); err != nil {
		return fmt.Errorf("apply up migration %s: %w", name, err)
	}

	return nil
}

// ResetSchema drops and recreates every table for tests. Child tables are
// torn down before users to satisfy foreign keys.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool) error {
	// Drop dependents first
	for _, name := range []string{"000004_projects", "000003_conversations", "000002_credit_transactions"} {
		root, err := ProjectRoot()
		if err != nil {
			return err
		}
		downSQL, err := os.ReadFile(filepath.Join(root, "migrations", name+".down.sql"))
		if err != nil {
			return fmt.Errorf("read down migration %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx, string(downSQL)); err != nil {
			return fmt.Errorf("apply down migration %s: %w", name, err)
		}
	}

	for _, name := range []string{"000001_users", "000002_credit_transactions", "000003_conversations", "000004_projects"} {
		if err := applyMigrationPair(ctx, pool, name); err != nil {
			return err
		}
	}

	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestUser creates a test user with sensible defaults.
func NewTestUser(t testing.TB, identityKey string) *model.User {
	t.Helper()
	now := time.Now().UTC()
	return &model.User{
		ID:          fmt.Sprintf("user-%d", now.UnixNano()),
		IdentityKey: identityKey,
		Email:       identityKey + "@example.com",
		Name:        "Test User",
		Plan:        model.PlanFree,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewTestConversation creates a test conversation owned by the given user.
func NewTestConversation(t testing.TB, userID, title string) *model.Conversation {
	t.Helper()
	now := time.Now().UTC()
	return &model.Conversation{
		ID:        UniqueID("conv"),
		UserID:    userID,
		Title:     title,
		Mode:      model.ModeChat,
		CreatedAt: now,
	}
}

// NewTestProject creates a test project owned by the given user.
func NewTestProject(t testing.TB, userID, name string) *model.Project {
	t.Helper()
	now := time.Now().UTC()
	return &model.Project{
		ID:        UniqueID("proj"),
		UserID:    userID,
		Name:      name,
		FileRefs:  []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UniqueIdentityKey generates a unique identity key for tests.
func UniqueIdentityKey(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, ulid.Make().String())
}

// UniqueID generates a unique ID for tests. ULIDs stay distinct under
// concurrent callers, unlike timestamp-derived IDs.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, ulid.Make().String())
}
