package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rhymebook/rhymebook-backend/internal/adapter/postgres"
	"github.com/rhymebook/rhymebook-backend/internal/adapter/postgres/testhelper"
)

// entryExists checks whether an entry row with the given slug exists.
func entryExists(t *testing.T, pool *pgxpool.Pool, slug string) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM entries WHERE slug = $1)`,
		slug,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("entryExists query: %v", err)
	}
	return exists
}

func insertEntry(ctx context.Context, q postgres.Querier, slug string) error {
	_, err := q.Exec(ctx,
		`INSERT INTO entries (slug, headword, sort_key, letter)
		 VALUES ($1, $1, $1, left($1, 1))`,
		slug,
	)
	return err
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return insertEntry(ctx, postgres.QuerierFromCtx(ctx, pool), "tx-commit-test")
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !entryExists(t, pool, "tx-commit-test") {
		t.Fatal("expected entry to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	sentinel := errors.New("business logic error")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if execErr := insertEntry(ctx, postgres.QuerierFromCtx(ctx, pool), "tx-rollback-test"); execErr != nil {
			t.Fatalf("insert inside tx failed: %v", execErr)
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}

	if entryExists(t, pool, "tx-rollback-test") {
		t.Fatal("expected entry NOT to exist after rolled-back transaction")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic to be re-raised")
		}
		if r != "test panic" {
			t.Fatalf("expected panic value %q, got %v", "test panic", r)
		}

		// Verify data was rolled back.
		if entryExists(t, pool, "tx-panic-test") {
			t.Fatal("expected entry NOT to exist after panic-rolled-back transaction")
		}
	}()

	_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertEntry(ctx, postgres.QuerierFromCtx(ctx, pool), "tx-panic-test"); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		panic("test panic")
	})
}

func TestRunInTx_QuerierFromCtx_UsesTx(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	// Insert inside a transaction, then verify it's visible within the same tx
	// and outside after commit.
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		if err := insertEntry(ctx, q, "tx-ctx-test"); err != nil {
			return err
		}

		var exists bool
		err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM entries WHERE slug = $1)`, "tx-ctx-test").Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			t.Fatal("expected entry to be visible within the transaction")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !entryExists(t, pool, "tx-ctx-test") {
		t.Fatal("expected entry to exist after committed transaction")
	}
}
