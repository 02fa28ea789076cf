package repo

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:repo_"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	return conn
}

type ctxKey struct{}

func TestBaseDB_BindsContext(t *testing.T) {
	db := newTestDB(t)
	base := NewBase(db)

	ctx := context.WithValue(context.Background(), ctxKey{}, "value")
	withCtx := base.DB(ctx)
	if withCtx == nil || withCtx.Statement == nil {
		t.Fatalf("expected statement created after WithContext")
	}
	if withCtx.Statement.Context != ctx {
		t.Fatalf("expected context to flow through, got %v", withCtx.Statement.Context)
	}

	if base.DB(nil) != db {
		t.Fatalf("expected nil context to return raw connection")
	}
}

func TestBaseConn_PrefersTransaction(t *testing.T) {
	db := newTestDB(t)
	base := NewBase(db)
	ctx := context.WithValue(context.Background(), ctxKey{}, "tx")

	err := db.Transaction(func(tx *gorm.DB) error {
		conn := base.Conn(ctx, tx)
		if conn.Statement.ConnPool != tx.Statement.ConnPool {
			t.Fatalf("expected tx connection pool to be reused")
		}
		if conn.Statement.Context != ctx {
			t.Fatalf("expected context to be bound on tx")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}

	if got := base.Conn(ctx, nil); got.Statement.Context != ctx {
		t.Fatalf("expected fallback to base db with context")
	}
}
