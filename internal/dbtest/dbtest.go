// Package dbtest opens isolated sqlite databases with the full schema for
// repository and service tests.
package dbtest

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/angelmondragon/stonefront-backend/pkg/db"
	"github.com/angelmondragon/stonefront-backend/pkg/migrate"
)

// Open returns a migrated in-memory database unique to the test. The pool
// is capped at one connection so transactions serialize the way row locks
// would on Postgres.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := "file:" + sanitize(t.Name()) + "_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := migrate.AutoMigrateModels(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

// Client wraps Open in a db.Client for code that needs WithTx.
func Client(t testing.TB) *db.Client {
	t.Helper()
	return db.NewFromGorm(Open(t))
}

func sanitize(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
