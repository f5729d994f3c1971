// Package dbtest opens throwaway sqlite databases for repository and service
// tests.
package dbtest

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/prakashthakuri/Happy-Hours/pkg/db"
)

// New returns a client backed by a private in-memory sqlite database with the
// storefront schema applied. The database is dropped when the test ends.
func New(t testing.TB) *db.Client {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)

	client, err := db.OpenSQLite(dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := client.DB().DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.ApplySQLiteSchema(context.Background(), client); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}
