package db

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/prakashthakuri/Happy-Hours/pkg/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

//go:embed schema_sqlite.sql
var sqliteSchema string

// OpenSQLite opens a sqlite connection with the shared gorm settings. It
// backs the local dev mode and the repository tests.
func OpenSQLite(dsn string) (*Client, error) {
	if dsn == "" {
		return nil, fmt.Errorf("sqlite dsn is required")
	}
	conn, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	return &Client{conn: conn, driver: config.DBDriverSQLite}, nil
}

// ApplySQLiteSchema creates the storefront tables on a sqlite connection.
// Statements are idempotent so it is safe to run on every boot.
func ApplySQLiteSchema(ctx context.Context, c *Client) error {
	if c == nil || c.conn == nil {
		return fmt.Errorf("db client is required")
	}
	if c.driver != config.DBDriverSQLite {
		return fmt.Errorf("schema bootstrap requires sqlite, got %q", c.driver)
	}
	for _, stmt := range strings.Split(sqliteSchema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if err := c.conn.WithContext(ctx).Exec(stmt).Error; err != nil {
			return fmt.Errorf("apply sqlite schema: %w", err)
		}
	}
	return nil
}
