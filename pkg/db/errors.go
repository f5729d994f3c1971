package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether the provided error is a unique constraint
// violation from Postgres or sqlite. When constraintName is provided, the
// violation must reference that constraint (or one of its columns on sqlite).
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) && constraintName == "" {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return constraintName == "" || pgErr.ConstraintName == constraintName
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "duplicate key value"):
	case strings.Contains(msg, "UNIQUE constraint failed"):
	default:
		return false
	}
	if constraintName == "" {
		return true
	}
	if strings.Contains(msg, constraintName) {
		return true
	}
	cols, ok := sqliteIndexColumns[constraintName]
	if !ok {
		return false
	}
	for _, col := range cols {
		if !strings.Contains(msg, col) {
			return false
		}
	}
	return true
}

// IsNotFound reports whether err is gorm's record-not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// sqlite reports unique failures by column, not by index name.
var sqliteIndexColumns = map[string][]string{
	"ux_orders_user_open":         {"orders.user_id"},
	"ux_line_items_order_item":    {"line_items.order_id", "line_items.item_id"},
	"ux_payments_order":           {"payments.order_id"},
	"ux_payments_external_charge": {"payments.external_charge_id"},
	"ux_items_slug":               {"items.slug"},
}
