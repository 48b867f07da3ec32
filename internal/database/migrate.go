package database

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:embed schema.sql
var schemaSQL string

// Column is a nullable column added after the initial schema shipped.
type Column struct {
	Table      string
	Name       string
	Definition string
}

// LateColumns are applied by Migrate when missing. Order tracking was added
// to live databases this way, so fresh installs take the same path.
var LateColumns = []Column{
	{Table: "orders", Name: "tracking_number", Definition: "VARCHAR(100) NULL"},
	{Table: "orders", Name: "shipping_provider", Definition: "VARCHAR(100) NULL"},
}

// MigrationResult reports what Migrate did.
type MigrationResult struct {
	Statements   int
	AddedColumns []string
}

// Statements splits the embedded schema into individual statements.
func Statements() []string {
	var out []string
	for _, stmt := range strings.Split(schemaSQL, ";") {
		if s := strings.TrimSpace(stmt); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Migrate creates missing tables and adds missing late columns. Safe to run
// repeatedly.
func Migrate(ctx context.Context, db *sqlx.DB) (MigrationResult, error) {
	var res MigrationResult

	for _, stmt := range Statements() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return res, fmt.Errorf("apply schema statement %d: %w", res.Statements+1, err)
		}
		res.Statements++
	}

	for _, col := range LateColumns {
		exists, err := columnExists(ctx, db, col.Table, col.Name)
		if err != nil {
			return res, err
		}
		if exists {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", col.Table, col.Name, col.Definition)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return res, fmt.Errorf("add column %s.%s: %w", col.Table, col.Name, err)
		}
		res.AddedColumns = append(res.AddedColumns, col.Table+"."+col.Name)
	}

	return res, nil
}

func columnExists(ctx context.Context, db *sqlx.DB, table, column string) (bool, error) {
	var n int
	err := db.GetContext(ctx, &n, `
		SELECT COUNT(*) FROM information_schema.COLUMNS
		WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ? AND COLUMN_NAME = ?`, table, column)
	if err != nil {
		return false, fmt.Errorf("check column %s.%s: %w", table, column, err)
	}
	return n > 0, nil
}
