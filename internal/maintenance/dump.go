package maintenance

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

// dumpColumns whitelists the tables `storectl dump` may read and the columns
// it selects. admins.password is deliberately absent.
var dumpColumns = map[string][]string{
	"categories":       {"id", "name", "slug", "created_at", "updated_at"},
	"products":         {"id", "name", "slug", "price", "compare_price", "category_id", "description", "created_at", "updated_at"},
	"product_images":   {"id", "product_id", "image_url", "is_primary"},
	"product_variants": {"id", "product_id", "color", "storage", "sku", "price", "stock"},
	"brands":           {"id", "name", "slug", "logo", "is_popular", "is_active", "sort_order"},
	"admins":           {"id", "name", "email", "role", "created_at"},
	"shipping_zones":   {"id", "name", "postcodes", "flat_rate", "free_shipping_threshold", "weight_rate", "is_active", "sort_order"},
	"orders": {"id", "order_number", "customer_name", "customer_email", "shipping_address", "postcode",
		"subtotal", "shipping_cost", "total", "status", "tracking_number", "shipping_provider", "created_at", "updated_at"},
	"order_items": {"id", "order_id", "product_id", "variant_id", "quantity", "unit_price"},
}

// DumpTables lists the tables Dump accepts.
func DumpTables() []string {
	tables := make([]string, 0, len(dumpColumns))
	for t := range dumpColumns {
		tables = append(tables, t)
	}
	sort.Strings(tables)
	return tables
}

// Dump returns up to limit rows of table ordered by id. limit <= 0 means all.
func Dump(ctx context.Context, db *sqlx.DB, table string, limit int) ([]map[string]any, error) {
	cols, ok := dumpColumns[table]
	if !ok {
		return nil, fmt.Errorf("unknown table %q: must be one of %s", table, strings.Join(DumpTables(), ", "))
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id ASC", strings.Join(cols, ", "), table)
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("dump %s: %w", table, err)
	}
	defer rows.Close()

	out := []map[string]any{}
	for rows.Next() {
		row := map[string]any{}
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
