package store

import (
	"context"
	"database/sql"

	"github.com/go-faster/errors"
	_ "github.com/lib/pq"

	models "market-simulation/model"
)

// PostgresCatalog reads an initial catalog from an existing inventory
// database. It never writes; the session still runs on a MemoryStore.
//
// Expected table:
// CREATE TABLE products (id SERIAL PRIMARY KEY, name TEXT, price NUMERIC(10,2), stock INT);
type PostgresCatalog struct {
	DB *sql.DB
}

// OpenPostgresCatalog connects with the lib/pq driver and pings the server.
func OpenPostgresCatalog(ctx context.Context, dsn string) (*PostgresCatalog, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping catalog database")
	}
	return &PostgresCatalog{DB: db}, nil
}

func (c *PostgresCatalog) Close() error { return c.DB.Close() }

// LoadProducts returns every product ordered by id. Rows with a negative
// price or stock are rejected rather than clamped.
func (c *PostgresCatalog) LoadProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := c.DB.QueryContext(ctx, `SELECT name, price, stock FROM products ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "query products")
	}
	defer rows.Close()

	out := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.Name, &p.Price, &p.Stock); err != nil {
			return nil, errors.Wrap(err, "scan product")
		}
		if err := ValidateProduct(p.Name, p.Price, p.Stock); err != nil {
			return nil, errors.Wrapf(err, "product %q", p.Name)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "read products")
	}
	return out, nil
}
