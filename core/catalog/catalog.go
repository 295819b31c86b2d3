/*Package catalog persists product records.

Partial updates are assembled from a fixed allow-list of updatable columns,
values are always bound as statement parameters and never concatenated into
query text.
*/
package catalog

import (
	"context"
	"errors"

	"github.com/relabs-tech/catalog/core/csql"
)

// ErrNotFound is returned when no product matches the given id.
var ErrNotFound = errors.New("product not found")

// Product is a stored product record. ProductID is immutable once assigned.
type Product struct {
	ProductID   int     `json:"productID"`
	ProductName string  `json:"productName"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// Store is the product store backed by the products table.
type Store struct {
	db *csql.DB
}

// New creates a product store. The products table gets created if it
// does not exist yet.
func New(db *csql.DB) *Store {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS ` + db.Schema + `.products (
"productID" serial PRIMARY KEY,
"productName" varchar NOT NULL,
description varchar NOT NULL,
quantity integer NOT NULL,
price numeric NOT NULL
);`)
	if err != nil {
		panic(err)
	}
	return &Store{db: db}
}

// List returns all products. The result is never nil, so it serializes
// to an empty JSON array for an empty store.
func (s *Store) List(ctx context.Context) ([]Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT "productID", "productName", description, quantity, price FROM `+s.db.Schema+`.products ORDER BY "productID";`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.Description, &p.Quantity, &p.Price); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Create inserts a new product and returns the generated id.
func (s *Store) Create(ctx context.Context, p Product) (int, error) {
	var id int
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO `+s.db.Schema+`.products ("productName", description, quantity, price)
VALUES ($1, $2, $3, $4) RETURNING "productID";`,
		p.ProductName, p.Description, p.Quantity, p.Price).Scan(&id)
	return id, err
}

// Replace overwrites all business fields of the product with the given id.
// It returns ErrNotFound if the id does not exist.
func (s *Store) Replace(ctx context.Context, id int, p Product) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE `+s.db.Schema+`.products SET "productName" = $1, description = $2, quantity = $3, price = $4
WHERE "productID" = $5;`,
		p.ProductName, p.Description, p.Quantity, p.Price, id)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

// PartialUpdate updates the given subset of fields of the product with the
// given id. Field names are JSON property names and must be in the
// allow-list of updatable fields.
func (s *Store) PartialUpdate(ctx context.Context, id int, fields map[string]interface{}) error {
	query, args, err := buildPartialUpdate(s.db.Schema, id, fields)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the product with the given id. It returns ErrNotFound
// if the id does not exist.
func (s *Store) Delete(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM `+s.db.Schema+`.products WHERE "productID" = $1;`, id)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
