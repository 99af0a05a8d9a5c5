// Package sqlite provides the SQLite-backed implementation of the catalog
// repository capabilities. It is the storage collaborator the analytics
// engine reads its snapshots from: entity creation, identity assignment,
// and deletion all happen here, never in the engine.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/asaidimu/go-mercato/core/catalog"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// schemaDDL mirrors the relational shape the entity graph maps to: one
// table per entity plus a join table for the order/product relationship.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS customers (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT    NOT NULL,
	tier INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS products (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	name     TEXT NOT NULL,
	category TEXT NOT NULL,
	price    REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS product_orders (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	order_date    TEXT,
	delivery_date TEXT,
	status        TEXT NOT NULL,
	customer_id   INTEGER REFERENCES customers(id)
);
CREATE TABLE IF NOT EXISTS order_product_relationship (
	order_id   INTEGER NOT NULL REFERENCES product_orders(id),
	product_id INTEGER NOT NULL REFERENCES products(id),
	PRIMARY KEY (order_id, product_id)
);
`

// Store implements the catalog repository capabilities on a SQLite
// database opened by the caller.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

var _ catalog.Repositories = (*Store)(nil)
var _ catalog.Counter = (*Store)(nil)

// NewStore wraps an open database handle. A nil logger is replaced by a
// no-op logger.
func NewStore(db *sql.DB, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, logger: logger}
}

// Init creates the schema if it does not exist yet.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("sqlite: create schema: %w", err)
	}
	s.logger.Debug("Initialized sqlite schema")
	return nil
}

// ListCustomers returns all customers in id order.
func (s *Store) ListCustomers(ctx context.Context) ([]catalog.Customer, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, tier FROM customers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list customers: %w", err)
	}
	defer rows.Close()

	var customers []catalog.Customer
	for rows.Next() {
		var c catalog.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Tier); err != nil {
			return nil, fmt.Errorf("sqlite: scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list customers: %w", err)
	}
	return customers, nil
}

// ListOrders returns all orders in id order, with their product references
// resolved from the relationship table in attachment (insertion) order.
func (s *Store) ListOrders(ctx context.Context) ([]catalog.Order, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, order_date, delivery_date, status, customer_id FROM product_orders ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list orders: %w", err)
	}
	defer rows.Close()

	var orders []catalog.Order
	index := make(map[int64]int)
	for rows.Next() {
		var (
			o            catalog.Order
			orderDate    sql.NullString
			deliveryDate sql.NullString
			customerID   sql.NullInt64
		)
		if err := rows.Scan(&o.ID, &orderDate, &deliveryDate, &o.Status, &customerID); err != nil {
			return nil, fmt.Errorf("sqlite: scan order: %w", err)
		}
		if o.OrderDate, err = parseDate(orderDate); err != nil {
			return nil, fmt.Errorf("sqlite: order %d: %w", o.ID, err)
		}
		if o.DeliveryDate, err = parseDate(deliveryDate); err != nil {
			return nil, fmt.Errorf("sqlite: order %d: %w", o.ID, err)
		}
		if customerID.Valid {
			o.CustomerID = customerID.Int64
		}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list orders: %w", err)
	}

	links, err := s.db.QueryContext(ctx,
		`SELECT order_id, product_id FROM order_product_relationship ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list order products: %w", err)
	}
	defer links.Close()

	for links.Next() {
		var orderID, productID int64
		if err := links.Scan(&orderID, &productID); err != nil {
			return nil, fmt.Errorf("sqlite: scan order product link: %w", err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].AddProduct(productID)
		}
	}
	if err := links.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list order products: %w", err)
	}
	return orders, nil
}

// ListProducts returns all products in id order.
func (s *Store) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, category, price FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list products: %w", err)
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		var p catalog.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price); err != nil {
			return nil, fmt.Errorf("sqlite: scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list products: %w", err)
	}
	return products, nil
}

// Count reports the size of a collection without materializing it.
func (s *Store) Count(ctx context.Context, kind catalog.Kind) (int64, error) {
	table, ok := map[catalog.Kind]string{
		catalog.KindCustomer: "customers",
		catalog.KindOrder:    "product_orders",
		catalog.KindProduct:  "products",
	}[kind]
	if !ok {
		return 0, fmt.Errorf("sqlite: unknown entity kind: %s", kind)
	}
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&count); err != nil {
		return 0, fmt.Errorf("sqlite: count %s: %w", kind, err)
	}
	return count, nil
}

// InsertCustomer stores a customer and returns it with its assigned id.
func (s *Store) InsertCustomer(ctx context.Context, c catalog.Customer) (catalog.Customer, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO customers (name, tier) VALUES (?, ?)`, c.Name, c.Tier)
	if err != nil {
		return catalog.Customer{}, fmt.Errorf("sqlite: insert customer: %w", err)
	}
	if c.ID, err = res.LastInsertId(); err != nil {
		return catalog.Customer{}, fmt.Errorf("sqlite: insert customer: %w", err)
	}
	return c, nil
}

// InsertProduct stores a product and returns it with its assigned id.
func (s *Store) InsertProduct(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO products (name, category, price) VALUES (?, ?, ?)`, p.Name, p.Category, p.Price)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("sqlite: insert product: %w", err)
	}
	if p.ID, err = res.LastInsertId(); err != nil {
		return catalog.Product{}, fmt.Errorf("sqlite: insert product: %w", err)
	}
	return p, nil
}

// InsertOrder stores an order together with its product links and returns
// it with its assigned id. Zero dates and a zero customer id persist as
// NULL.
func (s *Store) InsertOrder(ctx context.Context, o catalog.Order) (catalog.Order, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return catalog.Order{}, fmt.Errorf("sqlite: insert order: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO product_orders (order_date, delivery_date, status, customer_id) VALUES (?, ?, ?, ?)`,
		formatDate(o.OrderDate), formatDate(o.DeliveryDate), o.Status, nullableID(o.CustomerID))
	if err != nil {
		return catalog.Order{}, fmt.Errorf("sqlite: insert order: %w", err)
	}
	if o.ID, err = res.LastInsertId(); err != nil {
		return catalog.Order{}, fmt.Errorf("sqlite: insert order: %w", err)
	}
	for _, productID := range o.ProductIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO order_product_relationship (order_id, product_id) VALUES (?, ?)`,
			o.ID, productID); err != nil {
			return catalog.Order{}, fmt.Errorf("sqlite: link order %d product %d: %w", o.ID, productID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return catalog.Order{}, fmt.Errorf("sqlite: insert order: %w", err)
	}
	return o, nil
}

func parseDate(v sql.NullString) (t time.Time, err error) {
	if !v.Valid || v.String == "" {
		return time.Time{}, nil
	}
	t, err = time.ParseInLocation(dateLayout, v.String, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", v.String, err)
	}
	return t, nil
}

func formatDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(dateLayout)
}

func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
