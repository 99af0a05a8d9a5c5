package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/asaidimu/go-mercato/core/analytics"
	"github.com/asaidimu/go-mercato/core/catalog"
	"github.com/asaidimu/go-mercato/sqlite"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"go.uber.org/zap"
)

const dbFileName = "shop.db"

func main() {
	// --- Database Initialization ---
	// Remove the database file if it already exists to start fresh.
	if err := os.Remove(dbFileName); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing database file %s: %v", dbFileName, err)
	}
	fmt.Printf("Starting fresh: removed existing %s (if any).\n", dbFileName)

	db, err := sql.Open("sqlite3", dbFileName)
	if err != nil {
		log.Fatalf("Failed to open database connection: %v", err)
	}
	defer func() {
		if cErr := db.Close(); cErr != nil {
			log.Printf("Error closing database connection: %v", cErr)
		}
		fmt.Println("Database connection closed.")
	}()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	store := sqlite.NewStore(db, logger)
	if err := store.Init(ctx); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	fmt.Println("Initialized shop schema.")
	// --- End Database Initialization ---

	// --- Seed Data ---
	fmt.Println("Inserting sample data...")
	if err := seed(ctx, store); err != nil {
		log.Fatalf("Failed to seed sample data: %v", err)
	}
	fmt.Println("Sample data inserted successfully.")
	// --- End Seed Data ---

	// --- Event Subscription ---
	bus, err := analytics.NewBus()
	if err != nil {
		log.Fatalf("Failed to create event bus: %v", err)
	}
	unsubscribe := bus.Subscribe(string(analytics.ReportSalesSuccess), func(ctx context.Context, event analytics.Event) error {
		fmt.Printf("Report assembled in %dms (operation %q)\n", *event.Duration, event.Operation)
		return nil
	})
	defer unsubscribe()
	// --- End Event Subscription ---

	opts := []analytics.Option{analytics.WithLogger(logger), analytics.WithBus(bus)}
	products := analytics.NewProducts(store, opts...)
	orders := analytics.NewOrders(store, opts...)
	customers := analytics.NewCustomers(store, opts...)
	insights := analytics.NewInsights(store, opts...)

	// --- Query and Print ---
	fmt.Println("\nBooks priced above 12.00:")
	expensive, err := products.ByCategoryAbovePrice(ctx, "Books", 12)
	if err != nil {
		log.Fatalf("Failed to query products: %v", err)
	}
	for _, p := range expensive {
		fmt.Printf("  %s\n", p)
	}

	fmt.Println("\nDelivered orders:")
	delivered, err := orders.ByStatus(ctx, "DELIVERED")
	if err != nil {
		log.Fatalf("Failed to query orders: %v", err)
	}
	for _, o := range delivered {
		fmt.Printf("  %s\n", o)
	}

	if top, ok, err := customers.TopSpending(ctx); err != nil {
		log.Fatalf("Failed to rank customers: %v", err)
	} else if ok {
		fmt.Printf("\nTop spending customer: %s\n", top)
	}

	popular, err := insights.MostPopularCategories(ctx, 3)
	if err != nil {
		log.Fatalf("Failed to rank categories: %v", err)
	}
	fmt.Println("\nMost popular categories:")
	for _, c := range popular {
		fmt.Printf("  %-15s %d\n", c.Category, c.Count)
	}
	// --- End Query and Print ---

	// --- Sales Report ---
	report, err := analytics.NewReport(store, opts...).Sales(ctx)
	if err != nil {
		log.Fatalf("Failed to assemble sales report: %v", err)
	}

	encoded, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode sales report: %v", err)
	}
	fmt.Printf("\nSales report:\n%s\n", encoded)
	// --- End Sales Report ---

	// Event delivery is asynchronous; give the subscriber a moment before
	// the process exits.
	time.Sleep(100 * time.Millisecond)

	fmt.Printf("\nDatabase created successfully at: %s\n", dbFileName)
	fmt.Println("You can inspect this database file using the 'sqlite3' command-line tool:")
	fmt.Printf("1. Run: sqlite3 %s\n", dbFileName)
	fmt.Printf("2. Inside the sqlite3 prompt, you can run SQL commands:\n")
	fmt.Printf("    - .tables (to list tables)\n")
	fmt.Printf("    - SELECT * FROM product_orders; (to view data)\n")
	fmt.Printf("    - .quit (to exit)\n")
}

// seed populates the store with a small shop: three customers, a handful of
// products across three categories, and orders in assorted states.
func seed(ctx context.Context, store *sqlite.Store) error {
	alice, err := store.InsertCustomer(ctx, catalog.Customer{Name: "Alice Smith", Tier: 1})
	if err != nil {
		return err
	}
	bob, err := store.InsertCustomer(ctx, catalog.Customer{Name: "Bob Jones", Tier: 2})
	if err != nil {
		return err
	}
	if _, err := store.InsertCustomer(ctx, catalog.Customer{Name: "Carol White", Tier: 2}); err != nil {
		return err
	}

	specs := []catalog.Product{
		catalog.NewProductBuilder().Name("The Go Programming Language").Category("Books").Price(32).Build(),
		catalog.NewProductBuilder().Name("Compilers").Category("Books").Price(45).Build(),
		catalog.NewProductBuilder().Name("Paperback Notebook").Category("Books").Price(8).Build(),
		catalog.NewProductBuilder().Name("Mechanical Keyboard").Category("Electronics").Price(75).Build(),
		catalog.NewProductBuilder().Name("Wireless Mouse").Category("Electronics").Price(25).Build(),
		catalog.NewProductBuilder().Name("Espresso Mug").Category("Kitchen").Price(12).Build(),
	}
	products := make([]catalog.Product, 0, len(specs))
	for _, p := range specs {
		inserted, err := store.InsertProduct(ctx, p)
		if err != nil {
			return err
		}
		products = append(products, inserted)
	}

	orders := []catalog.Order{
		{
			OrderDate:    catalog.Date(2026, time.July, 14),
			DeliveryDate: catalog.Date(2026, time.July, 18),
			Status:       "DELIVERED",
			CustomerID:   alice.ID,
			ProductIDs:   []int64{products[0].ID, products[3].ID},
		},
		{
			OrderDate:  catalog.Date(2026, time.August, 2),
			Status:     "PENDING",
			CustomerID: bob.ID,
			ProductIDs: []int64{products[1].ID, products[2].ID},
		},
		{
			OrderDate:    catalog.Date(2026, time.August, 10),
			DeliveryDate: catalog.Date(2026, time.August, 13),
			Status:       "DELIVERED",
			CustomerID:   bob.ID,
			ProductIDs:   []int64{products[0].ID, products[5].ID},
		},
		{
			Status:     "CANCELLED",
			ProductIDs: []int64{products[4].ID},
		},
	}
	for _, o := range orders {
		if _, err := store.InsertOrder(ctx, o); err != nil {
			return err
		}
	}
	return nil
}
