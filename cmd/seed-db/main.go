// Command seed-db loads product and customer fixtures into the database.
// Fixture files are JSON, optionally gzip-compressed (.gz suffix), so large
// catalog dumps can be shipped compressed.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/go-faster/errors"
	"github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"

	"github.com/Bjornanger/webshop/internal/domain/customer"
	"github.com/Bjornanger/webshop/internal/domain/product"
	"github.com/Bjornanger/webshop/internal/repository"
)

type productJSON struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

type customerJSON struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func main() {
	var (
		databaseURL   string
		productsFile  string
		customersFile string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&productsFile, "products-file", "db/seed/products.json", "path to products JSON file (.json or .json.gz)")
	flag.StringVar(&customersFile, "customers-file", "db/seed/customers.json", "path to customers JSON file (.json or .json.gz)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, productsFile, customersFile); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, productsFile, customersFile string) error {
	slog.Info("connecting to database")

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	if err := seedProducts(ctx, repository.NewProductRepository(pool), productsFile); err != nil {
		return errors.Wrap(err, "seed products")
	}

	if err := seedCustomers(ctx, repository.NewCustomerRepository(pool), customersFile); err != nil {
		return errors.Wrap(err, "seed customers")
	}

	return nil
}

// readFixture decodes a JSON fixture file into dst, transparently
// decompressing gzip-compressed files.
func readFixture(path string, dst any) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open fixture file")
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return errors.Wrap(err, "open gzip reader")
		}
		defer gz.Close()
		r = gz
	}

	if err := json.NewDecoder(r).Decode(dst); err != nil {
		return errors.Wrap(err, "parse fixture JSON")
	}

	return nil
}

func seedProducts(ctx context.Context, repo *repository.ProductRepository, path string) error {
	slog.Info("reading products file", slog.String("path", path))

	var fixtures []productJSON
	if err := readFixture(path, &fixtures); err != nil {
		return err
	}

	slog.Info("inserting products", slog.Int("count", len(fixtures)))

	for _, f := range fixtures {
		p := product.Product{
			Name:  f.Name,
			Price: f.Price,
			Stock: f.Stock,
		}
		if err := repo.Create(ctx, &p); err != nil {
			return errors.Wrapf(err, "insert product %q", f.Name)
		}

		slog.Info("inserted product", slog.Int64("id", p.ID), slog.String("name", p.Name))
	}

	return nil
}

func seedCustomers(ctx context.Context, repo *repository.CustomerRepository, path string) error {
	slog.Info("reading customers file", slog.String("path", path))

	var fixtures []customerJSON
	if err := readFixture(path, &fixtures); err != nil {
		return err
	}

	slog.Info("inserting customers", slog.Int("count", len(fixtures)))

	for _, f := range fixtures {
		c := customer.Customer{
			FirstName: f.FirstName,
			LastName:  f.LastName,
			Email:     f.Email,
			Password:  f.Password,
		}
		if err := repo.Create(ctx, &c); err != nil {
			return errors.Wrapf(err, "insert customer %q", f.Email)
		}

		slog.Info("inserted customer", slog.Int64("id", c.ID), slog.String("email", c.Email))
	}

	return nil
}
