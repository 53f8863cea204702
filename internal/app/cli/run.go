// Package cli runs the interactive store console: a customer panel for
// browsing and ordering, and an admin panel for the back office.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	adminmysql "github.com/Ssshtea/DBMS-cp/internal/domains/admin/adapters/persistence/mysql"
	adminapp "github.com/Ssshtea/DBMS-cp/internal/domains/admin/application"
	admindomain "github.com/Ssshtea/DBMS-cp/internal/domains/admin/domain"
	storemysql "github.com/Ssshtea/DBMS-cp/internal/domains/store/adapters/persistence/mysql"
	storeapp "github.com/Ssshtea/DBMS-cp/internal/domains/store/application"
	storedomain "github.com/Ssshtea/DBMS-cp/internal/domains/store/domain"
	storeports "github.com/Ssshtea/DBMS-cp/internal/domains/store/ports"
	"github.com/Ssshtea/DBMS-cp/internal/platform/migrations"
	platformmysql "github.com/Ssshtea/DBMS-cp/internal/platform/mysql"
)

// Run drives the console until the user exits or ctx is canceled.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Diagnostics go to stderr so the menu stays readable on stdout.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	pool, err := platformmysql.Open(ctx, cfg.DB, logger)
	if err != nil {
		return fmt.Errorf("open database pool: %w", err)
	}
	defer pool.Close()

	if err := migrations.Run(ctx, pool.DB()); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	exec := platformmysql.NewExecutor(pool, platformmysql.WithLogger(logger))

	store := storeapp.NewService(
		storemysql.NewRepository(exec, storemysql.WithStrictStock(cfg.StrictStock)),
		storeapp.WithLogger(logger),
	)
	admin := adminapp.NewService(adminmysql.NewRepository(exec), adminapp.WithLogger(logger))

	console := &console{
		in:                bufio.NewScanner(os.Stdin),
		out:               os.Stdout,
		store:             store,
		admin:             admin,
		lowStockThreshold: cfg.LowStockThreshold,
	}
	return console.mainMenu(ctx)
}

type console struct {
	in                *bufio.Scanner
	out               io.Writer
	store             storeports.Service
	admin             *adminapp.Service
	lowStockThreshold int
}

func (c *console) mainMenu(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		c.printf("\n=== Clothing Store ===\n")
		c.printf("1. Customer panel\n")
		c.printf("2. Admin panel\n")
		c.printf("0. Exit\n")
		switch c.prompt("Choose: ") {
		case "1":
			c.customerPanel(ctx)
		case "2":
			c.adminPanel(ctx)
		case "0", "":
			c.printf("Bye.\n")
			return nil
		default:
			c.printf("Unknown option.\n")
		}
	}
}

func (c *console) customerPanel(ctx context.Context) {
	customerID, ok := c.promptInt64("Customer ID: ")
	if !ok {
		return
	}
	for {
		if ctx.Err() != nil {
			return
		}
		c.printf("\n--- Customer %d ---\n", customerID)
		c.printf("1. Browse products\n")
		c.printf("2. Place order\n")
		c.printf("3. My orders\n")
		c.printf("4. Leave review\n")
		c.printf("0. Back\n")
		switch c.prompt("Choose: ") {
		case "1":
			c.browseProducts(ctx)
		case "2":
			c.placeOrder(ctx, customerID)
		case "3":
			c.listOrders(ctx, customerID)
		case "4":
			c.leaveReview(ctx, customerID)
		case "0", "":
			return
		default:
			c.printf("Unknown option.\n")
		}
	}
}

func (c *console) browseProducts(ctx context.Context) {
	products, err := c.store.ListProducts(ctx)
	if err != nil {
		c.fail(err)
		return
	}
	if len(products) == 0 {
		c.printf("The catalogue is empty.\n")
		return
	}
	c.printf("%-5s %-30s %-12s %-8s %s\n", "ID", "Name", "Category", "Price", "In stock")
	for _, p := range products {
		c.printf("%-5d %-30s %-12s %-8s %d\n",
			p.ID, p.Name, p.Category, p.Price.String(), p.QuantityAvailable)
	}
}

func (c *console) placeOrder(ctx context.Context, customerID int64) {
	productID, ok := c.promptInt64("Product ID: ")
	if !ok {
		return
	}
	quantity, ok := c.promptInt("Quantity: ")
	if !ok {
		return
	}
	receipt, err := c.store.PlaceOrder(ctx, customerID, productID, quantity)
	if err != nil {
		c.fail(err)
		return
	}
	c.printf("Order #%d placed: %d x product %d, total %s.\n",
		receipt.OrderID, quantity, productID, receipt.Total.String())
}

func (c *console) listOrders(ctx context.Context, customerID int64) {
	orders, err := c.store.OrdersForCustomer(ctx, customerID)
	if err != nil {
		c.fail(err)
		return
	}
	if len(orders) == 0 {
		c.printf("No orders yet.\n")
		return
	}
	for _, o := range orders {
		c.printf("Order #%d  %s  %s  %s\n",
			o.ID, o.OrderDate.Format("2006-01-02"), o.Total.String(), o.Status)
	}
}

func (c *console) leaveReview(ctx context.Context, customerID int64) {
	productID, ok := c.promptInt64("Product ID: ")
	if !ok {
		return
	}
	rating, ok := c.promptInt("Rating (1-5): ")
	if !ok {
		return
	}
	comment := c.prompt("Comment: ")
	if err := c.store.AddReview(ctx, customerID, productID, rating, comment); err != nil {
		c.fail(err)
		return
	}
	c.printf("Review saved.\n")
}

func (c *console) adminPanel(ctx context.Context) {
	username := c.prompt("Username: ")
	password := c.prompt("Password: ")
	account, err := c.admin.Login(ctx, username, password)
	if err != nil {
		c.fail(err)
		return
	}
	for {
		if ctx.Err() != nil {
			return
		}
		c.printf("\n--- Admin: %s ---\n", account.Username)
		c.printf("1. Dashboard\n")
		c.printf("2. Orders\n")
		c.printf("3. Update order status\n")
		c.printf("4. Manage products\n")
		c.printf("5. Low stock\n")
		c.printf("6. Best sellers\n")
		c.printf("0. Back\n")
		switch c.prompt("Choose: ") {
		case "1":
			c.dashboard(ctx)
		case "2":
			c.adminOrders(ctx)
		case "3":
			c.updateOrderStatus(ctx)
		case "4":
			c.manageProducts(ctx)
		case "5":
			c.lowStock(ctx)
		case "6":
			c.bestSellers(ctx)
		case "0", "":
			return
		default:
			c.printf("Unknown option.\n")
		}
	}
}

func (c *console) dashboard(ctx context.Context) {
	stats, err := c.admin.Stats(ctx)
	if err != nil {
		c.fail(err)
		return
	}
	c.printf("Products: %d  Orders: %d  Customers: %d  Revenue: %s\n",
		stats.Products, stats.Orders, stats.Customers, stats.Revenue.String())

	revenue, err := c.admin.RevenueSummary(ctx)
	if err != nil {
		c.fail(err)
		return
	}
	c.printf("Revenue today %s, this week %s, this month %s\n",
		revenue.Today.String(), revenue.Week.String(), revenue.Month.String())
}

func (c *console) adminOrders(ctx context.Context) {
	status := storedomain.Status(strings.TrimSpace(c.prompt("Status filter (empty for all): ")))
	orders, err := c.admin.ListOrders(ctx, status)
	if err != nil {
		c.fail(err)
		return
	}
	if len(orders) == 0 {
		c.printf("No orders.\n")
		return
	}
	for _, o := range orders {
		c.printf("#%-5d %-20s %s  %-8s %s\n",
			o.OrderID, o.CustomerName, o.OrderDate.Format("2006-01-02"),
			o.Total.String(), o.Status)
	}
}

func (c *console) updateOrderStatus(ctx context.Context) {
	orderID, ok := c.promptInt64("Order ID: ")
	if !ok {
		return
	}
	status := storedomain.Status(strings.TrimSpace(c.prompt("New status: ")))
	if err := c.admin.UpdateOrderStatus(ctx, orderID, status); err != nil {
		c.fail(err)
		return
	}
	c.printf("Order #%d is now %s.\n", orderID, status)
}

func (c *console) manageProducts(ctx context.Context) {
	c.printf("1. List\n2. Add\n3. Set stock\n4. Delete\n0. Back\n")
	switch c.prompt("Choose: ") {
	case "1":
		products, err := c.admin.ListProducts(ctx, admindomain.ProductFilter{
			Search:   c.prompt("Search (empty for all): "),
			Category: c.prompt("Category (empty for all): "),
		})
		if err != nil {
			c.fail(err)
			return
		}
		for _, p := range products {
			c.printf("%-5d %-30s %-8s stock %d\n", p.ID, p.Name, p.Price.String(), p.QuantityAvailable)
		}
	case "2":
		c.addProduct(ctx)
	case "3":
		productID, ok := c.promptInt64("Product ID: ")
		if !ok {
			return
		}
		quantity, ok := c.promptInt("New stock level: ")
		if !ok {
			return
		}
		err := c.admin.BulkUpdateStock(ctx, []admindomain.StockUpdate{
			{ProductID: productID, Quantity: quantity},
		})
		if err != nil {
			c.fail(err)
			return
		}
		c.printf("Stock updated.\n")
	case "4":
		productID, ok := c.promptInt64("Product ID: ")
		if !ok {
			return
		}
		if err := c.admin.DeleteProduct(ctx, productID); err != nil {
			c.fail(err)
			return
		}
		c.printf("Product deleted.\n")
	}
}

func (c *console) addProduct(ctx context.Context) {
	name := c.prompt("Name: ")
	description := c.prompt("Description: ")
	price, err := storedomain.ParseCents(c.prompt("Price (e.g. 49.99): "))
	if err != nil {
		c.printf("Invalid price: %v\n", err)
		return
	}
	category := c.prompt("Category: ")
	quantity, ok := c.promptInt("Stock: ")
	if !ok {
		return
	}
	sellerID, ok := c.promptInt64("Seller ID: ")
	if !ok {
		return
	}
	id, err := c.admin.AddProduct(ctx, storedomain.Product{
		Name:              name,
		Description:       description,
		Price:             price,
		Category:          category,
		QuantityAvailable: quantity,
		SellerID:          sellerID,
	})
	if err != nil {
		c.fail(err)
		return
	}
	c.printf("Product #%d added.\n", id)
}

func (c *console) lowStock(ctx context.Context) {
	products, err := c.admin.LowStock(ctx, c.lowStockThreshold)
	if err != nil {
		c.fail(err)
		return
	}
	if len(products) == 0 {
		c.printf("Nothing below the threshold.\n")
		return
	}
	for _, p := range products {
		c.printf("%-5d %-30s stock %d\n", p.ID, p.Name, p.QuantityAvailable)
	}
}

func (c *console) bestSellers(ctx context.Context) {
	sellers, err := c.admin.BestSellers(ctx, 5)
	if err != nil {
		c.fail(err)
		return
	}
	for i, b := range sellers {
		c.printf("%d. %-30s %d sold, %s revenue\n", i+1, b.Name, b.UnitsSold, b.Revenue.String())
	}
}

func (c *console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *console) prompt(label string) string {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		return ""
	}
	return strings.TrimSpace(c.in.Text())
}

func (c *console) promptInt(label string) (int, bool) {
	raw := c.prompt(label)
	value, err := strconv.Atoi(raw)
	if err != nil {
		c.printf("Not a number: %q\n", raw)
		return 0, false
	}
	return value, true
}

func (c *console) promptInt64(label string) (int64, bool) {
	raw := c.prompt(label)
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.printf("Not a number: %q\n", raw)
		return 0, false
	}
	return value, true
}

func (c *console) fail(err error) {
	c.printf("Error: %v\n", err)
}
