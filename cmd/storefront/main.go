package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"storefront/application/derive"
	"storefront/infrastructure/config"
	"storefront/infrastructure/di"

	"go.uber.org/zap"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize dependency container
	container, err := di.InitializeContainer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer container.Logger.Sync()
	defer container.Searcher.Stop()

	// Load the catalog before accepting commands
	token := container.Store.BeginCatalogUpdate()
	lessons, err := container.Gateway.ListLessons(ctx)
	if err != nil {
		container.Logger.Error("Failed to load catalog", zap.Error(err))
		fmt.Println("Could not reach the lesson service. Showing an empty catalog.")
	} else {
		container.Store.ReplaceCatalog(lessons, token)
	}

	fmt.Println("Lesson storefront. Type 'help' for commands.")
	repl(ctx, container)
}

func repl(ctx context.Context, c *di.Container) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, arg := splitCommand(line)
		switch cmd {
		case "help":
			printHelp()
		case "list":
			printLessons(c)
		case "search":
			c.Searcher.Input(ctx, arg)
			fmt.Println("Searching...")
		case "sort":
			applySort(c, arg)
			printLessons(c)
		case "add":
			if c.Store.AddToCart(arg) {
				fmt.Println("Added to cart.")
			} else {
				fmt.Println("Lesson unavailable.")
			}
		case "remove":
			if c.Store.RemoveFromCart(arg) {
				fmt.Println("Removed from cart.")
			} else {
				fmt.Println("No such cart entry.")
			}
		case "cart":
			printCart(c)
		case "name":
			c.Store.SetName(arg)
			printValidation(c)
		case "phone":
			c.Store.SetPhone(arg)
			printValidation(c)
		case "checkout":
			result := c.Checkout.Checkout(ctx)
			fmt.Println(result.Message)
		case "quit", "exit":
			return
		default:
			fmt.Printf("Unknown command %q. Type 'help' for commands.\n", cmd)
		}
	}
}

func splitCommand(line string) (string, string) {
	parts := strings.SplitN(line, " ", 2)
	cmd := strings.ToLower(parts[0])
	arg := ""
	if len(parts) == 2 {
		arg = strings.TrimSpace(parts[1])
	}
	return cmd, arg
}

func printHelp() {
	fmt.Println(`Commands:
  list                      show the catalog
  search <text>             search lessons (empty text reloads the catalog)
  sort <key> [asc|desc]     sort by subject, location, price, spaces, rating
  add <lessonID>            add a lesson to the cart
  remove <entryID>          remove a cart entry
  cart                      show the cart and total
  name <value>              set the customer name
  phone <value>             set the customer phone
  checkout                  submit the order
  quit                      exit`)
}

func printLessons(c *di.Container) {
	snap := c.Store.Snapshot()
	view := derive.View(snap.Lessons, snap.SearchQuery, snap.SortKey, snap.SortOrder)
	if len(view) == 0 {
		fmt.Println("No lessons found.")
		return
	}
	for _, l := range view {
		fmt.Printf("  [%s] %-12s %-12s £%-8s spaces: %d  rating: %.1f\n",
			l.ID(), l.Subject(), l.Location(), l.Price().StringFixed(2), l.Spaces(), l.Rating())
	}
}

func applySort(c *di.Container, arg string) {
	fields := strings.Fields(arg)
	key := derive.SortNone
	order := derive.Ascending
	if len(fields) > 0 {
		key = derive.SortKey(strings.ToLower(fields[0]))
	}
	if len(fields) > 1 && strings.EqualFold(fields[1], string(derive.Descending)) {
		order = derive.Descending
	}
	c.Store.SetSort(key, order)
}

func printCart(c *di.Container) {
	snap := c.Store.Snapshot()
	entries := snap.Cart.Entries()
	if len(entries) == 0 {
		fmt.Println("Cart is empty.")
		return
	}
	for _, e := range entries {
		fmt.Printf("  [%s] %s in %s  £%s\n", e.EntryID(), e.Subject(), e.Location(), e.Price().StringFixed(2))
	}
	fmt.Printf("  %d item(s), total £%s\n", derive.CartCount(snap.Cart), derive.CartTotal(snap.Cart).StringFixed(2))
}

func printValidation(c *di.Container) {
	snap := c.Store.Snapshot()
	if snap.NameError != "" {
		fmt.Println(snap.NameError)
	}
	if snap.PhoneError != "" {
		fmt.Println(snap.PhoneError)
	}
	if snap.NameError == "" && snap.PhoneError == "" {
		fmt.Println("OK.")
	}
}
