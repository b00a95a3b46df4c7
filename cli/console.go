// Package cli is the console front end of a market session: numbered menus
// on a text stream, dispatching to the service layer.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/rs/zerolog"

	"market-simulation/auth"
	"market-simulation/service"
	"market-simulation/store"
)

// errLeave closes the menu it is returned from.
var errLeave = errors.New("leave menu")

// inputError wraps a failure reading the input stream. It ends the session.
type inputError struct{ err error }

func (e *inputError) Error() string { return "read input: " + e.err.Error() }
func (e *inputError) Unwrap() error { return e.err }

type entry struct {
	label string
	run   func() error
}

// Console is the CLI layer that talks to service.ServiceInterface
type Console struct {
	svc  service.ServiceInterface
	gate auth.CredentialChecker
	in   *bufio.Scanner
	out  io.Writer
	log  zerolog.Logger
}

func NewConsole(svc service.ServiceInterface, gate auth.CredentialChecker, in io.Reader, out io.Writer, log zerolog.Logger) *Console {
	return &Console{svc: svc, gate: gate, in: bufio.NewScanner(in), out: out, log: log}
}

// Run shows the main menu until the user exits, the input ends or ctx is
// done. Domain errors are reported and the loop goes on.
func (c *Console) Run(ctx context.Context) error {
	c.println("============== Market ==============")
	c.println("Welcome to the market simulator!")
	c.println("====================================")

	err := c.loop(ctx, "MAIN MENU", []entry{
		{"Show products", c.showProducts},
		{"Add product to cart", c.addToCart},
		{"View cart", c.showCart},
		{"Remove item from cart", c.removeFromCart},
		{"Checkout", c.checkout},
		{"Admin mode", func() error { return c.admin(ctx) }},
		{"Exit", func() error {
			c.println("Leaving the market. See you soon!")
			return errLeave
		}},
	})
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		c.println("\nSession ended.")
		return nil
	}
	return err
}

func (c *Console) loop(ctx context.Context, title string, entries []entry) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.println("\n" + strings.Repeat("=", 40))
		c.printf("%*s\n", 20+len(title)/2, title)
		c.println(strings.Repeat("=", 40))
		for i, e := range entries {
			c.printf("%d - %s\n", i+1, e.label)
		}
		c.println(strings.Repeat("=", 40))

		choice, err := c.readLine("Choose an option: ")
		if err != nil {
			return err
		}
		n, convErr := strconv.Atoi(choice)
		if convErr != nil || n < 1 || n > len(entries) {
			c.println("Invalid option, try again.")
			continue
		}

		err = entries[n-1].run()
		switch {
		case err == nil:
		case errors.Is(err, errLeave):
			return nil
		case fatal(err):
			return err
		default:
			c.report(err)
		}
	}
}

func fatal(err error) bool {
	var ie *inputError
	return errors.Is(err, io.EOF) || errors.As(err, &ie) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// report turns a recovered error into a message for the user.
func (c *Console) report(err error) {
	c.log.Debug().Err(err).Msg("operation rejected")

	var stockErr *store.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		c.printf("Insufficient stock for %s! Available: %d\n", stockErr.Product, stockErr.Available)
	case errors.Is(err, store.ErrCartEmpty):
		c.println("\nCart is empty!")
	case errors.Is(err, store.ErrNotFound):
		c.println("Invalid code.")
	case errors.Is(err, store.ErrValidation):
		c.printf("Invalid value: %v\n", err)
	default:
		c.log.Error().Err(err).Msg("unexpected error")
		c.printf("Unexpected error: %v\n", err)
	}
}

func (c *Console) addToCart() error {
	if err := c.showProducts(); err != nil {
		return err
	}
	code, err := c.readInt("Product code: ")
	if err != nil {
		return err
	}
	qty, err := c.readInt("Quantity: ")
	if err != nil {
		return err
	}
	if err := c.svc.AddToCart(code-1, qty); err != nil {
		return err
	}
	c.printf("%dx %s added to the cart!\n", qty, c.svc.ListProducts()[code-1].Name)
	return nil
}

func (c *Console) removeFromCart() error {
	if err := c.showCart(); err != nil {
		return err
	}
	code, err := c.readInt("Product code to remove: ")
	if err != nil {
		return err
	}
	if err := c.svc.RemoveFromCart(code - 1); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.println("Product not found in the cart.")
			return nil
		}
		return err
	}
	c.println("Item removed from the cart.")
	return nil
}

func (c *Console) checkout() error {
	od, err := c.svc.Checkout()
	if err != nil {
		return err
	}
	c.printf("\n=== Receipt %s ===\n", od.ID)
	c.printLines(od.Items)
	c.printf("%-20s | %-4s | %-12s | %s\n", "TOTAL", "", "", money(od.Total))
	c.println("\nPurchase complete. Thank you for shopping with us!")
	return nil
}

func (c *Console) println(s string) { fmt.Fprintln(c.out, s) }

func (c *Console) printf(format string, args ...any) { fmt.Fprintf(c.out, format, args...) }
