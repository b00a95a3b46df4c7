package cli

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	models "market-simulation/model"
)

const rule = 60

// money renders an amount the way the shelf labels do: R$ 1.234,56.
func money(d decimal.Decimal) string {
	d = d.Round(2)
	whole, frac, _ := strings.Cut(d.Abs().StringFixed(2), ".")
	n, _ := new(big.Int).SetString(whole, 10)
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return "R$ " + sign + strings.ReplaceAll(humanize.BigComma(n), ",", ".") + "," + frac
}

func (c *Console) showProducts() error {
	products := c.svc.ListProducts()
	c.println("\n=== Available products ===")
	if len(products) == 0 {
		c.println("No products registered.")
		return nil
	}
	c.printf("%-6s | %-20s | %-12s | %s\n", "Code", "Product", "Price", "Stock")
	c.println(strings.Repeat("-", rule))
	for i, p := range products {
		c.printf("%-6d | %-20s | %-12s | %d\n", i+1, p.Name, money(p.Price), p.Stock)
	}
	return nil
}

func (c *Console) showCart() error {
	items, total, err := c.svc.GetCart()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		c.println("\nCart is empty!")
		return nil
	}
	c.println("\n=== Your cart ===")
	c.printLines(items)
	c.printf("%-20s | %-4s | %-12s | %s\n", "TOTAL", "", "", money(total))
	return nil
}

func (c *Console) printLines(items []models.CartItem) {
	c.printf("%-20s | %-4s | %-12s | %s\n", "Product", "Qty", "Unit price", "Subtotal")
	c.println(strings.Repeat("-", rule))
	for _, it := range items {
		c.printf("%-20s | %-4d | %-12s | %s\n",
			codeName(it.ProductIndex, it.Name), it.Quantity, money(it.UnitPrice), money(it.Subtotal))
	}
	c.println(strings.Repeat("-", rule))
}

func codeName(index int, name string) string {
	return strconv.Itoa(index+1) + ". " + name
}
