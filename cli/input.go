package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// readLine prints prompt and returns the next trimmed line. It returns
// io.EOF once the input is exhausted.
func (c *Console) readLine(prompt string) (string, error) {
	c.printf("%s", prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", &inputError{err: err}
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// readInt asks again until the line is a whole number.
func (c *Console) readInt(prompt string) (int, error) {
	for {
		line, err := c.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil {
			return n, nil
		}
		c.println("Enter a valid whole number.")
	}
}

// readDecimal asks again until the line is a number. Both "8.50" and
// "8,50" are accepted.
func (c *Console) readDecimal(prompt string) (decimal.Decimal, error) {
	for {
		line, err := c.readLine(prompt)
		if err != nil {
			return decimal.Zero, err
		}
		d, err := parseDecimal(line)
		if err == nil {
			return d, nil
		}
		c.println("Enter a valid number.")
	}
}

// parseDecimal reads a plain or Brazilian-formatted number ("1.234,56").
func parseDecimal(s string) (decimal.Decimal, error) {
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(s)
}
