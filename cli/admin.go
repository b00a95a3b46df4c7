package cli

import (
	"context"
	"strconv"

	"github.com/go-faster/errors"

	"market-simulation/auth"
	models "market-simulation/model"
)

// admin asks for credentials and, when they pass, runs the admin menu.
func (c *Console) admin(ctx context.Context) error {
	var creds auth.Credentials
	dir, hasDir := c.gate.(auth.Directory)
	if hasDir {
		login, err := c.readLine("Admin CPF: ")
		if err != nil {
			return err
		}
		creds.Login = login
	}
	secret, err := c.readLine("Admin password: ")
	if err != nil {
		return err
	}
	creds.Secret = secret

	if err := c.gate.Check(creds); err != nil {
		c.log.Warn().Err(err).Msg("admin login failed")
		c.println("Access denied.")
		return nil
	}
	c.log.Info().Msg("admin session opened")
	c.println("Access granted.")

	entries := []entry{
		{"Register product", c.createProduct},
		{"Edit product", c.editProduct},
		{"Remove product", c.deleteProduct},
		{"Show products", c.showProducts},
	}
	if hasDir {
		entries = append(entries,
			entry{"List admins", func() error { return c.listAdmins(dir) }},
			entry{"Register admin", func() error { return c.addAdmin(dir) }},
			entry{"Remove admin", func() error { return c.removeAdmin(dir) }},
		)
	}
	entries = append(entries, entry{"Back to main menu", func() error { return errLeave }})

	err = c.loop(ctx, "ADMIN MENU", entries)
	c.log.Info().Msg("admin session closed")
	return err
}

func (c *Console) createProduct() error {
	name, err := c.readLine("Product name: ")
	if err != nil {
		return err
	}
	price, err := c.readDecimal("Price: R$ ")
	if err != nil {
		return err
	}
	stock, err := c.readInt("Stock quantity: ")
	if err != nil {
		return err
	}
	idx, err := c.svc.CreateProduct(name, price, stock)
	if err != nil {
		return err
	}
	c.printf("Product %s registered! (Code: %d)\n", c.svc.ListProducts()[idx].Name, idx+1)
	return nil
}

// editProduct leaves a field unchanged when its answer is blank.
func (c *Console) editProduct() error {
	if err := c.showProducts(); err != nil {
		return err
	}
	code, err := c.readInt("Code of the product to edit: ")
	if err != nil {
		return err
	}
	products := c.svc.ListProducts()
	if code < 1 || code > len(products) {
		c.println("Invalid code.")
		return nil
	}
	cur := products[code-1]

	name, err := c.readLine("New name (" + cur.Name + "): ")
	if err != nil {
		return err
	}
	price, err := c.readLine("New price (" + money(cur.Price) + "): ")
	if err != nil {
		return err
	}
	stock, err := c.readLine("New stock (" + strconv.Itoa(cur.Stock) + "): ")
	if err != nil {
		return err
	}

	var patch models.ProductPatch
	if name != "" {
		patch.Name = &name
	}
	if price != "" {
		d, perr := parseDecimal(price)
		if perr != nil {
			c.println("Invalid values.")
			return nil
		}
		patch.Price = &d
	}
	if stock != "" {
		n, perr := strconv.Atoi(stock)
		if perr != nil {
			c.println("Invalid values.")
			return nil
		}
		patch.Stock = &n
	}

	if err := c.svc.UpdateProduct(code-1, patch); err != nil {
		return err
	}
	c.println("Product updated!")
	return nil
}

func (c *Console) deleteProduct() error {
	if err := c.showProducts(); err != nil {
		return err
	}
	code, err := c.readInt("Code of the product to remove: ")
	if err != nil {
		return err
	}
	products := c.svc.ListProducts()
	if err := c.svc.DeleteProduct(code - 1); err != nil {
		return err
	}
	c.printf("Product %s removed!\n", products[code-1].Name)
	return nil
}

func (c *Console) listAdmins(dir auth.Directory) error {
	c.println("\n=== Registered admins ===")
	for i, cpf := range dir.List() {
		c.printf("%d. %s\n", i+1, cpf)
	}
	return nil
}

func (c *Console) addAdmin(dir auth.Directory) error {
	cpf, err := c.readLine("New admin CPF: ")
	if err != nil {
		return err
	}
	secret, err := c.readLine("New admin password: ")
	if err != nil {
		return err
	}
	if err := dir.Add(cpf, secret); err != nil {
		return c.adminError(err)
	}
	c.log.Info().Msg("admin registered")
	c.println("Admin registered!")
	return nil
}

func (c *Console) removeAdmin(dir auth.Directory) error {
	cpf, err := c.readLine("CPF of the admin to remove: ")
	if err != nil {
		return err
	}
	if err := dir.Remove(cpf); err != nil {
		return c.adminError(err)
	}
	c.log.Info().Msg("admin removed")
	c.println("Admin removed!")
	return nil
}

// adminError prints registry rejections and passes anything else on.
func (c *Console) adminError(err error) error {
	for _, known := range []error{
		auth.ErrInvalidCPF, auth.ErrAdminExists, auth.ErrAdminNotFound,
		auth.ErrLastAdmin, auth.ErrEmptySecret,
	} {
		if errors.Is(err, known) {
			c.printf("Could not update admins: %v\n", known)
			return nil
		}
	}
	return err
}
