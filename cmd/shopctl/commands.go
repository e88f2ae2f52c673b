// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rayaw/storefront/internal/platform/apperr"
	"github.com/rayaw/storefront/internal/shop"
	"github.com/rayaw/storefront/pkg/money"
)

// # Catalog

func (c *cli) productsCommand() *cobra.Command {
	var pages int

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List catalog products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := c.store()
			store.EnsureCatalog(cmd.Context())
			for i := 1; i < pages && store.HasNextPage(); i++ {
				store.FetchNextPage(cmd.Context())
			}

			state := store.CatalogState()
			if state.Error != "" {
				return fmt.Errorf("catalog unavailable: %s", state.Error)
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tNAME\tPRICE\tCATEGORY")
			for _, product := range store.Products() {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
					product.ID, product.Name, money.Format(product.Price, product.Currency), product.Category)
			}
			if state.HasNextPage {
				fmt.Fprintln(writer, "…\tmore available (--pages)\t\t")
			}
			return writer.Flush()
		},
	}

	cmd.Flags().IntVar(&pages, "pages", 1, "number of pages to load")
	return cmd
}

func (c *cli) productCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := c.store().Product(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), product)
		},
	}
}

// # Session

func (c *cli) loginCommand() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.report(cmd, c.store().Login(cmd.Context(), email, password))
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (c *cli) signupCommand() *cobra.Command {
	var input shop.RegisterInput

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.report(cmd, c.store().Register(cmd.Context(), input))
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&input.FirstName, "first-name", "", "first name")
	flags.StringVar(&input.LastName, "last-name", "", "last name")
	flags.StringVar(&input.Email, "email", "", "email")
	flags.StringVar(&input.PhoneNumber, "phone", "", "phone number")
	flags.StringVar(&input.Password, "password", "", "password")
	for _, name := range []string{"first-name", "email", "phone", "password"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (c *cli) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.store().Logout()
			return c.report(cmd, true)
		},
	}
}

func (c *cli) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session := c.store().Session()
			if session == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "not signed in")
				return nil
			}
			return printJSON(cmd.OutOrStdout(), session)
		},
	}
}

func (c *cli) profileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Edit the signed-in profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var update shop.ProfileUpdate
			flags := cmd.Flags()

			for name, target := range map[string]**string{
				"first-name": &update.FirstName,
				"last-name":  &update.LastName,
				"email":      &update.Email,
				"phone":      &update.Phone,
			} {
				if flags.Changed(name) {
					value, _ := flags.GetString(name)
					*target = &value
				}
			}

			if !c.store().UpdateProfile(update) {
				return errors.New("not signed in")
			}
			return c.report(cmd, true)
		},
	}

	flags := cmd.Flags()
	flags.String("first-name", "", "first name")
	flags.String("last-name", "", "last name")
	flags.String("email", "", "email")
	flags.String("phone", "", "phone number")
	return cmd
}

// # Cart

func (c *cli) cartCommand() *cobra.Command {
	cart := &cobra.Command{
		Use:   "cart",
		Short: "Inspect and edit the cart",
	}

	var size string
	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add one unit of a product in a size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if size == "" {
				return errors.New(shop.MsgSelectSize)
			}

			product, err := c.store().Product(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			c.store().AddToCart(product, size)
			return c.report(cmd, true)
		},
	}
	add.Flags().StringVar(&size, "size", "", "size to add (required)")

	cart.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show cart lines and the total",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				snapshot := c.store().Snapshot()

				writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(writer, "ID\tSIZE\tQTY\tNAME\tSUBTOTAL")
				for _, line := range snapshot.Cart {
					fmt.Fprintf(writer, "%s\t%s\t%d\t%s\t%s\n",
						line.ID, line.Size, line.Quantity, line.Name, money.Format(line.Subtotal(), line.Currency))
				}
				fmt.Fprintf(writer, "\t\t%d\tTOTAL\t%s\n", snapshot.CartCount, snapshot.FormattedTotal)
				return writer.Flush()
			},
		},
		add,
		&cobra.Command{
			Use:   "remove <product-id> <size>",
			Short: "Remove a cart line",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				c.store().RemoveFromCart(args[0], args[1])
				return nil
			},
		},
		&cobra.Command{
			Use:   "qty <product-id> <size> <delta>",
			Short: "Change a line quantity by delta (never below 1)",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				delta, err := strconv.Atoi(args[2])
				if err != nil {
					return fmt.Errorf("invalid delta %q: %w", args[2], err)
				}
				c.store().UpdateQuantity(args[0], args[1], delta)
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the cart",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				c.store().ClearCart()
				return nil
			},
		},
	)

	return cart
}

// # Checkout

func (c *cli) checkoutCommand() *cobra.Command {
	var input shop.CheckoutInput
	var method string

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Pay for the cart (simulated)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input.PaymentMethod = shop.PaymentMethod(method)

			receipt, err := c.store().Checkout(input)
			if err != nil {
				if ae := apperr.As(err); ae != nil {
					for _, detail := range ae.Details {
						fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", detail.Field, detail.Message)
					}
				}
				return err
			}

			if err := c.report(cmd, true); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), receipt)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&input.Name, "name", "", "full name")
	flags.StringVar(&input.Email, "email", "", "email for the receipt")
	flags.StringVar(&input.Phone, "phone", "", "phone number")
	flags.StringVar(&method, "method", string(shop.PaymentMomo), "payment method: momo or card")
	return cmd
}

func (c *cli) ordersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List past orders, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd.OutOrStdout(), c.store().Orders())
		},
	}
}
