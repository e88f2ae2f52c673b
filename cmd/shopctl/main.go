// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

// Command shopctl drives the Shop Store from a terminal.
//
// Every invocation loads the persisted state, runs one operation and exits,
// so a cart built by one command is visible to the next and to shopd.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rayaw/storefront/internal/app"
	"github.com/rayaw/storefront/internal/platform/config"
	"github.com/rayaw/storefront/internal/shop"
)

// errActionFailed marks an operation the store reported as unsuccessful; the
// notification already explains why.
var errActionFailed = errors.New("action failed")

// opener builds the runtime a command operates on.
type opener func(ctx context.Context, logger *slog.Logger) (*app.Runtime, error)

// openFromEnv is the production opener.
func openFromEnv(ctx context.Context, logger *slog.Logger) (*app.Runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return app.Open(ctx, cfg, logger)
}

// cli carries the state shared by all subcommands of one invocation.
type cli struct {
	open    opener
	verbose bool
	runtime *app.Runtime
}

func (c *cli) store() *shop.Store {
	return c.runtime.Store
}

func newRootCommand(c *cli) *cobra.Command {

	root := &cobra.Command{
		Use:   "shopctl",
		Short: "Browse the catalog, manage the cart and check out",
		Long: `shopctl runs Shop Store operations against the configured Remote API.

State (session, cart and orders) is kept in the Local Persistent Store
selected by STATE_BACKEND, shared with the shopd facade.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var handler slog.Handler = slog.NewTextHandler(io.Discard, nil)
			if c.verbose {
				handler = slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})
			}

			runtime, err := c.open(cmd.Context(), slog.New(handler))
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			c.runtime = runtime
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log store activity to stderr")

	root.AddCommand(
		c.productsCommand(),
		c.productCommand(),
		c.loginCommand(),
		c.signupCommand(),
		c.logoutCommand(),
		c.whoamiCommand(),
		c.profileCommand(),
		c.cartCommand(),
		c.checkoutCommand(),
		c.ordersCommand(),
	)

	return root
}

// # Output

// printJSON writes value as indented JSON.
func printJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

// report prints the pending notification and turns a false result into an
// error for the exit status.
func (c *cli) report(cmd *cobra.Command, ok bool) error {
	if notice, found := c.store().Notification(); found {
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", notice.Kind, notice.Message)
	}
	if !ok {
		return errActionFailed
	}
	return nil
}

// run executes one command line and releases the store afterwards, even when
// the command failed.
func run(ctx context.Context, open opener, args []string, stdout, stderr io.Writer) error {
	c := &cli{open: open}

	root := newRootCommand(c)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)

	if c.runtime != nil {
		if cerr := c.runtime.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func main() {
	if err := run(context.Background(), openFromEnv, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errActionFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
