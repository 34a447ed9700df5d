// Command shopctl is a terminal storefront: browse the catalog, keep a cart,
// check out and manage the shop as an administrator.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"storefront/internal/client"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintln(os.Stderr, "Error:", apiErr.Message)
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// app is shared by every command. State is reloaded from disk on each run.
type app struct {
	apiURL    string
	statePath string
	out       io.Writer

	state *client.State
	api   *client.Client
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}
	root := &cobra.Command{
		Use:           "shopctl",
		Short:         "Shop the storefront from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			st, err := client.LoadState(a.statePath)
			if err != nil {
				return err
			}
			a.state = st
			a.api = client.New(a.apiURL, st.Token())
			return nil
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&a.apiURL, "api", envOr("SHOPCTL_API", "http://localhost:5000"), "storefront base URL")
	root.PersistentFlags().StringVar(&a.statePath, "state", envOr("SHOPCTL_STATE", client.DefaultStatePath()), "path of the session state file")

	root.AddCommand(
		a.registerCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.profileCmd(),
		a.productsCmd(),
		a.cartCmd(),
		a.checkoutCmd(),
		a.ordersCmd(),
		a.adminCmd(),
	)
	return root
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (a *app) requireLogin() error {
	if a.state.Token() == "" {
		return errors.New("not logged in, run `shopctl login` first")
	}
	return nil
}
