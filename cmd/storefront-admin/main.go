// Command storefront-admin provisions tenants and issues tokens for the storefront API.
package main

import (
	"fmt"
	"os"

	"storefront/internal/config"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	config.LoadEnv()

	rootCmd := &cobra.Command{
		Use:           "storefront-admin",
		Short:         "Administration tasks for the multi-tenant storefront",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(seedTenantCmd())
	rootCmd.AddCommand(setPlanCmd())
	rootCmd.AddCommand(tokenCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
