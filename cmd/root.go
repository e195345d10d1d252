package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Keeper-Wallet/provider-keeper/cmd/demo"
	"github.com/Keeper-Wallet/provider-keeper/cmd/env"
	"github.com/Keeper-Wallet/provider-keeper/cmd/probe"
	"github.com/Keeper-Wallet/provider-keeper/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: config.GetFormattedBuildArgs(),
	Use:     "provider-keeper",
	Short:   config.ModuleName,
	Long: fmt.Sprintf(`%v

Keeper Wallet provider tooling: bridge probes and a local signing
playground. Requires configuration through ENV.`, config.ModuleName),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	// attach the subcommands
	rootCmd.AddCommand(
		demo.New(),
		env.New(),
		probe.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Failed to execute root command")
		os.Exit(1)
	}
}
