package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Keeper-Wallet/provider-keeper/internal/config"
	"github.com/Keeper-Wallet/provider-keeper/keeper"
)

func newReadiness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Checks whether the Keeper Wallet bridge is announced and unlocked",
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, _ := cmd.Flags().GetBool(verboseFlag)
			runReadiness(verbose)
		},
	}
	cmd.Flags().BoolP(verboseFlag, "v", false, "Show the resolved bridge URL")
	return cmd
}

func runReadiness(verbose bool) {
	cfg := config.DefaultServiceConfigFromEnv()
	if verbose {
		fmt.Printf("probing %s\n", cfg.BridgeURL)
	}

	budget := time.Duration(cfg.MaxRetries+1) * cfg.PollInterval
	ctx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()

	locator := keeper.NewHTTPLocator(cfg.BridgeURL, nil)
	if _, err := locator.Locate(ctx); err != nil {
		log.Fatal().Err(err).Msg("Keeper Wallet bridge is not ready")
	}

	fmt.Println("ok")
}
