package probe

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Keeper-Wallet/provider-keeper/internal/util/command"
)

const (
	verboseFlag string = "verbose"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("probe",
		newLiveness(),
		newReadiness(),
	)
}

func newLiveness() *cobra.Command {
	return &cobra.Command{
		Use:   "liveness",
		Short: "Exits 0 when the binary itself is operational",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println("ok")
		},
	}
}
