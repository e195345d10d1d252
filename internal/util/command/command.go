package command

import "github.com/spf13/cobra"

// NewSubcommandGroup returns a command that only groups subcommands and
// prints usage when called bare.
func NewSubcommandGroup(use string, subcommands ...*cobra.Command) *cobra.Command {
	group := &cobra.Command{
		Use: use,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}
	group.AddCommand(subcommands...)
	return group
}
