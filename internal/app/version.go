package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"almanac/internal/version"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "almanac version %s\n", version.Version)
			return err
		},
	}
}
