package archive

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "archive",
		Short: "Manages the archival of delimited files",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("welcome to scribe archive!")
			return nil
		},
	}
	cmd.AddCommand(newSnapshotCommand())
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newPublishCommand())
	return cmd
}
