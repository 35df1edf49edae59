package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scribe-data/scribe/internal/cmd/archive"
	"github.com/scribe-data/scribe/internal/cmd/convert"
	"github.com/scribe-data/scribe/internal/cmd/fixtures"
	"github.com/scribe-data/scribe/internal/cmd/schema"
)

func NewRootCommand() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "scribe",
		Short: "Streaming CSV decoding, validation and archival",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Welcome to scribe!")
		},
	}

	cmd.AddCommand(archive.NewCommand())
	cmd.AddCommand(convert.NewCommand())
	cmd.AddCommand(schema.NewCommand())
	cmd.AddCommand(fixtures.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
