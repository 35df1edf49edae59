package archive

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scribe-data/scribe/internal/config"
)

func newSnapshotCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Invokes a snapshot. Records are decoded from the source file and preserved.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger, _ := zap.NewDevelopment()
			defer logger.Sync()
			l := logger.Named("archive.snapshot")
			l.Info("starting snapshot!")

			sid := uuid.Must(uuid.NewUUID())

			c, err := config.NewScribeFromFile(configPath)
			if err != nil {
				return err
			}

			a, err := config.InitializeArchiver(c, sid.String(), l)
			if err != nil {
				return err
			}

			defer a.Close(ctx)

			return a.Snapshot(ctx, sid)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	cmd.MarkFlagRequired("config")

	return cmd
}
