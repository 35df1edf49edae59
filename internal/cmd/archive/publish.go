package archive

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scribe-data/scribe/internal/file"
	"github.com/scribe-data/scribe/internal/kafka"
)

func newPublishCommand() *cobra.Command {
	var sourcePath string
	var brokers string
	var topic string
	var keyColumn string
	var flushTimeoutMs int

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publishes every record of a delimited file to a kafka topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger, _ := zap.NewDevelopment()
			defer logger.Sync()
			l := logger.Named("archive.publish")

			var targetOpts []kafka.Option
			targetOpts = append(targetOpts, kafka.WithLogger(l.Named("kafka")))
			if keyColumn != "" {
				targetOpts = append(targetOpts, kafka.WithKeyColumn(keyColumn))
			}

			target, err := kafka.NewTarget(brokers, topic, targetOpts...)
			if err != nil {
				return err
			}
			defer target.Close(ctx)

			source := file.NewSource(sourcePath, file.WithLogger(l.Named("source")))
			snapshot, err := source.Snapshot(ctx)
			if err != nil {
				return err
			}
			defer snapshot.Close()

			var published int
			for {
				if err := ctx.Err(); err != nil {
					return err
				}

				record, err := snapshot.Next()
				if err == io.EOF {
					break
				}
				if err != nil {
					return err
				}

				if err := target.Write(ctx, record); err != nil {
					return err
				}
				published++
			}

			if err := target.Flush(ctx, flushTimeoutMs); err != nil {
				return err
			}

			l.Info("publish complete",
				zap.String("source", source.Name()),
				zap.String("topic", topic),
				zap.Int("records", published),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourcePath, "source", "s", "", "Path to the delimited file to publish")
	cmd.Flags().StringVarP(&brokers, "brokers", "b", "localhost:9092", "Kafka bootstrap servers")
	cmd.Flags().StringVarP(&topic, "topic", "t", "", "Kafka topic to publish to")
	cmd.Flags().StringVarP(&keyColumn, "key-column", "k", "", "Column whose value becomes the message key")
	cmd.Flags().IntVar(&flushTimeoutMs, "flush-timeout-ms", 15000, "Max time to wait for delivery on shutdown")
	cmd.MarkFlagRequired("source")
	cmd.MarkFlagRequired("topic")

	return cmd
}
