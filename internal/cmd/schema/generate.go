package schema

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/scribe-data/scribe/internal/config"
	"github.com/scribe-data/scribe/internal/parquet"
)

func newGenerateCommand() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "generate",
		Short: "Generates a parquet schema from a CREATE TABLE statement",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, _ := zap.NewDevelopment()
			l := logger.Named("schema.generate")
			l.Info(
				"scribe schema generate!",
				zap.String("dialect", viper.GetString("dialect")),
			)

			switch viper.GetString("dialect") {
			case "sql":
				s, err := parquet.ParseCreateTable(viper.GetString("query"))
				if err != nil {
					return err
				}

				cfg := config.SchemaToConfigFields(s)
				bs, err := yaml.Marshal(cfg)
				if err != nil {
					return err
				}

				fmt.Println(string(bs))
			default:
				return fmt.Errorf("unsupported dialect: %q", viper.GetString("dialect"))
			}

			return nil
		},
	}

	cmd.PersistentFlags().StringP("dialect", "", "sql", "The dialect of the create table statement")
	cmd.PersistentFlags().StringP("query", "q", "", "The CREATE TABLE statement to parse")
	viper.BindPFlag("dialect", cmd.PersistentFlags().Lookup("dialect"))
	viper.BindPFlag("query", cmd.PersistentFlags().Lookup("query"))
	viper.AutomaticEnv()
	viper.SetEnvPrefix("SCRIBE")
	return cmd
}
