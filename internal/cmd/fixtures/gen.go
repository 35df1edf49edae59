package fixtures

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/scribe-data/scribe/internal/csv"
)

func newGenerateCommand() *cobra.Command {
	var records int
	var table string
	var outPath string

	var cmd = &cobra.Command{
		Use:   "generate",
		Short: "Generates delimited fixture files for testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, ok := generators[table]
			if !ok {
				return fmt.Errorf("unsupported table: %s", table)
			}

			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer f.Close()

			w, err := csv.NewWriter(f)
			if err != nil {
				return err
			}

			if err := w.Write(rows.header); err != nil {
				return err
			}
			for i := 0; i < records; i++ {
				if err := w.Write(rows.row(i)); err != nil {
					return err
				}
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Printf("Wrote %d records to %s\n", records, outPath)
			return nil
		},
	}

	cmd.Flags().IntVarP(&records, "records", "r", 10, "Number of records to generate")
	cmd.Flags().StringVarP(&table, "table", "t", "property_sales", "Fixture layout (supports 'users' and 'property_sales')")
	cmd.Flags().StringVarP(&outPath, "out", "o", "fixtures.csv", "Output file")
	return cmd
}

type generator struct {
	header []string
	row    func(i int) []string
}

var generators = map[string]generator{
	"users": {
		header: []string{"id", "name", "email", "balance", "created_at"},
		row: func(i int) []string {
			return []string{
				strconv.Itoa(i + 1),
				fmt.Sprintf("user, the %dth", i+1),
				fmt.Sprintf("user%d@example.com", i+1),
				fmt.Sprintf("%.2f", rand.Float64()*10000),
				time.Now().UTC().Format(time.RFC3339),
			}
		},
	},
	"property_sales": {
		header: []string{
			"serial_number", "list_year", "date_recorded", "town", "address",
			"assessed_value", "sale_amount", "sales_ratio", "property_type",
			"residential_type", "non_use_code", "assessor_remarks", "opm_remarks",
			"location",
		},
		row: func(i int) []string {
			return []string{
				strconv.Itoa(i + 1),
				strconv.Itoa(rand.Intn(2023)),
				time.Now().Format("2006-01-02"),
				fmt.Sprintf("%d Town", i+1),
				fmt.Sprintf("%d Address", i+1),
				fmt.Sprintf("%.2f", rand.Float64()*1000000),
				fmt.Sprintf("%.2f", rand.Float64()*1000000),
				fmt.Sprintf("%.2f", rand.Float64()*100),
				fmt.Sprintf("%d Type", i),
				fmt.Sprintf("%d Residential", i),
				fmt.Sprintf("%d Code", i),
				fmt.Sprintf("%d Assessor Remarks", i),
				fmt.Sprintf("%d OPM Remarks", i),
				fmt.Sprintf("%d Location", i+1),
			}
		},
	},
}
