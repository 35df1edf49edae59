package convert

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scribe-data/scribe/internal/csv"
)

// NewCommand re-encodes a delimited file from one dialect to another,
// streaming rows through the decoder and writer without holding the
// file in memory.
func NewCommand() *cobra.Command {
	var inPath string
	var outPath string
	var inDelimiter string
	var inQuote string
	var outDelimiter string
	var outQuote string
	var crlf bool

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Re-encodes a delimited file into another dialect",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, _ := zap.NewDevelopment()
			defer logger.Sync()
			l := logger.Named("convert")

			decodeOpts, err := dialectOptions(inDelimiter, inQuote)
			if err != nil {
				return err
			}
			encodeOpts, err := dialectOptions(outDelimiter, outQuote)
			if err != nil {
				return err
			}
			if crlf {
				encodeOpts = append(encodeOpts, csv.WithCRLF(true))
			}

			in, err := os.Open(inPath)
			if err != nil {
				return err
			}
			defer in.Close()

			out, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer out.Close()

			rows, err := convert(in, out, decodeOpts, encodeOpts)
			if err != nil {
				return err
			}

			l.Info("convert complete",
				zap.String("in", inPath),
				zap.String("out", outPath),
				zap.Int("rows", rows),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inPath, "in", "i", "", "Input file")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file")
	cmd.Flags().StringVar(&inDelimiter, "in-delimiter", "", "Input delimiter (single character)")
	cmd.Flags().StringVar(&inQuote, "in-quote", "", "Input quote (single character)")
	cmd.Flags().StringVar(&outDelimiter, "out-delimiter", "", "Output delimiter (single character)")
	cmd.Flags().StringVar(&outQuote, "out-quote", "", "Output quote (single character)")
	cmd.Flags().BoolVar(&crlf, "crlf", false, "Terminate output lines with \\r\\n")
	cmd.MarkFlagRequired("in")
	cmd.MarkFlagRequired("out")

	return cmd
}

func dialectOptions(delimiter, quote string) ([]csv.Option, error) {
	var opts []csv.Option

	if delimiter != "" {
		if len(delimiter) != 1 {
			return nil, fmt.Errorf("delimiter must be a single character, got %q", delimiter)
		}
		opts = append(opts, csv.WithDelimiter(delimiter[0]))
	}
	if quote != "" {
		if len(quote) != 1 {
			return nil, fmt.Errorf("quote must be a single character, got %q", quote)
		}
		opts = append(opts, csv.WithQuote(quote[0]))
	}
	return opts, nil
}

// convert streams the header and every row from in to out. It returns
// the number of data rows written.
func convert(in io.Reader, out io.Writer, decodeOpts, encodeOpts []csv.Option) (int, error) {
	dec, err := csv.NewDecoder(in, decodeOpts...)
	if err != nil {
		return 0, err
	}

	w, err := csv.NewWriter(out, encodeOpts...)
	if err != nil {
		return 0, err
	}

	header, err := dec.ReadHeader()
	if err != nil {
		return 0, err
	}
	if err := w.Write(header.Columns()); err != nil {
		return 0, err
	}

	var rows int
	for {
		err := dec.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, err
		}

		values, err := dec.Row()
		if err != nil {
			return rows, err
		}
		if err := w.Write(values); err != nil {
			return rows, err
		}
		rows++
	}

	return rows, w.Flush()
}
