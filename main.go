package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/twosigma/ngrid/internal/gridlib"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ngrid [file]",
	Short: "ngrid is an interactive pager for tabular data",
	Long: `ngrid is a column-aware pager: it infers column types from a sample,
renders cells with fixed-width formatters, and pages through delimited
data that may still be streaming in.

Examples:
  ngrid data.csv
  zcat data.csv.gz | ngrid
  ngrid -Q "select * from users" app.db`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runGrid,
	SilenceUsage: true,
}

var (
	noHeader   bool
	frozenCols int
	bufferSize int
	delimiter  string
	comment    string
	query      string
)

func init() {
	rootCmd.Flags().BoolVarP(&noHeader, "no-header", "n", false, "assume no header row")
	rootCmd.Flags().IntVarP(&frozenCols, "frozen-cols", "f", 1, "freeze NCOLS columns on the left")
	rootCmd.Flags().IntVarP(&bufferSize, "buffer-size", "b", 100, "read NROWS rows to guess data types")
	rootCmd.Flags().StringVarP(&delimiter, "delimiter", "d", "", "use CHAR as the column delimiter")
	rootCmd.Flags().StringVarP(&comment, "comment", "c", "", "treat lines starting with PREFIX as comments")
	rootCmd.Flags().StringVarP(&query, "query", "Q", "", "show the result of a SQL query against a SQLite file")
}

func runGrid(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var delim rune
	if delimiter != "" {
		runes := []rune(delimiter)
		if len(runes) != 1 {
			return fmt.Errorf("delimiter is not a character: %q", delimiter)
		}
		delim = runes[0]
	}

	var (
		model  gridlib.Model
		useTTY bool
	)
	switch {
	case query != "":
		if len(args) < 1 {
			return fmt.Errorf("--query requires a SQLite file argument")
		}
		table, err := loadQueryTable(args[0], query)
		if err != nil {
			return err
		}
		model = gridlib.NewTableModel(table, args[0])

	case len(args) == 0:
		// Data comes from the pipe; the UI takes over /dev/tty.
		model, err = newDelimitedModel(os.Stdin, "(stdin)", delim)
		if err != nil {
			return err
		}
		useTTY = true

	default:
		file, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer file.Close()
		model, err = newDelimitedModel(file, args[0], delim)
		if err != nil {
			return err
		}
	}

	if frozenCols > model.NumCols() {
		frozenCols = model.NumCols()
	}
	if frozenCols < 0 {
		frozenCols = 0
	}
	view, err := gridlib.NewGridView(model, cfg, frozenCols)
	if err != nil {
		return err
	}
	return NewApp(view).Run(useTTY)
}

func newDelimitedModel(r io.Reader, filename string, delim rune) (gridlib.Model, error) {
	return gridlib.NewDelimitedModel(r, !noHeader, bufferSize, delim, comment, filename)
}
