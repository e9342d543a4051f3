package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/nconklindev/journeyload/internal/config"
	"github.com/nconklindev/journeyload/internal/ingest"
	"github.com/nconklindev/journeyload/internal/profile"
	"github.com/nconklindev/journeyload/internal/ui"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// loadFlags are the per-run overrides shared by the ingest-style commands.
type loadFlags struct {
	sheet       string
	header      string
	usecols     string
	nrows       int
	dateCols    []string
	dayFirst    bool
	dropUnnamed bool
	keepCols    []string
	output      string
}

func (lf *loadFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&lf.sheet, "sheet", "", "Sheet name (default Journey_Event_Sample)")
	fs.StringVar(&lf.header, "header", "", `Header row: "auto" or a 0-based index`)
	fs.StringVar(&lf.usecols, "usecols", "", `Column range in letter notation, e.g. "B:BC"`)
	fs.IntVar(&lf.nrows, "nrows", 0, "Read at most this many data rows (0 = all)")
	fs.StringSliceVar(&lf.dateCols, "date-col", nil, "Column to parse as a date-time (repeatable)")
	fs.BoolVar(&lf.dayFirst, "dayfirst", true, "Parse ambiguous dates day first")
	fs.BoolVar(&lf.dropUnnamed, "drop-unnamed", true, `Drop columns whose name starts with "Unnamed"`)
	fs.StringSliceVar(&lf.keepCols, "keep-col", nil, "Keep only these columns (repeatable)")
}

// apply overlays flags the user actually set; flag > config file > default.
func (lf *loadFlags) apply(fs *pflag.FlagSet, cfg *config.Config) error {
	if fs.Changed("sheet") {
		cfg.SheetName = lf.sheet
	}
	if fs.Changed("header") {
		h, err := config.ParseHeader(lf.header)
		if err != nil {
			return err
		}
		cfg.Header = h
	}
	if fs.Changed("usecols") {
		cfg.UseCols = lf.usecols
	}
	if fs.Changed("nrows") {
		cfg.NRows = lf.nrows
	}
	if fs.Changed("date-col") {
		cfg.DateCols = lf.dateCols
	}
	if fs.Changed("dayfirst") {
		cfg.DayFirst = lf.dayFirst
	}
	if fs.Changed("drop-unnamed") {
		cfg.DropUnnamed = lf.dropUnnamed
	}
	if fs.Changed("keep-col") {
		cfg.KeepCols = lf.keepCols
	}
	if fs.Changed("out") {
		cfg.Output = lf.output
	}
	return cfg.Check()
}

func resolveConfig(cmd *cobra.Command, rf *rootFlags, lf *loadFlags) (config.Config, error) {
	cfg, err := rf.load(cmd)
	if err != nil {
		return config.Config{}, err
	}
	if err := lf.apply(cmd.Flags(), &cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newIngestCmd(rf *rootFlags) *cobra.Command {
	var (
		lf       loadFlags
		validate bool
	)

	cmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "Load a sheet, optionally validate it and write the tidy table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, rf, &lf)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("validate") {
				cfg.Validate = validate
			}

			res, err := newPipeline(cfg, os.Stderr).Run(args[0], cfg, nil)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Header row: %d\n", res.HeaderRow)
			fmt.Fprintf(out, "Rows: %d  Columns: %d\n", res.Table.NumRows(), res.Table.NumCols())
			if len(res.Pruned) > 0 {
				fmt.Fprintf(out, "Dropped: %s\n", strings.Join(res.Pruned, ", "))
			}
			if res.Validated {
				fmt.Fprintln(out, "Schema: OK")
			}
			if res.OutputFile != "" {
				fmt.Fprintf(out, "Output: %s\n", res.OutputFile)
			}
			return nil
		},
	}

	lf.register(cmd.Flags())
	cmd.Flags().StringVarP(&lf.output, "out", "o", "", "Write the table to this .parquet, .csv or .txt file")
	cmd.Flags().BoolVar(&validate, "validate", false, "Run the Journey Event schema checks")
	return cmd
}

func newValidateCmd(rf *rootFlags) *cobra.Command {
	var lf loadFlags

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Load a sheet and run the Journey Event schema checks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, rf, &lf)
			if err != nil {
				return err
			}
			cfg.Validate = true
			cfg.Output = ""

			if _, err := newPipeline(cfg, os.Stderr).Run(args[0], cfg, nil); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema: OK")
			return nil
		},
	}

	lf.register(cmd.Flags())
	return cmd
}

func newDescribeCmd(rf *rootFlags) *cobra.Command {
	var lf loadFlags

	cmd := &cobra.Command{
		Use:   "describe <file>",
		Short: "Load a sheet and print a per-column profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, rf, &lf)
			if err != nil {
				return err
			}
			cfg.Validate = false
			cfg.Output = ""

			res, err := newPipeline(cfg, os.Stderr).Run(args[0], cfg, nil)
			if err != nil {
				return err
			}
			profiles, err := profile.Describe(res.Table)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.ProfileTable(profiles))
			return nil
		},
	}

	lf.register(cmd.Flags())
	return cmd
}

func newHeaderCmd(rf *rootFlags) *cobra.Command {
	var (
		sheet    string
		scanRows int
	)

	cmd := &cobra.Command{
		Use:   "header <file>",
		Short: "Print the 0-based row index detected as the header",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rf.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("sheet") {
				cfg.SheetName = sheet
			}
			if scanRows <= 0 {
				scanRows = ingest.DefaultScanRows
			}

			grid, err := ingest.NewReader().ReadGrid(args[0], cfg.SheetName, ingest.ReadOptions{RowLimit: scanRows})
			if err != nil {
				return err
			}
			row, err := ingest.ResolveHeader(grid, scanRows)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), row)
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet name (default Journey_Event_Sample)")
	cmd.Flags().IntVar(&scanRows, "scan-rows", ingest.DefaultScanRows, "Number of leading rows to score")
	return cmd
}
