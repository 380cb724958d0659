package main

import (
	"fmt"
	"io"
	"os"

	json "github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"smartSheet/contracts"
)

func main() {
	os.Exit(HandleExitError(os.Stderr, NewRootCommand().Execute()))
}

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "smartsheet",
		Short:         "Spreadsheet formula recalculation service",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(newServeCommand(), newRecalcCommand(), newExportCommand())

	return rootCmd
}

func newServeCommand() *cobra.Command {
	var listenAddr, databaseFilepath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := LoadConfig()
			if err != nil {
				return err
			}

			if listenAddr != "" {
				config.ListenAddr = listenAddr
			}
			if databaseFilepath != "" {
				config.DatabaseFilepath = databaseFilepath
			}

			return RunApp(config)
		},
	}

	cmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (default: LISTEN_ADDR or :8080)")
	cmd.Flags().StringVar(&databaseFilepath, "db", "", "Database file (default: DATABASE_FILEPATH)")

	return cmd
}

func newRecalcCommand() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "recalc [sheet.json]",
		Short: "Recalculate a JSON sheet once and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			return RecalculateSheetJSON(cmd.OutOrStdout(), data, pretty)
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	return cmd
}

func newExportCommand() *cobra.Command {
	var format, outputPath, databaseFilepath string

	cmd := &cobra.Command{
		Use:   "export [sheet_id]",
		Short: "Export the computed values of a stored sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != ExportFormatXLSX && format != ExportFormatCSV {
				return fmt.Errorf("invalid format: %s (must be xlsx or csv)", format)
			}

			config, err := LoadConfig()
			if err != nil {
				return err
			}
			if databaseFilepath != "" {
				config.DatabaseFilepath = databaseFilepath
			}

			serviceContainer, err := BuildServiceContainer(config)
			if err != nil {
				return err
			}
			defer serviceContainer.Database.Close()

			sheet, err := serviceContainer.SheetRepository.GetSheet(args[0])
			if err != nil {
				return err
			}

			var output io.Writer = cmd.OutOrStdout()
			if outputPath != "" {
				file, err := os.Create(outputPath)
				if err != nil {
					return err
				}
				defer file.Close()
				output = file
			}

			if format == ExportFormatCSV {
				return serviceContainer.Exporter.ExportCSV(output, sheet, config.GridRows, config.GridCols)
			}
			return serviceContainer.Exporter.ExportXLSX(output, sheet, config.GridRows, config.GridCols)
		},
	}

	cmd.Flags().StringVar(&format, "format", ExportFormatXLSX, "Export format: xlsx or csv")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&databaseFilepath, "db", "", "Database file (default: DATABASE_FILEPATH)")

	return cmd
}

// RecalculateSheetJSON runs one recalculation over a JSON sheet, keyed by address
func RecalculateSheetJSON(w io.Writer, data []byte, pretty bool) error {
	input := contracts.Sheet{}
	if err := json.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("sheet json: %w", err)
	}

	codec := NewAddressCodec()
	canonicalizer := NewCanonicalizer(codec)

	sheet := make(contracts.Sheet, len(input))
	for cellId, cell := range input {
		address, err := canonicalizer.CanonicalizeCellId(cellId)
		if err != nil {
			return err
		}
		sheet[address] = cell
	}

	engine := NewFormulaEngine(codec, NewReferenceResolver(codec), NewExpressionEvaluator())
	recalculated := NewGridRecalculator(engine).RecalculateGrid(sheet)

	var output []byte
	var err error
	if pretty {
		output, err = json.ConfigStd.MarshalIndent(recalculated, "", "  ")
	} else {
		output, err = json.ConfigStd.Marshal(recalculated)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(output))
	return err
}
