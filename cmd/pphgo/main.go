package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/pphgo/internal/calculation"
	"github.com/rgehrsitz/pphgo/internal/config"
	"github.com/rgehrsitz/pphgo/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var settings = config.LoadSettings()

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pphgo %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// newEngine builds a calculation engine logging through slog. --debug lowers the
// level so per-iteration gross-up traces are shown.
func newEngine(cmd *cobra.Command) *calculation.CalculationEngine {
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		settings.LogLevel = slog.LevelDebug
	}
	logger := config.InitLogger(settings)
	return calculation.NewCalculationEngineWithLogger(calculation.NewSlogLogger(logger))
}

var rootCmd = &cobra.Command{
	Use:   "pphgo",
	Short: "Indonesian income tax calculator CLI",
	Long:  "Calculates PPh 21 (monthly TER and annual reconciliation), PPh 22, PPh 23, PPh 4(2), PPN and the UMKM unified levy",
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [input-file]",
	Short: "Calculate every computation in a batch file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		batch, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}

		engine := newEngine(cmd)
		results, err := engine.RunBatch(context.Background(), batch)
		if err != nil {
			return err
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		f := output.GetFormatterByName(outputFormat)
		if f == nil {
			return fmt.Errorf("unknown format %q (available: %v, aliases: %v)",
				outputFormat, output.AvailableFormatterNames(), output.AvailableFormatAliases())
		}

		if writeFile, _ := cmd.Flags().GetBool("output"); writeFile {
			name, err := output.WriteFormatted(f, results, output.ExtensionFor(f))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", name)
			return nil
		}

		data, err := f.Format(results)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a batch file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		batch, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Batch file %s is valid (%d computations)\n", args[0], len(batch.Computations))
		return nil
	},
}

var exampleCmd = &cobra.Command{
	Use:   "example [output-file]",
	Short: "Write an example batch file covering every scheme",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.MarshalBatch(config.NewInputParser().CreateExampleBatch())
		if err != nil {
			return err
		}
		if len(args) == 0 {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(args[0], data, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Example batch written to %s\n", args[0])
		return nil
	},
}

func init() {
	calculateCmd.Flags().StringP("format", "f", settings.Format, "Output format (console, json, csv, html, pdf)")
	calculateCmd.Flags().BoolP("output", "o", false, "Write the report to a timestamped file instead of stdout")
	calculateCmd.Flags().Bool("debug", false, "Enable debug logging for detailed calculations")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exampleCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
