package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/pphgo/internal/compare"
	"github.com/rgehrsitz/pphgo/internal/config"
)

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Compare the gross and gross-up methods for PPh 21 computations",
	Long: `Runs every monthly and annual computation of a batch file under both the gross and
the gross-up method and reports the difference in employer cost, tax and take-home pay.`,
	Example: `  pphgo compare payroll.yaml
  pphgo compare payroll.yaml --names staff-k2,manager-tk0 --format csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]
		batch, err := config.NewInputParser().LoadFromFile(inputFile)
		if err != nil {
			return fmt.Errorf("failed to load batch: %w", err)
		}

		namesStr, _ := cmd.Flags().GetString("names")
		var names []string
		for _, n := range strings.Split(namesStr, ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}

		engine := compare.NewCompareEngine(newEngine(cmd))
		compSet, err := engine.Compare(context.Background(), batch, compare.CompareOptions{
			Names:      names,
			ConfigPath: inputFile,
		})
		if err != nil {
			return err
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		var out string
		switch outputFormat {
		case "table", "console":
			out = (&compare.TableFormatter{}).Format(compSet)
		case "json":
			out, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
		case "csv":
			out, err = (&compare.CSVFormatter{}).Format(compSet)
		default:
			return fmt.Errorf("unsupported format: %s (use table, json or csv)", outputFormat)
		}
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, json, csv)")
	compareCmd.Flags().String("names", "", "Comma-separated computation names to compare (default: all eligible)")
	compareCmd.Flags().Bool("debug", false, "Enable debug logging for detailed calculations")
}
