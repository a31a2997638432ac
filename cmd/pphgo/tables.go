package main

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/pphgo/internal/calculation"
	"github.com/rgehrsitz/pphgo/internal/config"
	"github.com/rgehrsitz/pphgo/internal/domain"
	"github.com/rgehrsitz/pphgo/internal/output"
	"github.com/rgehrsitz/pphgo/internal/server"
)

var tablesCmd = &cobra.Command{
	Use:   "tables [scheme]",
	Short: "Show the compiled-in rate tables",
	Long:  "Show the rate tables of one scheme, or the PTKP classifications and every scheme when none is given. Table anomalies are always listed.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schemes := domain.AllSchemes
		if len(args) == 1 {
			s, err := config.ParseScheme(args[0])
			if err != nil {
				return err
			}
			schemes = []domain.Scheme{s}
		}

		w := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			payload := make(map[domain.Scheme]any, len(schemes))
			for _, s := range schemes {
				payload[s] = server.RatesFor(s)
			}
			data, err := json.MarshalIndent(payload, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(data))
			return err
		}

		if len(args) == 0 {
			printClassifications(w)
		}
		for _, s := range schemes {
			fmt.Fprintln(w)
			printSchemeRates(w, s)
		}
		return nil
	},
}

func printClassifications(w io.Writer) {
	fmt.Fprintln(w, "PTKP CLASSIFICATIONS")
	fmt.Fprintln(w, strings.Repeat("=", 40))
	for _, a := range calculation.Classifications() {
		fmt.Fprintf(w, "  %-7s %20s  TER %s\n", a.Classification, output.FormatRupiah(a.AnnualThreshold), a.Category)
	}
}

func printSchemeRates(w io.Writer, s domain.Scheme) {
	fmt.Fprintln(w, strings.ToUpper(s.Title()))
	fmt.Fprintln(w, strings.Repeat("=", 40))
	switch rates := server.RatesFor(s).(type) {
	case server.MonthlyRates:
		for _, t := range rates.Tables {
			fmt.Fprintf(w, "TER %s\n", t.Key)
			for _, b := range t.Bands {
				upper := "and above"
				if !b.Unbounded {
					upper = "to " + output.FormatNumber(b.Upper)
				}
				fmt.Fprintf(w, "  %15s %-18s %s\n", output.FormatNumber(b.Lower), upper, output.FormatRate(b.Rate))
			}
		}
		for _, a := range rates.Anomalies {
			fmt.Fprintf(w, "WARNING: %s\n", a)
		}
	case server.AnnualRates:
		for _, l := range rates.Layers {
			limit := "above"
			if !l.Unbounded {
				limit = "up to " + output.FormatRupiah(l.Limit)
			}
			fmt.Fprintf(w, "  %-24s %s\n", limit, output.FormatRate(l.Rate))
		}
		fmt.Fprintf(w, "Occupational deduction: %s, capped at %s (permanent) / %s (pensioner)\n",
			output.FormatRate(rates.OccupationalDeductionRate),
			output.FormatRupiah(rates.OccupationalCeilingPermanent),
			output.FormatRupiah(rates.OccupationalCeilingPensioner))
	case server.FlatRates:
		for _, r := range rates.Rates {
			fmt.Fprintf(w, "  %-28s %-8s %s\n", r.Type, output.FormatPercent(r.Percent), r.Description)
		}
	}
}

func init() {
	tablesCmd.Flags().Bool("json", false, "Print the tables as JSON")
}
