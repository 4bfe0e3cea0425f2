package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/entity"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/dto/response"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/pricing"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/usecase"
)

func quoteCmd() *cobra.Command {
	var (
		seasonFile string
		dates      []string
		addOns     []string
		partySize  int
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a day selection offline against a season file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if seasonFile == "" {
				return fmt.Errorf("--season-file is required")
			}

			table, err := usecase.LoadSeasonFile(seasonFile)
			if err != nil {
				return err
			}

			req, err := buildBookingRequest(dates, partySize, addOns)
			if err != nil {
				return err
			}

			quote := pricing.QuoteRequest(req, *table)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(response.QuoteToResponse(quote, req, table))
			}
			return printQuote(cmd, quote, table)
		},
	}

	cmd.Flags().StringVar(&seasonFile, "season-file", "", "TOML file with a [season] table")
	cmd.Flags().StringSliceVar(&dates, "dates", nil, "Comma separated YYYY-MM-DD days")
	cmd.Flags().IntVar(&partySize, "party", 1, "Number of hunters")
	cmd.Flags().StringSliceVar(&addOns, "add-on", nil, "Days that include the add-on")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func buildBookingRequest(dates []string, partySize int, addOns []string) (*entity.BookingRequest, error) {
	days, err := parseDayFlags(dates)
	if err != nil {
		return nil, fmt.Errorf("--dates: %w", err)
	}
	addOnDays, err := parseDayFlags(addOns)
	if err != nil {
		return nil, fmt.Errorf("--add-on: %w", err)
	}
	return entity.NewBookingRequest(days, partySize, addOnDays)
}

func parseDayFlags(values []string) ([]entity.CalendarDay, error) {
	days := make([]entity.CalendarDay, 0, len(values))
	for _, v := range values {
		day, err := entity.ParseCalendarDay(strings.TrimSpace(v))
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, nil
}

func printQuote(cmd *cobra.Command, quote pricing.Quote, table *entity.SeasonRateTable) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Season:\t%s (%s to %s)\n", table.Name, table.SeasonStart, table.SeasonEnd)
	fmt.Fprintln(w, "KIND\tDATES\tPER PERSON\tAMOUNT")
	for _, line := range quote.Lines {
		perPerson := "-"
		if line.Kind != pricing.LineAddOn {
			perPerson = fmt.Sprintf("%d", line.PerPerson)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", line.Kind, strings.Join(entity.DayStrings(line.Dates), ","), perPerson, line.Amount)
	}
	fmt.Fprintf(w, "Per person:\t\t\t%d\n", quote.PerPersonTotal)
	fmt.Fprintf(w, "Hunters:\t\t\t%d\n", quote.PartySize)
	fmt.Fprintf(w, "Add-on:\t\t\t%d\n", quote.AddOnTotal)
	fmt.Fprintf(w, "Total:\t\t\t%d\n", quote.Total)
	return w.Flush()
}
