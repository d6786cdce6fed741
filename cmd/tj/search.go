package main

import (
	"fmt"
	"os"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/spf13/cobra"

	"github.com/krishnakoushik192/travel-journal/internal/store"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search entries by keyword, tags, dates, and location",
	Long: `Search the local journal with any combination of filters.

All filters are ANDed together; omitted filters impose no constraint.
Date bounds accept YYYY-MM-DD or natural language ("last monday",
"3 days ago").

Examples:
  tj search --keyword beach
  tj search --tag beach --from 2024-01-01 --to 2024-01-31
  tj search --location goa --from "last week"`,
	Run: func(cmd *cobra.Command, args []string) {
		keyword, _ := cmd.Flags().GetString("keyword")
		tags, _ := cmd.Flags().GetStringSlice("tag")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		location, _ := cmd.Flags().GetString("location")

		startDate, err := resolveDate(from)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: bad --from value: %v\n", err)
			os.Exit(1)
		}
		endDate, err := resolveDate(to)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: bad --to value: %v\n", err)
			os.Exit(1)
		}

		st, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()

		entries, err := st.Search(cmd.Context(), store.Filters{
			Keyword:   keyword,
			Tags:      tags,
			StartDate: startDate,
			EndDate:   endDate,
			Location:  location,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error searching: %v\n", err)
			os.Exit(1)
		}

		printEntries(entries)
	},
}

// resolveDate turns a flag value into YYYY-MM-DD. Exact dates pass
// through; anything else goes through natural-language parsing.
func resolveDate(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	if _, err := time.Parse("2006-01-02", s); err == nil {
		return s, nil
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	r, err := w.Parse(s, time.Now())
	if err != nil {
		return "", err
	}
	if r == nil {
		return "", fmt.Errorf("unrecognized date %q", s)
	}
	return r.Time.Format("2006-01-02"), nil
}

func init() {
	searchCmd.Flags().String("keyword", "", "substring of title, description, or location")
	searchCmd.Flags().StringSlice("tag", nil, "match entries carrying any of these tags (repeatable)")
	searchCmd.Flags().String("from", "", "earliest date, inclusive")
	searchCmd.Flags().String("to", "", "latest date, inclusive")
	searchCmd.Flags().String("location", "", "substring of the location name")
	rootCmd.AddCommand(searchCmd)
}
