package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/alex-pricope/hackathon-judging/api"
	"github.com/alex-pricope/hackathon-judging/api/controllers"
	"github.com/alex-pricope/hackathon-judging/scoring"
	"github.com/spf13/cobra"
)

var leaderboardJSON bool

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the ranked final scores straight from storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadConfig()
		if err != nil {
			return err
		}
		if err := conf.ValidateStorage(); err != nil {
			return err
		}

		stores, closeStores, err := api.OpenStores(cmd.Context(), conf)
		if err != nil {
			return err
		}
		defer closeStores()

		snapshot, err := controllers.LoadSnapshot(cmd.Context(), stores)
		if err != nil {
			return err
		}
		return printLeaderboard(cmd.OutOrStdout(), snapshot.FinalScores(), leaderboardJSON)
	},
}

func init() {
	leaderboardCmd.Flags().BoolVar(&leaderboardJSON, "json", false, "print JSON instead of a table")
}

func printLeaderboard(out io.Writer, results []scoring.FinalScore, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tTEAM\tSCORE")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%.2f\n", r.Rank, r.TeamName, r.WeightedScore)
	}
	return w.Flush()
}
