// Package main provides the prediction query CLI: today's top picks,
// yesterday's results and an on-demand scoreline calculator.
package main

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/super-predictor/internal/analysis"
	"github.com/yourusername/super-predictor/internal/config"
	"github.com/yourusername/super-predictor/internal/database"
	"github.com/yourusername/super-predictor/internal/logger"
	"github.com/yourusername/super-predictor/internal/models"
	"github.com/yourusername/super-predictor/internal/selector"
	"github.com/yourusername/super-predictor/internal/storage"
)

// Build information - set via ldflags
var (
	Version = "dev"
)

var (
	configFile string
	homeTeam   string
	awayTeam   string
	appLog     *logrus.Logger
	cfg        *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")

	predictCmd.Flags().StringVar(&homeTeam, "home", "", "Home team name")
	predictCmd.Flags().StringVar(&awayTeam, "away", "", "Away team name")
	predictCmd.MarkFlagRequired("home")
	predictCmd.MarkFlagRequired("away")
	predictCmd.RegisterFlagCompletionFunc("home", completeTeams)
	predictCmd.RegisterFlagCompletionFunc("away", completeTeams)

	rootCmd.AddCommand(picksCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(predictCmd)
}

var rootCmd = &cobra.Command{
	Use:     "predictor",
	Short:   "Query the over-goals prediction snapshot",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		appLog = logger.NewLogger(cfg.App.LogLevel)
		appLog.SetLevel(logrus.WarnLevel)
		return nil
	},
}

var picksCmd = &cobra.Command{
	Use:   "picks",
	Short: "Show today's top picks",
	Long:  `Shows the highest-confidence over-goals picks for today, filtered by the configured rate and confidence thresholds.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showPicks(cmd.Context())
	},
}

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show yesterday's results",
	Long:  `Shows yesterday's settled matches with an over-goals settlement mark for each.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showResults(cmd.Context())
	},
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Calculate outcome probabilities for a matchup",
	Long:  `Derives expected goals from the raw history table and prints win, draw and loss probabilities from an independent Poisson scoreline model.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showPrediction()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func openStore(ctx context.Context) (storage.Store, func(), error) {
	if cfg.Storage.Backend == "postgres" {
		db, err := database.New(ctx, &cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		store, err := storage.NewPostgresStore(ctx, db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, db.Close, nil
	}
	return storage.NewCSVStore(cfg.Storage.PredictionsPath), func() {}, nil
}

func showPicks(ctx context.Context) error {
	store, cleanup, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	records, err := store.LoadAll(ctx)
	if err != nil {
		return err
	}

	today := time.Now().UTC().Format(models.DateLayout)
	sel := selector.New(cfg.Picks.TopN, cfg.Picks.RateThreshold, cfg.Picks.ConfidenceThreshold)
	picks := sel.TopPicks(selector.OnDate(records, today))

	fmt.Printf("\nTop %d Picks for %s\n", cfg.Picks.TopN, today)
	fmt.Println(strings.Repeat("=", 64))

	if len(picks) == 0 {
		fmt.Println("No high-confidence picks available for today. Check back later.")
		return nil
	}

	for i, p := range picks {
		fmt.Printf("%d. %s vs %s\n", i+1, p.HomeTeam, p.AwayTeam)
		fmt.Printf("   %s  %s %s UTC\n", p.League, p.Date.Format("Mon 02 Jan 2006"), p.Kickoff)
		fmt.Printf("   Confidence: %.0f%%  (home rate %.2f, away rate %.2f)\n\n",
			p.Confidence*100, p.OverRateHome, p.OverRateAway)
	}
	return nil
}

func showResults(ctx context.Context) error {
	store, cleanup, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	records, err := store.LoadAll(ctx)
	if err != nil {
		return err
	}

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(models.DateLayout)
	results := selector.OnDate(records, yesterday)

	fmt.Printf("\nResults for %s\n", yesterday)
	fmt.Println(strings.Repeat("=", 64))

	if len(results) == 0 {
		fmt.Println("No results found for yesterday.")
		return nil
	}

	for _, r := range results {
		mark := "pending"
		score := "- : -"
		if r.IsSettled() {
			score = fmt.Sprintf("%d : %d", *r.HomeScore, *r.AwayScore)
			if r.WentOver(cfg.Model.GoalThreshold) {
				mark = "OVER"
			} else {
				mark = "under"
			}
		}
		fmt.Printf("%-10s %s  %s %s  [%s]\n", r.League, r.HomeTeam, score, r.AwayTeam, mark)
	}
	return nil
}

func showPrediction() error {
	history, err := storage.LoadHistory(cfg.Storage.HistoryPath)
	if err != nil {
		return err
	}

	homeXG, err := analysis.ExpectedGoals(history, homeTeam, true)
	if err != nil {
		return fmt.Errorf("insufficient data for %s: %w", homeTeam, err)
	}
	awayXG, err := analysis.ExpectedGoals(history, awayTeam, false)
	if err != nil {
		return fmt.Errorf("insufficient data for %s: %w", awayTeam, err)
	}

	outcome, err := analysis.OutcomeProbabilities(homeXG, awayXG, cfg.Model.MaxGoals)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s vs %s\n", homeTeam, awayTeam)
	fmt.Println(strings.Repeat("=", 64))
	fmt.Printf("Expected goals: %.2f - %.2f\n\n", homeXG, awayXG)
	fmt.Printf("%-14s %6.1f%%\n", homeTeam+" win:", outcome.HomeWin*100)
	fmt.Printf("%-14s %6.1f%%\n", "Draw:", outcome.Draw*100)
	fmt.Printf("%-14s %6.1f%%\n", awayTeam+" win:", outcome.AwayWin*100)

	printRecentForm(history, homeTeam)
	printRecentForm(history, awayTeam)
	return nil
}

func printRecentForm(history []models.HistoricalMatch, team string) {
	recent := analysis.RecentForm(history, team, 5)
	if len(recent) == 0 {
		return
	}

	fmt.Printf("\nRecent form: %s\n", team)
	for _, m := range recent {
		if m.HasResult() {
			fmt.Printf("  %s %d - %d %s\n", m.HomeTeam, *m.HomeGoals, *m.AwayGoals, m.AwayTeam)
		} else {
			fmt.Printf("  %s  vs  %s\n", m.HomeTeam, m.AwayTeam)
		}
	}
}

// completeTeams offers team names from the history table for the
// predict flags.
func completeTeams(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	history, err := storage.LoadHistory(cfg.Storage.HistoryPath)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names := storage.TeamNames(history)
	sort.Strings(names)
	return names, cobra.ShellCompDirectiveNoFileComp
}
