// Package cli defines the agent's command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"noobie-agent/internal/di"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "noobie-agent",
	Short: "AI-powered daily news blog agent",
	Long:  "noobie-agent aggregates trending news, has a language model write a daily blog post, and publishes the result to a GitHub Pages repository.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "config.yaml", "path to config file")
	serveCmd.Flags().Bool("run-now", false, "run one cycle immediately before starting the schedule")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(onceCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(versionCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the daily scheduler until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		runNow, _ := cmd.Flags().GetBool("run-now")

		application, err := di.InitializeApp(flagConfig)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return application.Run(ctx, runNow)
	},
}

var onceCmd = &cobra.Command{
	Use:   "once",
	Short: "Run a single fetch-compose-publish cycle and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		daily, err := di.InitializeDailyPost(flagConfig)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return daily.Run(ctx)
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Aggregate trending articles and write the cache, without publishing",
	RunE: func(cmd *cobra.Command, args []string) error {
		daily, err := di.InitializeDailyPost(flagConfig)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		articles, err := daily.FetchOnly(ctx)
		if err != nil {
			return err
		}

		for _, article := range articles {
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s (%s)\n", article.Category, article.Title, article.Source)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "noobie-agent %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// SetVersionInfo records build metadata for the version command.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
