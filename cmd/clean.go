package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/minowang/jobcorpus/internal/cleaning"
	"github.com/minowang/jobcorpus/internal/logger"
	"github.com/minowang/jobcorpus/internal/record"
	"github.com/minowang/jobcorpus/internal/store"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Normalize, deduplicate and filter a batch of raw records",
	Run: func(cmd *cobra.Command, _ []string) {
		runClean(cmd)
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().StringP("input", "i", "data/raw_jobs.json", "raw records file")
	cleanCmd.Flags().StringP("output", "o", "data/cleaned_jobs.json", "file for the cleaned records")
	cleanCmd.Flags().String("store", "", "sqlite database to archive cleaned jobs into (optional)")
}

func runClean(cmd *cobra.Command) {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	input := cmd.Flag("input").Value.String()
	jobs, err := record.FromFile(input)
	if err != nil {
		zlog.Fatal("loading raw records", zap.String("input", input), zap.Error(err))
	}

	pipeline := cleaning.NewPipeline(zlog)
	cleaned, stats := pipeline.Clean(jobs)

	output := cmd.Flag("output").Value.String()
	if err := cleaned.ToFile(output); err != nil {
		zlog.Fatal("writing cleaned records", zap.Error(err))
	}

	storePath := cmd.Flag("store").Value.String()
	if storePath == "" && config.Store != nil {
		storePath = config.Store.Path
	}
	if storePath != "" {
		archiveJobs(cleaned, storePath, zlog)
	}

	zlog.Info("clean complete",
		zap.String("output", output),
		zap.Int("total", stats.Total),
		zap.Int("valid", stats.Valid),
		zap.Int("duplicates", stats.Duplicates),
		zap.Int("missing_fields", stats.MissingFields),
		zap.Int("invalid_url", stats.InvalidURL),
		zap.Int("expired", stats.Expired),
	)
}

func archiveJobs(jobs record.Jobs, path string, zlog *zap.Logger) {
	db, err := store.Open(path)
	if err != nil {
		zlog.Fatal("opening job store", zap.String("path", path), zap.Error(err))
	}
	defer db.Close()

	added, err := db.SaveJobs(jobs)
	if err != nil {
		zlog.Fatal("archiving cleaned jobs", zap.Error(err))
	}

	zlog.Info("archived cleaned jobs",
		zap.String("store", path),
		zap.Int("added", added),
		zap.Int("seen_before", jobs.Len()-added),
	)
}
