package cmd

import (
	"context"
	"log"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/minowang/jobcorpus/internal/crawler"
	"github.com/minowang/jobcorpus/internal/logger"
	"github.com/minowang/jobcorpus/internal/record"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Fetch raw listings and advice content from the configured sources",
	Run: func(cmd *cobra.Command, _ []string) {
		runCrawl(cmd)
	},
}

func init() {
	rootCmd.AddCommand(crawlCmd)

	crawlCmd.Flags().StringP("output", "o", "data/raw_jobs.json", "file for the crawled raw records")
	crawlCmd.Flags().Bool("mock", false, "use the mock source even when real sources are configured")
	crawlCmd.Flags().Int("mock-count", 500, "number of mock jobs to generate")
	crawlCmd.Flags().Int64("seed", 42, "seed for the mock source")
	crawlCmd.Flags().BoolP("yes", "y", false, "overwrite the output file without asking")
}

func runCrawl(cmd *cobra.Command) {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	output := cmd.Flag("output").Value.String()
	if !confirmOverwrite(cmd, output) {
		zlog.Info("exiting", zap.String("reason", "output exists, overwrite declined"))
		return
	}

	sources := prepareSources(cmd, config, zlog)
	if len(sources) == 0 {
		zlog.Fatal("no sources configured", zap.String("hint", "add crawler sources to the config file or pass --mock"))
	}

	var clientCfg crawler.ClientConfig
	if config.Crawler != nil {
		clientCfg = config.Crawler.Client
	}
	client := crawler.NewClient(clientCfg, zlog)

	var (
		mu  sync.Mutex
		all record.Jobs
	)

	group, gctx := errgroup.WithContext(ctx)
	for _, source := range sources {
		group.Go(func() error {
			jobs, err := source.Crawl(gctx, client)
			if err != nil {
				return err
			}
			mu.Lock()
			all = append(all, jobs...)
			mu.Unlock()

			zlog.Info("source finished",
				zap.String("source", source.Name()),
				zap.Int("jobs", jobs.Len()),
			)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		zlog.Fatal("crawling failed", zap.Error(err))
	}

	if err := all.ToFile(output); err != nil {
		zlog.Fatal("writing raw records", zap.Error(err))
	}

	zlog.Info("crawl complete",
		zap.Int("records", all.Len()),
		zap.String("output", output),
	)
}

func prepareSources(cmd *cobra.Command, config *Config, zlog *zap.Logger) []crawler.Source {
	mockOnly := cmd.Flag("mock").Value.String() == "true"

	var sources []crawler.Source
	if config.Crawler != nil && !mockOnly {
		for _, campus := range config.Crawler.Campus {
			sources = append(sources, crawler.NewCampusSource(campus, zlog))
		}
		for _, advice := range config.Crawler.Advice {
			sources = append(sources, crawler.NewAdviceSource(advice, zlog))
		}
	}

	mockCfg := MockConfig{}
	if config.Crawler != nil && config.Crawler.Mock != nil {
		mockCfg = *config.Crawler.Mock
	}
	if mockOnly || mockCfg.Enabled || len(sources) == 0 {
		count := mockCfg.Count
		seed := mockCfg.Seed
		if count == 0 {
			count, _ = cmd.Flags().GetInt("mock-count")
		}
		if seed == 0 {
			seed, _ = cmd.Flags().GetInt64("seed")
		}
		sources = append(sources, crawler.NewMockSource(count, seed, zlog))
	}

	return sources
}
