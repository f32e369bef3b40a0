package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/minowang/jobcorpus/internal/annotation"
	"github.com/minowang/jobcorpus/internal/logger"
	"github.com/minowang/jobcorpus/internal/record"
	"github.com/minowang/jobcorpus/internal/store"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Synthesize labeled annotation records from templates",
	Run: func(cmd *cobra.Command, _ []string) {
		runAnnotate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(annotateCmd)

	annotateCmd.Flags().String("jobs", "data/cleaned_jobs.json", "cleaned jobs used as matching candidates")
	annotateCmd.Flags().String("store", "", "read matching candidates from this sqlite store instead")
	annotateCmd.Flags().StringP("output", "o", "data/annotations.json", "file for the annotation records")
	annotateCmd.Flags().Int64("seed", 42, "seed for template synthesis")
	annotateCmd.Flags().Int("input-parsing", 1000, "number of input parsing annotations")
	annotateCmd.Flags().Int("job-matching", 3000, "number of job matching annotations")
	annotateCmd.Flags().Int("advice", 1000, "number of advice annotations")
	annotateCmd.Flags().String("scenarios", "", "YAML file overriding the built-in advice scenario bank")
}

func runAnnotate(cmd *cobra.Command) {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	seed, _ := cmd.Flags().GetInt64("seed")
	nParsing, _ := cmd.Flags().GetInt("input-parsing")
	nMatching, _ := cmd.Flags().GetInt("job-matching")
	nAdvice, _ := cmd.Flags().GetInt("advice")
	scenarioFile := cmd.Flag("scenarios").Value.String()

	if config.Annotate != nil {
		if config.Annotate.Seed != 0 && !cmd.Flags().Changed("seed") {
			seed = config.Annotate.Seed
		}
		if config.Annotate.InputParsing > 0 && !cmd.Flags().Changed("input-parsing") {
			nParsing = config.Annotate.InputParsing
		}
		if config.Annotate.JobMatching > 0 && !cmd.Flags().Changed("job-matching") {
			nMatching = config.Annotate.JobMatching
		}
		if config.Annotate.Advice > 0 && !cmd.Flags().Changed("advice") {
			nAdvice = config.Annotate.Advice
		}
		if scenarioFile == "" {
			scenarioFile = config.Annotate.ScenarioFile
		}
	}

	scenarios, err := annotation.LoadScenarios(scenarioFile)
	if err != nil {
		zlog.Fatal("loading advice scenarios", zap.Error(err))
	}

	jobs := loadCandidates(cmd, config, zlog)

	annotator := annotation.New(seed, scenarios, zlog)

	var annotations []*annotation.Annotation
	annotations = append(annotations, annotator.InputParsingSamples(nParsing)...)
	annotations = append(annotations, annotator.JobMatchingSamples(jobs, nMatching)...)
	annotations = append(annotations, annotator.AdviceSamples(nAdvice)...)

	output := cmd.Flag("output").Value.String()
	if err := annotation.Save(annotations, output); err != nil {
		zlog.Fatal("writing annotations", zap.Error(err))
	}

	zlog.Info("annotate complete",
		zap.Int("annotations", len(annotations)),
		zap.String("output", output),
	)
}

// loadCandidates reads matching candidates from the store when configured,
// falling back to the cleaned jobs file. Missing candidates are not fatal:
// the annotator synthesizes a mock pool instead.
func loadCandidates(cmd *cobra.Command, config *Config, zlog *zap.Logger) record.Jobs {
	storePath := cmd.Flag("store").Value.String()
	if storePath == "" && config.Store != nil {
		storePath = config.Store.Path
	}

	if storePath != "" {
		db, err := store.Open(storePath)
		if err != nil {
			zlog.Fatal("opening job store", zap.String("path", storePath), zap.Error(err))
		}
		defer db.Close()

		jobs, err := db.ListJobs(0)
		if err != nil {
			zlog.Fatal("listing archived jobs", zap.Error(err))
		}
		zlog.Info("loaded matching candidates from store", zap.Int("jobs", jobs.Len()))
		return jobs
	}

	jobsFile := cmd.Flag("jobs").Value.String()
	if _, err := os.Stat(jobsFile); err != nil {
		zlog.Warn("no cleaned jobs available, matching samples will use mock candidates",
			zap.String("file", jobsFile),
		)
		return nil
	}

	jobs, err := record.FromFile(jobsFile)
	if err != nil {
		zlog.Fatal("loading cleaned jobs", zap.String("file", jobsFile), zap.Error(err))
	}
	zlog.Info("loaded matching candidates", zap.Int("jobs", jobs.Len()))
	return jobs
}
