package cmd

import (
	"log"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/minowang/jobcorpus/internal/annotation"
	"github.com/minowang/jobcorpus/internal/dataset"
	"github.com/minowang/jobcorpus/internal/logger"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Assemble annotations into instruction-tuning dataset splits",
	Run: func(cmd *cobra.Command, _ []string) {
		runBuild(cmd)
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringP("annotations", "a", "data/annotations.json", "annotation records to assemble")
	buildCmd.Flags().StringP("output", "o", "data/dataset", "directory for the dataset splits")
	buildCmd.Flags().Float64("train-ratio", 0.8, "fraction of samples in the train split")
	buildCmd.Flags().Float64("eval-ratio", 0.1, "fraction of samples in the eval split")
	buildCmd.Flags().Int64("seed", 42, "seed for the split shuffle")
	buildCmd.Flags().BoolP("yes", "y", false, "overwrite an existing dataset without asking")
}

func runBuild(cmd *cobra.Command) {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	trainRatio, _ := cmd.Flags().GetFloat64("train-ratio")
	evalRatio, _ := cmd.Flags().GetFloat64("eval-ratio")
	seed, _ := cmd.Flags().GetInt64("seed")
	outputDir := cmd.Flag("output").Value.String()

	if config.Dataset != nil {
		if config.Dataset.TrainRatio > 0 && !cmd.Flags().Changed("train-ratio") {
			trainRatio = config.Dataset.TrainRatio
		}
		if config.Dataset.EvalRatio > 0 && !cmd.Flags().Changed("eval-ratio") {
			evalRatio = config.Dataset.EvalRatio
		}
		if config.Dataset.Seed != 0 && !cmd.Flags().Changed("seed") {
			seed = config.Dataset.Seed
		}
		if config.Dataset.OutputDir != "" && !cmd.Flags().Changed("output") {
			outputDir = config.Dataset.OutputDir
		}
	}

	if trainRatio < 0 || evalRatio < 0 || trainRatio+evalRatio > 1 {
		zlog.Fatal("invalid split ratios, train and eval must be non-negative and sum to at most 1",
			zap.Float64("train_ratio", trainRatio),
			zap.Float64("eval_ratio", evalRatio),
		)
	}

	if !confirmOverwrite(cmd, filepath.Join(outputDir, dataset.TrainFile)) {
		zlog.Info("exiting", zap.String("reason", "dataset exists, overwrite declined"))
		return
	}

	annotationsFile := cmd.Flag("annotations").Value.String()
	annotations, err := annotation.Load(annotationsFile)
	if err != nil {
		zlog.Fatal("loading annotations", zap.String("file", annotationsFile), zap.Error(err))
	}
	zlog.Info("loaded annotations", zap.Int("annotations", len(annotations)))

	assembler := dataset.NewAssembler(trainRatio, evalRatio, seed, zlog)
	split := assembler.Build(annotations)

	if err := split.Save(outputDir); err != nil {
		zlog.Fatal("writing dataset splits", zap.Error(err))
	}

	zlog.Info("build complete",
		zap.String("output", outputDir),
		zap.Int("train", len(split.Train)),
		zap.Int("eval", len(split.Eval)),
		zap.Int("test", len(split.Test)),
	)
}
