package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/minowang/jobcorpus/internal/dataset"
	"github.com/minowang/jobcorpus/internal/logger"
)

var validateCmd = &cobra.Command{
	Use:   "validate <dataset file>",
	Short: "Check a dataset file for format, completeness and quality issues",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		runValidate(args[0])
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	validator := dataset.NewValidator(zlog)
	passed, _, _ := validator.Validate(path)

	fmt.Print(validator.Report())

	if !passed {
		os.Exit(1)
	}
}
