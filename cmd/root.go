package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/minowang/jobcorpus/internal/crawler"
)

const app = "jobcorpus"

// Config is the full configuration tree, read from jobcorpus.yaml.
type Config struct {
	Crawler  *CrawlerConfig  `mapstructure:"crawler"`
	Annotate *AnnotateConfig `mapstructure:"annotate"`
	Dataset  *DatasetConfig  `mapstructure:"dataset"`
	Store    *StoreConfig    `mapstructure:"store"`
}

type CrawlerConfig struct {
	Client crawler.ClientConfig   `mapstructure:"client"`
	Campus []crawler.CampusConfig `mapstructure:"campus"`
	Advice []crawler.AdviceConfig `mapstructure:"advice"`
	Mock   *MockConfig            `mapstructure:"mock"`
}

type MockConfig struct {
	Enabled bool  `mapstructure:"enabled"`
	Count   int   `mapstructure:"count"`
	Seed    int64 `mapstructure:"seed"`
}

type AnnotateConfig struct {
	Seed         int64  `mapstructure:"seed"`
	InputParsing int    `mapstructure:"input-parsing"`
	JobMatching  int    `mapstructure:"job-matching"`
	Advice       int    `mapstructure:"advice"`
	ScenarioFile string `mapstructure:"scenario-file"`
}

type DatasetConfig struct {
	TrainRatio float64 `mapstructure:"train-ratio"`
	EvalRatio  float64 `mapstructure:"eval-ratio"`
	Seed       int64   `mapstructure:"seed"`
	OutputDir  string  `mapstructure:"output-dir"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobcorpus crawls recruitment listings and assembles a prompt/response fine-tuning corpus",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobcorpus.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)

		// An explicitly requested config must parse.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app + ".yaml")
	viper.SetConfigType("yaml")

	// Without a config file every stage falls back to flag defaults.
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config == nil {
		config = &Config{}
	}
	return config, nil
}
