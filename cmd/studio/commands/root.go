package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/soffai/studio/logging"
)

var (
	// Global flags
	cfgFile   string
	outputDir string
	verbose   bool

	// Global configuration
	globalConfig *Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "studio",
	Short: "SoffAI studio generation CLI",
	Long: `studio - A command line interface for the SoffAI generation pipeline.

Generates presentations, research papers, articles, search answers with
citations, spoken audio (WAV) and video (MP4) through a single dispatcher.

Examples:
  # Generate a presentation outline with fifteen slides
  studio generate -g presentation -O slides=15 "The solar system"

  # Search with citations
  studio generate -g search "Current Mars rover missions"

  # Synthesize speech into ./out/soffai-speech.wav
  studio generate -g speech -O voice=Puck -o ./out "Welcome to the studio"

  # Start a video generation (polls until the asset is fetched)
  studio generate -g video -a seed.png "A rocket launch at dawn"
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.soffai/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", ".", "directory for generated artifacts")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func initConfig() {
	var err error
	globalConfig, err = LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: config: %v\n", err)
		globalConfig = DefaultConfig()
	}
}

func newLogger() logging.Logger {
	level := logging.LogLevelInfo
	if verbose {
		level = logging.LogLevelDebug
	}
	return logging.NewSlogLogger(level, globalConfig.LogFormat, false)
}
