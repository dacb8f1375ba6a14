package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/avelkin/prognosia/internal/kb"
	"github.com/avelkin/prognosia/internal/model"
	"github.com/avelkin/prognosia/internal/pipeline"
)

var (
	cfgFile string
	kbPath  string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "prognosia",
	Short: "Prognosia - Explainable symptom-to-diagnosis scoring (non-diagnostic)",
	Long: `Prognosia is an open-source tool that scores candidate conditions
against free-text symptom descriptions.

It does not diagnose. Every candidate comes with a transparent score
breakdown: which symptoms matched, how duration affected confidence,
what would change the ranking, and which clarifying questions would
narrow it down.

Always consult a healthcare professional for medical concerns.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Prognosia.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("prognosia v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.prognosia/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&kbPath, "kb", "", "knowledge base file (default: data/knowledge_base.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("knowledge_base.path", rootCmd.PersistentFlags().Lookup("kb"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.prognosia")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match PROGNOSIA_*
	viper.SetEnvPrefix("PROGNOSIA")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig merges the config file over the defaults
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if kbPath != "" {
		cfg.KnowledgeBase.Path = kbPath
	}
	cfg.Output.Verbose = verbose
	return cfg, nil
}

// buildPipeline loads the knowledge base and wires the pipeline
func buildPipeline(cfg *model.Config) (*pipeline.Pipeline, error) {
	base, err := kb.Load(cfg.KnowledgeBase.Path)
	if err != nil {
		return nil, fmt.Errorf("load knowledge base: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d diseases, %d symptom keywords\n", len(base.Diseases), len(base.Keywords))
	}
	return pipeline.New(cfg, base), nil
}
