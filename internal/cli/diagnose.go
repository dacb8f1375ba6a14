package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	days       int
	outJSON    string
	outMD      string
	timeout    time.Duration
	noCache    bool
	noFooter   bool
	llmEnabled bool
	llmModel   string
)

// diagnoseCmd represents the diagnose command
var diagnoseCmd = &cobra.Command{
	Use:   "diagnose <symptoms>",
	Short: "Score candidate conditions for a symptom description",
	Long: `Diagnose analyzes a free-text symptom description to:
- Extract canonical symptoms from the text
- Score every known condition against them
- Apply duration-based confidence adjustments
- Explain each score: matched symptoms, feature importance, counterfactuals
- Generate transparent, explainable reports

Example:
  prognosia diagnose "cough and sore throat for three days"
  prognosia diagnose "fever, headache" --days 5 --json report.json --md report.md
  prognosia diagnose "chest tightness" --llm --llm-model gpt-4o-mini`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDiagnose,
}

func init() {
	rootCmd.AddCommand(diagnoseCmd)

	// Input flags
	diagnoseCmd.Flags().IntVar(&days, "days", 3, "how many days the symptoms have lasted")
	diagnoseCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall timeout (matters when LLM summaries are enabled)")

	// Output flags
	diagnoseCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	diagnoseCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	diagnoseCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable report cache (force fresh analysis)")
	diagnoseCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// LLM flags
	diagnoseCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	diagnoseCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	input := strings.Join(args, " ")
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Cache.Enabled = cfg.Cache.Enabled && !noCache
	cfg.Output.IncludeFooter = !noFooter

	// Configure LLM if enabled
	if llmEnabled {
		cfg.LLM.Provider = "openai"
		cfg.LLM.Model = llmModel
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Symptoms: %s\n", input)
		fmt.Fprintf(os.Stderr, "Duration: %d days\n", days)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	report, err := p.DiagnoseReport(ctx, input, days)
	if err != nil {
		return fmt.Errorf("diagnose failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Recognized %d symptoms\n", len(report.InputSymptoms))
		fmt.Fprintf(os.Stderr, "✓ Matched %d conditions\n", report.TotalMatches)
		if report.LLM != nil && report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated LLM summary using %s/%s\n", report.LLM.Provider, report.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	// Render outputs
	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
