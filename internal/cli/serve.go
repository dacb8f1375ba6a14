package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/avelkin/prognosia/internal/server"
)

var (
	port      string
	serveLLM  bool
	rateLimit float64
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serve exposes the scoring pipeline over HTTP:
- POST /diagnose        full explainable report
- POST /recommend       actionable recommendation with urgency
- GET  /explain/:id     condition details
- GET  /xai/diagnosis/:id  condition details with specialist referral
- POST /xai/compare     comparative analysis of the top candidates
- GET  /symptoms        recognized symptom catalogue
- GET  /diseases        known condition catalogue

Example:
  prognosia serve
  prognosia serve --port 9090 --rate-limit 25
  prognosia serve --llm`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&port, "port", "", "listen port (default from config: 8080)")
	serveCmd.Flags().Float64Var(&rateLimit, "rate-limit", -1, "per-client requests per second (0 disables; default from config)")
	serveCmd.Flags().BoolVar(&serveLLM, "llm", false, "enable LLM summaries in /diagnose responses")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Local .env is optional
	if err := godotenv.Load(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Loaded environment from .env")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port != "" {
		cfg.Server.Port = port
	}
	if rateLimit >= 0 {
		cfg.Server.RequestsPerSecond = rateLimit
	}

	if serveLLM {
		cfg.LLM.Provider = "openai"
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

	return server.New(p, cfg.Server).Run()
}
