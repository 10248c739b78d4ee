package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hemant18-09/DOCai/internal/assess"
	"github.com/hemant18-09/DOCai/internal/catalog"
	"github.com/hemant18-09/DOCai/internal/model"
	"github.com/hemant18-09/DOCai/internal/speech"
)

var (
	threshold   int
	outJSON     string
	signalsURL  string
	catalogFile string
	audioPath   string
	audioLocale string
	speechModel string
)

// screenCmd represents the screen command
var screenCmd = &cobra.Command{
	Use:   "screen [text]",
	Short: "Screen a symptom description for emergency signals",
	Long: `Screen normalizes a symptom description, matches it against the
signal catalog and prints a risk report.

The input is either the text argument or a transcript of --audio.

Example:
  docai screen "sudden chest pain, getting worse"
  docai screen "सीने में दर्द" --threshold 60
  docai screen --audio intake.wav --locale te-IN
  docai screen "chest pain" --signals-url http://localhost:8080 --json report.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScreen,
}

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().IntVar(&threshold, "threshold", 0, "emergency threshold override (default: configured value)")
	screenCmd.Flags().StringVar(&outJSON, "json", "", "write the report as JSON to this path")
	screenCmd.Flags().StringVar(&signalsURL, "signals-url", "", "signals service base URL (default: embedded catalog)")
	screenCmd.Flags().StringVar(&catalogFile, "catalog", "", "YAML catalog file (overrides --signals-url)")
	screenCmd.Flags().StringVar(&audioPath, "audio", "", "audio file to transcribe and screen")
	screenCmd.Flags().StringVar(&audioLocale, "locale", "", "speech locale for --audio (e.g. te-IN)")
	screenCmd.Flags().StringVar(&speechModel, "speech-model", "", "transcription model")
}

func runScreen(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	text := ""
	if len(args) == 1 {
		text = args[0]
	}
	if text == "" && audioPath == "" {
		return fmt.Errorf("provide a symptom description or --audio")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if audioPath != "" {
		transcript, err := transcribe(ctx, cfg, audioPath)
		if err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Transcript: %s\n", transcript)
		}
		text = transcript
	}

	store := resolveStore(ctx, cfg)
	assessor := assess.New(store, &cfg.Screening)

	var opts *assess.Options
	if threshold > 0 {
		opts = &assess.Options{Threshold: threshold}
	}

	report := assessor.Assess(text, opts)
	printReport(report)

	if outJSON != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		if err := os.WriteFile(outJSON, data, 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Report written to %s\n", outJSON)
		}
	}

	return nil
}

func transcribe(ctx context.Context, cfg *model.Config, path string) (string, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	modelName := speechModel
	if modelName == "" {
		modelName = cfg.Speech.Model
	}
	locale := audioLocale
	if locale == "" {
		locale = cfg.Speech.Locale
	}

	tr, err := speech.NewTranscriber(apiKey, modelName)
	if err != nil {
		return "", err
	}
	return tr.Transcribe(ctx, path, locale)
}

// resolveStore picks the catalog source: an explicit file, the signals
// service, or the embedded default. Acquisition failures degrade to the
// embedded default; screening always proceeds.
func resolveStore(ctx context.Context, cfg *model.Config) *catalog.Store {
	if catalogFile != "" {
		cat, err := catalog.Load(catalogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v; using embedded catalog\n", err)
			return catalog.NewStore(catalog.Default())
		}
		return catalog.NewStore(cat)
	}

	url := signalsURL
	if url == "" {
		url = cfg.Catalog.URL
	}
	if url == "" {
		return catalog.NewStore(catalog.Default())
	}

	client := catalog.NewClient(url, cfg.Catalog.FetchTimeout, cfg.Catalog.CacheTTL)
	fetchCtx, cancel := context.WithTimeout(ctx, cfg.Catalog.FetchTimeout)
	defer cancel()

	cat, err := client.Fetch(fetchCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: signals fetch failed (%v); using embedded catalog\n", err)
		return catalog.NewStore(catalog.Default())
	}
	return catalog.NewStore(cat)
}

func printReport(report model.RiskReport) {
	status := "no emergency signals"
	if report.IsEmergency {
		status = "LIKELY EMERGENCY"
	}

	fmt.Printf("Risk score: %d\n", report.Risk)
	fmt.Printf("Assessment: %s\n", status)
	if len(report.Reasons) > 0 {
		fmt.Println("Reasons:")
		for _, r := range report.Reasons {
			fmt.Printf("  - %s\n", r)
		}
	}
	if report.Lang != "" && report.IsEmergency {
		fmt.Printf("Language: %s\n", report.Lang)
	}
	fmt.Println()
	fmt.Println(strings.TrimSpace(report.Message))
}
