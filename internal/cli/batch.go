package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/hemant18-09/DOCai/internal/assess"
	"github.com/hemant18-09/DOCai/internal/worker"
)

var (
	concurrency  int
	batchOut     string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Screen symptom descriptions from a file in parallel",
	Long: `Batch screens one symptom description per line:
- Blank lines and #-comments are skipped
- Descriptions are screened concurrently, results keep input order
- Outcomes are written as JSON lines

Example:
  docai batch intakes.txt
  docai batch intakes.txt --concurrency 8 --out reports.jsonl
  docai batch transcripts.txt --threshold 60`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&batchOut, "out", "", "output path for JSON lines (default: stdout)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 5*time.Minute, "total timeout for batch processing")

	batchCmd.Flags().IntVar(&threshold, "threshold", 0, "emergency threshold override")
	batchCmd.Flags().StringVar(&signalsURL, "signals-url", "", "signals service base URL")
	batchCmd.Flags().StringVar(&catalogFile, "catalog", "", "YAML catalog file")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	store := resolveStore(ctx, cfg)
	assessor := assess.New(store, &cfg.Screening)

	var opts *assess.Options
	if threshold > 0 {
		opts = &assess.Options{Threshold: threshold}
	}

	screener := worker.NewBatchScreener(assessor, opts, concurrency)
	outcomes, err := screener.ScreenFile(ctx, args[0])
	if err != nil {
		return err
	}

	out := os.Stdout
	if batchOut != "" {
		f, err := os.Create(batchOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	enc := json.NewEncoder(out)
	emergencies := 0
	for _, o := range outcomes {
		if err := enc.Encode(o); err != nil {
			return fmt.Errorf("write outcome: %w", err)
		}
		if o.Report.IsEmergency {
			emergencies++
		}
	}

	fmt.Fprintf(os.Stderr, "Screened %d descriptions, %d flagged as likely emergencies\n",
		len(outcomes), emergencies)
	return nil
}
