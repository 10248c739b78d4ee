// Package worker screens batches of symptom descriptions concurrently.
// Each worker scores against the same catalog snapshot mechanism as a
// single interactive call; concurrency never reorders results.
package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/hemant18-09/DOCai/internal/assess"
	"github.com/hemant18-09/DOCai/internal/model"
)

// Screener is the assessment dependency of the batch processor.
// *assess.Assessor satisfies it.
type Screener interface {
	Assess(rawText string, opts *assess.Options) model.RiskReport
}

// Outcome pairs an input line with its report.
type Outcome struct {
	Line   int              `json:"line"`
	Text   string           `json:"text"`
	Report model.RiskReport `json:"report"`
}

// BatchScreener screens many texts with a fixed number of workers.
type BatchScreener struct {
	screener    Screener
	opts        *assess.Options
	concurrency int
}

// NewBatchScreener creates a batch screener. Non-positive concurrency
// falls back to a single worker.
func NewBatchScreener(screener Screener, opts *assess.Options, concurrency int) *BatchScreener {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &BatchScreener{screener: screener, opts: opts, concurrency: concurrency}
}

// Screen assesses every text concurrently and returns outcomes in input
// order. A cancelled context stops dispatching; already-claimed texts
// finish (individual assessments are sub-millisecond and uncancellable).
func (b *BatchScreener) Screen(ctx context.Context, texts []string) []Outcome {
	outcomes := make([]Outcome, len(texts))
	if len(texts) == 0 {
		return outcomes
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := b.concurrency
	if workers > len(texts) {
		workers = len(texts)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = Outcome{
					Line:   i + 1,
					Text:   texts[i],
					Report: b.screener.Assess(texts[i], b.opts),
				}
			}
		}()
	}

	for i := range texts {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return outcomes
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return outcomes
}

// ScreenFile reads one description per line from path and screens them.
// Blank lines and #-comments are skipped; duplicates are kept, since
// identical descriptions are legitimate separate intakes.
func (b *BatchScreener) ScreenFile(ctx context.Context, path string) ([]Outcome, error) {
	texts, err := ReadLines(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return b.Screen(ctx, texts), nil
}

// ReadLines reads non-blank, non-comment lines from a file.
func ReadLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return lines, nil
}
