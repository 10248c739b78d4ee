package worker

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/hemant18-09/DOCai/internal/assess"
	"github.com/hemant18-09/DOCai/internal/catalog"
	"github.com/hemant18-09/DOCai/internal/model"
)

type countingScreener struct {
	calls int32
}

func (c *countingScreener) Assess(rawText string, opts *assess.Options) model.RiskReport {
	atomic.AddInt32(&c.calls, 1)
	return model.RiskReport{Message: rawText}
}

func TestBatchScreener_OrderPreserved(t *testing.T) {
	s := &countingScreener{}
	b := NewBatchScreener(s, nil, 4)

	texts := []string{"first", "second", "third", "fourth", "fifth"}
	outcomes := b.Screen(context.Background(), texts)

	if len(outcomes) != len(texts) {
		t.Fatalf("expected %d outcomes, got %d", len(texts), len(outcomes))
	}
	for i, o := range outcomes {
		if o.Line != i+1 {
			t.Errorf("outcome %d has line %d", i, o.Line)
		}
		if o.Text != texts[i] {
			t.Errorf("outcome %d out of order: %q", i, o.Text)
		}
	}
	if got := atomic.LoadInt32(&s.calls); got != int32(len(texts)) {
		t.Errorf("expected %d assessments, got %d", len(texts), got)
	}
}

func TestBatchScreener_Empty(t *testing.T) {
	b := NewBatchScreener(&countingScreener{}, nil, 4)

	if got := b.Screen(context.Background(), nil); len(got) != 0 {
		t.Errorf("expected no outcomes, got %v", got)
	}
}

func TestBatchScreener_ConcurrencyClamped(t *testing.T) {
	b := NewBatchScreener(&countingScreener{}, nil, 0)
	if b.concurrency != 1 {
		t.Errorf("expected concurrency clamp to 1, got %d", b.concurrency)
	}

	// More workers than texts must not deadlock or drop work.
	outcomes := NewBatchScreener(&countingScreener{}, nil, 16).Screen(context.Background(), []string{"one"})
	if len(outcomes) != 1 || outcomes[0].Text != "one" {
		t.Errorf("unexpected outcomes: %v", outcomes)
	}
}

func TestBatchScreener_WithAssessor(t *testing.T) {
	store := catalog.NewStore(catalog.Default())
	b := NewBatchScreener(assess.New(store, nil), nil, 2)

	outcomes := b.Screen(context.Background(), []string{
		"sudden chest pain and I cannot breathe",
		"feeling fine",
	})

	if !outcomes[0].Report.IsEmergency {
		t.Errorf("expected emergency for first text, got %+v", outcomes[0].Report)
	}
	if outcomes[1].Report.IsEmergency {
		t.Errorf("expected non-emergency for second text, got %+v", outcomes[1].Report)
	}
}

func TestReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.txt")
	content := "chest pain\n\n# a comment\n  sudden fall  \nchest pain\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	lines, err := ReadLines(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	want := []string{"chest pain", "sudden fall", "chest pain"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
