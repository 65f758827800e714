package watch

import (
	"bytes"
	"context"
	"io"
	"testing"
)

type countingView struct {
	refreshes int
	renders   int
}

func (v *countingView) Refresh(ctx context.Context) { v.refreshes++ }
func (v *countingView) Render(w io.Writer)          { v.renders++ }

func TestRunRejectsInvalidCron(t *testing.T) {
	v := &countingView{}
	err := Run(context.Background(), v, "not a cron", "", io.Discard)
	if err == nil {
		t.Fatal("expected error for invalid cron expression")
	}
	if v.refreshes != 0 {
		t.Fatalf("view refreshed %d times before validation", v.refreshes)
	}
}

func TestRunRendersOnceThenStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v := &countingView{}
	var buf bytes.Buffer
	err := Run(ctx, v, "* * * * *", "", &buf)
	if err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if v.refreshes != 1 || v.renders != 1 {
		t.Fatalf("refreshes=%d renders=%d, want one initial render", v.refreshes, v.renders)
	}
}
