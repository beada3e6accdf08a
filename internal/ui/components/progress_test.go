package components

import (
	"strings"
	"testing"
	"time"
)

func TestProgressBarDeterminate(t *testing.T) {
	p := NewProgressBar(10)
	p.SetProgress(5, 10)

	out := p.Render()

	if !strings.Contains(out, "5/10") {
		t.Errorf("expected progress counts, got %q", out)
	}
	if !strings.Contains(out, "50.0%") {
		t.Errorf("expected percentage, got %q", out)
	}
	if strings.Count(out, "█") != 5 || strings.Count(out, "░") != 5 {
		t.Errorf("expected half-filled bar, got %q", out)
	}
}

func TestProgressBarComplete(t *testing.T) {
	p := NewProgressBar(10)
	p.SetProgress(10, 10)

	out := p.Render()

	if !strings.Contains(out, "100.0%") {
		t.Errorf("expected full percentage, got %q", out)
	}
	if strings.Contains(out, "░") {
		t.Errorf("expected no empty segments, got %q", out)
	}
	if strings.Contains(out, "ETA") {
		t.Errorf("expected no ETA at completion, got %q", out)
	}
}

func TestProgressBarOverflowClamped(t *testing.T) {
	p := NewProgressBar(10)
	p.SetProgress(15, 10)

	if out := p.Render(); !strings.Contains(out, "100.0%") {
		t.Errorf("expected clamped percentage, got %q", out)
	}
}

func TestProgressBarIndeterminate(t *testing.T) {
	p := NewProgressBar(10)
	p.StartTime = time.Now().Add(-1200 * time.Millisecond)

	out := p.Render()

	if !strings.Contains(out, "█") {
		t.Errorf("expected sweep segment, got %q", out)
	}
	if !strings.Contains(out, "░") {
		t.Errorf("expected background segments, got %q", out)
	}
	if !strings.Contains(out, "1s") {
		t.Errorf("expected elapsed time, got %q", out)
	}
}

func TestProgressBarLabel(t *testing.T) {
	p := NewProgressBar(10)
	p.SetLabel("Explaining handler.go")

	out := p.Render()

	lines := strings.Split(out, "\n")
	if lines[0] != "Explaining handler.go" {
		t.Errorf("expected label on first line, got %q", lines[0])
	}
}

func TestFormatDuration(t *testing.T) {
	p := NewProgressBar(10)

	tests := []struct {
		duration time.Duration
		expected string
	}{
		{30 * time.Second, "30s"},
		{2 * time.Minute, "2m"},
		{45 * time.Minute, "45m"},
		{2 * time.Hour, "2.0h"},
		{90 * time.Minute, "1.5h"},
	}

	for _, tt := range tests {
		if got := p.formatDuration(tt.duration); got != tt.expected {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.duration, got, tt.expected)
		}
	}
}
