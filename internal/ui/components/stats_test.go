package components

import (
	"strings"
	"testing"

	"github.com/yildizm/CodeSum/internal/explainer"
)

func TestStatsCardRender(t *testing.T) {
	card := NewStatsCard("Files", "3", "Analyzed source files").
		SetIcon("F").
		SetStatus("info").
		SetSize(30, 4)

	out := card.Render()

	if !strings.Contains(out, "Files") {
		t.Errorf("expected title in card, got:\n%s", out)
	}
	if !strings.Contains(out, "3") {
		t.Errorf("expected value in card, got:\n%s", out)
	}
	if !strings.Contains(out, "Analyzed source files") {
		t.Errorf("expected description in card, got:\n%s", out)
	}
}

func TestStatsDashboardRowGrouping(t *testing.T) {
	dashboard := NewStatsDashboard(2)
	dashboard.AddCard(NewStatsCard("A", "1", ""))
	dashboard.AddCard(NewStatsCard("B", "2", ""))
	dashboard.AddCard(NewStatsCard("C", "3", ""))

	out := dashboard.Render()

	for _, want := range []string{"A", "B", "C"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected card %q in dashboard, got:\n%s", want, out)
		}
	}
}

func TestStatsDashboardEmpty(t *testing.T) {
	if out := NewStatsDashboard(4).Render(); out != "" {
		t.Errorf("expected empty render, got %q", out)
	}
}

func TestCreateExplainStats(t *testing.T) {
	stats := &explainer.FanStats{
		Files:       2,
		Functions:   10,
		EntryPoints: 1,
		MaxFanIn:    5,
		MeanFanIn:   1.5,
	}

	dashboard := CreateExplainStats(stats)

	if len(dashboard.cards) != 4 {
		t.Fatalf("expected 4 cards, got %d", len(dashboard.cards))
	}

	titles := []string{"Files", "Functions", "Entry Points", "Max Fan-In"}
	for i, want := range titles {
		if dashboard.cards[i].Title != want {
			t.Errorf("card %d: expected title %q, got %q", i, want, dashboard.cards[i].Title)
		}
	}

	if dashboard.cards[2].Status != "success" {
		t.Errorf("expected success status with entry points, got %q", dashboard.cards[2].Status)
	}
	if dashboard.cards[3].Description != "Mean 1.5 per function" {
		t.Errorf("unexpected fan card description: %q", dashboard.cards[3].Description)
	}
}

func TestCreateExplainStatsNoEntryPoints(t *testing.T) {
	dashboard := CreateExplainStats(&explainer.FanStats{Files: 1, Functions: 3})

	if dashboard.cards[2].Status != "warning" {
		t.Errorf("expected warning status without entry points, got %q", dashboard.cards[2].Status)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		input    int
		expected string
	}{
		{0, "0"},
		{42, "42"},
		{999, "999"},
		{1000, "1,000"},
		{123456, "123,456"},
		{1234567, "1,234,567"},
	}

	for _, tt := range tests {
		if got := formatNumber(tt.input); got != tt.expected {
			t.Errorf("formatNumber(%d) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestSummaryBox(t *testing.T) {
	box := NewSummaryBox("Run Summary", 50)
	box.AddKeyValue("Functions", "12")
	box.AddLine("All files analyzed")

	out := box.Render()

	if !strings.Contains(out, "Run Summary") {
		t.Errorf("expected title, got:\n%s", out)
	}
	if !strings.Contains(out, ": 12") {
		t.Errorf("expected aligned key-value, got:\n%s", out)
	}
	if !strings.Contains(out, "All files analyzed") {
		t.Errorf("expected plain line, got:\n%s", out)
	}
}
