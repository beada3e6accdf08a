package components

import (
	"fmt"
	"strings"
	"testing"

	"github.com/yildizm/CodeSum/internal/explainer"
)

func analyzedFiles() []explainer.FileAnalysis {
	return []explainer.FileAnalysis{
		{
			File: "handler.go",
			Functions: []explainer.FunctionInfo{
				{Name: "handle", IsEntryPoint: true},
				{Name: "parse"},
			},
		},
		{
			File: "render.go",
			Functions: []explainer.FunctionInfo{
				{Name: "render"},
			},
		},
	}
}

func TestListNavigationBounds(t *testing.T) {
	list := NewList("Files", 80, 10)
	list.SetItems([]ListItem{
		{ID: "1", Title: "alpha"},
		{ID: "2", Title: "beta"},
		{ID: "3", Title: "gamma"},
	})

	list.MoveUp()
	if list.Selected != 0 {
		t.Errorf("expected selection pinned at top, got %d", list.Selected)
	}

	list.MoveDown()
	list.MoveDown()
	list.MoveDown()
	if list.Selected != 2 {
		t.Errorf("expected selection pinned at bottom, got %d", list.Selected)
	}

	if item := list.GetSelectedItem(); item == nil || item.Title != "gamma" {
		t.Errorf("expected last item selected, got %+v", item)
	}
}

func TestListSearchFilters(t *testing.T) {
	list := NewList("Files", 80, 10)
	list.SetItems([]ListItem{
		{ID: "1", Title: "handler.go", Description: "2 functions"},
		{ID: "2", Title: "render.go", Description: "1 functions"},
	})

	list.SetSearch("handler")

	item := list.GetSelectedItem()
	if item == nil || item.Title != "handler.go" {
		t.Fatalf("expected filtered selection, got %+v", item)
	}

	if out := list.Render(); !strings.Contains(out, "Search: handler (1 results)") {
		t.Errorf("expected search indicator, got:\n%s", out)
	}

	list.SetSearch("")
	if item := list.GetSelectedItem(); item == nil || item.Title != "handler.go" {
		t.Errorf("expected full list restored from the top, got %+v", item)
	}
}

func TestListSearchNoMatch(t *testing.T) {
	list := NewList("Files", 80, 10)
	list.SetItems([]ListItem{{ID: "1", Title: "handler.go"}})

	list.SetSearch("nothing")

	if item := list.GetSelectedItem(); item != nil {
		t.Errorf("expected no selection for empty filter, got %+v", item)
	}
}

func TestListScrollIndicator(t *testing.T) {
	list := NewList("Files", 80, 8)

	var items []ListItem
	for i := 0; i < 10; i++ {
		items = append(items, ListItem{ID: fmt.Sprintf("%d", i), Title: fmt.Sprintf("file%d.go", i)})
	}
	list.SetItems(items)

	if out := list.Render(); !strings.Contains(out, "(1-4 of 10)") {
		t.Errorf("expected scroll window indicator, got:\n%s", out)
	}

	for i := 0; i < 5; i++ {
		list.MoveDown()
	}

	if out := list.Render(); !strings.Contains(out, "(3-6 of 10)") {
		t.Errorf("expected shifted window, got:\n%s", out)
	}
}

func TestNewFileList(t *testing.T) {
	list := NewFileList(analyzedFiles(), 80, 10)

	if len(list.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(list.Items))
	}

	first := list.Items[0]
	if first.Title != "handler.go" {
		t.Errorf("expected file name title, got %q", first.Title)
	}
	if first.Status != "success" {
		t.Errorf("expected success status for entry-point file, got %q", first.Status)
	}
	if first.Description != "2 functions, 1 entry points" {
		t.Errorf("unexpected description: %q", first.Description)
	}
	if _, ok := first.Data.(explainer.FileAnalysis); !ok {
		t.Errorf("expected file analysis attached, got %T", first.Data)
	}

	second := list.Items[1]
	if second.Status != "info" {
		t.Errorf("expected info status without entry points, got %q", second.Status)
	}
	if second.Description != "1 functions" {
		t.Errorf("unexpected description: %q", second.Description)
	}
}

func TestNewFileListTruncatesLongPaths(t *testing.T) {
	long := strings.Repeat("d/", 40) + "handler.go"
	list := NewFileList([]explainer.FileAnalysis{{File: long}}, 80, 10)

	title := list.Items[0].Title
	if !strings.HasPrefix(title, "...") {
		t.Errorf("expected truncated prefix, got %q", title)
	}
	if len(title) != 60 {
		t.Errorf("expected 60 character title, got %d", len(title))
	}
	if !strings.HasSuffix(title, "handler.go") {
		t.Errorf("expected tail of path kept, got %q", title)
	}
}
