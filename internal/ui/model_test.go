package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/nconklindev/journeyload/internal/config"
	"github.com/nconklindev/journeyload/internal/profile"
	"github.com/nconklindev/journeyload/internal/types"
	"github.com/nconklindev/journeyload/internal/validate"

	tea "github.com/charmbracelet/bubbletea"
)

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestSheetsLoadedSelectsConfiguredSheet(t *testing.T) {
	m := InitialModel(config.Default())

	m = update(t, m, sheetsLoadedMsg{sheets: []string{"Summary", "Journey_Event_Sample", "Notes"}})

	if m.state != stateSheetSelection {
		t.Fatalf("state = %d; want sheet selection", m.state)
	}
	if m.cursor != 1 {
		t.Errorf("cursor = %d; want 1", m.cursor)
	}
}

func TestSheetSelectionToggles(t *testing.T) {
	m := InitialModel(config.Default())
	m = update(t, m, sheetsLoadedMsg{sheets: []string{"Journey_Event_Sample"}})

	keys := []string{"v", "u", "f", "w"}
	for _, k := range keys {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	}

	if !m.cfg.Validate {
		t.Error("validate not toggled on")
	}
	if m.cfg.DropUnnamed {
		t.Error("drop unnamed not toggled off")
	}
	if m.cfg.DayFirst {
		t.Error("day first not toggled off")
	}
	if !m.writeOutput {
		t.Error("write output not toggled on")
	}
}

func TestIngestCompleteStates(t *testing.T) {
	m := InitialModel(config.Default())
	m.state = stateProcessing

	failed := update(t, m, ingestCompleteMsg{err: errors.New("missing required columns: Latitude")})
	if failed.state != stateError {
		t.Errorf("state = %d; want error", failed.state)
	}
	if !strings.Contains(failed.View(), "Latitude") {
		t.Error("error view does not show the failure")
	}

	tbl, err := types.NewTable([]types.Column{{Name: "Latitude", Values: []types.Value{types.Number(51.5)}}})
	if err != nil {
		t.Fatal(err)
	}
	res := &types.IngestResult{InputFile: "journeys.xlsx", HeaderRow: 1, Table: tbl, Pruned: []string{"Unnamed: 1"}}
	profiles, err := profile.Describe(tbl)
	if err != nil {
		t.Fatal(err)
	}

	done := update(t, m, ingestCompleteMsg{result: res, profiles: profiles})
	if done.state != stateComplete {
		t.Fatalf("state = %d; want complete", done.state)
	}
	view := done.View()
	for _, want := range []string{"Header row: 1", "Unnamed: 1", "Latitude"} {
		if !strings.Contains(view, want) {
			t.Errorf("complete view missing %q", want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/data/journeys.xlsx", "/data/journeys_tidy.parquet"},
		{"events.csv", "events_tidy.parquet"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.input); got != tt.expected {
			t.Errorf("outputPath(%q) = %q; want %q", tt.input, got, tt.expected)
		}
	}
}

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		maxLen   int
		expected string
	}{
		{"Short path", "a/b.xlsx", 30, "a/b.xlsx"},
		{"Long path", "/very/long/directory/journeys.xlsx", 16, "...journeys.xlsx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncatePath(tt.path, tt.maxLen); got != tt.expected {
				t.Errorf("truncatePath() = %q; want %q", got, tt.expected)
			}
		})
	}
}

func TestSchemaBadges(t *testing.T) {
	if got := schemaBadge(false); got != "" {
		t.Errorf("schemaBadge(false) = %q; want empty", got)
	}
	if got := schemaBadge(true); !strings.Contains(got, "SCHEMA OK") {
		t.Errorf("schemaBadge(true) = %q", got)
	}

	se := &validate.SchemaError{Group: validate.GroupRanges, Column: "Latitude", Violations: 1}
	if got := schemaFailure(fmt.Errorf("validate journeys.xlsx: %w", se)); !strings.Contains(got, "SCHEMA ranges FAILED") {
		t.Errorf("schemaFailure() = %q", got)
	}
	if got := schemaFailure(errors.New("sheet not found")); got != "" {
		t.Errorf("schemaFailure(non-schema) = %q; want empty", got)
	}
}

func TestErrorViewShowsSchemaGroup(t *testing.T) {
	m := InitialModel(config.Default())
	m.state = stateProcessing

	se := &validate.SchemaError{Group: validate.GroupPresence, Missing: []string{"Latitude"}}
	m = update(t, m, ingestCompleteMsg{err: se})

	view := m.View()
	if !strings.Contains(view, "SCHEMA presence FAILED") {
		t.Error("error view does not show the failed group")
	}
	if !strings.Contains(view, "missing required columns: Latitude") {
		t.Error("error view does not show the message")
	}
}
