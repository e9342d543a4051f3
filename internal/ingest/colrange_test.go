package ingest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseColumnRange(t *testing.T) {
	tests := []struct {
		name     string
		spec     string
		width    int
		expected []int
	}{
		{"Single span", "A:C", 10, []int{0, 1, 2}},
		{"Singles and spans", "A,C:E", 10, []int{0, 2, 3, 4}},
		{"Lower case", "b:c", 10, []int{1, 2}},
		{"Reversed span", "C:A", 10, []int{0, 1, 2}},
		{"Overlapping spans", "B:D,C:E", 10, []int{1, 2, 3, 4}},
		{"Clamped to width", "B:Z", 4, []int{1, 2, 3}},
		{"Empty selects all", "", 3, []int{0, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cr, err := ParseColumnRange(tt.spec)
			if err != nil {
				t.Fatalf("ParseColumnRange(%q) error: %v", tt.spec, err)
			}
			if diff := cmp.Diff(tt.expected, cr.Indices(tt.width)); diff != "" {
				t.Errorf("Indices() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseColumnRange_JourneyColumns(t *testing.T) {
	cr, err := ParseColumnRange("B:BC")
	if err != nil {
		t.Fatal(err)
	}
	idx := cr.Indices(100)
	if len(idx) != 54 {
		t.Fatalf("len(Indices) = %d; want 54", len(idx))
	}
	if idx[0] != 1 || idx[len(idx)-1] != 54 {
		t.Errorf("Indices span %d..%d; want 1..54", idx[0], idx[len(idx)-1])
	}
}

func TestParseColumnRange_Invalid(t *testing.T) {
	for _, spec := range []string{"1:2", "A,,B", "A:"} {
		if _, err := ParseColumnRange(spec); err == nil {
			t.Errorf("ParseColumnRange(%q) expected error", spec)
		}
	}
}
