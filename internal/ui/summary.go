package ui

import (
	"strconv"

	"github.com/nconklindev/journeyload/internal/profile"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

func formatStat(p profile.ColumnProfile, f float64) string {
	if !p.HasStats {
		return ""
	}
	return strconv.FormatFloat(f, 'g', 6, 64)
}

// ProfileTable renders column profiles as a bordered table.
func ProfileTable(profiles []profile.ColumnProfile) string {
	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, []string{
			p.Name,
			string(p.Tag),
			strconv.Itoa(p.Count - p.Missing),
			strconv.Itoa(p.Missing),
			strconv.Itoa(p.Distinct),
			formatStat(p, p.Min),
			formatStat(p, p.Max),
			formatStat(p, p.Mean),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(TableBorderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		}).
		Headers("Column", "Type", "Values", "Missing", "Distinct", "Min", "Max", "Mean").
		Rows(rows...).
		String()
}
