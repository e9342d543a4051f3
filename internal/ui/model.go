package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nconklindev/journeyload/internal/config"
	"github.com/nconklindev/journeyload/internal/export"
	"github.com/nconklindev/journeyload/internal/ingest"
	"github.com/nconklindev/journeyload/internal/pipeline"
	"github.com/nconklindev/journeyload/internal/profile"
	"github.com/nconklindev/journeyload/internal/types"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type state int

const (
	stateFilePicker state = iota
	stateSheetSelection
	stateProcessing
	stateComplete
	stateError
)

type Model struct {
	state        state
	filepicker   filepicker.Model
	selectedFile string
	sheets       []string
	cursor       int
	cfg          config.Config
	writeOutput  bool
	result       *types.IngestResult
	profiles     []profile.ColumnProfile
	err          error
	width        int
	height       int
	progress     progress.Model
	progressChan chan float64
	resultChan   chan ingestResultMsg
}

type ingestResultMsg struct {
	result   *types.IngestResult
	profiles []profile.ColumnProfile
	err      error
}

type sheetsLoadedMsg struct {
	sheets []string
	err    error
}

type ingestCompleteMsg ingestResultMsg

type progressMsg float64

type waitForProgressMsg struct{}

// InitialModel starts at the file picker with cfg as the run configuration.
func InitialModel(cfg config.Config) Model {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".xlsx", ".xlsm", ".csv"}
	fp.CurrentDirectory, _ = os.Getwd()

	fp.Styles.Cursor = SelectedStyle
	fp.Styles.Symlink = DefaultSheetStyle
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(colorRoute)
	fp.Styles.File = lipgloss.NewStyle().Foreground(colorText)
	fp.Styles.Permission = MutedStyle
	fp.Styles.Selected = SelectedStyle
	fp.Styles.FileSize = MutedStyle

	prog := progress.New(progress.WithGradient(string(colorRoute), string(colorPass)))

	return Model{
		state:       stateFilePicker,
		filepicker:  fp,
		cfg:         cfg,
		writeOutput: cfg.Output != "",
		progress:    prog,
	}
}

func (m Model) Init() tea.Cmd {
	return m.filepicker.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// title, subtitle and help text
		height := msg.Height - 14
		if height < 5 {
			height = 5
		}
		m.filepicker.SetHeight(height)

		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case stateFilePicker:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			}

		case stateSheetSelection:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "up", "k":
				if m.cursor > 0 {
					m.cursor--
				}
			case "down", "j":
				if m.cursor < len(m.sheets)-1 {
					m.cursor++
				}
			case "v":
				m.cfg.Validate = !m.cfg.Validate
			case "u":
				m.cfg.DropUnnamed = !m.cfg.DropUnnamed
			case "f":
				m.cfg.DayFirst = !m.cfg.DayFirst
			case "w":
				m.writeOutput = !m.writeOutput
			case "enter":
				if len(m.sheets) > 0 {
					m.cfg.SheetName = m.sheets[m.cursor]
				}
				m.state = stateProcessing
				return m.runIngest()
			}

		case stateComplete, stateError:
			switch msg.String() {
			case "ctrl+c", "q", "enter", "esc":
				return m, tea.Quit
			}
		}

	case sheetsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.sheets = msg.sheets
		m.cursor = 0
		for i, name := range m.sheets {
			if name == m.cfg.SheetName {
				m.cursor = i
				break
			}
		}
		m.state = stateSheetSelection
		return m, nil

	case ingestCompleteMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.result = msg.result
		m.profiles = msg.profiles
		m.state = stateComplete
		return m, nil

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case progressMsg:
		if m.state == stateProcessing {
			cmd := m.progress.SetPercent(float64(msg))
			return m, tea.Batch(cmd, waitForProgress(m.progressChan, m.resultChan))
		}
		return m, nil

	case waitForProgressMsg:
		return m, waitForProgress(m.progressChan, m.resultChan)
	}

	if m.state == stateFilePicker {
		var cmd tea.Cmd
		m.filepicker, cmd = m.filepicker.Update(msg)

		if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
			m.selectedFile = path
			return m, loadSheets(path)
		}

		return m, cmd
	}

	return m, nil
}

func loadSheets(path string) tea.Cmd {
	return func() tea.Msg {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".csv", ".txt":
			return sheetsLoadedMsg{}
		}
		sheets, err := ingest.SheetNames(path)
		return sheetsLoadedMsg{sheets: sheets, err: err}
	}
}

// outputPath places the tidy table next to the input as parquet.
func outputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_tidy.parquet"
}

func (m Model) runIngest() (Model, tea.Cmd) {
	m.progressChan = make(chan float64, 100)
	m.resultChan = make(chan ingestResultMsg, 1)

	cfg := m.cfg
	cfg.Output = ""
	if m.writeOutput {
		cfg.Output = outputPath(m.selectedFile)
	}

	cmd := tea.Batch(
		func() tea.Msg {
			progressChan := m.progressChan
			resultChan := m.resultChan
			selectedFile := m.selectedFile

			go func() {
				p := &pipeline.Pipeline{
					Loader:    ingest.NewLoader(ingest.NewReader()),
					Validator: pipeline.NewValidator(cfg),
					Write:     export.Write,
				}
				res, err := p.Run(selectedFile, cfg, progressChan)

				var profiles []profile.ColumnProfile
				if err == nil {
					profiles, err = profile.Describe(res.Table)
				}

				resultChan <- ingestResultMsg{result: res, profiles: profiles, err: err}

				close(progressChan)
				close(resultChan)
			}()

			return waitForProgressMsg{}
		},
		waitForProgress(m.progressChan, m.resultChan),
		m.progress.Init(),
	)

	return m, cmd
}

func waitForProgress(progressChan chan float64, resultChan chan ingestResultMsg) tea.Cmd {
	return func() tea.Msg {
		if progressChan == nil {
			return nil
		}

		p, ok := <-progressChan
		if !ok {
			res, ok := <-resultChan
			if ok {
				return ingestCompleteMsg(res)
			}
			return nil
		}

		return progressMsg(p)
	}
}

func (m Model) View() string {
	switch m.state {
	case stateFilePicker:
		return m.viewFilePicker()
	case stateSheetSelection:
		return m.viewSheetSelection()
	case stateProcessing:
		return m.viewProcessing()
	case stateComplete:
		return m.viewComplete()
	case stateError:
		return m.viewError()
	}
	return ""
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("🚚 journeyload - Journey Event sheet loader"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render("Select an XLSX or CSV file to load"))
	s.WriteString("\n\n")
	s.WriteString(m.filepicker.View())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("Press q to quit"))

	return s.String()
}

func (m Model) viewSheetSelection() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("🚚 Select Sheet"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("File: %s", filepath.Base(m.selectedFile))))
	s.WriteString("\n\n")

	if len(m.sheets) == 0 {
		s.WriteString(MutedStyle.Render("(delimited file, single sheet)"))
		s.WriteString("\n")
	}
	for i, name := range m.sheets {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		line := fmt.Sprintf("%s %s", cursor, name)
		if m.cursor == i {
			line = SelectedStyle.Render(line)
		} else if name == ingest.DefaultSheet {
			line = DefaultSheetStyle.Render(line + " (default)")
		}
		s.WriteString(line)
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("Validate schema:      %s\n", toggle(m.cfg.Validate)))
	s.WriteString(fmt.Sprintf("Drop Unnamed columns: %s\n", toggle(m.cfg.DropUnnamed)))
	s.WriteString(fmt.Sprintf("Day-first dates:      %s\n", toggle(m.cfg.DayFirst)))
	s.WriteString(fmt.Sprintf("Write parquet:        %s\n", toggle(m.writeOutput)))
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("↑/↓: navigate • v: validate • u: drop unnamed • f: day first • w: write • enter: load • q: quit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewProcessing() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("🚚 Loading..."))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("Reading sheet %q...", m.cfg.SheetName))
	s.WriteString("\n\n")
	s.WriteString(m.progress.View())

	return BoxStyle.Render(s.String())
}

func (m Model) viewComplete() string {
	var s strings.Builder
	res := m.result

	s.WriteString(TitleStyle.Render("✓ Load Complete!"))
	s.WriteString("\n\n")

	maxPathLen := m.width - 20
	if maxPathLen < 30 {
		maxPathLen = 30
	}

	s.WriteString(fmt.Sprintf("Input:  %s\n", truncatePath(res.InputFile, maxPathLen)))
	if res.OutputFile != "" {
		s.WriteString(OutputStyle.Render(fmt.Sprintf("Output: %s", truncatePath(res.OutputFile, maxPathLen))))
		s.WriteString("\n")
	}
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("Header row: %d\n", res.HeaderRow))
	s.WriteString(fmt.Sprintf("Rows: %d  Columns: %d\n", res.Table.NumRows(), res.Table.NumCols()))
	if len(res.Pruned) > 0 {
		s.WriteString(DroppedStyle.Render("Dropped: " + strings.Join(res.Pruned, ", ")))
		s.WriteString("\n")
	}
	if len(res.Coerced) > 0 {
		s.WriteString(CoercedStyle.Render("Dates parsed: " + strings.Join(res.Coerced, ", ")))
		s.WriteString("\n")
	}
	if badge := schemaBadge(res.Validated); badge != "" {
		s.WriteString(badge)
		s.WriteString("\n")
	}
	s.WriteString("\n")
	s.WriteString(ProfileTable(m.profiles))
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("Press enter or q to exit"))

	return BoxStyle.Render(s.String())
}

func truncatePath(path string, maxLen int) string {
	if len(path) > maxLen {
		return "..." + path[len(path)-maxLen+3:]
	}
	return path
}

func (m Model) viewError() string {
	var s strings.Builder

	s.WriteString(ErrorStyle.Render("✗ Error"))
	if badge := schemaFailure(m.err); badge != "" {
		s.WriteString("  ")
		s.WriteString(badge)
	}
	s.WriteString("\n\n")
	s.WriteString(m.err.Error())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("Press enter or q to exit"))

	return BoxStyle.Render(s.String())
}
