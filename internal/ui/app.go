package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/CodeSum/internal/emoji"
	"github.com/yildizm/CodeSum/internal/explainer"
	"github.com/yildizm/CodeSum/internal/ui/components"
)

// Model is the interactive explain session. It collects a query and a
// file path, submits them through the controller, and presents the
// explanation in navigable views.
type Model struct {
	ctrl *explainer.Controller

	queryInput textinput.Model
	fileInput  textinput.Model
	spin       spinner.Model
	viewport   viewport.Model

	// Navigation state
	currentView View
	returnView  View
	focusIndex  int

	// Last successful result
	result   *explainer.ExplainResult
	stats    *explainer.FanStats
	files    []explainer.FileAnalysis
	fileName string

	funcViewer *components.FunctionViewer
	fileList   *components.List
	progress   *components.ProgressBar

	formErr   string
	submitErr string

	width    int
	height   int
	ready    bool
	quitting bool
}

// NewModel creates the explain session model. Query and filePath
// prefill the form when non-empty.
func NewModel(ctrl *explainer.Controller, query, filePath string) *Model {
	styles := GetStyles()

	qi := textinput.New()
	qi.Placeholder = "What should the explainer focus on?"
	qi.CharLimit = 500
	qi.Width = 60
	qi.PromptStyle = lipgloss.NewStyle().Foreground(styles.Theme.Primary).Bold(true)
	qi.SetValue(query)
	qi.Focus()

	fi := textinput.New()
	fi.Placeholder = "Path to the source file"
	fi.CharLimit = 500
	fi.Width = 60
	fi.PromptStyle = lipgloss.NewStyle().Foreground(styles.Theme.Primary).Bold(true)
	fi.SetValue(filePath)

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = lipgloss.NewStyle().Foreground(styles.Theme.Primary)

	vp := viewport.New(80, 20)
	// Disable mouse in viewport to allow text selection
	vp.MouseWheelEnabled = false

	return &Model{
		ctrl:        ctrl,
		queryInput:  qi,
		fileInput:   fi,
		spin:        sp,
		viewport:    vp,
		currentView: ViewForm,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		textinput.Blink,
	)
}

// Update handles messages and navigation
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	case explainDoneMsg:
		return m.handleExplainDone(msg)
	}

	return m, nil
}

// handleWindowResize handles window resize events
func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	inputWidth := min(msg.Width-12, 70)
	if inputWidth < 20 {
		inputWidth = 20
	}
	m.queryInput.Width = inputWidth
	m.fileInput.Width = inputWidth

	m.viewport.Width = msg.Width - 6
	m.viewport.Height = max(5, msg.Height-16)

	if m.result != nil {
		m.viewport.SetContent(m.renderExplanationContent())
	}
	if m.funcViewer != nil {
		m.funcViewer.Width = msg.Width - 6
		m.funcViewer.SetMaxCodeLines(max(5, msg.Height-18))
	}
	if m.fileList != nil {
		m.fileList.Width = msg.Width - 6
		m.fileList.Height = max(8, msg.Height/3)
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.handleQuit()
	}

	switch m.currentView {
	case ViewForm:
		return m.handleFormKeys(msg)
	case ViewLoading:
		// Submission is in flight; the form stays inert
		return m, nil
	case ViewResult:
		return m.handleResultKeys(msg)
	case ViewFunctions:
		return m.handleFunctionKeys(msg)
	case ViewFiles:
		return m.handleFileKeys(msg)
	case ViewHelp:
		return m.handleHelpKeys(msg)
	}

	return m, nil
}

// handleFormKeys handles input while the form is shown
func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.handleQuit()
	case "tab", "shift+tab", "up", "down":
		return m.handleFocusChange(msg.String())
	case "enter":
		if m.focusIndex == 0 {
			return m.handleFocusChange("tab")
		}
		return m.handleSubmit()
	}

	var cmd tea.Cmd
	if m.focusIndex == 0 {
		m.queryInput, cmd = m.queryInput.Update(msg)
	} else {
		m.fileInput, cmd = m.fileInput.Update(msg)
	}
	return m, cmd
}

// handleFocusChange moves focus between the two form fields
func (m *Model) handleFocusChange(key string) (tea.Model, tea.Cmd) {
	if key == "shift+tab" || key == "up" {
		m.focusIndex--
	} else {
		m.focusIndex++
	}

	if m.focusIndex > 1 {
		m.focusIndex = 0
	} else if m.focusIndex < 0 {
		m.focusIndex = 1
	}

	var cmd tea.Cmd
	if m.focusIndex == 0 {
		m.fileInput.Blur()
		cmd = m.queryInput.Focus()
	} else {
		m.queryInput.Blur()
		cmd = m.fileInput.Focus()
	}
	return m, cmd
}

// handleSubmit reads the chosen file, stages the request, and starts
// the in-flight command
func (m *Model) handleSubmit() (tea.Model, tea.Cmd) {
	m.formErr = ""
	m.submitErr = ""

	m.ctrl.SetQuery(m.queryInput.Value())

	path := strings.TrimSpace(m.fileInput.Value())
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			m.formErr = fmt.Sprintf("Cannot read %s: %v", path, err)
			return m, nil
		}
		m.fileName = filepath.Base(path)
		m.ctrl.SetFile(m.fileName, data)
	}

	snap, ok := m.ctrl.StartSubmit()
	if !ok {
		if snap.Err != nil {
			m.formErr = snap.Err.Error()
		}
		return m, nil
	}

	m.currentView = ViewLoading
	m.progress = components.NewProgressBar(40)
	m.progress.SetLabel(fmt.Sprintf("Explaining %s", m.fileName))

	return m, tea.Batch(m.spin.Tick, createExplainCommand(m.ctrl))
}

// handleSpinnerTick advances the spinner while a request is in flight
func (m *Model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	if m.currentView != ViewLoading {
		return m, nil
	}

	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(msg)
	return m, cmd
}

// handleExplainDone handles the settled submission
func (m *Model) handleExplainDone(msg explainDoneMsg) (tea.Model, tea.Cmd) {
	snap := msg.snapshot

	if snap.State != explainer.StateSucceeded {
		if snap.Err != nil {
			m.submitErr = snap.Err.Error()
		}
		m.currentView = ViewForm
		return m, nil
	}

	m.result = snap.Result
	m.stats = explainer.ComputeFanStats(&snap.Result.Analysis)
	m.files = sortedFiles(&snap.Result.Analysis)

	m.funcViewer = components.NewFunctionViewer("Important Functions", m.width-6, m.height-8)
	m.funcViewer.SetFunctions(snap.Result.Explanation.ImportantFunctions)
	m.funcViewer.SetMaxCodeLines(max(5, m.height-18))

	m.fileList = components.NewFileList(m.files, m.width-6, max(8, m.height/3))

	m.viewport.SetContent(m.renderExplanationContent())
	m.viewport.GotoTop()

	m.currentView = ViewResult
	return m, nil
}

// handleResultKeys handles input on the explanation view
func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.handleQuit()
	case "esc", "n":
		return m.handleNewQuery()
	case "1", "f":
		m.currentView = ViewFunctions
		return m, nil
	case "2", "a":
		m.currentView = ViewFiles
		return m, nil
	case "?":
		return m.handleHelp()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleNewQuery returns to the form keeping query and file intact
func (m *Model) handleNewQuery() (tea.Model, tea.Cmd) {
	m.currentView = ViewForm
	m.formErr = ""
	m.focusIndex = 0
	m.fileInput.Blur()
	return m, m.queryInput.Focus()
}

// handleFunctionKeys handles input on the important-functions view
func (m *Model) handleFunctionKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.handleQuit()
	case "esc":
		m.currentView = ViewResult
		return m, nil
	case "right", "down", "j":
		m.funcViewer.Next()
		return m, nil
	case "left", "up", "k":
		m.funcViewer.Previous()
		return m, nil
	case "2", "a":
		m.currentView = ViewFiles
		return m, nil
	case "?":
		return m.handleHelp()
	}
	return m, nil
}

// handleFileKeys handles input on the analyzed-files view
func (m *Model) handleFileKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.handleQuit()
	case "esc":
		m.currentView = ViewResult
		return m, nil
	case "down", "j":
		m.fileList.MoveDown()
		return m, nil
	case "up", "k":
		m.fileList.MoveUp()
		return m, nil
	case "1", "f":
		m.currentView = ViewFunctions
		return m, nil
	case "?":
		return m.handleHelp()
	}
	return m, nil
}

// handleHelp opens the help view and remembers where to return
func (m *Model) handleHelp() (tea.Model, tea.Cmd) {
	m.returnView = m.currentView
	m.currentView = ViewHelp
	return m, nil
}

// handleHelpKeys handles input on the help view
func (m *Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.handleQuit()
	case "esc", "?":
		m.currentView = m.returnView
		return m, nil
	}
	return m, nil
}

// handleQuit handles quit commands
func (m *Model) handleQuit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// View renders the current view
func (m *Model) View() string {
	if !m.ready {
		return m.renderLoadingScreen()
	}

	if m.quitting {
		return m.renderGoodbyeScreen()
	}

	switch m.currentView {
	case ViewForm:
		return m.renderFormView()
	case ViewLoading:
		return m.renderLoadingView()
	case ViewResult:
		return m.renderResultView()
	case ViewFunctions:
		return m.renderFunctionsView()
	case ViewFiles:
		return m.renderFilesView()
	case ViewHelp:
		return m.renderHelpView()
	default:
		return m.renderFormView()
	}
}

func (m *Model) renderLoadingScreen() string {
	styles := GetStyles()
	loading := styles.Header.Render("Initializing CodeSum...")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, loading)
}

func (m *Model) renderGoodbyeScreen() string {
	styles := GetStyles()
	goodbye := styles.Success.Render("Thanks for using CodeSum!")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, goodbye)
}

func (m *Model) renderFormView() string {
	styles := GetStyles()

	title := styles.Title.Render(emoji.GetEmoji("explanation") + " CodeSum")
	subtitle := styles.Muted.Render("Ask a question about one source file")

	queryLabel := styles.Subheader.Render(emoji.GetEmoji("query") + " Query")
	fileLabel := styles.Subheader.Render(emoji.GetEmoji("file") + " File")

	queryBox := m.renderInputBox(m.queryInput.View(), m.focusIndex == 0)
	fileBox := m.renderInputBox(m.fileInput.View(), m.focusIndex == 1)

	parts := []string{
		title,
		subtitle,
		"",
		queryLabel,
		queryBox,
		"",
		fileLabel,
		fileBox,
	}

	if errText := m.formError(); errText != "" {
		parts = append(parts, "", styles.Error.Render(emoji.GetEmoji("error")+" "+errText))
	}

	help := styles.Muted.Render("tab next field • enter submit • esc quit")
	parts = append(parts, "", help)

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	border := styles.Box.
		BorderForeground(styles.Theme.Primary).
		Width(min(m.width-4, 80))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, border.Render(content))
}

// formError returns the error text the form should display
func (m *Model) formError() string {
	if m.formErr != "" {
		return m.formErr
	}
	return m.submitErr
}

func (m *Model) renderInputBox(view string, focused bool) string {
	styles := GetStyles()
	if focused {
		return styles.Focused.Render(view)
	}
	return styles.Panel.Render(view)
}

func (m *Model) renderLoadingView() string {
	styles := GetStyles()

	status := styles.Header.Render(fmt.Sprintf("%s Contacting code explainer", m.spin.View()))

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		status,
		"",
		m.progress.Render(),
		"",
		styles.Muted.Render("ctrl+c quit"),
	)

	border := styles.Box.
		BorderForeground(styles.Theme.Progress).
		Padding(2, 4).
		Width(60)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, border.Render(content))
}

func (m *Model) renderResultView() string {
	styles := GetStyles()

	title := styles.Title.Render(emoji.GetEmoji("explanation") + " Explanation")
	header := lipgloss.JoinHorizontal(lipgloss.Center, title, " ", styles.Muted.Render(m.fileName))

	cards := components.CreateExplainStats(m.stats).Render()

	footer := styles.Muted.Render("↑↓ scroll • 1 functions • 2 files • n new query • ? help • q quit")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		cards,
		m.viewport.View(),
		footer,
	)
}

// renderExplanationContent renders the explanation for the viewport
func (m *Model) renderExplanationContent() string {
	styles := GetStyles()

	var b strings.Builder

	overall := strings.TrimSpace(m.result.Explanation.OverallAnalysis)
	if overall != "" {
		b.WriteString(styles.Subheader.Render(emoji.GetEmoji("summary") + " Overall"))
		b.WriteString("\n")
		b.WriteString(wrapText(overall, m.viewport.Width-2))
		b.WriteString("\n\n")
	}

	b.WriteString(RenderMarkdown(m.result.Explanation.Markdown, m.viewport.Width-2))

	return b.String()
}

func (m *Model) renderFunctionsView() string {
	styles := GetStyles()

	footer := styles.Muted.Render("←/→ or j/k navigate • esc back • 2 files • ? help • q quit")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.funcViewer.Render(),
		footer,
	)
}

func (m *Model) renderFilesView() string {
	styles := GetStyles()

	var parts []string

	if m.height >= 30 {
		chart := components.NewConnectivityChart("Functions per File", m.files, min(m.width-6, 90), 14)
		parts = append(parts, chart.Render())
	}

	parts = append(parts,
		m.fileList.Render(),
		m.renderFileDetail(),
		styles.Muted.Render("↑↓ select file • esc back • 1 functions • ? help • q quit"),
	)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderFileDetail renders the selected file's function breakdown
func (m *Model) renderFileDetail() string {
	item := m.fileList.GetSelectedItem()
	if item == nil {
		return ""
	}

	file, ok := item.Data.(explainer.FileAnalysis)
	if !ok {
		return ""
	}

	detail := components.NewDetailViewer(file.File, min(m.width-6, 100), 0)

	var lines []string
	var connectivity []float64
	for _, fn := range file.Functions {
		marker := "  "
		if fn.IsEntryPoint {
			marker = emoji.GetEmoji("entry_point") + " "
		}
		lines = append(lines, fmt.Sprintf("%s%s (fan-in %d, fan-out %d)", marker, fn.Name, fn.FanIn, fn.FanOut))
		connectivity = append(connectivity, float64(fn.FanIn+fn.FanOut))
	}

	detail.AddSection(components.DetailSection{
		Title:   "Functions",
		Content: lines,
		Style:   "info",
	})

	if len(connectivity) > 1 {
		spark := components.NewSparklineChart(connectivity, min(len(connectivity)*2, 40))
		detail.AddSection(components.DetailSection{
			Title:   "Connectivity",
			Content: []string{spark.Render()},
			Style:   "success",
		})
	}

	return detail.Render()
}

func (m *Model) renderHelpView() string {
	styles := GetStyles()

	title := styles.Header.Render(emoji.GetEmoji("help") + " CodeSum Help")

	helpSections := []string{
		"Form:",
		"  Tab or ↑↓    Switch between query and file",
		"  Enter    Submit (from the file field)",
		"  Esc    Quit",
		"",
		"Results:",
		"  ↑↓ or j/k    Scroll the explanation",
		"  1 or f    Important functions",
		"  2 or a    Analyzed files",
		"  n    New query",
		"",
		"Exit:",
		"  q    Quit from any result view",
		"  Ctrl+C    Force quit",
	}

	var helpList []string
	for _, line := range helpSections {
		switch {
		case strings.HasSuffix(line, ":"):
			helpList = append(helpList, styles.Subheader.Render(line))
		case line == "":
			helpList = append(helpList, "")
		default:
			helpList = append(helpList, styles.Muted.Render(line))
		}
	}

	instructions := styles.Warning.Render("Press Esc to go back")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		lipgloss.JoinVertical(lipgloss.Left, helpList...),
		"",
		instructions,
	)

	border := styles.Box.
		BorderForeground(styles.Theme.Primary).
		Width(min(m.width-4, 70))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, border.Render(content))
}

// sortedFiles flattens the analysis map in stable file-name order
func sortedFiles(analysis *explainer.Analysis) []explainer.FileAnalysis {
	files := make([]explainer.FileAnalysis, 0, len(analysis.Results))
	for _, file := range analysis.Results {
		files = append(files, file)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].File < files[j].File
	})

	return files
}

// Run starts the interactive TUI. Query and filePath prefill the form.
func Run(ctrl *explainer.Controller, query, filePath string) error {
	model := NewModel(ctrl, query, filePath)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
