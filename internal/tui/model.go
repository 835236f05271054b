// Package tui implements the interactive submission form as a
// bubbletea program. All form transitions go through the form package
// reducer; this package only maps terminal events to form events and
// reducer effects to bubbletea commands.
package tui

import (
	"context"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/libsys/ils-importer/internal/form"
	"github.com/libsys/ils-importer/internal/models"
	"github.com/libsys/ils-importer/internal/nav"
)

// TaskService is the slice of the API client the form needs.
type TaskService interface {
	CreateTask(ctx context.Context, req models.TaskRequest) (*models.ImportTask, error)
	GetTask(ctx context.Context, taskID string) (*models.ImportTask, error)
	ListTasks(ctx context.Context) ([]models.ImportTask, error)
}

// Deps carries the collaborators the form model is wired with.
type Deps struct {
	Tasks     TaskService
	Providers []models.Option
	Logger    zerolog.Logger
	Ctx       context.Context
}

// Form focus positions, top to bottom.
const (
	focusProvider = iota
	focusMode
	focusFile
	focusIgnoreRules
	focusPreview
	focusSubmit
	focusCount
)

// Messages produced by commands.
type taskCreatedMsg struct{ task *models.ImportTask }

type createFailedMsg struct{ err error }

type taskLoadedMsg struct{ task *models.ImportTask }

type tasksLoadedMsg struct{ tasks []models.ImportTask }

type loadFailedMsg struct{ err error }

// Model is the bubbletea model for the importer client views.
type Model struct {
	deps Deps

	history *nav.History
	state   form.State

	providers []models.Option
	modes     []models.Option

	// Form view state
	focus       int
	providerIdx int // -1 = nothing selected yet
	modeIdx     int
	picking     bool
	picker      filepicker.Model
	spinner     spinner.Model

	// Detail view state
	detail    *models.ImportTask
	detailErr error

	// List view state
	tasks      []models.ImportTask
	tasksErr   error
	taskCursor int
	loading    bool

	width  int
	height int
	quit   bool
}

// NewModel builds the initial model positioned at the form route.
func NewModel(deps Deps) Model {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".xml"}
	if wd, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = wd
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		deps:        deps,
		history:     nav.NewHistory(nav.Form),
		state:       form.NewState(),
		providers:   deps.Providers,
		modes:       modeOptions(),
		providerIdx: -1,
		modeIdx:     0, // matches the IMPORT default in form.NewState
		picker:      fp,
		spinner:     sp,
	}
}

func modeOptions() []models.Option {
	return []models.Option{
		{Value: string(form.ModeImport), Label: "Import"},
		{Value: string(form.ModeDelete), Label: "Delete"},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// apply runs one event through the reducer and converts the resulting
// effect into a command.
func (m *Model) apply(ev form.Event) tea.Cmd {
	next, effect := form.Reduce(m.state, ev)
	m.state = next

	switch effect := effect.(type) {
	case form.CreateTask:
		return m.createTaskCmd(effect.Request)
	case form.NavigateTo:
		m.history.Push(nav.TaskDetail(effect.TaskID))
		return nil
	}
	return nil
}

// createTaskCmd issues the single create-task request. This is the only
// suspension point; the event loop keeps running while it is in flight.
func (m *Model) createTaskCmd(req models.TaskRequest) tea.Cmd {
	svc, ctx, logger := m.deps.Tasks, m.deps.Ctx, m.deps.Logger
	return func() tea.Msg {
		task, err := svc.CreateTask(ctx, req)
		if err != nil {
			logger.Error().Err(err).Str("provider", req.Provider).Str("mode", req.Mode).Msg("create task failed")
			return createFailedMsg{err: err}
		}
		return taskCreatedMsg{task: task}
	}
}

func (m *Model) loadTaskCmd(taskID string) tea.Cmd {
	svc, ctx := m.deps.Tasks, m.deps.Ctx
	return func() tea.Msg {
		task, err := svc.GetTask(ctx, taskID)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return taskLoadedMsg{task: task}
	}
}

func (m *Model) loadTasksCmd() tea.Cmd {
	svc, ctx := m.deps.Tasks, m.deps.Ctx
	return func() tea.Msg {
		tasks, err := svc.ListTasks(ctx)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return tasksLoadedMsg{tasks: tasks}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.picker.Height = msg.Height - 6
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case taskCreatedMsg:
		m.detail = msg.task
		m.detailErr = nil
		cmd := m.apply(form.SubmitSucceeded{TaskID: msg.task.ID})
		return m, cmd

	case createFailedMsg:
		cmd := m.apply(form.SubmitFailed{Err: msg.err})
		return m, cmd

	case taskLoadedMsg:
		m.detail = msg.task
		m.detailErr = nil
		m.loading = false
		return m, nil

	case tasksLoadedMsg:
		m.tasks = msg.tasks
		m.tasksErr = nil
		m.loading = false
		if m.taskCursor >= len(m.tasks) {
			m.taskCursor = 0
		}
		return m, nil

	case loadFailedMsg:
		m.loading = false
		switch m.history.Current() {
		case nav.TaskList:
			m.tasksErr = msg.err
		default:
			m.detailErr = msg.err
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.picking {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quit = true
		return m, tea.Quit
	}

	switch m.history.Current() {
	case nav.TaskList:
		return m.handleListKey(msg)
	case nav.Form:
		return m.handleFormKey(msg)
	default:
		return m.handleDetailKey(msg)
	}
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The confirmation modal captures all input while open.
	if m.state.Gate == form.GateOpen {
		switch msg.String() {
		case "y", "enter":
			return m, m.apply(form.ConfirmDelete{})
		case "n", "esc", "q":
			return m, m.apply(form.CancelConfirm{})
		}
		return m, nil
	}

	// File picking captures all input while active.
	if m.picking {
		switch msg.String() {
		case "esc", "q":
			// Leaving the picker without a selection clears the file,
			// like a cancelled native dialog yielding zero entries.
			m.picking = false
			return m, m.apply(form.SetFile{})
		}
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
			m.picking = false
			return m, m.apply(form.SetFile{Paths: []string{path}})
		}
		return m, cmd
	}

	switch msg.String() {
	case "q":
		m.quit = true
		return m, tea.Quit

	case "tab", "down", "j":
		m.focus = (m.focus + 1) % focusCount
		return m, nil

	case "shift+tab", "up", "k":
		m.focus = (m.focus + focusCount - 1) % focusCount
		return m, nil

	case "left", "h":
		return m.cycleOption(-1)

	case "right", "l":
		return m.cycleOption(1)

	case "t":
		m.history.Push(nav.TaskList)
		m.loading = true
		return m, tea.Batch(m.loadTasksCmd(), m.spinner.Tick)

	case "p":
		return m, tea.Batch(m.apply(form.Submit{Intent: form.IntentPreview}), m.spinner.Tick)

	case " ":
		if m.focus == focusIgnoreRules {
			return m, m.apply(form.ToggleIgnoreRules{})
		}
		if m.focus == focusFile {
			return m.openPicker()
		}
		return m, nil

	case "enter":
		switch m.focus {
		case focusFile:
			return m.openPicker()
		case focusIgnoreRules:
			return m, m.apply(form.ToggleIgnoreRules{})
		case focusPreview:
			return m, tea.Batch(m.apply(form.Submit{Intent: form.IntentPreview}), m.spinner.Tick)
		case focusSubmit:
			return m, tea.Batch(m.apply(form.Submit{Intent: form.IntentCommit}), m.spinner.Tick)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) openPicker() (tea.Model, tea.Cmd) {
	m.picking = true
	return m, m.picker.Init()
}

// cycleOption moves the provider or mode selection when that field has
// focus, dispatching the corresponding typed update.
func (m Model) cycleOption(delta int) (tea.Model, tea.Cmd) {
	switch m.focus {
	case focusProvider:
		if len(m.providers) == 0 {
			return m, nil
		}
		if m.providerIdx < 0 {
			m.providerIdx = 0
		} else {
			m.providerIdx = (m.providerIdx + delta + len(m.providers)) % len(m.providers)
		}
		return m, m.apply(form.SetProvider{Provider: m.providers[m.providerIdx].Value})

	case focusMode:
		m.modeIdx = (m.modeIdx + delta + len(m.modes)) % len(m.modes)
		return m, m.apply(form.SetMode{Mode: form.Mode(m.modes[m.modeIdx].Value)})
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quit = true
		return m, tea.Quit
	case "esc", "backspace":
		m.history.Back()
		return m, nil
	case "r":
		if m.detail != nil {
			m.loading = true
			return m, tea.Batch(m.loadTaskCmd(m.detail.ID), m.spinner.Tick)
		}
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quit = true
		return m, tea.Quit
	case "esc", "backspace":
		m.history.Back()
		return m, nil
	case "up", "k":
		if m.taskCursor > 0 {
			m.taskCursor--
		}
	case "down", "j":
		if m.taskCursor < len(m.tasks)-1 {
			m.taskCursor++
		}
	case "enter":
		if m.taskCursor < len(m.tasks) {
			task := m.tasks[m.taskCursor]
			m.history.Push(nav.TaskDetail(task.ID))
			m.detail = nil
			m.loading = true
			return m, tea.Batch(m.loadTaskCmd(task.ID), m.spinner.Tick)
		}
	case "r":
		m.loading = true
		return m, tea.Batch(m.loadTasksCmd(), m.spinner.Tick)
	}
	return m, nil
}

// State exposes the current form state for tests.
func (m Model) State() form.State {
	return m.state
}

// Route exposes the current route for tests.
func (m Model) Route() nav.Route {
	return m.history.Current()
}
