package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/libsys/ils-importer/internal/api"
	"github.com/libsys/ils-importer/internal/form"
	"github.com/libsys/ils-importer/internal/models"
	"github.com/libsys/ils-importer/internal/nav"
)

// fakeTasks records create-task requests and replays canned responses.
type fakeTasks struct {
	createReqs []models.TaskRequest
	createTask *models.ImportTask
	createErr  error

	tasks []models.ImportTask
}

func (f *fakeTasks) CreateTask(_ context.Context, req models.TaskRequest) (*models.ImportTask, error) {
	f.createReqs = append(f.createReqs, req)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createTask, nil
}

func (f *fakeTasks) GetTask(_ context.Context, taskID string) (*models.ImportTask, error) {
	for i := range f.tasks {
		if f.tasks[i].ID == taskID {
			return &f.tasks[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeTasks) ListTasks(_ context.Context) ([]models.ImportTask, error) {
	return f.tasks, nil
}

func newTestModel(tasks *fakeTasks) Model {
	return NewModel(Deps{
		Tasks:     tasks,
		Providers: []models.Option{{Value: "springer", Label: "Springer"}, {Value: "ebl", Label: "EBL"}},
		Logger:    zerolog.Nop(),
		Ctx:       context.Background(),
	})
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// collectMsgs runs a command tree to completion and gathers every
// message it produces.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, sub := range batch {
			msgs = append(msgs, collectMsgs(sub)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, want Model", next)
	}
	return model, cmd
}

func validDraftModel(tasks *fakeTasks) Model {
	m := newTestModel(tasks)
	m.state.Draft = form.Draft{Provider: "springer", Mode: form.ModeImport, FilePath: "records.xml"}
	return m
}

func TestPreviewOnEmptyDraftFlagsFieldsWithoutRequest(t *testing.T) {
	tasks := &fakeTasks{}
	m := newTestModel(tasks)

	m, _ = update(t, m, keyRunes("p"))

	if len(tasks.createReqs) != 0 {
		t.Fatalf("create task called %d times, want 0", len(tasks.createReqs))
	}
	flags := m.State().Flags
	if !flags.ProviderMissing || !flags.FileMissing {
		t.Errorf("flags = %+v, want provider and file flagged", flags)
	}
	if flags.ModeMissing {
		t.Error("ModeMissing = true with the default mode selected")
	}
}

func TestPreviewSubmitsAndNavigatesToDetail(t *testing.T) {
	tasks := &fakeTasks{createTask: &models.ImportTask{ID: "9", Status: models.TaskStatusRunning}}
	m := validDraftModel(tasks)

	m, cmd := update(t, m, keyRunes("p"))
	if !m.State().InFlight {
		t.Error("InFlight = false while the request runs")
	}

	for _, msg := range collectMsgs(cmd) {
		m, _ = update(t, m, msg)
	}

	if len(tasks.createReqs) != 1 {
		t.Fatalf("create task called %d times, want 1", len(tasks.createReqs))
	}
	if got := tasks.createReqs[0].Mode; got != "PREVIEW_IMPORT" {
		t.Errorf("request mode = %q, want PREVIEW_IMPORT", got)
	}
	if m.Route() != nav.TaskDetail("9") {
		t.Errorf("route = %q, want task detail for 9", m.Route())
	}
	if m.State().InFlight {
		t.Error("InFlight = true after resolution")
	}
}

func TestDeleteCommitWaitsForConfirmation(t *testing.T) {
	tasks := &fakeTasks{createTask: &models.ImportTask{ID: "3", Status: models.TaskStatusRunning}}
	m := validDraftModel(tasks)
	m.state.Draft.Mode = form.ModeDelete
	m.focus = focusSubmit

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if len(tasks.createReqs) != 0 {
		t.Fatal("delete committed without confirmation")
	}
	if m.State().Gate != form.GateOpen {
		t.Fatal("confirmation gate not open after a DELETE commit")
	}

	m, cmd := update(t, m, keyRunes("y"))
	for _, msg := range collectMsgs(cmd) {
		m, _ = update(t, m, msg)
	}

	if len(tasks.createReqs) != 1 {
		t.Fatalf("create task called %d times after confirmation, want 1", len(tasks.createReqs))
	}
	if got := tasks.createReqs[0].Mode; got != "DELETE" {
		t.Errorf("request mode = %q, want DELETE", got)
	}
	if m.Route() != nav.TaskDetail("3") {
		t.Errorf("route = %q, want task detail for 3", m.Route())
	}
}

func TestCancelConfirmKeepsDraftAndClosesGate(t *testing.T) {
	tasks := &fakeTasks{}
	m := validDraftModel(tasks)
	m.state.Draft.Mode = form.ModeDelete
	m.focus = focusSubmit

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, keyRunes("n"))

	if m.State().Gate != form.GateClosed {
		t.Error("gate still open after cancel")
	}
	if len(tasks.createReqs) != 0 {
		t.Error("cancel issued a request")
	}
	if m.State().Draft.Provider != "springer" {
		t.Error("cancel disturbed the draft")
	}
}

func TestCreateFailureSurfacesServiceMessage(t *testing.T) {
	tasks := &fakeTasks{createErr: &api.APIError{StatusCode: 400, Message: "bad file format"}}
	m := validDraftModel(tasks)

	m, cmd := update(t, m, keyRunes("p"))
	for _, msg := range collectMsgs(cmd) {
		m, _ = update(t, m, msg)
	}

	if m.Route() != nav.Form {
		t.Errorf("route = %q, want to stay on the form after a failure", m.Route())
	}
	outcome := m.State().Outcome
	if outcome == nil || outcome.Err == nil {
		t.Fatal("failure outcome not captured")
	}
	if !strings.Contains(m.View(), "bad file format") {
		t.Error("view does not show the service error message")
	}
}

func TestCreateFailureWithoutMessageShowsGenericHeader(t *testing.T) {
	tasks := &fakeTasks{createErr: errors.New("connection refused")}
	m := validDraftModel(tasks)

	m, cmd := update(t, m, keyRunes("p"))
	for _, msg := range collectMsgs(cmd) {
		m, _ = update(t, m, msg)
	}

	if !strings.Contains(m.View(), api.GenericFailureMessage) {
		t.Error("view does not show the generic failure header")
	}
}

func TestEscapeInPickerClearsFileSelection(t *testing.T) {
	m := validDraftModel(&fakeTasks{})
	m.picking = true

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.picking {
		t.Error("picker still active after escape")
	}
	if m.State().Draft.FilePath != "" {
		t.Errorf("file = %q, want cleared by a cancelled picker", m.State().Draft.FilePath)
	}
}

func TestProviderCycleDispatchesSelection(t *testing.T) {
	m := newTestModel(&fakeTasks{})
	m.focus = focusProvider

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.State().Draft.Provider != "springer" {
		t.Errorf("provider = %q after first cycle, want springer", m.State().Draft.Provider)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.State().Draft.Provider != "ebl" {
		t.Errorf("provider = %q after second cycle, want ebl", m.State().Draft.Provider)
	}
}

func TestTaskListNavigation(t *testing.T) {
	tasks := &fakeTasks{tasks: []models.ImportTask{
		{ID: "1", Provider: "springer", Status: models.TaskStatusSucceeded},
		{ID: "2", Provider: "ebl", Status: models.TaskStatusRunning},
	}}
	m := newTestModel(tasks)

	m, cmd := update(t, m, keyRunes("t"))
	if m.Route() != nav.TaskList {
		t.Fatalf("route = %q, want task list", m.Route())
	}
	for _, msg := range collectMsgs(cmd) {
		m, _ = update(t, m, msg)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Route() != nav.TaskDetail("2") {
		t.Fatalf("route = %q, want detail for the selected task", m.Route())
	}
	for _, msg := range collectMsgs(cmd) {
		m, _ = update(t, m, msg)
	}

	if !strings.Contains(m.View(), "ebl") {
		t.Error("detail view does not show the loaded task")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Route() != nav.TaskList {
		t.Errorf("route = %q after back, want task list", m.Route())
	}
}
