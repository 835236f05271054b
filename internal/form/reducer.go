package form

import "github.com/libsys/ils-importer/internal/models"

// Gate is the delete confirmation gate. A DELETE commit opens the gate
// instead of submitting; only an explicit confirmation lets the
// submission through. While the gate is open the draft is frozen, so a
// confirmation always submits exactly the draft the operator was shown.
type Gate int

const (
	GateClosed Gate = iota
	GateOpen
)

// Outcome captures the result of the last submit attempt. Exactly one
// of TaskID and Err is set. It is replaced on the next attempt.
type Outcome struct {
	TaskID string
	Err    error
}

// State is the whole form session: the draft, the validation flags, the
// confirmation gate, the in-flight guard and the last outcome. Reduce
// returns a new value for every transition; callers never mutate it.
type State struct {
	Draft    Draft
	Flags    Flags
	Gate     Gate
	InFlight bool
	Outcome  *Outcome
}

// NewState returns the initial form state: empty draft, gate closed.
func NewState() State {
	return State{Draft: Draft{Mode: ModeImport}}
}

// Event is a form state transition trigger. The set is closed: every
// field update is a typed variant rather than a name-keyed assignment.
type Event interface{ isEvent() }

// SetProvider overwrites the provider selection.
type SetProvider struct{ Provider string }

// SetMode overwrites the mode selection.
type SetMode struct{ Mode Mode }

// SetFile replaces the file reference with the first entry of a picker
// result. A picker that yielded no entries clears the reference.
type SetFile struct{ Paths []string }

// ToggleIgnoreRules inverts the missing-mapping-rules leniency flag.
type ToggleIgnoreRules struct{}

// Submit triggers a submission attempt with the given intent.
type Submit struct{ Intent Intent }

// CancelConfirm closes the confirmation gate with no further effect.
type CancelConfirm struct{}

// ConfirmDelete closes the gate and dispatches the DELETE commit.
type ConfirmDelete struct{}

// SubmitSucceeded resolves the in-flight attempt with a task id.
type SubmitSucceeded struct{ TaskID string }

// SubmitFailed resolves the in-flight attempt with the captured error.
type SubmitFailed struct{ Err error }

func (SetProvider) isEvent()       {}
func (SetMode) isEvent()           {}
func (SetFile) isEvent()           {}
func (ToggleIgnoreRules) isEvent() {}
func (Submit) isEvent()            {}
func (CancelConfirm) isEvent()     {}
func (ConfirmDelete) isEvent()     {}
func (SubmitSucceeded) isEvent()   {}
func (SubmitFailed) isEvent()      {}

// Effect is work the reducer asks its caller to perform. A nil effect
// means the transition was purely local.
type Effect interface{ isEffect() }

// CreateTask instructs the caller to issue exactly one create-task
// request to the importer service.
type CreateTask struct{ Request models.TaskRequest }

// NavigateTo instructs the caller to leave the form for the detail view
// of the created task. Terminal for the form session.
type NavigateTo struct{ TaskID string }

func (CreateTask) isEffect() {}
func (NavigateTo) isEffect() {}

// Reduce applies one event to the state and returns the next state plus
// the effect the caller must carry out, if any. It is a pure function.
func Reduce(s State, ev Event) (State, Effect) {
	switch ev := ev.(type) {
	case SetProvider:
		if s.Gate == GateOpen {
			return s, nil
		}
		s.Draft.Provider = ev.Provider
		return s, nil

	case SetMode:
		if s.Gate == GateOpen {
			return s, nil
		}
		s.Draft.Mode = ev.Mode
		return s, nil

	case SetFile:
		if s.Gate == GateOpen {
			return s, nil
		}
		if len(ev.Paths) == 0 {
			s.Draft.FilePath = ""
		} else {
			s.Draft.FilePath = ev.Paths[0]
		}
		return s, nil

	case ToggleIgnoreRules:
		if s.Gate == GateOpen {
			return s, nil
		}
		s.Draft.IgnoreMissingRules = !s.Draft.IgnoreMissingRules
		return s, nil

	case Submit:
		if s.InFlight || s.Gate == GateOpen {
			return s, nil
		}
		// Destructive commits pass through the confirmation gate.
		if ev.Intent == IntentCommit && s.Draft.Mode == ModeDelete {
			s.Gate = GateOpen
			return s, nil
		}
		return orchestrate(s, ev.Intent)

	case CancelConfirm:
		s.Gate = GateClosed
		return s, nil

	case ConfirmDelete:
		if s.Gate != GateOpen || s.InFlight {
			return s, nil
		}
		s.Gate = GateClosed
		return orchestrate(s, IntentCommit)

	case SubmitSucceeded:
		s.InFlight = false
		s.Outcome = &Outcome{TaskID: ev.TaskID}
		return s, NavigateTo{TaskID: ev.TaskID}

	case SubmitFailed:
		s.InFlight = false
		s.Outcome = &Outcome{Err: ev.Err}
		return s, nil
	}
	return s, nil
}

// orchestrate validates the draft and, when complete, builds the
// create-task request with the effective mode.
func orchestrate(s State, intent Intent) (State, Effect) {
	flags, ok := Validate(s.Draft)
	if !ok {
		// Flag every failing field in one pass; fields that passed
		// keep whatever flag they already carried.
		if flags.ProviderMissing {
			s.Flags.ProviderMissing = true
		}
		if flags.ModeMissing {
			s.Flags.ModeMissing = true
		}
		if flags.FileMissing {
			s.Flags.FileMissing = true
		}
		return s, nil
	}

	s.Flags = Flags{}
	s.InFlight = true
	s.Outcome = nil

	return s, CreateTask{Request: models.TaskRequest{
		Provider:           s.Draft.Provider,
		Mode:               string(EffectiveMode(s.Draft.Mode, intent)),
		FilePath:           s.Draft.FilePath,
		IgnoreMissingRules: s.Draft.IgnoreMissingRules,
	}}
}
