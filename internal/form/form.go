// Package form implements the submission state machine for the importer
// form: the draft being edited, per-field validation flags, the delete
// confirmation gate, and a pure reducer driving all transitions.
package form

import "strings"

// Mode is the top-level intent applied to parsed records.
type Mode string

const (
	ModeImport Mode = "IMPORT"
	ModeDelete Mode = "DELETE"

	// Preview variants are derived, never selected directly.
	ModePreviewImport Mode = "PREVIEW_IMPORT"
	ModePreviewDelete Mode = "PREVIEW_DELETE"
)

// Intent distinguishes a dry-run submission from a committing one.
type Intent int

const (
	IntentCommit Intent = iota
	IntentPreview
)

// EffectiveMode derives the wire mode from the selected mode and the
// action intent. It depends on nothing else.
func EffectiveMode(mode Mode, intent Intent) Mode {
	if intent != IntentPreview {
		return mode
	}
	switch mode {
	case ModeImport:
		return ModePreviewImport
	case ModeDelete:
		return ModePreviewDelete
	default:
		return mode
	}
}

// Draft holds the operator's current selections. A draft is only
// dispatched once provider, mode and file are all present.
type Draft struct {
	Provider           string
	Mode               Mode
	FilePath           string
	IgnoreMissingRules bool
}

// Flags records which required fields were missing at the last
// validation pass. Flags are set per failing field in one pass and
// cleared only by a fully successful pass.
type Flags struct {
	ProviderMissing bool
	ModeMissing     bool
	FileMissing     bool
}

// Any reports whether any required field is flagged as missing.
func (f Flags) Any() bool {
	return f.ProviderMissing || f.ModeMissing || f.FileMissing
}

// Validate checks the three required fields and returns the missing
// flags for all failing fields at once. It never short-circuits.
func Validate(d Draft) (Flags, bool) {
	var f Flags
	f.ProviderMissing = strings.TrimSpace(d.Provider) == ""
	f.ModeMissing = d.Mode == ""
	f.FileMissing = strings.TrimSpace(d.FilePath) == ""
	return f, !f.Any()
}
