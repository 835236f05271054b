package form

import "testing"

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		name   string
		mode   Mode
		intent Intent
		want   Mode
	}{
		{"import preview", ModeImport, IntentPreview, ModePreviewImport},
		{"delete preview", ModeDelete, IntentPreview, ModePreviewDelete},
		{"import commit", ModeImport, IntentCommit, ModeImport},
		{"delete commit", ModeDelete, IntentCommit, ModeDelete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveMode(tt.mode, tt.intent)
			if got != tt.want {
				t.Errorf("EffectiveMode(%s, %v) = %s, want %s", tt.mode, tt.intent, got, tt.want)
			}
		})
	}
}

func TestValidate_ProviderMissingOnly(t *testing.T) {
	draft := Draft{Provider: "", Mode: ModeImport, FilePath: "records.xml"}

	flags, ok := Validate(draft)
	if ok {
		t.Fatal("Validate() ok = true, want false")
	}
	if !flags.ProviderMissing {
		t.Error("ProviderMissing = false, want true")
	}
	if flags.ModeMissing {
		t.Error("ModeMissing = true, want false")
	}
	if flags.FileMissing {
		t.Error("FileMissing = true, want false")
	}
}

func TestValidate_AllMissing(t *testing.T) {
	flags, ok := Validate(Draft{})
	if ok {
		t.Fatal("Validate() ok = true, want false")
	}
	if !flags.ProviderMissing || !flags.ModeMissing || !flags.FileMissing {
		t.Errorf("flags = %+v, want all three missing", flags)
	}
}

func TestValidate_WhitespaceProviderIsMissing(t *testing.T) {
	flags, ok := Validate(Draft{Provider: "   ", Mode: ModeImport, FilePath: "a.xml"})
	if ok {
		t.Fatal("Validate() ok = true, want false")
	}
	if !flags.ProviderMissing {
		t.Error("ProviderMissing = false, want true for whitespace-only provider")
	}
}

func TestValidate_Complete(t *testing.T) {
	flags, ok := Validate(Draft{Provider: "springer", Mode: ModeDelete, FilePath: "a.xml"})
	if !ok {
		t.Fatalf("Validate() ok = false, flags = %+v, want ok", flags)
	}
	if flags.Any() {
		t.Errorf("flags = %+v, want none set", flags)
	}
}
