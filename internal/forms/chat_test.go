package forms

import (
	"strings"
	"testing"
)

func TestChatForm_EmptyDraftNeverSubmits(t *testing.T) {
	tests := []struct {
		name  string
		draft string
	}{
		{"empty", ""},
		{"whitespace only", "   \t\n  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := NewChatForm(1000)
			form.SetDraft(tt.draft)

			called := 0
			err := form.Submit(func(string) { called++ })

			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !IsValidationError(err) {
				t.Errorf("Expected ValidationError, got %T", err)
			}
			if called != 0 {
				t.Errorf("Callback invoked %d times, want 0", called)
			}
		})
	}
}

func TestChatForm_OverLengthDraftNeverSubmits(t *testing.T) {
	form := NewChatForm(10)
	form.SetDraft(strings.Repeat("x", 11))

	called := 0
	err := form.Submit(func(string) { called++ })

	if err == nil {
		t.Fatal("Expected validation error")
	}
	if !strings.Contains(err.Error(), "maximum length of 10") {
		t.Errorf("Expected length-specific message, got %q", err.Error())
	}
	if called != 0 {
		t.Errorf("Callback invoked %d times, want 0", called)
	}
}

func TestChatForm_ValidSubmitInvokesCallbackOnce(t *testing.T) {
	form := NewChatForm(1000)
	form.SetDraft("  summarize this conversation  ")

	var got []string
	if err := form.Submit(func(text string) { got = append(got, text) }); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("Callback invoked %d times, want 1", len(got))
	}
	if got[0] != "summarize this conversation" {
		t.Errorf("Expected trimmed draft, got %q", got[0])
	}
	if !form.Processing() {
		t.Error("Expected processing flag set after submit")
	}
}

func TestChatForm_SubmitWhileProcessingRejected(t *testing.T) {
	form := NewChatForm(1000)
	form.SetDraft("first")

	if err := form.Submit(func(string) {}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	form.SetDraft("second")
	called := 0
	if err := form.Submit(func(string) { called++ }); err == nil {
		t.Error("Expected rejection while processing")
	}
	if called != 0 {
		t.Errorf("Callback invoked %d times while processing, want 0", called)
	}
}

func TestChatForm_ProcessingTransitionClearsDraftOnce(t *testing.T) {
	form := NewChatForm(1000)
	form.SetDraft("pending text")
	form.SetProcessing(true)

	form.SetProcessing(false)
	if form.Draft() != "" {
		t.Errorf("Expected draft cleared on true->false transition, got %q", form.Draft())
	}

	// A draft typed after completion must survive repeated false writes.
	form.SetDraft("next message")
	form.SetProcessing(false)
	if form.Draft() != "next message" {
		t.Errorf("Expected draft untouched on false->false, got %q", form.Draft())
	}
}
