package forms

import (
	"strings"
	"testing"

	"github.com/yildizm/TalentTrack/internal/common"
)

func TestCandidateForm_MissingFieldsKeepModalOpen(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CandidateForm)
	}{
		{"missing name", func(f *CandidateForm) { f.Name = "" }},
		{"missing email", func(f *CandidateForm) { f.Email = "" }},
		{"missing position", func(f *CandidateForm) { f.Position = "" }},
		{"malformed email", func(f *CandidateForm) { f.Email = "not-an-email" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := NewCandidateForm(nil)
			form.Open()
			form.Name = "Jane Doe"
			form.Email = "jane@example.com"
			form.Position = "Backend Engineer"
			tt.mutate(form)

			called := 0
			err := form.Submit(func(common.Candidate) { called++ })

			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), "candidate information") {
				t.Errorf("Expected missing-information message, got %q", err.Error())
			}
			if called != 0 {
				t.Errorf("Callback invoked %d times, want 0", called)
			}
			if !form.IsOpen() {
				t.Error("Expected modal to stay open after invalid submit")
			}
		})
	}
}

func TestCandidateForm_ValidSubmitClosesAndResets(t *testing.T) {
	form := NewCandidateForm(nil)
	form.Open()
	form.Name = "  Jane Doe  "
	form.Email = "jane@example.com"
	form.Position = "Backend Engineer"
	form.Phone = "+1 555 0100"

	var got []common.Candidate
	if err := form.Submit(func(c common.Candidate) { got = append(got, c) }); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("Callback invoked %d times, want 1", len(got))
	}
	if got[0].Name != "Jane Doe" {
		t.Errorf("Expected trimmed name, got %q", got[0].Name)
	}
	if form.IsOpen() {
		t.Error("Expected modal closed after valid submit")
	}
	if form.Name != "" || form.Email != "" {
		t.Error("Expected draft cleared after valid submit")
	}
}
