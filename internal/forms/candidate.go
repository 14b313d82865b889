package forms

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yildizm/TalentTrack/internal/common"
)

// validate is shared by every form; the instance caches struct metadata.
var validate = validator.New()

// CandidateForm is the draft state of the candidate-add modal. Name,
// email and position are required; phone and notes are optional; a
// resume attachment is optional but type-checked on selection.
type CandidateForm struct {
	Name     string
	Email    string
	Position string
	Phone    string
	Notes    string

	resume *UploadForm
	open   bool
}

// NewCandidateForm creates a closed candidate form. resume may be nil
// when attachments are not offered.
func NewCandidateForm(resume *UploadForm) *CandidateForm {
	return &CandidateForm{resume: resume}
}

// Open marks the modal visible
func (f *CandidateForm) Open() {
	f.open = true
}

// IsOpen reports whether the modal is visible
func (f *CandidateForm) IsOpen() bool {
	return f.open
}

// AttachResume validates and selects a resume file for the candidate
func (f *CandidateForm) AttachResume(path string) error {
	if f.resume == nil {
		return newValidationError("resume", "attachments are not enabled")
	}
	return f.resume.Select(path)
}

// ResumePath returns the attached resume, or "" when none is selected
func (f *CandidateForm) ResumePath() string {
	if f.resume == nil {
		return ""
	}
	if selected := f.resume.Selected(); len(selected) > 0 {
		return selected[0]
	}
	return ""
}

// Submit validates the draft and invokes submit exactly once with the
// assembled candidate. On validation failure the callback is not
// invoked and the modal stays open.
func (f *CandidateForm) Submit(submit func(c common.Candidate)) error {
	candidate := common.Candidate{
		Name:     strings.TrimSpace(f.Name),
		Email:    strings.TrimSpace(f.Email),
		Position: strings.TrimSpace(f.Position),
		Phone:    strings.TrimSpace(f.Phone),
		Notes:    strings.TrimSpace(f.Notes),
	}

	if err := validate.Struct(candidate); err != nil {
		return missingInformationError(err)
	}

	submit(candidate)
	f.reset()
	return nil
}

// reset clears the draft and closes the modal
func (f *CandidateForm) reset() {
	f.Name = ""
	f.Email = ""
	f.Position = ""
	f.Phone = ""
	f.Notes = ""
	if f.resume != nil {
		f.resume.Clear()
	}
	f.open = false
}

// missingInformationError flattens validator failures into one
// user-facing message naming the offending fields
func missingInformationError(err error) *ValidationError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return newValidationError("", "missing required candidate information")
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return newValidationError("", "missing or invalid candidate information: %s", strings.Join(fields, ", "))
}
