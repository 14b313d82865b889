package forms

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/yildizm/TalentTrack/internal/config"
)

// sniffTypes maps an accepted extension to the MIME types its content
// may legitimately detect as. Container formats (docx, m4a) resolve to
// their wrapper type on some inputs, so each extension carries the set.
var sniffTypes = map[string][]string{
	".pdf":  {"application/pdf"},
	".doc":  {"application/msword", "application/x-ole-storage"},
	".docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "application/zip"},
	".mp3":  {"audio/mpeg"},
	".wav":  {"audio/wav"},
	".m4a":  {"audio/x-m4a", "audio/mp4"},
	".ogg":  {"audio/ogg", "application/ogg"},
}

// UploadForm holds file selections for a multipart upload, validated
// against an extension whitelist with content sniffing confirmation.
type UploadForm struct {
	accepted []string
	maxSize  int64
	selected []string
}

// NewResumeUploadForm creates an upload form accepting resume types
func NewResumeUploadForm(cfg config.UploadConfig) *UploadForm {
	return &UploadForm{accepted: cfg.ResumeTypes, maxSize: cfg.MaxFileSize}
}

// NewAudioUploadForm creates an upload form accepting interview audio types
func NewAudioUploadForm(cfg config.UploadConfig) *UploadForm {
	return &UploadForm{accepted: cfg.AudioTypes, maxSize: cfg.MaxFileSize}
}

// Select validates path and adds it to the selection. A file that
// fails any check is not selected and the error names the reason.
func (f *UploadForm) Select(path string) error {
	if err := f.check(path); err != nil {
		return err
	}
	f.selected = append(f.selected, path)
	return nil
}

// Selected returns the validated selection in selection order
func (f *UploadForm) Selected() []string {
	out := make([]string, len(f.selected))
	copy(out, f.selected)
	return out
}

// Clear discards the selection
func (f *UploadForm) Clear() {
	f.selected = nil
}

// Accepts reports whether a file extension is on the whitelist
func (f *UploadForm) Accepts(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, accepted := range f.accepted {
		if ext == accepted {
			return true
		}
	}
	return false
}

func (f *UploadForm) check(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !f.Accepts(path) {
		return newValidationError(filepath.Base(path),
			"file type %q is not accepted (accepted: %s)", ext, strings.Join(f.accepted, ", "))
	}

	info, err := os.Stat(path)
	if err != nil {
		return newValidationError(filepath.Base(path), "cannot access file: %v", err)
	}
	if info.IsDir() {
		return newValidationError(filepath.Base(path), "is a directory, not a file")
	}
	if f.maxSize > 0 && info.Size() > f.maxSize {
		return newValidationError(filepath.Base(path),
			"file is too large (%d bytes, limit %d)", info.Size(), f.maxSize)
	}

	// The extension names a type; the content has to agree.
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return newValidationError(filepath.Base(path), "cannot read file: %v", err)
	}
	for _, want := range sniffTypes[ext] {
		if mtype.Is(want) {
			return nil
		}
	}
	return newValidationError(filepath.Base(path),
		"content does not match %s (detected %s)", ext, mtype.String())
}

// String describes the accepted types, for prompts and help text
func (f *UploadForm) String() string {
	return fmt.Sprintf("accepted types: %s", strings.Join(f.accepted, ", "))
}
