package forms

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yildizm/TalentTrack/internal/config"
)

func uploadConfig() config.UploadConfig {
	return config.UploadConfig{
		ResumeTypes: []string{".pdf", ".doc", ".docx"},
		AudioTypes:  []string{".mp3", ".wav", ".m4a", ".ogg"},
		MaxFileSize: 1024 * 1024,
	}
}

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return path
}

// Minimal but sniffable file contents.
var (
	pdfContent = []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")
	mp3Content = append([]byte("ID3\x03\x00\x00\x00\x00\x00\x00"), make([]byte, 64)...)
)

func TestUploadForm_RejectedTypeLeavesSelectionUnset(t *testing.T) {
	dir := t.TempDir()
	form := NewResumeUploadForm(uploadConfig())

	path := writeFile(t, dir, "notes.txt", []byte("just text"))
	err := form.Select(path)

	if err == nil {
		t.Fatal("Expected invalid-type error")
	}
	if !strings.Contains(err.Error(), "not accepted") {
		t.Errorf("Expected invalid-type message, got %q", err.Error())
	}
	if len(form.Selected()) != 0 {
		t.Errorf("Expected selection unset, got %v", form.Selected())
	}
}

func TestUploadForm_ContentMismatchRejected(t *testing.T) {
	dir := t.TempDir()
	form := NewResumeUploadForm(uploadConfig())

	// Right extension, wrong bytes.
	path := writeFile(t, dir, "resume.pdf", []byte("plain text pretending to be a pdf"))
	err := form.Select(path)

	if err == nil {
		t.Fatal("Expected content mismatch error")
	}
	if !strings.Contains(err.Error(), "does not match") {
		t.Errorf("Expected content-mismatch message, got %q", err.Error())
	}
	if len(form.Selected()) != 0 {
		t.Errorf("Expected selection unset, got %v", form.Selected())
	}
}

func TestUploadForm_AcceptsValidResume(t *testing.T) {
	dir := t.TempDir()
	form := NewResumeUploadForm(uploadConfig())

	path := writeFile(t, dir, "resume.pdf", pdfContent)
	if err := form.Select(path); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	selected := form.Selected()
	if len(selected) != 1 || selected[0] != path {
		t.Errorf("Expected selection [%s], got %v", path, selected)
	}

	form.Clear()
	if len(form.Selected()) != 0 {
		t.Error("Expected empty selection after Clear")
	}
}

func TestUploadForm_AudioWhitelist(t *testing.T) {
	dir := t.TempDir()
	form := NewAudioUploadForm(uploadConfig())

	pdf := writeFile(t, dir, "resume.pdf", pdfContent)
	if err := form.Select(pdf); err == nil {
		t.Error("Expected audio form to reject a pdf")
	}

	mp3 := writeFile(t, dir, "interview.mp3", mp3Content)
	if err := form.Select(mp3); err != nil {
		t.Fatalf("Unexpected error for mp3: %v", err)
	}
	if len(form.Selected()) != 1 {
		t.Errorf("Expected 1 selected file, got %d", len(form.Selected()))
	}
}

func TestUploadForm_SizeLimit(t *testing.T) {
	dir := t.TempDir()
	cfg := uploadConfig()
	cfg.MaxFileSize = 16

	form := NewResumeUploadForm(cfg)
	path := writeFile(t, dir, "resume.pdf", pdfContent)

	err := form.Select(path)
	if err == nil {
		t.Fatal("Expected size limit error")
	}
	if !strings.Contains(err.Error(), "too large") {
		t.Errorf("Expected size message, got %q", err.Error())
	}
}
