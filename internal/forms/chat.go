package forms

import "strings"

// ChatForm holds the draft state of the chat summarization input.
// The draft is transient: it lives only in the form and is cleared when
// the submission it fed reports completion.
type ChatForm struct {
	draft      string
	maxLength  int
	processing bool
}

// NewChatForm creates a chat form with the given maximum draft length
func NewChatForm(maxLength int) *ChatForm {
	return &ChatForm{maxLength: maxLength}
}

// Draft returns the current draft text
func (f *ChatForm) Draft() string {
	return f.draft
}

// SetDraft replaces the draft text
func (f *ChatForm) SetDraft(text string) {
	f.draft = text
}

// Processing reports whether a submission is in flight
func (f *ChatForm) Processing() bool {
	return f.processing
}

// Submit validates the draft and invokes submit exactly once with the
// trimmed text. The callback is never invoked on validation failure,
// and only one submission may be in flight at a time.
func (f *ChatForm) Submit(submit func(text string)) error {
	if f.processing {
		return newValidationError("chat", "a summarization is already in progress")
	}

	trimmed := strings.TrimSpace(f.draft)
	if trimmed == "" {
		return newValidationError("chat", "chat text must not be empty")
	}
	if f.maxLength > 0 && len(trimmed) > f.maxLength {
		return newValidationError("chat", "chat text exceeds the maximum length of %d characters", f.maxLength)
	}

	f.processing = true
	submit(trimmed)
	return nil
}

// SetProcessing records the in-flight state reported by the operation
// layer. The draft is cleared exactly once, on the true to false
// transition; repeated false assignments leave it alone.
func (f *ChatForm) SetProcessing(processing bool) {
	if f.processing && !processing {
		f.draft = ""
	}
	f.processing = processing
}
