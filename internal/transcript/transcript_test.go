package transcript

import (
	"strings"
	"testing"
	"time"
)

func TestJSONParser_BareArray(t *testing.T) {
	data := []byte(`[
		{"sender": "Recruiter", "text": "Hi, thanks for applying!", "sent_at": "2026-03-01T10:00:00Z"},
		{"sender": "Candidate", "text": "Happy to chat."}
	]`)

	parser := NewJSONParser()
	if !parser.CanParse(data) {
		t.Fatal("Expected CanParse true for JSON array")
	}

	messages, err := parser.Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(messages))
	}
	if messages[0].Sender != "Recruiter" {
		t.Errorf("Expected sender Recruiter, got %s", messages[0].Sender)
	}
	want := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	if !messages[0].SentAt.Equal(want) {
		t.Errorf("Expected timestamp %v, got %v", want, messages[0].SentAt)
	}
}

func TestJSONParser_Envelope(t *testing.T) {
	data := []byte(`{"messages": [
		{"from": "Recruiter", "content": "When are you available?"},
		{"from": "Candidate", "content": "Any afternoon next week."}
	]}`)

	messages, err := NewJSONParser().Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(messages))
	}
	if messages[1].Text != "Any afternoon next week." {
		t.Errorf("Unexpected text: %q", messages[1].Text)
	}
}

func TestJSONParser_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid JSON", `{"messages": [`},
		{"no messages field", `{"conversation": []}`},
		{"empty document", "   "},
	}

	parser := NewJSONParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parser.Parse([]byte(tt.data)); err == nil {
				t.Error("Expected parse error")
			}
		})
	}
}

func TestDialogParser_TimestampedLines(t *testing.T) {
	data := []byte(strings.Join([]string{
		"[2026-03-01 10:00] Recruiter: Hi, thanks for applying!",
		"[2026-03-01 10:02] Candidate: Happy to chat.",
		"It works for me any afternoon.",
	}, "\n"))

	parser := NewDialogParser()
	if !parser.CanParse(data) {
		t.Fatal("Expected CanParse true for dialog text")
	}

	messages, err := parser.Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(messages))
	}
	if !strings.Contains(messages[1].Text, "any afternoon") {
		t.Errorf("Expected continuation folded into previous message, got %q", messages[1].Text)
	}
	if messages[0].SentAt.IsZero() {
		t.Error("Expected parsed timestamp on first message")
	}
}

func TestDialogParser_BareSpeakerLines(t *testing.T) {
	data := []byte("Recruiter: role is still open\nCandidate: great")

	messages, err := NewDialogParser().Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(messages))
	}
	if messages[0].Sender != "Recruiter" || messages[1].Sender != "Candidate" {
		t.Errorf("Unexpected senders: %s, %s", messages[0].Sender, messages[1].Sender)
	}
}

func TestFactory_DetectFormat(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format string
	}{
		{"json array", `[{"sender":"a","text":"b"}]`, "json"},
		{"json envelope", `{"messages":[]}`, "json"},
		{"dialog", "A: hello\nB: hi", "dialog"},
	}

	factory := NewFactory()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := factory.DetectFormat([]byte(tt.data))
			if err != nil {
				t.Fatalf("DetectFormat failed: %v", err)
			}
			if format != tt.format {
				t.Errorf("Expected format %s, got %s", tt.format, format)
			}
		})
	}

	if _, err := factory.DetectFormat(nil); err == nil {
		t.Error("Expected error for empty sample")
	}
}

func TestParseAuto(t *testing.T) {
	messages, err := ParseAuto([]byte("Recruiter: any questions?\nCandidate: none, thanks"))
	if err != nil {
		t.Fatalf("ParseAuto failed: %v", err)
	}
	if len(messages) != 2 {
		t.Errorf("Expected 2 messages, got %d", len(messages))
	}

	if _, err := ParseAuto([]byte("{}")); err == nil {
		t.Error("Expected error for transcript with no messages")
	}

	if _, err := DefaultFactory.CreateParser("xml"); err == nil {
		t.Error("Expected error for unknown format")
	}
}
