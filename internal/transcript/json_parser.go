package transcript

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/yildizm/TalentTrack/internal/common"
)

// JSONParser parses JSON chat exports: either a bare message array or
// an envelope with a "messages" field.
type JSONParser struct {
	name string
}

// NewJSONParser creates a new JSON transcript parser
func NewJSONParser() *JSONParser {
	return &JSONParser{name: "json"}
}

// Name returns parser name
func (p *JSONParser) Name() string {
	return p.name
}

// CanParse checks if the sample appears to be a JSON export
func (p *JSONParser) CanParse(sample []byte) bool {
	trimmed := bytes.TrimSpace(sample)
	return len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{')
}

// Parse parses a whole JSON transcript document
func (p *JSONParser) Parse(data []byte) ([]common.ChatMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	var rawMessages []map[string]interface{}

	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &rawMessages); err != nil {
			return nil, fmt.Errorf("invalid JSON transcript: %w", err)
		}
	} else {
		var envelope struct {
			Messages []map[string]interface{} `json:"messages"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("invalid JSON transcript: %w", err)
		}
		if envelope.Messages == nil {
			return nil, fmt.Errorf("JSON transcript has no messages field")
		}
		rawMessages = envelope.Messages
	}

	messages := make([]common.ChatMessage, 0, len(rawMessages))
	for _, raw := range rawMessages {
		msg := common.ChatMessage{
			Sender: extractString(raw, "sender", "from", "speaker", "author"),
			Text:   extractString(raw, "text", "message", "content", "body"),
		}
		if msg.Text == "" {
			continue
		}
		msg.SentAt = extractTime(raw, "sent_at", "timestamp", "time", "ts")
		messages = append(messages, msg)
	}

	return messages, nil
}

// ParseReader parses a JSON transcript from a reader
func (p *JSONParser) ParseReader(reader io.Reader) ([]common.ChatMessage, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}
	return p.Parse(data)
}

// extractString returns the first present string value among the keys
func extractString(raw map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if val, ok := raw[key]; ok {
			if s, ok := val.(string); ok {
				return s
			}
		}
	}
	return ""
}

// extractTime returns the first parseable timestamp among the keys
func extractTime(raw map[string]interface{}, keys ...string) time.Time {
	for _, key := range keys {
		if val, ok := raw[key]; ok {
			if t, err := parseTimestamp(val); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

// parseTimestamp attempts to parse various timestamp formats
func parseTimestamp(val interface{}) (time.Time, error) {
	switch v := val.(type) {
	case string:
		formats := []string{
			time.RFC3339,
			time.RFC3339Nano,
			"2006-01-02T15:04:05.000Z",
			"2006-01-02 15:04:05",
			"2006-01-02 15:04",
		}
		for _, format := range formats {
			if t, err := time.Parse(format, v); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unknown time format: %s", v)
	case float64:
		// Unix timestamp
		return time.Unix(int64(v), 0), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp type: %T", val)
	}
}
