package transcript

import (
	"fmt"
	"strings"
	"sync"

	"github.com/yildizm/TalentTrack/internal/common"
)

// DefaultFactory is the default transcript parser factory
var DefaultFactory = NewFactory()

// parserFactory implements the Factory interface
type parserFactory struct {
	parsers map[string]Parser
	mu      sync.RWMutex
}

// NewFactory creates a factory with the json and dialog parsers registered
func NewFactory() Factory {
	f := &parserFactory{
		parsers: make(map[string]Parser),
	}

	f.RegisterParser("json", NewJSONParser())
	f.RegisterParser("dialog", NewDialogParser())

	return f
}

// CreateParser creates a parser for the specified format
func (f *parserFactory) CreateParser(format string) (Parser, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	format = strings.ToLower(format)
	if parser, ok := f.parsers[format]; ok {
		return parser, nil
	}

	return nil, fmt.Errorf("unknown transcript format: %s", format)
}

// DetectFormat attempts to detect the transcript format from a sample
func (f *parserFactory) DetectFormat(sample []byte) (string, error) {
	if len(sample) == 0 {
		return "", fmt.Errorf("empty sample")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	// Check in order of preference; json is unambiguous when it applies.
	for _, format := range []string{"json", "dialog"} {
		if parser, ok := f.parsers[format]; ok && parser.CanParse(sample) {
			return format, nil
		}
	}

	return "dialog", nil
}

// RegisterParser registers a new parser
func (f *parserFactory) RegisterParser(format string, parser Parser) {
	f.mu.Lock()
	defer f.mu.Unlock()

	format = strings.ToLower(format)
	f.parsers[format] = parser
}

// ParseAuto parses a transcript with format detection
func ParseAuto(data []byte) ([]common.ChatMessage, error) {
	format, err := DefaultFactory.DetectFormat(data)
	if err != nil {
		return nil, fmt.Errorf("format detection failed: %w", err)
	}

	parser, err := DefaultFactory.CreateParser(format)
	if err != nil {
		return nil, err
	}

	messages, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("transcript contains no messages")
	}

	return messages, nil
}
