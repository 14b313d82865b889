package transcript

import (
	"io"

	"github.com/yildizm/TalentTrack/internal/common"
)

// Parser defines the interface for transcript parsers
type Parser interface {
	// Parse parses a whole transcript document
	Parse(data []byte) ([]common.ChatMessage, error)

	// ParseReader parses a transcript from a reader
	ParseReader(reader io.Reader) ([]common.ChatMessage, error)

	// CanParse checks if this parser can handle the given sample
	CanParse(sample []byte) bool

	// Name returns the parser name
	Name() string
}

// Factory creates parsers based on format detection
type Factory interface {
	// CreateParser creates the parser for a named format
	CreateParser(format string) (Parser, error)

	// DetectFormat attempts to detect the transcript format from a sample
	DetectFormat(sample []byte) (string, error)

	// RegisterParser registers a new parser type
	RegisterParser(format string, parser Parser)
}
