package transcript

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/yildizm/TalentTrack/internal/common"
)

// dialogLine matches "[timestamp] Speaker: text" with the bracketed
// timestamp optional.
var dialogLine = regexp.MustCompile(`^(?:\[([^\]]+)\]\s*)?([^:\[\]]{1,64}):\s*(.+)$`)

var dialogTimeFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"15:04:05",
	"15:04",
	time.RFC3339,
}

// DialogParser parses plain-text transcripts of the form
// "[timestamp] Speaker: text", one message per line. Continuation
// lines without a speaker prefix extend the previous message.
type DialogParser struct {
	name string
}

// NewDialogParser creates a new dialog transcript parser
func NewDialogParser() *DialogParser {
	return &DialogParser{name: "dialog"}
}

// Name returns parser name
func (p *DialogParser) Name() string {
	return p.name
}

// CanParse checks whether a majority of the sample's first lines look
// like dialog lines
func (p *DialogParser) CanParse(sample []byte) bool {
	scanner := bufio.NewScanner(bytes.NewReader(sample))

	checked, matched := 0, 0
	for scanner.Scan() && checked < 10 {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		checked++
		if dialogLine.MatchString(line) {
			matched++
		}
	}

	return checked > 0 && matched*2 > checked
}

// Parse parses a whole dialog transcript
func (p *DialogParser) Parse(data []byte) ([]common.ChatMessage, error) {
	return p.ParseReader(bytes.NewReader(data))
}

// ParseReader parses a dialog transcript line by line
func (p *DialogParser) ParseReader(reader io.Reader) ([]common.ChatMessage, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var messages []common.ChatMessage
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		m := dialogLine.FindStringSubmatch(line)
		if m == nil {
			// Continuation of the previous message.
			if len(messages) > 0 {
				messages[len(messages)-1].Text += "\n" + line
			}
			continue
		}

		msg := common.ChatMessage{
			Sender: strings.TrimSpace(m[2]),
			Text:   strings.TrimSpace(m[3]),
		}
		if m[1] != "" {
			msg.SentAt = parseDialogTime(m[1])
		}
		messages = append(messages, msg)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}

	return messages, nil
}

// parseDialogTime tries the supported bracket timestamp formats;
// unparseable stamps are dropped rather than failing the line
func parseDialogTime(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, format := range dialogTimeFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
