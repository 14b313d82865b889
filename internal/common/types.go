package common

import (
	"strings"
	"time"
)

// Category identifies one of the four analysis result collections
type Category string

const (
	CategoryResume    Category = "resume"
	CategoryInterview Category = "interview"
	CategoryChat      Category = "chat"
	CategoryBias      Category = "bias"
)

// String returns the category name
func (c Category) String() string {
	return string(c)
}

// ParseCategory parses a string into a Category
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "resume", "resumes":
		return CategoryResume, true
	case "interview", "interviews":
		return CategoryInterview, true
	case "chat", "chats":
		return CategoryChat, true
	case "bias":
		return CategoryBias, true
	default:
		return "", false
	}
}

// Categories lists all result categories in display order
func Categories() []Category {
	return []Category{CategoryResume, CategoryInterview, CategoryChat, CategoryBias}
}

// User is the authenticated recruiter account
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// ChatMessage is a single message in a candidate conversation
type ChatMessage struct {
	Sender string    `json:"sender"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at,omitempty"`
}

// Candidate is the manual candidate-intake payload
type Candidate struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Position string `json:"position" validate:"required"`
	Phone    string `json:"phone,omitempty"`
	Notes    string `json:"notes,omitempty"`
}
