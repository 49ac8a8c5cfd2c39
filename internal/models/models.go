package models

import (
	"encoding/json"
	"strings"
	"time"
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type SourceType string

const (
	SourceWhatsApp SourceType = "whatsapp"
	SourceEmail    SourceType = "email"
	SourceNote     SourceType = "note"
)

func (s SourceType) Valid() bool {
	switch s {
	case SourceWhatsApp, SourceEmail, SourceNote:
		return true
	}
	return false
}

type Category struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"-"`
	Name           string `json:"name"`
	UsageFrequency int    `json:"usage_frequency"`
}

type ContextEntry struct {
	ID                int64           `json:"id"`
	UserID            int64           `json:"-"`
	Content           string          `json:"content"`
	SourceType        SourceType      `json:"source_type"`
	ProcessedInsights json.RawMessage `json:"processed_insights,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

type Task struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"-"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	CategoryID    *int64     `json:"category,omitempty"`
	CategoryName  string     `json:"category_name,omitempty"`
	PriorityScore int        `json:"priority_score"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	Status        TaskStatus `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ValidateTitle requires at least 3 characters after trimming.
func ValidateTitle(title string) error {
	if len(strings.TrimSpace(title)) < 3 {
		return ErrTitleTooShort
	}
	return nil
}

// ValidateContent applies the same minimum-length rule to context content.
func ValidateContent(content string) error {
	if len(strings.TrimSpace(content)) < 3 {
		return ErrContentTooShort
	}
	return nil
}

// ValidateDeadline rejects dates earlier than today. A nil deadline is fine.
func ValidateDeadline(deadline *time.Time, now time.Time) error {
	if deadline == nil {
		return nil
	}
	if deadline.Before(DateOnly(now)) {
		return ErrPastDeadline
	}
	return nil
}

// DateOnly drops the time-of-day part, keeping the location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Truncate caps s at max runes.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

type TaskStats struct {
	Total      int            `json:"total"`
	Pending    int            `json:"pending"`
	InProgress int            `json:"in_progress"`
	Completed  int            `json:"completed"`
	Overdue    int            `json:"overdue"`
	ByCategory map[string]int `json:"by_category"`
}
