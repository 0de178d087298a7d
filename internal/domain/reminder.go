package domain

import (
	"strings"
	"time"
)

// ReminderFrequency controls how often a user receives reminders.
type ReminderFrequency string

const (
	ReminderFrequencyDaily  ReminderFrequency = "daily"
	ReminderFrequencyWeekly ReminderFrequency = "weekly"
	ReminderFrequencyNever  ReminderFrequency = "never"
)

// WeeklyReminderWeekday is the one weekday on which weekly-frequency users
// receive their reminder.
const WeeklyReminderWeekday = time.Monday

// ReminderPreference is a user's reminder settings. An empty
// PreferredCategoryIDs set means all categories are allowed.
type ReminderPreference struct {
	UserID               int64             `json:"-"`
	Frequency            ReminderFrequency `json:"frequency"`
	PreferredCategoryIDs []int64           `json:"preferred_category_ids,omitempty"`
	EmailEnabled         bool              `json:"email_enabled"`
	ReminderTime         string            `json:"reminder_time"`
}

// DefaultReminderPreference is applied when a user has never saved settings.
func DefaultReminderPreference(userID int64) ReminderPreference {
	return ReminderPreference{
		UserID:       userID,
		Frequency:    ReminderFrequencyDaily,
		EmailEnabled: true,
		ReminderTime: "09:00",
	}
}

// AllowsCategory reports whether the preference permits reminders about the
// given category.
func (p ReminderPreference) AllowsCategory(categoryID int64) bool {
	if len(p.PreferredCategoryIDs) == 0 {
		return true
	}
	for _, id := range p.PreferredCategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}

// ReminderType classifies a generated reminder.
type ReminderType string

const (
	ReminderTypeMotivationalQuote ReminderType = "motivational_quote"
	ReminderTypeProductReminder   ReminderType = "product_reminder"
)

// DailyReminder is a generated reminder row. At most one motivational_quote
// reminder exists per (user, sent date); the storage layer enforces this.
type DailyReminder struct {
	ID           int64        `json:"id"`
	UserID       int64        `json:"-"`
	ReminderType ReminderType `json:"reminder_type"`
	CategoryID   int64        `json:"category_id,omitempty"`
	ContentID    int64        `json:"content_id,omitempty"`
	Title        string       `json:"title"`
	Message      string       `json:"message"`
	SentDate     string       `json:"sent_date"`
	IsRead       bool         `json:"is_read"`
	CreatedAt    time.Time    `json:"created_at"`
}

// MotivationalQuote is read-only reference data. A zero CategoryID means the
// quote applies to any category.
type MotivationalQuote struct {
	ID         int64  `json:"id"`
	Text       string `json:"text"`
	Author     string `json:"author,omitempty"`
	CategoryID int64  `json:"category_id,omitempty"`
	IsActive   bool   `json:"is_active"`
}

// categoryEncouragements maps category names to a short encouragement line
// appended to quote reminders. Lookup is exact first, then substring, in
// declaration order.
var categoryEncouragements = []struct {
	keyword string
	line    string
}{
	{"meditation", "Take five quiet minutes for yourself today."},
	{"yoga", "A single stretch is a good place to start."},
	{"nutrition", "Small choices at every meal add up."},
	{"fitness", "Your body will thank you for moving today."},
	{"sleep", "Rest is part of the work."},
	{"mindfulness", "Notice one small thing today."},
}

// EncouragementForCategory returns the encouragement line for a category
// name, matching exactly first and then by substring. Returns "" when no
// rule matches.
func EncouragementForCategory(categoryName string) string {
	lowered := strings.ToLower(categoryName)
	for _, e := range categoryEncouragements {
		if lowered == e.keyword {
			return e.line
		}
	}
	for _, e := range categoryEncouragements {
		if strings.Contains(lowered, e.keyword) {
			return e.line
		}
	}
	return ""
}

// ComposeReminderMessage builds the reminder body from a quote and the
// category it was chosen for: quote text, optional attribution, optional
// category encouragement.
func ComposeReminderMessage(quote MotivationalQuote, categoryName string) string {
	var b strings.Builder
	b.WriteString(quote.Text)
	if quote.Author != "" {
		b.WriteString(" - ")
		b.WriteString(quote.Author)
	}
	if line := EncouragementForCategory(categoryName); line != "" {
		b.WriteString("\n\n")
		b.WriteString(line)
	}
	return b.String()
}
