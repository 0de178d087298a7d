package domain

import (
	"strings"
	"time"
)

// ActivityType classifies a recorded activity event.
type ActivityType string

const (
	ActivityTypeArticleView ActivityType = "article_view"
	ActivityTypeProductView ActivityType = "product_view"
	ActivityTypePageView    ActivityType = "page_view"
	ActivityTypeTimeSpent   ActivityType = "time_spent"
)

// ContentType is the kind of entity an activity event refers to.
type ContentType string

const (
	ContentTypeArticle ContentType = "article"
	ContentTypeProduct ContentType = "product"
	ContentTypePage    ContentType = "page"
)

// ActivityEvent is an append-only record of a page view or time-spent ping.
// UserID 0 means the event was anonymous and is tracked by IP only.
type ActivityEvent struct {
	ID               int64        `json:"id"`
	UserID           int64        `json:"user_id,omitempty"`
	IPAddress        string       `json:"-"`
	ActivityType     ActivityType `json:"activity_type"`
	ContentType      ContentType  `json:"content_type"`
	ContentID        int64        `json:"content_id"`
	CategoryID       int64        `json:"category_id,omitempty"`
	TimeSpentSeconds int64        `json:"time_spent_seconds"`
	ViewedAt         time.Time    `json:"viewed_at"`
}

// NormalizeActivityType coerces an arbitrary client-submitted string onto the
// closed activity type vocabulary. Unrecognised values are matched by keyword,
// in this order, and fall back to page_view. Normalization never rejects.
func NormalizeActivityType(raw string) ActivityType {
	switch ActivityType(raw) {
	case ActivityTypeArticleView, ActivityTypeProductView, ActivityTypePageView, ActivityTypeTimeSpent:
		return ActivityType(raw)
	}

	lowered := strings.ToLower(raw)
	switch {
	case strings.Contains(lowered, "article"):
		return ActivityTypeArticleView
	case strings.Contains(lowered, "product"):
		return ActivityTypeProductView
	case strings.Contains(lowered, "time"):
		return ActivityTypeTimeSpent
	default:
		return ActivityTypePageView
	}
}

// NormalizeContentType coerces an arbitrary string onto the closed content
// type vocabulary, falling back to page.
func NormalizeContentType(raw string) ContentType {
	switch ContentType(raw) {
	case ContentTypeArticle, ContentTypeProduct, ContentTypePage:
		return ContentType(raw)
	}

	lowered := strings.ToLower(raw)
	switch {
	case strings.Contains(lowered, "article"):
		return ContentTypeArticle
	case strings.Contains(lowered, "product"):
		return ContentTypeProduct
	default:
		return ContentTypePage
	}
}

// Interest scoring constants. Every qualifying event contributes a base point,
// plus a time-engagement bonus capped so a single long session cannot dominate
// the ranking.
const (
	InterestBasePoints   = 1.0
	InterestTimeWeight   = 0.1
	InterestTimeBonusCap = 10.0
)

// InterestIncrement computes the score contribution of a single event:
// 1 + min(time_spent_seconds * 0.1, 10). Always >= 0, so accumulated scores
// are monotonically non-decreasing.
func InterestIncrement(timeSpentSeconds int64) float64 {
	if timeSpentSeconds < 0 {
		timeSpentSeconds = 0
	}
	bonus := float64(timeSpentSeconds) * InterestTimeWeight
	if bonus > InterestTimeBonusCap {
		bonus = InterestTimeBonusCap
	}
	return InterestBasePoints + bonus
}

// CategoryInterest is a user's accumulated interest score for one category.
type CategoryInterest struct {
	CategoryID   int64     `json:"category_id"`
	CategoryName string    `json:"category_name"`
	Score        float64   `json:"score"`
	LastUpdated  time.Time `json:"-"`
}
