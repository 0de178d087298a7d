package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

const dailyReminderTitle = "Your Daily Motivation"

// GetDailyReminderRequest identifies the user to generate for.
type GetDailyReminderRequest struct {
	UserID int64
}

// GetDailyReminder returns today's motivational quote reminder, generating
// it on first request of the day. A nil result with a nil error means the
// user's preferences or interest signal suppress reminders entirely.
type GetDailyReminder struct {
	Preferences datasources.ReminderPreferenceGetter
	Reminders   interface {
		datasources.DailyReminderFetcher
		datasources.DailyReminderCreator
	}
	Interests datasources.TopInterestsLister
	Quotes    datasources.QuotePicker
	Now       func() time.Time
}

// NewGetDailyReminder creates a properly initialized GetDailyReminder command.
func NewGetDailyReminder(
	preferences datasources.ReminderPreferenceGetter,
	reminders interface {
		datasources.DailyReminderFetcher
		datasources.DailyReminderCreator
	},
	interests datasources.TopInterestsLister,
	quotes datasources.QuotePicker,
) *GetDailyReminder {
	return &GetDailyReminder{
		Preferences: preferences,
		Reminders:   reminders,
		Interests:   interests,
		Quotes:      quotes,
		Now:         time.Now,
	}
}

func (c *GetDailyReminder) Execute(ctx context.Context, req GetDailyReminderRequest) (*domain.DailyReminder, error) {
	pref, err := c.Preferences.GetReminderPreference(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("fetching reminder preference: %w", err)
	}

	now := c.Now()
	switch pref.Frequency {
	case domain.ReminderFrequencyNever:
		return nil, nil
	case domain.ReminderFrequencyWeekly:
		if now.Weekday() != domain.WeeklyReminderWeekday {
			return nil, nil
		}
	}

	sentDate := now.Format("2006-01-02")

	// Read-through: a second call on the same day returns the existing row.
	existing, err := c.Reminders.GetDailyReminderByDate(ctx, req.UserID, domain.ReminderTypeMotivationalQuote, sentDate)
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, datasources.ErrNotFound) {
		return nil, fmt.Errorf("fetching existing reminder: %w", err)
	}

	category, ok, err := c.pickCategory(ctx, req.UserID, pref)
	if err != nil {
		return nil, err
	}
	if !ok {
		// No interest signal means no personalization is attempted.
		return nil, nil
	}

	quote, err := c.Quotes.PickQuote(ctx, category.CategoryID)
	if errors.Is(err, datasources.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("picking quote: %w", err)
	}

	reminder := domain.DailyReminder{
		UserID:       req.UserID,
		ReminderType: domain.ReminderTypeMotivationalQuote,
		CategoryID:   category.CategoryID,
		Title:        dailyReminderTitle,
		Message:      domain.ComposeReminderMessage(quote, category.CategoryName),
		SentDate:     sentDate,
	}

	created, err := c.Reminders.CreateDailyReminder(ctx, reminder)
	if err != nil {
		return nil, fmt.Errorf("creating daily reminder: %w", err)
	}
	return &created, nil
}

// pickCategory returns the user's highest-scored category allowed by the
// preference's category set.
func (c *GetDailyReminder) pickCategory(
	ctx context.Context, userID int64, pref domain.ReminderPreference,
) (domain.CategoryInterest, bool, error) {
	interests, err := c.Interests.TopInterests(ctx, userID, RecommendTopCategories)
	if err != nil {
		return domain.CategoryInterest{}, false, fmt.Errorf("listing top interests: %w", err)
	}

	for _, interest := range interests {
		if pref.AllowsCategory(interest.CategoryID) {
			return interest, true, nil
		}
	}
	return domain.CategoryInterest{}, false, nil
}
