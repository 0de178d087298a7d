package command

import (
	"context"
	"fmt"

	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

// GenerateRemindersResult summarises one batch run.
type GenerateRemindersResult struct {
	UsersProcessed int
	Generated      int
}

// GenerateReminders runs the daily reminder generator for every user whose
// preferences allow reminders. Per-user failures are logged and skipped so
// one bad row cannot stall the batch.
type GenerateReminders struct {
	Users    datasources.ReminderUserLister
	Reminder *GetDailyReminder
}

// NewGenerateReminders creates a properly initialized GenerateReminders command.
func NewGenerateReminders(
	users datasources.ReminderUserLister,
	reminder *GetDailyReminder,
) *GenerateReminders {
	return &GenerateReminders{
		Users:    users,
		Reminder: reminder,
	}
}

func (c *GenerateReminders) Execute(ctx context.Context, _ Empty) (GenerateRemindersResult, error) {
	logger := domain.LoggerFromContext(ctx)

	userIDs, err := c.Users.ListReminderEnabledUserIDs(ctx)
	if err != nil {
		return GenerateRemindersResult{}, fmt.Errorf("listing reminder-enabled users: %w", err)
	}

	result := GenerateRemindersResult{UsersProcessed: len(userIDs)}
	for _, userID := range userIDs {
		reminder, err := c.Reminder.Execute(ctx, GetDailyReminderRequest{UserID: userID})
		if err != nil {
			logger.WarnContext(ctx, "failed to generate reminder for user",
				"error", err, "user_id", userID)
			continue
		}
		if reminder != nil {
			result.Generated++
		}
	}

	return result, nil
}
