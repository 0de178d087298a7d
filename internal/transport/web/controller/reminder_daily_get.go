package controller

import (
	"encoding/json"
	"net/http"

	"github.com/verdantly/wellness-api/internal/command"
	"github.com/verdantly/wellness-api/internal/domain"
)

// ReminderDailyGetResponse carries today's reminder. Data is null when the
// user's preferences or missing interest signal suppress reminders.
type ReminderDailyGetResponse struct {
	Data *domain.DailyReminder `json:"data"`
}

// ReminderDailyGet handles GET /v1/reminders/daily.
type ReminderDailyGet struct {
	ReminderCmd *command.GetDailyReminder
}

func (c ReminderDailyGet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	reminder, err := c.ReminderCmd.Execute(ctx, command.GetDailyReminderRequest{
		UserID: domain.UserIDFromContext(ctx),
	})
	if err != nil {
		logger.ErrorContext(ctx, "unable to get daily reminder", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(ReminderDailyGetResponse{Data: reminder}); err != nil {
		logger.ErrorContext(ctx, "unable to write reminder to response", "error", err)
	}
}
