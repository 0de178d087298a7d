package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

// ReminderMarkRead handles POST /v1/reminders/{reminder_id}/read.
type ReminderMarkRead struct {
	ReadMarker datasources.DailyReminderReadMarker
}

func (c ReminderMarkRead) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	reminderID, err := strconv.ParseInt(mux.Vars(r)["reminder_id"], 10, 64)
	if err != nil {
		logger.ErrorContext(ctx, "invalid reminder ID", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := c.ReadMarker.MarkReminderRead(ctx, domain.UserIDFromContext(ctx), reminderID); err != nil {
		if errors.Is(err, datasources.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		logger.ErrorContext(ctx, "unable to mark reminder read", "error", err, "reminder_id", reminderID)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
