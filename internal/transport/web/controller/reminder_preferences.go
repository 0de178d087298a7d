package controller

import (
	"encoding/json"
	"net/http"

	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

// ReminderPreferencesGet handles GET /v1/reminders/preferences. Users who
// never saved settings receive the defaults.
type ReminderPreferencesGet struct {
	Preferences datasources.ReminderPreferenceGetter
}

func (c ReminderPreferencesGet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	pref, err := c.Preferences.GetReminderPreference(ctx, domain.UserIDFromContext(ctx))
	if err != nil {
		logger.ErrorContext(ctx, "unable to fetch reminder preferences", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(pref); err != nil {
		logger.ErrorContext(ctx, "unable to write reminder preferences to response", "error", err)
	}
}

// ReminderPreferencesPut handles PUT /v1/reminders/preferences.
type ReminderPreferencesPut struct {
	Preferences datasources.ReminderPreferenceUpserter
}

func (c ReminderPreferencesPut) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	var pref domain.ReminderPreference
	if err := json.NewDecoder(r.Body).Decode(&pref); err != nil {
		logger.ErrorContext(ctx, "unable to parse reminder preferences body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch pref.Frequency {
	case domain.ReminderFrequencyDaily, domain.ReminderFrequencyWeekly, domain.ReminderFrequencyNever:
	default:
		logger.ErrorContext(ctx, "invalid reminder frequency", "frequency", pref.Frequency)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	pref.UserID = domain.UserIDFromContext(ctx)

	if err := c.Preferences.UpsertReminderPreference(ctx, pref); err != nil {
		logger.ErrorContext(ctx, "unable to save reminder preferences", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
