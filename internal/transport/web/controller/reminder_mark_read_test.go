package controller

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/verdantly/wellness-api/internal/datasources"
)

type fakeReminderReadMarker struct {
	err        error
	userID     int64
	reminderID int64
}

func (f *fakeReminderReadMarker) MarkReminderRead(_ context.Context, userID, reminderID int64) error {
	f.userID = userID
	f.reminderID = reminderID
	return f.err
}

func TestReminderMarkRead_ServeHTTP(t *testing.T) {
	cases := []struct {
		name       string
		reminderID string
		err        error
		wantStatus int
	}{
		{
			name:       "marks_own_reminder_read",
			reminderID: "12",
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "unknown_or_foreign_reminder",
			reminderID: "999",
			err:        datasources.ErrNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "invalid_reminder_id",
			reminderID: "abc",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "storage_failure",
			reminderID: "12",
			err:        errors.New("connection lost"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			marker := &fakeReminderReadMarker{err: tc.err}

			req := httptest.NewRequest(http.MethodPost, "/v1/reminders/"+tc.reminderID+"/read", nil)
			req = mux.SetURLVars(req, map[string]string{"reminder_id": tc.reminderID})
			req = testContextWithUserID(7)(req)
			rec := httptest.NewRecorder()

			ReminderMarkRead{ReadMarker: marker}.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)

			if tc.wantStatus == http.StatusNoContent {
				assert.Equal(t, int64(7), marker.userID)
				assert.Equal(t, int64(12), marker.reminderID)
			}
		})
	}
}
