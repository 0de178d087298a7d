package controller

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/verdantly/wellness-api/internal/command"
	"github.com/verdantly/wellness-api/internal/domain"
)

// ActivityRecordRequest is the JSON request body for recording an event.
// activity_type and content_type are free-form; they are coerced onto the
// closed vocabularies rather than rejected.
type ActivityRecordRequest struct {
	ActivityType     string `json:"activity_type"`
	ContentType      string `json:"content_type"`
	ContentID        int64  `json:"content_id,omitempty"`
	CategoryID       int64  `json:"category_id,omitempty"`
	TimeSpentSeconds int64  `json:"time_spent_seconds,omitempty"`
}

// ActivityRecord handles POST /v1/activity for both anonymous and
// authenticated visitors.
type ActivityRecord struct {
	RecordCmd *command.RecordActivity
}

func (c ActivityRecord) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	var reqBody ActivityRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		logger.ErrorContext(ctx, "unable to parse activity request body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	result, err := c.RecordCmd.Execute(ctx, command.RecordActivityRequest{
		UserID:           domain.UserIDFromContext(ctx),
		IPAddress:        clientIP(r),
		ActivityType:     reqBody.ActivityType,
		ContentType:      reqBody.ContentType,
		ContentID:        reqBody.ContentID,
		CategoryID:       reqBody.CategoryID,
		TimeSpentSeconds: reqBody.TimeSpentSeconds,
	})
	if err != nil {
		logger.ErrorContext(ctx, "unable to record activity event", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)

	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.ErrorContext(ctx, "unable to write activity response", "error", err)
	}
}

// clientIP prefers the leftmost X-Forwarded-For entry, falling back to the
// connection's remote address.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
