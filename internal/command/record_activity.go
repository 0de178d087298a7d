package command

import (
	"context"
	"fmt"
	"time"

	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

// RecordActivityRequest carries one raw client-submitted activity event.
// ActivityType and ContentType are arbitrary strings; they are coerced onto
// the closed vocabularies rather than validated.
type RecordActivityRequest struct {
	UserID           int64
	IPAddress        string
	ActivityType     string
	ContentType      string
	ContentID        int64
	CategoryID       int64
	TimeSpentSeconds int64
}

// RecordActivityResponse reports whether the event was stored and which
// category it resolved to, if any.
type RecordActivityResponse struct {
	Accepted   bool  `json:"accepted"`
	CategoryID int64 `json:"resolved_category_id,omitempty"`
}

// RecordActivity normalizes and persists an activity event, then feeds the
// interest accumulator. Recording the event is the primary contract; the
// score update is best-effort and never fails the call.
type RecordActivity struct {
	EventInserter    datasources.ActivityEventInserter
	CategoryResolver datasources.ContentCategoryResolver
	InterestAdder    datasources.InterestAdder
	Now              func() time.Time
}

// NewRecordActivity creates a properly initialized RecordActivity command.
func NewRecordActivity(
	eventInserter datasources.ActivityEventInserter,
	categoryResolver datasources.ContentCategoryResolver,
	interestAdder datasources.InterestAdder,
) *RecordActivity {
	return &RecordActivity{
		EventInserter:    eventInserter,
		CategoryResolver: categoryResolver,
		InterestAdder:    interestAdder,
		Now:              time.Now,
	}
}

func (c *RecordActivity) Execute(ctx context.Context, req RecordActivityRequest) (RecordActivityResponse, error) {
	logger := domain.LoggerFromContext(ctx)

	event := domain.ActivityEvent{
		UserID:           req.UserID,
		IPAddress:        req.IPAddress,
		ActivityType:     domain.NormalizeActivityType(req.ActivityType),
		ContentType:      domain.NormalizeContentType(req.ContentType),
		ContentID:        req.ContentID,
		CategoryID:       req.CategoryID,
		TimeSpentSeconds: req.TimeSpentSeconds,
		ViewedAt:         c.Now(),
	}
	if event.TimeSpentSeconds < 0 {
		event.TimeSpentSeconds = 0
	}

	if event.CategoryID == 0 && event.ContentID > 0 {
		categoryID, err := c.CategoryResolver.ResolveContentCategory(ctx, event.ContentType, event.ContentID)
		if err != nil {
			logger.WarnContext(ctx, "failed to resolve content category, storing event without one",
				"error", err, "content_type", event.ContentType, "content_id", event.ContentID)
		} else {
			event.CategoryID = categoryID
		}
	}

	if _, err := c.EventInserter.InsertActivityEvent(ctx, event); err != nil {
		return RecordActivityResponse{}, fmt.Errorf("recording activity event: %w", err)
	}

	if event.UserID > 0 && event.CategoryID > 0 {
		increment := domain.InterestIncrement(event.TimeSpentSeconds)
		if err := c.InterestAdder.AddInterest(ctx, event.UserID, event.CategoryID, increment); err != nil {
			logger.WarnContext(ctx, "failed to accumulate interest score",
				"error", err, "user_id", event.UserID, "category_id", event.CategoryID)
		}
	}

	return RecordActivityResponse{Accepted: true, CategoryID: event.CategoryID}, nil
}
