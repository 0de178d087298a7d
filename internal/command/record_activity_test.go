package command

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verdantly/wellness-api/internal/domain"
)

type fakeEventInserter struct {
	inserted []domain.ActivityEvent
	err      error
}

func (f *fakeEventInserter) InsertActivityEvent(_ context.Context, event domain.ActivityEvent) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.inserted = append(f.inserted, event)
	return int64(len(f.inserted)), nil
}

type fakeCategoryResolver struct {
	categoryID int64
	err        error
	calls      int
}

func (f *fakeCategoryResolver) ResolveContentCategory(_ context.Context, _ domain.ContentType, _ int64) (int64, error) {
	f.calls++
	return f.categoryID, f.err
}

type fakeInterestAdder struct {
	userID     int64
	categoryID int64
	increment  float64
	calls      int
	err        error
}

func (f *fakeInterestAdder) AddInterest(_ context.Context, userID, categoryID int64, increment float64) error {
	f.calls++
	f.userID = userID
	f.categoryID = categoryID
	f.increment = increment
	return f.err
}

func testCtx() context.Context {
	return domain.ContextWithLogger(context.Background(), slog.New(slog.DiscardHandler))
}

func TestRecordActivity_Execute(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name           string
		req            RecordActivityRequest
		resolved       int64
		resolveErr     error
		insertErr      error
		addInterestErr error
		wantErr        bool
		wantAccepted   bool
		wantCategory   int64
		wantResolves   int
		wantAdds       int
		wantIncrement  float64
	}{
		{
			name: "product_view_accumulates_interest",
			req: RecordActivityRequest{
				UserID: 7, ActivityType: "product_view", ContentType: "product",
				ContentID: 3, TimeSpentSeconds: 45,
			},
			resolved:      5,
			wantAccepted:  true,
			wantCategory:  5,
			wantResolves:  1,
			wantAdds:      1,
			wantIncrement: 5.5,
		},
		{
			name: "explicit_category_skips_resolution",
			req: RecordActivityRequest{
				UserID: 7, ActivityType: "article_view", ContentType: "article",
				ContentID: 3, CategoryID: 9,
			},
			wantAccepted:  true,
			wantCategory:  9,
			wantResolves:  0,
			wantAdds:      1,
			wantIncrement: 1,
		},
		{
			name: "anonymous_event_recorded_without_scoring",
			req: RecordActivityRequest{
				ActivityType: "page_view", ContentType: "page", IPAddress: "203.0.113.9",
			},
			wantAccepted: true,
			wantResolves: 0,
			wantAdds:     0,
		},
		{
			name: "unresolvable_category_still_accepted",
			req: RecordActivityRequest{
				UserID: 7, ActivityType: "product_view", ContentType: "product", ContentID: 404,
			},
			resolved:     0,
			wantAccepted: true,
			wantCategory: 0,
			wantResolves: 1,
			wantAdds:     0,
		},
		{
			name: "resolver_error_swallowed",
			req: RecordActivityRequest{
				UserID: 7, ActivityType: "product_view", ContentType: "product", ContentID: 3,
			},
			resolveErr:   errors.New("database error"),
			wantAccepted: true,
			wantResolves: 1,
			wantAdds:     0,
		},
		{
			name: "accumulator_failure_swallowed",
			req: RecordActivityRequest{
				UserID: 7, ActivityType: "product_view", ContentType: "product",
				ContentID: 3, TimeSpentSeconds: 1000,
			},
			resolved:       5,
			addInterestErr: errors.New("deadlock"),
			wantAccepted:   true,
			wantCategory:   5,
			wantResolves:   1,
			wantAdds:       1,
			wantIncrement:  11,
		},
		{
			name: "insert_failure_reported",
			req: RecordActivityRequest{
				UserID: 7, ActivityType: "page_view", ContentType: "page",
			},
			insertErr: errors.New("storage unavailable"),
			wantErr:   true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inserter := &fakeEventInserter{err: tc.insertErr}
			resolver := &fakeCategoryResolver{categoryID: tc.resolved, err: tc.resolveErr}
			adder := &fakeInterestAdder{err: tc.addInterestErr}

			cmd := NewRecordActivity(inserter, resolver, adder)
			cmd.Now = func() time.Time { return now }

			resp, err := cmd.Execute(testCtx(), tc.req)

			if tc.wantErr {
				require.Error(t, err)
				assert.False(t, resp.Accepted)
				assert.Zero(t, adder.calls)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantAccepted, resp.Accepted)
			assert.Equal(t, tc.wantCategory, resp.CategoryID)
			assert.Equal(t, tc.wantResolves, resolver.calls)
			assert.Equal(t, tc.wantAdds, adder.calls)

			if tc.wantAdds > 0 {
				assert.Equal(t, tc.req.UserID, adder.userID)
				assert.Equal(t, tc.wantCategory, adder.categoryID)
				assert.InDelta(t, tc.wantIncrement, adder.increment, 1e-9)
			}

			require.Len(t, inserter.inserted, 1)
			assert.Equal(t, now, inserter.inserted[0].ViewedAt)
		})
	}
}

func TestRecordActivity_NormalizesVocabulary(t *testing.T) {
	inserter := &fakeEventInserter{}
	cmd := NewRecordActivity(inserter, &fakeCategoryResolver{}, &fakeInterestAdder{})

	_, err := cmd.Execute(testCtx(), RecordActivityRequest{
		UserID:       7,
		ActivityType: "articleView",
		ContentType:  "Articles",
		CategoryID:   2,
	})
	require.NoError(t, err)

	require.Len(t, inserter.inserted, 1)
	assert.Equal(t, domain.ActivityTypeArticleView, inserter.inserted[0].ActivityType)
	assert.Equal(t, domain.ContentTypeArticle, inserter.inserted[0].ContentType)
}
