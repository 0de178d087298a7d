package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verdantly/wellness-api/internal/command"
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
}

func (f *fakeCategoryResolver) ResolveContentCategory(_ context.Context, _ domain.ContentType, _ int64) (int64, error) {
	return f.categoryID, nil
}

type fakeInterestAdder struct {
	calls     int
	increment float64
}

func (f *fakeInterestAdder) AddInterest(_ context.Context, _, _ int64, increment float64) error {
	f.calls++
	f.increment = increment
	return nil
}

func TestActivityRecord_ServeHTTP(t *testing.T) {
	cases := []struct {
		name         string
		body         string
		setupContext func(r *http.Request) *http.Request
		resolved     int64
		insertErr    error
		wantStatus   int
		wantAdds     int
		wantUserID   int64
	}{
		{
			name:         "authenticated_view_scores_interest",
			body:         `{"activity_type":"product_view","content_type":"product","content_id":3,"time_spent_seconds":45}`,
			setupContext: testContextWithUserID(7),
			resolved:     5,
			wantStatus:   http.StatusAccepted,
			wantAdds:     1,
			wantUserID:   7,
		},
		{
			name:         "anonymous_view_recorded_without_scoring",
			body:         `{"activity_type":"page_view","content_type":"page"}`,
			setupContext: testContext(),
			wantStatus:   http.StatusAccepted,
			wantAdds:     0,
		},
		{
			name:         "malformed_body",
			body:         `{"activity_type":`,
			setupContext: testContext(),
			wantStatus:   http.StatusBadRequest,
		},
		{
			name:         "storage_failure",
			body:         `{"activity_type":"page_view","content_type":"page"}`,
			setupContext: testContext(),
			insertErr:    errors.New("storage unavailable"),
			wantStatus:   http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inserter := &fakeEventInserter{err: tc.insertErr}
			adder := &fakeInterestAdder{}
			cmd := command.NewRecordActivity(inserter, &fakeCategoryResolver{categoryID: tc.resolved}, adder)

			req := httptest.NewRequest(http.MethodPost, "/v1/activity", strings.NewReader(tc.body))
			req.RemoteAddr = "203.0.113.9:51234"
			req = tc.setupContext(req)
			rec := httptest.NewRecorder()

			ActivityRecord{RecordCmd: cmd}.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantAdds, adder.calls)

			if tc.wantStatus != http.StatusAccepted {
				return
			}

			var resp command.RecordActivityResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.True(t, resp.Accepted)

			require.Len(t, inserter.inserted, 1)
			assert.Equal(t, tc.wantUserID, inserter.inserted[0].UserID)
			assert.Equal(t, "203.0.113.9", inserter.inserted[0].IPAddress)
		})
	}
}

func TestActivityRecord_ForwardedFor(t *testing.T) {
	inserter := &fakeEventInserter{}
	cmd := command.NewRecordActivity(inserter, &fakeCategoryResolver{}, &fakeInterestAdder{})

	body := `{"activity_type":"page_view","content_type":"page"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/activity", strings.NewReader(body))
	req.RemoteAddr = "10.0.0.1:9999"
	req.Header.Set("X-Forwarded-For", "198.51.100.4, 10.0.0.1")
	req = testContext()(req)
	rec := httptest.NewRecorder()

	ActivityRecord{RecordCmd: cmd}.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, inserter.inserted, 1)
	assert.Equal(t, "198.51.100.4", inserter.inserted[0].IPAddress)
}
