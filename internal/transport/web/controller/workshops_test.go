package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/verdantly/wellness-api/internal/datasources"
)

type fakeWorkshopRegistrar struct {
	err        error
	workshopID int64
	userID     int64
}

func (f *fakeWorkshopRegistrar) RegisterForWorkshop(_ context.Context, workshopID, userID int64) error {
	f.workshopID = workshopID
	f.userID = userID
	return f.err
}

func TestWorkshopRegister_ServeHTTP(t *testing.T) {
	cases := []struct {
		name       string
		workshopID string
		err        error
		wantStatus int
	}{
		{
			name:       "successful_registration",
			workshopID: "5",
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "workshop_full",
			workshopID: "5",
			err:        datasources.ErrWorkshopFull,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "already_registered",
			workshopID: "5",
			err:        datasources.ErrAlreadyRegistered,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "unknown_workshop",
			workshopID: "404",
			err:        datasources.ErrNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "invalid_workshop_id",
			workshopID: "abc",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			registrar := &fakeWorkshopRegistrar{err: tc.err}

			req := httptest.NewRequest(http.MethodPost, "/v1/workshops/"+tc.workshopID+"/register", nil)
			req = mux.SetURLVars(req, map[string]string{"workshop_id": tc.workshopID})
			req = testContextWithUserID(7)(req)
			rec := httptest.NewRecorder()

			WorkshopRegister{Registrar: registrar}.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)

			if tc.wantStatus == http.StatusNoContent {
				assert.Equal(t, int64(5), registrar.workshopID)
				assert.Equal(t, int64(7), registrar.userID)
			}
		})
	}
}
