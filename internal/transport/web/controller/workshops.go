package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

const upcomingWorkshopsLimit = 20

// WorkshopsList handles GET /v1/workshops, listing upcoming workshops
// soonest first.
type WorkshopsList struct {
	Lister datasources.WorkshopLister
}

type WorkshopsListResponse struct {
	Data []domain.Workshop `json:"data"`
}

func (c WorkshopsList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	workshops, err := c.Lister.ListUpcomingWorkshops(ctx, upcomingWorkshopsLimit)
	if err != nil {
		logger.ErrorContext(ctx, "unable to fetch workshops", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if workshops == nil {
		workshops = []domain.Workshop{}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(WorkshopsListResponse{Data: workshops}); err != nil {
		logger.ErrorContext(ctx, "unable to write workshops to response", "error", err)
	}
}

// WorkshopRegister handles POST /v1/workshops/{workshop_id}/register.
type WorkshopRegister struct {
	Registrar datasources.WorkshopRegistrar
}

func (c WorkshopRegister) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	workshopID, err := strconv.ParseInt(mux.Vars(r)["workshop_id"], 10, 64)
	if err != nil {
		logger.ErrorContext(ctx, "invalid workshop ID", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	err = c.Registrar.RegisterForWorkshop(ctx, workshopID, domain.UserIDFromContext(ctx))
	if err != nil {
		switch {
		case errors.Is(err, datasources.ErrNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, datasources.ErrWorkshopFull), errors.Is(err, datasources.ErrAlreadyRegistered):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			if encErr := json.NewEncoder(w).Encode(map[string]string{
				"error": err.Error(),
			}); encErr != nil {
				logger.ErrorContext(ctx, "unable to write error response", "error", encErr)
			}
		default:
			logger.ErrorContext(ctx, "unable to register for workshop",
				"error", err, "workshop_id", workshopID)
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
