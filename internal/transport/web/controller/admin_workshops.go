package controller

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

// AdminWorkshopCreate handles POST /v1/admin/workshops.
type AdminWorkshopCreate struct {
	Creator datasources.WorkshopCreator
}

func (c AdminWorkshopCreate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	var workshop domain.Workshop
	if err := json.NewDecoder(r.Body).Decode(&workshop); err != nil {
		logger.ErrorContext(ctx, "unable to parse workshop body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(workshop.Title) == "" || workshop.CategoryID < 1 ||
		workshop.Capacity < 1 || workshop.ScheduledAt.IsZero() {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	workshopID, err := c.Creator.CreateWorkshop(ctx, workshop)
	if err != nil {
		logger.ErrorContext(ctx, "unable to create workshop", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	workshop.ID = workshopID

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(workshop); err != nil {
		logger.ErrorContext(ctx, "unable to write workshop to response", "error", err)
	}
}
