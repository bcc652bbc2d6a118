package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/unclebandit/adboost-backend/internal/errors"
	"github.com/unclebandit/adboost-backend/internal/response"
	"github.com/unclebandit/adboost-backend/internal/service"
)

// AdHandler serves the read-only ad views.
type AdHandler struct {
	Service *service.AdService
}

func (h *AdHandler) GetAd(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}

	details, err := h.Service.GetAdDetails(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, details)
}

func (h *AdHandler) GetPlatforms(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}

	entries, summary, err := h.Service.PlatformBreakdown(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"data":    entries,
		"summary": summary,
	})
}

func (h *AdHandler) ListLive(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	region := r.URL.Query().Get("region")

	ads, pagination, err := h.Service.ListLive(r.Context(), page, pageSize, region)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"data":       ads,
		"pagination": pagination,
	})
}

func (h *AdHandler) ListUserAds(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		response.Error(w, err)
		return
	}

	ads, err := h.Service.ListByUser(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{"data": ads})
}

func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, appErrors.NewInvalidInput(name, "must be a positive integer")
	}
	return id, nil
}
