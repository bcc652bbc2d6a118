package handler

import (
	"net/http"
	"strconv"

	appErrors "github.com/unclebandit/adboost-backend/internal/errors"
	"github.com/unclebandit/adboost-backend/internal/response"
	"github.com/unclebandit/adboost-backend/internal/service"
)

type DashboardHandler struct {
	Businesses    *service.BusinessService
	Announcements *service.AnnouncementService
	Admin         *service.AdminService
}

func (h *DashboardHandler) ListBusinesses(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(r.URL.Query().Get("user_id"))
	if err != nil || userID <= 0 {
		response.Error(w, appErrors.NewInvalidInput("user_id", "must be a positive integer"))
		return
	}

	businesses, err := h.Businesses.ListByUser(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{"data": businesses})
}

func (h *DashboardHandler) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	items, err := h.Announcements.ListPublished(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{"data": items})
}

func (h *DashboardHandler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Admin.Stats(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, stats)
}
