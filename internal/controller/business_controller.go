package controller

import (
	"net/http"

	"github.com/unclebandit/adboost-backend/internal/response"
	"github.com/unclebandit/adboost-backend/internal/service"
)

type BusinessController struct {
	BusinessService *service.BusinessService
}

func (c *BusinessController) CreateBusiness(w http.ResponseWriter, r *http.Request) {
	var body service.CreateBusinessInput
	if err := decode(w, r, &body); err != nil {
		response.Error(w, err)
		return
	}

	b, err := c.BusinessService.Create(r.Context(), body)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, b)
}

type AnnouncementController struct {
	AnnouncementService *service.AnnouncementService
}

func (c *AnnouncementController) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var body service.CreateAnnouncementInput
	if err := decode(w, r, &body); err != nil {
		response.Error(w, err)
		return
	}

	a, err := c.AnnouncementService.Create(r.Context(), body)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, a)
}
