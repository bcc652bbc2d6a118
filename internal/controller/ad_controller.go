package controller

import (
	"net/http"

	"github.com/unclebandit/adboost-backend/internal/response"
	"github.com/unclebandit/adboost-backend/internal/service"
)

type AdController struct {
	AdService         *service.AdService
	PublishService    *service.PublishService
	EngagementService *service.EngagementService
	ContactService    *service.ContactService
}

func (c *AdController) Quote(w http.ResponseWriter, r *http.Request) {
	var body service.QuoteInput
	if err := decode(w, r, &body); err != nil {
		response.Error(w, err)
		return
	}

	quote, err := c.AdService.Quote(body)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, quote)
}

func (c *AdController) CreateAd(w http.ResponseWriter, r *http.Request) {
	var body service.CreateAdInput
	if err := decode(w, r, &body); err != nil {
		response.Error(w, err)
		return
	}

	result, err := c.AdService.CreateAd(r.Context(), body)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, result)
}

// Publish is the manual trigger; paid ads are normally published by the
// queue subscriber right after payment.
func (c *AdController) Publish(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}

	entries, err := c.PublishService.Publish(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"ad_id":     id,
		"platforms": entries,
	})
}

func (c *AdController) TrackEngagement(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}

	var body struct {
		Type string `json:"type"`
	}
	if err := decode(w, r, &body); err != nil {
		response.Error(w, err)
		return
	}

	if err := c.EngagementService.Track(r.Context(), id, body.Type); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (c *AdController) Contact(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}

	var body service.ContactInput
	if err := decode(w, r, &body); err != nil {
		response.Error(w, err)
		return
	}

	result, err := c.ContactService.Send(r.Context(), id, body)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}
