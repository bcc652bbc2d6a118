package controller

import (
	"net/http"

	"github.com/unclebandit/adboost-backend/internal/response"
	"github.com/unclebandit/adboost-backend/internal/service"
)

type PaymentController struct {
	PaymentService *service.PaymentService
}

func (c *PaymentController) Initialize(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}

	var body service.InitializeInput
	if err := decode(w, r, &body); err != nil {
		response.Error(w, err)
		return
	}

	session, err := c.PaymentService.Initialize(r.Context(), id, body)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, session)
}

// Verify is the gateway callback.
func (c *PaymentController) Verify(w http.ResponseWriter, r *http.Request) {
	result, err := c.PaymentService.Verify(r.Context(), r.URL.Query().Get("reference"))
	if err != nil {
		response.Error(w, err)
		return
	}

	status := http.StatusOK
	if !result.Published {
		status = http.StatusPaymentRequired
	}
	response.JSON(w, status, result)
}
