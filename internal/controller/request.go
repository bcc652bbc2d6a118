package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/unclebandit/adboost-backend/internal/errors"
)

const maxBodyBytes = 1 << 20

func decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return appErrors.NewInvalidInput("body", "invalid body: "+err.Error())
	}
	return nil
}

func idParam(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, appErrors.NewInvalidInput(name, "must be a positive integer")
	}
	return id, nil
}
