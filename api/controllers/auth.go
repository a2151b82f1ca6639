package controllers

import (
	"net/http"

	"github.com/sricodings/balashop/api/responses"
	"github.com/sricodings/balashop/api/validators"
	authsvc "github.com/sricodings/balashop/internal/auth"
	"github.com/sricodings/balashop/pkg/logger"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Message string            `json:"message"`
	User    *authsvc.Identity `json:"user"`
}

// Login checks dashboard credentials.
func Login(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		identity, err := svc.Login(r.Context(), payload.Username, payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, loginResponse{Message: "Login successful", User: identity})
	}
}
