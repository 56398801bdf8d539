package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/survey-auth/internal/logger"
	"github.com/MKhiriev/survey-auth/internal/service"
	"github.com/MKhiriev/survey-auth/internal/store"
	"github.com/MKhiriev/survey-auth/internal/utils"
	"github.com/MKhiriev/survey-auth/internal/validators"
	"github.com/MKhiriev/survey-auth/models"
)

// writeServiceError maps a service-layer error to an HTTP status and a JSON
// error body.
//
// Credential failures intentionally share one generic message so responses
// never reveal whether the username or the password was wrong. Password
// policy violations are the exception: every violated rule is listed so the
// caller can fix all of them in one round trip.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	var policyErr *validators.PolicyViolationError

	switch {
	case errors.As(err, &policyErr):
		log.Err(err).Msg("password policy violated")
		utils.WriteJSON(w, models.ErrorResponse{
			Message:    "Password policy violated.",
			Violations: policyErr.Violations,
		}, http.StatusBadRequest)

	case errors.Is(err, service.ErrInvalidDataProvided):
		log.Err(err).Msg("invalid data provided")
		utils.WriteJSON(w, models.ErrorResponse{Message: "Invalid data provided."}, http.StatusBadRequest)

	case errors.Is(err, service.ErrInvalidCredentials):
		log.Err(err).Msg("invalid credentials")
		utils.WriteJSON(w, models.ErrorResponse{Message: "Invalid username or password."}, http.StatusUnauthorized)

	case errors.Is(err, service.ErrPasswordExpired):
		log.Err(err).Msg("password expired")
		utils.WriteJSON(w, models.ErrorResponse{Message: "Password is expired and must be changed."}, http.StatusUnauthorized)

	case errors.Is(err, service.ErrAccountInactive):
		log.Err(err).Msg("account inactive")
		utils.WriteJSON(w, models.ErrorResponse{Message: "Account is inactive."}, http.StatusUnauthorized)

	case errors.Is(err, service.ErrTokenIsExpiredOrInvalid):
		log.Err(err).Msg("token expired or invalid")
		utils.WriteJSON(w, models.ErrorResponse{Message: "Token is expired or invalid."}, http.StatusUnauthorized)

	case errors.Is(err, service.ErrResetTokenInvalid), errors.Is(err, service.ErrResetTokenExpired):
		log.Err(err).Msg("reset token rejected")
		utils.WriteJSON(w, models.ErrorResponse{Message: "Reset token is invalid or expired."}, http.StatusBadRequest)

	case errors.Is(err, store.ErrUserAlreadyExists):
		log.Err(err).Msg("user already exists")
		utils.WriteJSON(w, models.ErrorResponse{Message: "Username or email is already taken."}, http.StatusConflict)

	case errors.Is(err, store.ErrNoUserWasFound):
		log.Err(err).Msg("no user was found")
		utils.WriteJSON(w, models.ErrorResponse{Message: "User was not found."}, http.StatusNotFound)

	default:
		log.Err(err).Msg("unexpected error")
		utils.WriteJSON(w, models.ErrorResponse{Message: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
	}
}
