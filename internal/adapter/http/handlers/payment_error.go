package handlers

import (
	"errors"
	"net/http"

	"github.com/seribro/escrow-service/internal/usecase"
	"github.com/seribro/escrow-service/pkg"
)

var errMissingActor = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing or malformed bearer token", http.StatusUnauthorized)

// mapPaymentError translates use case sentinels into the transport error
// taxonomy. Unknown errors become opaque 500s so internals never leak.
func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidProjectID),
		errors.Is(err, usecase.ErrProjectNotPayable),
		errors.Is(err, usecase.ErrInvalidCapturePayload),
		errors.Is(err, usecase.ErrInvalidReleaseMethod),
		errors.Is(err, usecase.ErrRefundReasonRequired):
		return pkg.NewDomainErrorSimple("VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidSignature):
		return pkg.NewDomainErrorSimple("SIGNATURE_ERROR", "Signature verification failed", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrIllegalTransition),
		errors.Is(err, usecase.ErrOpenEscrowExists),
		errors.Is(err, usecase.ErrDuplicateCaptureRef):
		return pkg.NewDomainErrorSimple("CONFLICT", err.Error(), http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrProjectNotFound):
		return pkg.NewDomainErrorSimple("NOT_FOUND", "Project not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrNotProjectOwner),
		errors.Is(err, usecase.ErrActorNotAuthorized),
		errors.Is(err, usecase.ErrAccessDenied):
		return pkg.NewDomainErrorSimple("AUTHORIZATION_ERROR", err.Error(), http.StatusForbidden)
	case errors.Is(err, usecase.ErrUpstreamUnavailable):
		return pkg.NewDomainErrorSimple("GATEWAY_UNAVAILABLE", "A required upstream service is unavailable", http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
