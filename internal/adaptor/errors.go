package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"fleet-rental/internal/rental"
	"fleet-rental/pkg/utils"

	"go.uber.org/zap"
)

// writeServiceError maps domain errors onto HTTP responses. Every failure is
// surfaced to the caller; nothing is silently recovered.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var invalidTransition *rental.InvalidTransitionError
	var validation *rental.ValidationError
	var insufficient *rental.InsufficientAvailabilityError
	var noCapacity *rental.NoCapacityConfiguredError

	switch {
	case errors.Is(err, rental.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.As(err, &validation):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", validation.Fields)

	case errors.As(err, &invalidTransition):
		log.Warn(operation+" failed - invalid transition", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.As(err, &insufficient):
		log.Warn(operation+" failed - not enough availability", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.As(err, &noCapacity):
		log.Warn(operation+" failed - no capacity configured", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case strings.Contains(err.Error(), "invalid"):
		log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
