package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hotel-booking-api/services"
	"hotel-booking-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

func parseDateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// bindJSON binds and, on validation failure, answers 422 with per-field
// messages. Returns false when the request was already answered.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[strings.ToLower(fe.Field())] = validationMessage(fe)
			}
			utils.JSONValidationErrors(c, http.StatusUnprocessableEntity, fields)
			return false
		}
		utils.JSONError(c, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return "is invalid"
	}
}

// respondServiceError maps the service sentinels onto HTTP statuses:
// missing resources 404, authorization 403, business-rule violations
// 422, everything else 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrHotelNotFound),
		errors.Is(err, services.ErrRoomTypeNotFound),
		errors.Is(err, services.ErrRoomNotFound),
		errors.Is(err, services.ErrBookingNotFound),
		errors.Is(err, services.ErrPaymentNotFound),
		errors.Is(err, services.ErrReviewNotFound),
		errors.Is(err, services.ErrUserNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error())

	case errors.Is(err, services.ErrUnauthorized),
		errors.Is(err, services.ErrNotOwner):
		utils.JSONError(c, http.StatusForbidden, err.Error())

	case errors.Is(err, services.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, err.Error())

	case errors.Is(err, services.ErrCapacityExceeded),
		errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrCheckInPast),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrBookingNotPending),
		errors.Is(err, services.ErrDuplicatePayment),
		errors.Is(err, services.ErrAmountMismatch),
		errors.Is(err, services.ErrPaymentNotPending),
		errors.Is(err, services.ErrPaymentNotPaid),
		errors.Is(err, services.ErrBookingNotCompleted),
		errors.Is(err, services.ErrReviewAlreadyExists),
		errors.Is(err, services.ErrRoomNumberTaken),
		errors.Is(err, services.ErrRoomHasBookings),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrSelfDelete):
		utils.JSONError(c, http.StatusUnprocessableEntity, err.Error())

	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal server error")
	}
}
