package controllers

import (
	"encoding/json"
	"net/http"

	"hotel-booking-api/middleware"
	"hotel-booking-api/services"
	"hotel-booking-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type PaymentController struct {
	Payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{Payments: payments}
}

type CreatePaymentRequest struct {
	BookingID      uint            `json:"booking_id" binding:"required"`
	PaymentMethod  string          `json:"payment_method" binding:"required,oneof=credit_card bank_transfer e_wallet virtual_account cash"`
	Amount         float64         `json:"amount" binding:"required,gt=0"`
	PaymentDetails json.RawMessage `json:"payment_details"`
}

type UpdatePaymentRequest struct {
	PaymentMethod  *string          `json:"payment_method" binding:"omitempty,oneof=credit_card bank_transfer e_wallet virtual_account cash"`
	PaymentDetails *json.RawMessage `json:"payment_details"`
	TransactionID  *string          `json:"transaction_id" binding:"omitempty,max=255"`
}

type MarkPaidRequest struct {
	TransactionID string `json:"transaction_id" binding:"omitempty,max=255"`
}

func (ctrl *PaymentController) Create(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)

	var req CreatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	payment, err := ctrl.Payments.Create(caller, services.CreatePaymentInput{
		BookingID:      req.BookingID,
		PaymentMethod:  req.PaymentMethod,
		Amount:         req.Amount,
		PaymentDetails: datatypes.JSON(req.PaymentDetails),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, payment)
}

func (ctrl *PaymentController) Get(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	payment, err := ctrl.Payments.Get(caller, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payment)
}

func (ctrl *PaymentController) Update(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	in := services.UpdatePaymentInput{
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
	}
	if req.PaymentDetails != nil {
		details := datatypes.JSON(*req.PaymentDetails)
		in.PaymentDetails = &details
	}

	payment, err := ctrl.Payments.Update(caller, id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payment)
}

// MarkPaid confirms settlement; the owning booking moves to confirmed in
// the same transaction.
func (ctrl *PaymentController) MarkPaid(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req MarkPaidRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	payment, err := ctrl.Payments.MarkAsPaid(caller, id, req.TransactionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payment)
}

func (ctrl *PaymentController) MarkFailed(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	payment, err := ctrl.Payments.MarkAsFailed(caller, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payment)
}

// MarkRefunded reverses a settled payment and cancels its booking.
func (ctrl *PaymentController) MarkRefunded(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	payment, err := ctrl.Payments.MarkAsRefunded(caller, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payment)
}

func (ctrl *PaymentController) List(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	page, perPage := utils.PageParams(c)

	filters := services.PaymentFilters{
		Status:        c.Query("status"),
		PaymentMethod: c.Query("payment_method"),
		Page:          page,
		PerPage:       perPage,
	}
	if t, ok := parseDateQuery(c, "start_date"); ok {
		filters.StartDate = &t
	}
	if t, ok := parseDateQuery(c, "end_date"); ok {
		filters.EndDate = &t
	}

	result, err := ctrl.Payments.List(caller, filters)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}
