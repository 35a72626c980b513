package controllers

import (
	"net/http"
	"strconv"
	"time"

	"hotel-booking-api/middleware"
	"hotel-booking-api/services"
	"hotel-booking-api/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	Bookings *services.BookingService
	Reviews  *services.ReviewService
}

func NewBookingController(bookings *services.BookingService, reviews *services.ReviewService) *BookingController {
	return &BookingController{Bookings: bookings, Reviews: reviews}
}

type CreateBookingRequest struct {
	HotelID         uint   `json:"hotel_id" binding:"required"`
	RoomTypeID      uint   `json:"room_type_id" binding:"required"`
	CheckInDate     string `json:"check_in_date" binding:"required"`
	CheckOutDate    string `json:"check_out_date" binding:"required"`
	Guests          int    `json:"guests" binding:"required,min=1"`
	SpecialRequests string `json:"special_requests" binding:"omitempty,max=1000"`
}

type UpdateBookingRequest struct {
	CheckInDate     *string `json:"check_in_date"`
	CheckOutDate    *string `json:"check_out_date"`
	Guests          *int    `json:"guests" binding:"omitempty,min=1"`
	SpecialRequests *string `json:"special_requests" binding:"omitempty,max=1000"`
	Status          *string `json:"status" binding:"omitempty,oneof=pending confirmed cancelled completed"`
}

func parseDateField(c *gin.Context, name, raw string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		utils.JSONValidationErrors(c, http.StatusUnprocessableEntity,
			map[string]string{name: "must be a date in YYYY-MM-DD format"})
		return time.Time{}, false
	}
	return t, true
}

func (ctrl *BookingController) Create(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)

	var req CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	checkIn, ok := parseDateField(c, "check_in_date", req.CheckInDate)
	if !ok {
		return
	}
	checkOut, ok := parseDateField(c, "check_out_date", req.CheckOutDate)
	if !ok {
		return
	}

	booking, err := ctrl.Bookings.Create(caller, services.CreateBookingInput{
		HotelID:         req.HotelID,
		RoomTypeID:      req.RoomTypeID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		Guests:          req.Guests,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

func (ctrl *BookingController) List(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	page, perPage := utils.PageParams(c)
	userID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)
	hotelID, _ := strconv.ParseUint(c.Query("hotel_id"), 10, 64)

	filters := services.BookingFilters{
		UserID:  uint(userID),
		HotelID: uint(hotelID),
		Status:  c.Query("status"),
		Search:  c.Query("search"),
		Page:    page,
		PerPage: perPage,
	}
	if t, ok := parseDateQuery(c, "start_date"); ok {
		filters.StartDate = &t
	}
	if t, ok := parseDateQuery(c, "end_date"); ok {
		filters.EndDate = &t
	}

	result, err := ctrl.Bookings.List(caller, filters)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}

func (ctrl *BookingController) Get(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	booking, err := ctrl.Bookings.Get(caller, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (ctrl *BookingController) Update(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	in := services.UpdateBookingInput{
		Guests:          req.Guests,
		SpecialRequests: req.SpecialRequests,
		Status:          req.Status,
	}
	if req.CheckInDate != nil {
		t, ok := parseDateField(c, "check_in_date", *req.CheckInDate)
		if !ok {
			return
		}
		in.CheckInDate = &t
	}
	if req.CheckOutDate != nil {
		t, ok := parseDateField(c, "check_out_date", *req.CheckOutDate)
		if !ok {
			return
		}
		in.CheckOutDate = &t
	}

	booking, err := ctrl.Bookings.Update(caller, id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (ctrl *BookingController) Confirm(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	booking, err := ctrl.Bookings.Confirm(caller, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (ctrl *BookingController) Cancel(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	booking, err := ctrl.Bookings.Cancel(caller, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (ctrl *BookingController) Complete(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	booking, err := ctrl.Bookings.Complete(caller, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (ctrl *BookingController) Delete(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ctrl.Bookings.Delete(caller, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "booking deleted"})
}

// CanReview tells a client whether the review button should show for a
// booking.
func (ctrl *BookingController) CanReview(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	can, err := ctrl.Reviews.CanReview(caller, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"can_review": can})
}
