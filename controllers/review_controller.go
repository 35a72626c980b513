package controllers

import (
	"net/http"
	"strconv"

	"hotel-booking-api/middleware"
	"hotel-booking-api/services"
	"hotel-booking-api/utils"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	Reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{Reviews: reviews}
}

type CreateReviewRequest struct {
	BookingID uint     `json:"booking_id" binding:"required"`
	Rating    int      `json:"rating" binding:"required,min=1,max=5"`
	Comment   string   `json:"comment" binding:"omitempty,max=1000"`
	Images    []string `json:"images" binding:"omitempty,max=5"`
}

type UpdateReviewRequest struct {
	Rating  *int      `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string   `json:"comment" binding:"omitempty,max=1000"`
	Images  *[]string `json:"images" binding:"omitempty,max=5"`
}

func reviewFiltersFromQuery(c *gin.Context) services.ReviewFilters {
	page, perPage := utils.PageParams(c)
	hotelID, _ := strconv.ParseUint(c.Query("hotel_id"), 10, 64)
	rating, _ := strconv.Atoi(c.Query("rating"))
	minRating, _ := strconv.Atoi(c.Query("min_rating"))
	maxRating, _ := strconv.Atoi(c.Query("max_rating"))

	return services.ReviewFilters{
		HotelID:    uint(hotelID),
		Rating:     rating,
		MinRating:  minRating,
		MaxRating:  maxRating,
		WithImages: c.Query("with_images") == "true",
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
		Page:       page,
		PerPage:    perPage,
	}
}

func (ctrl *ReviewController) List(c *gin.Context) {
	result, err := ctrl.Reviews.List(reviewFiltersFromQuery(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}

func (ctrl *ReviewController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	review, err := ctrl.Reviews.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, review)
}

// MyReviews lists the authenticated user's own reviews.
func (ctrl *ReviewController) MyReviews(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	filters := reviewFiltersFromQuery(c)
	filters.UserID = caller.ID

	result, err := ctrl.Reviews.List(filters)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}

func (ctrl *ReviewController) Statistics(c *gin.Context) {
	hotelID, _ := strconv.ParseUint(c.Query("hotel_id"), 10, 64)
	stats, err := ctrl.Reviews.Statistics(services.ReviewFilters{HotelID: uint(hotelID)})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}

func (ctrl *ReviewController) Create(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)

	var req CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := ctrl.Reviews.Create(caller, services.CreateReviewInput{
		BookingID: req.BookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Images:    req.Images,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, review)
}

func (ctrl *ReviewController) Update(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := ctrl.Reviews.Update(caller, id, services.UpdateReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
		Images:  req.Images,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, review)
}

func (ctrl *ReviewController) Delete(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ctrl.Reviews.Delete(caller, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "review deleted"})
}
