package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"hotel-booking-api/middleware"
	"hotel-booking-api/services"
	"hotel-booking-api/utils"

	"github.com/gin-gonic/gin"
)

type HotelController struct {
	Hotels  *services.HotelService
	Reviews *services.ReviewService
}

func NewHotelController(hotels *services.HotelService, reviews *services.ReviewService) *HotelController {
	return &HotelController{Hotels: hotels, Reviews: reviews}
}

type CreateHotelRequest struct {
	Name         string   `json:"name" binding:"required,min=2,max=255"`
	Description  string   `json:"description" binding:"omitempty"`
	Address      string   `json:"address" binding:"required,max=500"`
	City         string   `json:"city" binding:"required,max=100"`
	Province     string   `json:"province" binding:"omitempty,max=100"`
	PostalCode   string   `json:"postal_code" binding:"omitempty,max=10"`
	Phone        string   `json:"phone" binding:"omitempty,max=20"`
	Email        string   `json:"email" binding:"omitempty,email"`
	Website      string   `json:"website" binding:"omitempty,max=255"`
	Facilities   []string `json:"facilities"`
	Images       []string `json:"images"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	CheckInTime  string   `json:"check_in_time" binding:"omitempty,len=5"`
	CheckOutTime string   `json:"check_out_time" binding:"omitempty,len=5"`
	IsActive     *bool    `json:"is_active"`
}

type UpdateHotelRequest struct {
	Name         *string   `json:"name" binding:"omitempty,min=2,max=255"`
	Description  *string   `json:"description"`
	Address      *string   `json:"address" binding:"omitempty,max=500"`
	City         *string   `json:"city" binding:"omitempty,max=100"`
	Province     *string   `json:"province" binding:"omitempty,max=100"`
	PostalCode   *string   `json:"postal_code" binding:"omitempty,max=10"`
	Phone        *string   `json:"phone" binding:"omitempty,max=20"`
	Email        *string   `json:"email" binding:"omitempty,email"`
	Website      *string   `json:"website" binding:"omitempty,max=255"`
	Facilities   *[]string `json:"facilities"`
	Images       *[]string `json:"images"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	CheckInTime  *string   `json:"check_in_time" binding:"omitempty,len=5"`
	CheckOutTime *string   `json:"check_out_time" binding:"omitempty,len=5"`
	IsActive     *bool     `json:"is_active"`
}

// List is public; visitors only ever see active hotels.
func (ctrl *HotelController) List(c *gin.Context) {
	page, perPage := utils.PageParams(c)
	minRating, _ := strconv.ParseFloat(c.Query("min_rating"), 64)

	var facilities []string
	if raw := c.Query("facilities"); raw != "" {
		facilities = strings.Split(raw, ",")
	}

	activeOnly := true
	if caller, ok := middleware.CallerFrom(c); ok && caller.IsAdmin() {
		activeOnly = c.Query("include_inactive") != "true"
	}

	result, err := ctrl.Hotels.List(services.HotelFilters{
		City:       c.Query("city"),
		Search:     c.Query("search"),
		MinRating:  minRating,
		Facilities: facilities,
		ActiveOnly: activeOnly,
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
		Page:       page,
		PerPage:    perPage,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}

func (ctrl *HotelController) Search(c *gin.Context) {
	page, perPage := utils.PageParams(c)
	minPrice, _ := strconv.ParseFloat(c.Query("min_price"), 64)
	maxPrice, _ := strconv.ParseFloat(c.Query("max_price"), 64)
	capacity, _ := strconv.Atoi(c.Query("capacity"))
	var facilities []string
	if raw := c.Query("facilities"); raw != "" {
		facilities = strings.Split(raw, ",")
	}

	result, err := ctrl.Hotels.Search(services.HotelSearchInput{
		City:       c.Query("city"),
		Search:     c.Query("search"),
		Facilities: facilities,
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		Capacity:   capacity,
		Page:       page,
		PerPage:    perPage,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}

func (ctrl *HotelController) Cities(c *gin.Context) {
	cities, err := ctrl.Hotels.Cities()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, cities)
}

func (ctrl *HotelController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	hotel, err := ctrl.Hotels.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotel)
}

// HotelReviews lists the reviews of one hotel plus its rating breakdown.
func (ctrl *HotelController) HotelReviews(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if _, err := ctrl.Hotels.Get(id); err != nil {
		respondServiceError(c, err)
		return
	}

	page, perPage := utils.PageParams(c)
	rating, _ := strconv.Atoi(c.Query("rating"))

	filters := services.ReviewFilters{
		HotelID:   id,
		Rating:    rating,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Page:      page,
		PerPage:   perPage,
	}

	result, err := ctrl.Reviews.List(filters)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	stats, err := ctrl.Reviews.Statistics(services.ReviewFilters{HotelID: id})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"reviews":    result,
		"statistics": stats,
	})
}

func (ctrl *HotelController) Create(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)

	var req CreateHotelRequest
	if !bindJSON(c, &req) {
		return
	}

	hotel, err := ctrl.Hotels.Create(caller, services.CreateHotelInput{
		Name:         req.Name,
		Description:  req.Description,
		Address:      req.Address,
		City:         req.City,
		Province:     req.Province,
		PostalCode:   req.PostalCode,
		Phone:        req.Phone,
		Email:        req.Email,
		Website:      req.Website,
		Facilities:   req.Facilities,
		Images:       req.Images,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		CheckInTime:  req.CheckInTime,
		CheckOutTime: req.CheckOutTime,
		IsActive:     req.IsActive,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, hotel)
}

func (ctrl *HotelController) Update(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateHotelRequest
	if !bindJSON(c, &req) {
		return
	}

	hotel, err := ctrl.Hotels.Update(caller, id, services.UpdateHotelInput{
		Name:         req.Name,
		Description:  req.Description,
		Address:      req.Address,
		City:         req.City,
		Province:     req.Province,
		PostalCode:   req.PostalCode,
		Phone:        req.Phone,
		Email:        req.Email,
		Website:      req.Website,
		Facilities:   req.Facilities,
		Images:       req.Images,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		CheckInTime:  req.CheckInTime,
		CheckOutTime: req.CheckOutTime,
		IsActive:     req.IsActive,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotel)
}

func (ctrl *HotelController) Delete(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ctrl.Hotels.Delete(caller, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "hotel deleted"})
}
