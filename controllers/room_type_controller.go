package controllers

import (
	"net/http"
	"strconv"

	"hotel-booking-api/middleware"
	"hotel-booking-api/services"
	"hotel-booking-api/utils"

	"github.com/gin-gonic/gin"
)

type RoomTypeController struct {
	RoomTypes *services.RoomTypeService
	Rooms     *services.RoomService
}

func NewRoomTypeController(roomTypes *services.RoomTypeService, rooms *services.RoomService) *RoomTypeController {
	return &RoomTypeController{RoomTypes: roomTypes, Rooms: rooms}
}

type CreateRoomTypeRequest struct {
	HotelID       uint     `json:"hotel_id" binding:"required"`
	Name          string   `json:"name" binding:"required,min=2,max=255"`
	Description   string   `json:"description"`
	PricePerNight float64  `json:"price_per_night" binding:"required,gt=0"`
	Capacity      int      `json:"capacity" binding:"required,min=1"`
	Size          *float64 `json:"size"`
	Facilities    []string `json:"facilities"`
	Images        []string `json:"images"`
	IsAvailable   *bool    `json:"is_available"`
}

type UpdateRoomTypeRequest struct {
	Name          *string   `json:"name" binding:"omitempty,min=2,max=255"`
	Description   *string   `json:"description"`
	PricePerNight *float64  `json:"price_per_night" binding:"omitempty,gt=0"`
	Capacity      *int      `json:"capacity" binding:"omitempty,min=1"`
	Size          *float64  `json:"size"`
	Facilities    *[]string `json:"facilities"`
	Images        *[]string `json:"images"`
	IsAvailable   *bool     `json:"is_available"`
}

func (ctrl *RoomTypeController) List(c *gin.Context) {
	page, perPage := utils.PageParams(c)
	hotelID, _ := strconv.ParseUint(c.Query("hotel_id"), 10, 64)
	minPrice, _ := strconv.ParseFloat(c.Query("min_price"), 64)
	maxPrice, _ := strconv.ParseFloat(c.Query("max_price"), 64)
	capacity, _ := strconv.Atoi(c.Query("capacity"))

	result, err := ctrl.RoomTypes.List(services.RoomTypeFilters{
		HotelID:       uint(hotelID),
		AvailableOnly: c.Query("available") == "true",
		MinPrice:      minPrice,
		MaxPrice:      maxPrice,
		Capacity:      capacity,
		Search:        c.Query("search"),
		Page:          page,
		PerPage:       perPage,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}

func (ctrl *RoomTypeController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	rt, err := ctrl.RoomTypes.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rt)
}

// Availability lists bookable rooms of this type for a date range.
// Dates come as ?check_in=YYYY-MM-DD&check_out=YYYY-MM-DD.
func (ctrl *RoomTypeController) Availability(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	checkIn, okIn := parseDateQuery(c, "check_in")
	checkOut, okOut := parseDateQuery(c, "check_out")
	if !okIn || !okOut {
		utils.JSONError(c, http.StatusBadRequest, "check_in and check_out are required as YYYY-MM-DD")
		return
	}

	if _, err := ctrl.RoomTypes.Get(id); err != nil {
		respondServiceError(c, err)
		return
	}

	rooms, err := ctrl.Rooms.FindAvailableRooms(id, checkIn, checkOut)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"rooms":     rooms,
		"available": len(rooms) > 0,
		"count":     len(rooms),
	})
}

func (ctrl *RoomTypeController) Create(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)

	var req CreateRoomTypeRequest
	if !bindJSON(c, &req) {
		return
	}

	rt, err := ctrl.RoomTypes.Create(caller, services.CreateRoomTypeInput{
		HotelID:       req.HotelID,
		Name:          req.Name,
		Description:   req.Description,
		PricePerNight: req.PricePerNight,
		Capacity:      req.Capacity,
		Size:          req.Size,
		Facilities:    req.Facilities,
		Images:        req.Images,
		IsAvailable:   req.IsAvailable,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, rt)
}

func (ctrl *RoomTypeController) Update(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateRoomTypeRequest
	if !bindJSON(c, &req) {
		return
	}

	rt, err := ctrl.RoomTypes.Update(caller, id, services.UpdateRoomTypeInput{
		Name:          req.Name,
		Description:   req.Description,
		PricePerNight: req.PricePerNight,
		Capacity:      req.Capacity,
		Size:          req.Size,
		Facilities:    req.Facilities,
		Images:        req.Images,
		IsAvailable:   req.IsAvailable,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rt)
}

func (ctrl *RoomTypeController) Delete(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ctrl.RoomTypes.Delete(caller, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "room type deleted"})
}
