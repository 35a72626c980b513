package controllers

import (
	"net/http"
	"strconv"

	"hotel-booking-api/middleware"
	"hotel-booking-api/models"
	"hotel-booking-api/services"
	"hotel-booking-api/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	Rooms     *services.RoomService
	RoomTypes *services.RoomTypeService
}

func NewRoomController(rooms *services.RoomService, roomTypes *services.RoomTypeService) *RoomController {
	return &RoomController{Rooms: rooms, RoomTypes: roomTypes}
}

type CreateRoomRequest struct {
	RoomTypeID uint   `json:"room_type_id" binding:"required"`
	RoomNumber string `json:"room_number" binding:"required,max=10"`
	Floor      int    `json:"floor"`
	Status     string `json:"status" binding:"omitempty,oneof=available occupied maintenance out_of_order"`
	Notes      string `json:"notes" binding:"omitempty,max=500"`
}

type UpdateRoomRequest struct {
	RoomTypeID *uint   `json:"room_type_id"`
	RoomNumber *string `json:"room_number" binding:"omitempty,max=10"`
	Floor      *int    `json:"floor"`
	Status     *string `json:"status" binding:"omitempty,oneof=available occupied maintenance out_of_order"`
	Notes      *string `json:"notes" binding:"omitempty,max=500"`
}

type UpdateRoomStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=available occupied maintenance out_of_order"`
	Notes  string `json:"notes" binding:"omitempty,max=500"`
}

// managesRoomType verifies the caller may manage rooms of the given
// type. Answers the request itself when not.
func (ctrl *RoomController) managesRoomType(c *gin.Context, caller models.Caller, roomTypeID uint) bool {
	rt, err := ctrl.RoomTypes.Get(roomTypeID)
	if err != nil {
		respondServiceError(c, err)
		return false
	}
	if !caller.ManagesHotel(rt.HotelID) {
		utils.JSONError(c, http.StatusForbidden, "not authorized for this hotel")
		return false
	}
	return true
}

func (ctrl *RoomController) List(c *gin.Context) {
	page, perPage := utils.PageParams(c)
	hotelID, _ := strconv.ParseUint(c.Query("hotel_id"), 10, 64)
	roomTypeID, _ := strconv.ParseUint(c.Query("room_type_id"), 10, 64)

	var floor *int
	if raw := c.Query("floor"); raw != "" {
		if f, err := strconv.Atoi(raw); err == nil {
			floor = &f
		}
	}

	result, err := ctrl.Rooms.List(services.RoomFilters{
		HotelID:    uint(hotelID),
		RoomTypeID: uint(roomTypeID),
		Status:     c.Query("status"),
		Floor:      floor,
		Search:     c.Query("search"),
		Page:       page,
		PerPage:    perPage,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}

func (ctrl *RoomController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	room, err := ctrl.Rooms.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctrl *RoomController) Statistics(c *gin.Context) {
	hotelID, _ := strconv.ParseUint(c.Query("hotel_id"), 10, 64)
	stats, err := ctrl.Rooms.Statistics(uint(hotelID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}

func (ctrl *RoomController) Create(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)

	var req CreateRoomRequest
	if !bindJSON(c, &req) {
		return
	}
	if !ctrl.managesRoomType(c, caller, req.RoomTypeID) {
		return
	}

	room, err := ctrl.Rooms.Create(services.CreateRoomInput{
		RoomTypeID: req.RoomTypeID,
		RoomNumber: req.RoomNumber,
		Floor:      req.Floor,
		Status:     req.Status,
		Notes:      req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (ctrl *RoomController) Update(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	room, err := ctrl.Rooms.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !ctrl.managesRoomType(c, caller, room.RoomTypeID) {
		return
	}

	var req UpdateRoomRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.RoomTypeID != nil && !ctrl.managesRoomType(c, caller, *req.RoomTypeID) {
		return
	}

	updated, err := ctrl.Rooms.Update(id, services.UpdateRoomInput{
		RoomTypeID: req.RoomTypeID,
		RoomNumber: req.RoomNumber,
		Floor:      req.Floor,
		Status:     req.Status,
		Notes:      req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, updated)
}

func (ctrl *RoomController) UpdateStatus(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	room, err := ctrl.Rooms.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !ctrl.managesRoomType(c, caller, room.RoomTypeID) {
		return
	}

	var req UpdateRoomStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := ctrl.Rooms.UpdateStatus(id, req.Status, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, updated)
}

func (ctrl *RoomController) Delete(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	room, err := ctrl.Rooms.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !ctrl.managesRoomType(c, caller, room.RoomTypeID) {
		return
	}

	if err := ctrl.Rooms.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "room deleted"})
}
