package controllers

import (
	"net/http"

	"hotel-booking-api/middleware"
	"hotel-booking-api/services"
	"hotel-booking-api/utils"

	"github.com/gin-gonic/gin"
)

// UserController covers the admin-only user management endpoints.
type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

type AdminUpdateUserRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=2,max=255"`
	Email           *string `json:"email" binding:"omitempty,email"`
	Phone           *string `json:"phone" binding:"omitempty,max=20"`
	Address         *string `json:"address" binding:"omitempty,max=500"`
	Password        *string `json:"password" binding:"omitempty,min=8"`
	Role            *string `json:"role" binding:"omitempty,oneof=admin hotel_manager user"`
	ManagedHotelIDs *[]uint `json:"managed_hotel_ids"`
}

func (ctrl *UserController) List(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	page, perPage := utils.PageParams(c)

	result, err := ctrl.Users.List(caller, services.UserFilters{
		Role:    c.Query("role"),
		Search:  c.Query("search"),
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}

func (ctrl *UserController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	user, err := ctrl.Users.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}

func (ctrl *UserController) Update(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req AdminUpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := ctrl.Users.AdminUpdate(caller, id, services.AdminUpdateUserInput{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Address:         req.Address,
		Password:        req.Password,
		Role:            req.Role,
		ManagedHotelIDs: req.ManagedHotelIDs,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}

func (ctrl *UserController) Delete(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ctrl.Users.Delete(caller, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "user deleted"})
}
