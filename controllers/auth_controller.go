package controllers

import (
	"log"
	"net/http"

	"hotel-booking-api/middleware"
	"hotel-booking-api/services"
	"hotel-booking-api/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Users *services.UserService
}

func NewAuthController(users *services.UserService) *AuthController {
	return &AuthController{Users: users}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone" binding:"omitempty,max=20"`
	Address  string `json:"address" binding:"omitempty,max=500"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=255"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
	Address  *string `json:"address" binding:"omitempty,max=500"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

func (ctrl *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := ctrl.Users.Register(services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	token, err := utils.CreateToken(user.ID, user.Role)
	if err != nil {
		log.Printf("token signing failed for user %d: %v", user.ID, err)
		utils.JSONError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, gin.H{"user": user, "token": token})
}

func (ctrl *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := ctrl.Users.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"user": user, "token": token})
}

func (ctrl *AuthController) Profile(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	user, err := ctrl.Users.Get(caller.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}

func (ctrl *AuthController) UpdateProfile(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)

	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := ctrl.Users.UpdateProfile(caller.ID, services.UpdateProfileInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Address:  req.Address,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}
