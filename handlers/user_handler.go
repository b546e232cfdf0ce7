package handlers

import (
	"net/http"

	"github.com/TripCast/tripcast-backend/models"
	"github.com/TripCast/tripcast-backend/types"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userModel *models.UserModel
}

func NewUserHandler(userModel *models.UserModel) *UserHandler {
	return &UserHandler{userModel: userModel}
}

// Register handles POST /users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req types.RegisterUserRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	user, err := h.userModel.Register(c.Request.Context(), &req)
	if err != nil {
		handleModelError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login handles POST /users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	user, err := h.userModel.Login(c.Request.Context(), &req)
	if err != nil {
		handleModelError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userModel.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleModelError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
