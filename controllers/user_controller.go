package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskhub-backend/services"
	"taskhub-backend/utils"
)

type UserController struct {
	UserSvc *services.UserService
	log     *zap.Logger
}

func NewUserController(svc *services.UserService, log *zap.Logger) *UserController {
	return &UserController{UserSvc: svc, log: log}
}

// CreateUser registers a user owned by the calling admin.
func (c *UserController) CreateUser(ctx *gin.Context) {
	var payload signupPayload
	if !bindJSON(ctx, &payload) {
		return
	}
	user, err := c.UserSvc.Create(ctx.Request.Context(), payload.input(), principal(ctx).ID)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

func (c *UserController) GetUsers(ctx *gin.Context) {
	users, err := c.UserSvc.FindAll(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

func (c *UserController) GetUser(ctx *gin.Context) {
	id, ok := utils.ParseID(ctx, "id")
	if !ok {
		return
	}
	user, err := c.UserSvc.FindOne(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

func (c *UserController) UpdateUser(ctx *gin.Context) {
	id, ok := utils.ParseID(ctx, "id")
	if !ok {
		return
	}
	var payload accountUpdatePayload
	if !bindJSON(ctx, &payload) {
		return
	}
	user, err := c.UserSvc.Update(ctx.Request.Context(), id, payload.patch())
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, ok := utils.ParseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.UserSvc.Remove(ctx.Request.Context(), id); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, messageResponse{Message: "User deleted successfully"})
}
