package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskhub-backend/models"
	"taskhub-backend/services"
	"taskhub-backend/utils"
)

type createRequestPayload struct {
	RequestType     models.RequestType `json:"requestType" binding:"required,oneof=firstName lastName email password"`
	RequestedValue  string             `json:"requestedValue" binding:"required,min=1"`
	CurrentPassword *string            `json:"currentPassword" binding:"omitempty,min=6"`
}

type RequestController struct {
	RequestSvc *services.RequestService
	log        *zap.Logger
}

func NewRequestController(svc *services.RequestService, log *zap.Logger) *RequestController {
	return &RequestController{RequestSvc: svc, log: log}
}

func (c *RequestController) CreateRequest(ctx *gin.Context) {
	var payload createRequestPayload
	if !bindJSON(ctx, &payload) {
		return
	}
	req, err := c.RequestSvc.CreateRequest(ctx.Request.Context(), principal(ctx).ID, services.RequestInput{
		RequestType:     payload.RequestType,
		RequestedValue:  payload.RequestedValue,
		CurrentPassword: payload.CurrentPassword,
	})
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, req)
}

// GET /request/my-requests
func (c *RequestController) GetMyRequests(ctx *gin.Context) {
	list, err := c.RequestSvc.FindAllByUser(ctx.Request.Context(), principal(ctx).ID)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// GET /request/admin-requests
func (c *RequestController) GetAdminRequests(ctx *gin.Context) {
	list, err := c.RequestSvc.FindAllByAdmin(ctx.Request.Context(), principal(ctx).ID)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

func (c *RequestController) GetRequest(ctx *gin.Context) {
	id, ok := utils.ParseID(ctx, "id")
	if !ok {
		return
	}
	req, err := c.RequestSvc.FindOne(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	if req == nil {
		respondError(ctx, c.log, services.NotFound("Request with ID %d not found", id))
		return
	}
	ctx.JSON(http.StatusOK, req)
}

func (c *RequestController) ApproveRequest(ctx *gin.Context) {
	id, ok := utils.ParseID(ctx, "id")
	if !ok {
		return
	}
	req, err := c.RequestSvc.ApproveRequest(ctx.Request.Context(), id, principal(ctx).ID)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, req)
}

func (c *RequestController) RejectRequest(ctx *gin.Context) {
	id, ok := utils.ParseID(ctx, "id")
	if !ok {
		return
	}
	req, err := c.RequestSvc.RejectRequest(ctx.Request.Context(), id, principal(ctx).ID)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, req)
}
