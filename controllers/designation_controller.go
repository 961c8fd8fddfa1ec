package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskhub-backend/services"
	"taskhub-backend/utils"
)

type createDesignationPayload struct {
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,min=10,max=500"`
}

type updateDesignationPayload struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,min=10,max=500"`
}

type DesignationController struct {
	DesignationSvc *services.DesignationService
	log            *zap.Logger
}

func NewDesignationController(svc *services.DesignationService, log *zap.Logger) *DesignationController {
	return &DesignationController{DesignationSvc: svc, log: log}
}

func (c *DesignationController) CreateDesignation(ctx *gin.Context) {
	var payload createDesignationPayload
	if !bindJSON(ctx, &payload) {
		return
	}
	d, err := c.DesignationSvc.Create(ctx.Request.Context(), services.DesignationInput{
		Name:        payload.Name,
		Description: payload.Description,
	})
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, d)
}

func (c *DesignationController) GetDesignations(ctx *gin.Context) {
	list, err := c.DesignationSvc.FindAll(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

func (c *DesignationController) GetDesignation(ctx *gin.Context) {
	id, ok := utils.ParseID(ctx, "id")
	if !ok {
		return
	}
	d, err := c.DesignationSvc.FindOne(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, d)
}

func (c *DesignationController) UpdateDesignation(ctx *gin.Context) {
	id, ok := utils.ParseID(ctx, "id")
	if !ok {
		return
	}
	var payload updateDesignationPayload
	if !bindJSON(ctx, &payload) {
		return
	}
	d, err := c.DesignationSvc.Update(ctx.Request.Context(), id, services.DesignationPatch{
		Name:        payload.Name,
		Description: payload.Description,
	})
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, d)
}

func (c *DesignationController) DeleteDesignation(ctx *gin.Context) {
	id, ok := utils.ParseID(ctx, "id")
	if !ok {
		return
	}
	d, err := c.DesignationSvc.Remove(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, d)
}
