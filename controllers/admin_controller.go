package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskhub-backend/services"
	"taskhub-backend/utils"
)

type accountUpdatePayload struct {
	FirstName *string `json:"firstName" binding:"omitempty,min=3"`
	LastName  *string `json:"lastName" binding:"omitempty,min=3"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Password  *string `json:"password" binding:"omitempty,min=6"`
}

func (p accountUpdatePayload) patch() services.AccountPatch {
	return services.AccountPatch{FirstName: p.FirstName, LastName: p.LastName, Email: p.Email, Password: p.Password}
}

type AdminController struct {
	AdminSvc *services.AdminService
	log      *zap.Logger
}

func NewAdminController(svc *services.AdminService, log *zap.Logger) *AdminController {
	return &AdminController{AdminSvc: svc, log: log}
}

func (c *AdminController) GetAdmins(ctx *gin.Context) {
	admins, err := c.AdminSvc.FindAll(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, admins)
}

func (c *AdminController) GetAdmin(ctx *gin.Context) {
	id, ok := utils.ParseID(ctx, "id")
	if !ok {
		return
	}
	admin, err := c.AdminSvc.FindOne(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, admin)
}

func (c *AdminController) UpdateAdmin(ctx *gin.Context) {
	id, ok := utils.ParseID(ctx, "id")
	if !ok {
		return
	}
	var payload accountUpdatePayload
	if !bindJSON(ctx, &payload) {
		return
	}
	admin, err := c.AdminSvc.Update(ctx.Request.Context(), id, payload.patch())
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, admin)
}

func (c *AdminController) DeleteAdmin(ctx *gin.Context) {
	id, ok := utils.ParseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.AdminSvc.Remove(ctx.Request.Context(), id); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, messageResponse{Message: "Admin deleted successfully"})
}
