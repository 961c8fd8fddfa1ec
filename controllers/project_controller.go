package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskhub-backend/models"
	"taskhub-backend/services"
	"taskhub-backend/utils"
)

type createProjectPayload struct {
	Name        string                `json:"name" binding:"required,min=3"`
	Description *string               `json:"description" binding:"omitempty,min=10"`
	Status      *models.ProjectStatus `json:"status" binding:"omitempty,oneof=active inactive completed"`
}

type updateProjectPayload struct {
	Name        *string               `json:"name" binding:"omitempty,min=3"`
	Description *string               `json:"description" binding:"omitempty,min=10"`
	Status      *models.ProjectStatus `json:"status" binding:"omitempty,oneof=active inactive completed"`
}

type assignUserPayload struct {
	UserID uint `json:"userId" binding:"required,gt=0"`
}

type designationRefPayload struct {
	DesignationID uint `json:"designationId" binding:"required,gt=0"`
}

type assignedUsersResponse struct {
	AssignedUsers []string `json:"assignedUsers"`
}

type assignedDesignationsResponse struct {
	AssignedDesignations []string `json:"assignedDesignations"`
}

type ProjectController struct {
	ProjectSvc *services.ProjectService
	log        *zap.Logger
}

func NewProjectController(svc *services.ProjectService, log *zap.Logger) *ProjectController {
	return &ProjectController{ProjectSvc: svc, log: log}
}

func (c *ProjectController) CreateProject(ctx *gin.Context) {
	var payload createProjectPayload
	if !bindJSON(ctx, &payload) {
		return
	}
	project, err := c.ProjectSvc.Create(ctx.Request.Context(), principal(ctx).ID, services.ProjectInput{
		Name:        payload.Name,
		Description: payload.Description,
		Status:      payload.Status,
	})
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, project)
}

// GetProjects lists the caller's own projects for admins and their
// memberships for users.
func (c *ProjectController) GetProjects(ctx *gin.Context) {
	p := principal(ctx)
	projects, err := c.ProjectSvc.FindAll(ctx.Request.Context(), p.ID, p.Role)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, projects)
}

func (c *ProjectController) GetProject(ctx *gin.Context) {
	id, ok := utils.ParseID(ctx, "id")
	if !ok {
		return
	}
	project, err := c.ProjectSvc.FindOne(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	if project == nil {
		respondError(ctx, c.log, services.NotFound("Project with ID %d not found", id))
		return
	}
	ctx.JSON(http.StatusOK, project)
}

func (c *ProjectController) UpdateProject(ctx *gin.Context) {
	id, ok := utils.ParseID(ctx, "id")
	if !ok {
		return
	}
	var payload updateProjectPayload
	if !bindJSON(ctx, &payload) {
		return
	}
	project, err := c.ProjectSvc.Update(ctx.Request.Context(), id, principal(ctx).ID, services.ProjectPatch{
		Name:        payload.Name,
		Description: payload.Description,
		Status:      payload.Status,
	})
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, project)
}

func (c *ProjectController) DeleteProject(ctx *gin.Context) {
	id, ok := utils.ParseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.ProjectSvc.Remove(ctx.Request.Context(), id, principal(ctx).ID); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, messageResponse{Message: "Project deleted successfully"})
}

// POST /project/:id/assign-user
func (c *ProjectController) AssignUser(ctx *gin.Context) {
	id, ok := utils.ParseID(ctx, "id")
	if !ok {
		return
	}
	var payload assignUserPayload
	if !bindJSON(ctx, &payload) {
		return
	}
	names, err := c.ProjectSvc.AssignUser(ctx.Request.Context(), id, payload.UserID, principal(ctx).ID)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, assignedUsersResponse{AssignedUsers: names})
}

// DELETE /project/:id/remove-user/:userId
func (c *ProjectController) RemoveUser(ctx *gin.Context) {
	id, ok := utils.ParseID(ctx, "id")
	if !ok {
		return
	}
	userID, ok := utils.ParseID(ctx, "userId")
	if !ok {
		return
	}
	names, err := c.ProjectSvc.RemoveUser(ctx.Request.Context(), id, userID, principal(ctx).ID)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, assignedUsersResponse{AssignedUsers: names})
}

// POST /project/:id/assign-designation
func (c *ProjectController) AssignDesignation(ctx *gin.Context) {
	id, ok := utils.ParseID(ctx, "id")
	if !ok {
		return
	}
	var payload designationRefPayload
	if !bindJSON(ctx, &payload) {
		return
	}
	names, err := c.ProjectSvc.AssignDesignation(ctx.Request.Context(), id, payload.DesignationID, principal(ctx).ID)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, assignedDesignationsResponse{AssignedDesignations: names})
}

// DELETE /project/:id/remove-designation/:designationId
func (c *ProjectController) RemoveDesignation(ctx *gin.Context) {
	id, ok := utils.ParseID(ctx, "id")
	if !ok {
		return
	}
	designationID, ok := utils.ParseID(ctx, "designationId")
	if !ok {
		return
	}
	names, err := c.ProjectSvc.RemoveDesignation(ctx.Request.Context(), id, designationID, principal(ctx).ID)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, assignedDesignationsResponse{AssignedDesignations: names})
}

// GET /project/:id/designations
func (c *ProjectController) GetProjectDesignations(ctx *gin.Context) {
	id, ok := utils.ParseID(ctx, "id")
	if !ok {
		return
	}
	list, err := c.ProjectSvc.GetProjectDesignations(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// PATCH /project/:id/user/:userId/designation
func (c *ProjectController) SetUserDesignation(ctx *gin.Context) {
	id, ok := utils.ParseID(ctx, "id")
	if !ok {
		return
	}
	userID, ok := utils.ParseID(ctx, "userId")
	if !ok {
		return
	}
	var payload designationRefPayload
	if !bindJSON(ctx, &payload) {
		return
	}
	res, err := c.ProjectSvc.SetUserDesignation(ctx.Request.Context(), id, userID, payload.DesignationID, principal(ctx).ID)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

// DELETE /project/:id/user/:userId/designation
func (c *ProjectController) RemoveUserDesignation(ctx *gin.Context) {
	id, ok := utils.ParseID(ctx, "id")
	if !ok {
		return
	}
	userID, ok := utils.ParseID(ctx, "userId")
	if !ok {
		return
	}
	res, err := c.ProjectSvc.RemoveUserDesignation(ctx.Request.Context(), id, userID, principal(ctx).ID)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}
