package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"taskhub-backend/models"
	"taskhub-backend/services"
	"taskhub-backend/utils"
)

type createTaskPayload struct {
	Title       string             `json:"title" binding:"required"`
	Description *string            `json:"description"`
	Type        *string            `json:"type"`
	FormSchema  datatypes.JSON     `json:"formSchema"`
	ProjectID   uint               `json:"projectId" binding:"required,gt=0"`
	AssignedTo  *uint              `json:"assignedTo" binding:"omitempty,gt=0"`
	Status      *models.TaskStatus `json:"status" binding:"omitempty,oneof=pending accepted todo in-progress done"`
}

// updateTaskPayload remembers which keys the client sent.
type updateTaskPayload struct {
	Title          *string            `json:"title" binding:"omitempty,min=1"`
	Description    *string            `json:"description"`
	Type           *string            `json:"type"`
	FormSchema     datatypes.JSON     `json:"formSchema"`
	ProjectID      *uint              `json:"projectId" binding:"omitempty,gt=0"`
	AssignedTo     *uint              `json:"assignedTo" binding:"omitempty,gt=0"`
	Status         *models.TaskStatus `json:"status" binding:"omitempty,oneof=pending accepted todo in-progress done"`
	SubmissionData datatypes.JSON     `json:"submissionData"`

	fields []string
}

func (p *updateTaskPayload) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	type plain updateTaskPayload
	if err := json.Unmarshal(b, (*plain)(p)); err != nil {
		return err
	}
	p.fields = make([]string, 0, len(raw))
	for k := range raw {
		p.fields = append(p.fields, k)
	}
	sort.Strings(p.fields)
	return nil
}

// jsonShape reports whether doc is absent, null, or starts with open.
func jsonShape(doc datatypes.JSON, open byte) (datatypes.JSON, bool) {
	trimmed := bytes.TrimSpace(doc)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, true
	}
	return doc, trimmed[0] == open
}

type TaskController struct {
	TaskSvc *services.TaskService
	log     *zap.Logger
}

func NewTaskController(svc *services.TaskService, log *zap.Logger) *TaskController {
	return &TaskController{TaskSvc: svc, log: log}
}

func (c *TaskController) CreateTask(ctx *gin.Context) {
	var payload createTaskPayload
	if !bindJSON(ctx, &payload) {
		return
	}
	schema, ok := jsonShape(payload.FormSchema, '[')
	if !ok {
		utils.JSONError(ctx, http.StatusBadRequest, "formSchema must be an array")
		return
	}

	task, err := c.TaskSvc.Create(ctx.Request.Context(), services.TaskInput{
		Title:       payload.Title,
		Description: payload.Description,
		Type:        payload.Type,
		FormSchema:  schema,
		ProjectID:   payload.ProjectID,
		AssignedTo:  payload.AssignedTo,
		Status:      payload.Status,
	}, principal(ctx).ID)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, task)
}

func (c *TaskController) GetTasks(ctx *gin.Context) {
	tasks, err := c.TaskSvc.FindAll(ctx.Request.Context(), principal(ctx))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, tasks)
}

func (c *TaskController) GetTask(ctx *gin.Context) {
	id, ok := utils.ParseID(ctx, "id")
	if !ok {
		return
	}
	task, err := c.TaskSvc.FindOne(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, task)
}

func (c *TaskController) UpdateTask(ctx *gin.Context) {
	id, ok := utils.ParseID(ctx, "id")
	if !ok {
		return
	}
	var payload updateTaskPayload
	if !bindJSON(ctx, &payload) {
		return
	}
	schema, ok := jsonShape(payload.FormSchema, '[')
	if !ok {
		utils.JSONError(ctx, http.StatusBadRequest, "formSchema must be an array")
		return
	}
	submission, ok := jsonShape(payload.SubmissionData, '{')
	if !ok {
		utils.JSONError(ctx, http.StatusBadRequest, "submissionData must be an object")
		return
	}

	task, err := c.TaskSvc.Update(ctx.Request.Context(), id, services.TaskPatch{
		Title:          payload.Title,
		Description:    payload.Description,
		Type:           payload.Type,
		FormSchema:     schema,
		ProjectID:      payload.ProjectID,
		AssignedTo:     payload.AssignedTo,
		Status:         payload.Status,
		SubmissionData: submission,
		Fields:         payload.fields,
	}, principal(ctx))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, task)
}

func (c *TaskController) DeleteTask(ctx *gin.Context) {
	id, ok := utils.ParseID(ctx, "id")
	if !ok {
		return
	}
	task, err := c.TaskSvc.Remove(ctx.Request.Context(), id, principal(ctx).ID)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, task)
}
