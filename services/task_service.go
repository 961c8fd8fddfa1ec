package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"taskhub-backend/models"
)

type TaskInput struct {
	Title       string
	Description *string
	Type        *string
	FormSchema  datatypes.JSON
	ProjectID   uint
	AssignedTo  *uint
	Status      *models.TaskStatus
}

// TaskPatch is a partial task update. Fields lists the payload keys that
// were present, so an explicit null can be told apart from an absent key.
type TaskPatch struct {
	Title          *string
	Description    *string
	Type           *string
	FormSchema     datatypes.JSON
	ProjectID      *uint
	AssignedTo     *uint
	Status         *models.TaskStatus
	SubmissionData datatypes.JSON
	Fields         []string
}

var userTaskFields = map[string]bool{"status": true, "submissionData": true}

func (p TaskPatch) has(field string) bool {
	for _, f := range p.Fields {
		if f == field {
			return true
		}
	}
	return false
}

func (p TaskPatch) columns() map[string]any {
	updates := map[string]any{}
	if p.has("title") && p.Title != nil {
		updates["title"] = *p.Title
	}
	if p.has("description") {
		updates["description"] = p.Description
	}
	if p.has("type") {
		updates["type"] = p.Type
	}
	if p.has("formSchema") {
		updates["form_schema"] = p.FormSchema
	}
	if p.has("projectId") && p.ProjectID != nil {
		updates["project_id"] = *p.ProjectID
	}
	if p.has("assignedTo") {
		updates["assigned_to"] = p.AssignedTo
	}
	if p.has("status") && p.Status != nil {
		updates["status"] = *p.Status
	}
	if p.has("submissionData") {
		updates["submission_data"] = p.SubmissionData
	}
	return updates
}

type TaskService struct {
	DB  *gorm.DB
	log *zap.Logger
}

func NewTaskService(db *gorm.DB, log *zap.Logger) *TaskService {
	return &TaskService{DB: db, log: log.Named("TaskService")}
}

// ownedProject checks that adminID created the project; verb names the
// attempted action in the Forbidden message.
func (s *TaskService) ownedProject(ctx context.Context, projectID, adminID uint, verb string) error {
	var project models.Project
	if err := s.DB.WithContext(ctx).First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("Project with ID %d not found", projectID)
		}
		return err
	}
	if project.CreatedBy != adminID {
		return Forbidden("You can only %s tasks to projects you created", verb)
	}
	return nil
}

func (s *TaskService) userExists(ctx context.Context, userID uint) error {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return NotFound("User with ID %d not found", userID)
	}
	return nil
}

func (s *TaskService) Create(ctx context.Context, in TaskInput, adminID uint) (*models.Task, error) {
	if err := s.ownedProject(ctx, in.ProjectID, adminID, "add"); err != nil {
		return nil, err
	}
	if in.AssignedTo != nil {
		if err := s.userExists(ctx, *in.AssignedTo); err != nil {
			return nil, err
		}
	}

	status := models.TaskStatusPending
	if in.Status != nil && *in.Status != "" {
		status = *in.Status
	}
	task := models.Task{
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		FormSchema:  in.FormSchema,
		ProjectID:   in.ProjectID,
		AssignedTo:  in.AssignedTo,
		Status:      status,
	}
	if err := s.DB.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, err
	}

	s.log.Info("task created",
		zap.Uint("id", task.ID),
		zap.String("title", task.Title),
		zap.Uint("projectId", task.ProjectID))
	return &task, nil
}

// FindAll returns every task in the admin's projects, or the tasks
// assigned to a user.
func (s *TaskService) FindAll(ctx context.Context, p Principal) ([]models.Task, error) {
	var tasks []models.Task
	db := s.DB.WithContext(ctx)
	q := db.Preload("Project")
	if p.IsAdmin() {
		q = q.Preload("Assignee").
			Where("project_id IN (?)", db.Model(&models.Project{}).Select("id").Where("created_by = ?", p.ID))
	} else {
		q = q.Where("assigned_to = ?", p.ID)
	}
	err := q.Order("id ASC").Find(&tasks).Error
	return tasks, err
}

func (s *TaskService) FindOne(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	if err := s.DB.WithContext(ctx).Preload("Project").Preload("Assignee").First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Task with ID %d not found", id)
		}
		return nil, err
	}
	return &task, nil
}

// Update applies patch on behalf of p. Admins may change anything on tasks
// in their projects. The assignee may only change status and submission
// data; a patch touching any other field is rejected without applying.
func (s *TaskService) Update(ctx context.Context, id uint, patch TaskPatch, p Principal) (*models.Task, error) {
	task, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.IsAdmin() {
		if task.Project == nil || task.Project.CreatedBy != p.ID {
			return nil, Forbidden("You can only update tasks in your projects")
		}
		if patch.has("projectId") && patch.ProjectID != nil && *patch.ProjectID != task.ProjectID {
			if err := s.ownedProject(ctx, *patch.ProjectID, p.ID, "move"); err != nil {
				return nil, err
			}
		}
		if patch.has("assignedTo") && patch.AssignedTo != nil {
			if err := s.userExists(ctx, *patch.AssignedTo); err != nil {
				return nil, err
			}
		}
	} else {
		if task.AssignedTo == nil || *task.AssignedTo != p.ID {
			return nil, Forbidden("You can only update tasks assigned to you")
		}
		for _, f := range patch.Fields {
			if !userTaskFields[f] {
				s.log.Warn("rejected task update",
					zap.Uint("taskId", id),
					zap.Uint("userId", p.ID),
					zap.String("field", f))
				return nil, Forbidden("Users can only update task status or submit form data")
			}
		}
	}

	if updates := patch.columns(); len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(&models.Task{ID: id}).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	var updated models.Task
	if err := s.DB.WithContext(ctx).First(&updated, id).Error; err != nil {
		return nil, err
	}
	s.log.Info("task updated", zap.Uint("id", id), zap.String("role", p.Role), zap.Uint("by", p.ID))
	return &updated, nil
}

// Remove deletes the task and returns it as it was.
func (s *TaskService) Remove(ctx context.Context, id, adminID uint) (*models.Task, error) {
	task, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Project == nil || task.Project.CreatedBy != adminID {
		return nil, Forbidden("You can only delete tasks in your projects")
	}

	if err := s.DB.WithContext(ctx).Delete(&models.Task{}, id).Error; err != nil {
		return nil, err
	}
	s.log.Info("task deleted", zap.Uint("id", id), zap.String("title", task.Title))

	task.Project = nil
	task.Assignee = nil
	return task, nil
}
