package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskhub-backend/models"
)

type ProjectInput struct {
	Name        string
	Description *string
	Status      *models.ProjectStatus
}

type ProjectPatch struct {
	Name        *string
	Description *string
	Status      *models.ProjectStatus
}

// ProjectDesignationSummary describes a designation attached to a project.
type ProjectDesignationSummary struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	AssignedAt  time.Time `json:"assignedAt"`
}

// MemberDesignation is a project member together with their designation name.
type MemberDesignation struct {
	ID          uint    `json:"id"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Designation *string `json:"designation"`
}

type ProjectService struct {
	DB  *gorm.DB
	log *zap.Logger
}

func NewProjectService(db *gorm.DB, log *zap.Logger) *ProjectService {
	return &ProjectService{DB: db, log: log.Named("ProjectService")}
}

func (s *ProjectService) Create(ctx context.Context, adminID uint, in ProjectInput) (*models.Project, error) {
	s.log.Debug("creating project", zap.String("name", in.Name), zap.Uint("adminId", adminID))

	status := models.ProjectStatusActive
	if in.Status != nil && *in.Status != "" {
		status = *in.Status
	}
	project := models.Project{
		Name:        in.Name,
		Description: in.Description,
		Status:      status,
		CreatedBy:   adminID,
	}
	if err := s.DB.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, err
	}

	s.log.Info("project created",
		zap.String("name", project.Name),
		zap.Uint("id", project.ID),
		zap.Uint("adminId", adminID))
	return &project, nil
}

func (s *ProjectService) withRelations(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).
		Preload("Admin").
		Preload("Users", func(db *gorm.DB) *gorm.DB { return db.Order("project_users.id ASC") }).
		Preload("Users.User")
}

// FindAll returns the projects an admin owns, or the projects a user is a
// member of.
func (s *ProjectService) FindAll(ctx context.Context, callerID uint, role string) ([]models.Project, error) {
	q := s.withRelations(ctx)
	if role == RoleAdmin {
		q = q.Where("created_by = ?", callerID)
	} else {
		q = q.Where("id IN (?)", s.DB.WithContext(ctx).Model(&models.ProjectUser{}).Select("project_id").Where("user_id = ?", callerID))
	}

	var projects []models.Project
	err := q.Order("created_at DESC, id DESC").Find(&projects).Error
	return projects, err
}

// FindOne returns nil without error when the project does not exist.
func (s *ProjectService) FindOne(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := s.withRelations(ctx).Preload("Users.Designation").First(&project, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// owned loads the project and checks that adminID created it.
func (s *ProjectService) owned(ctx context.Context, id, adminID uint, action string) (*models.Project, error) {
	var project models.Project
	if err := s.DB.WithContext(ctx).First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Project with ID %d not found", id)
		}
		return nil, err
	}
	if project.CreatedBy != adminID {
		return nil, Forbidden("You can only %s your own projects", action)
	}
	return &project, nil
}

func (s *ProjectService) Update(ctx context.Context, id, adminID uint, patch ProjectPatch) (*models.Project, error) {
	project, err := s.owned(ctx, id, adminID, "update")
	if err != nil {
		return nil, err
	}

	s.log.Debug("updating project", zap.String("name", project.Name), zap.Uint("id", id))
	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(project).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	var updated models.Project
	if err := s.DB.WithContext(ctx).First(&updated, id).Error; err != nil {
		return nil, err
	}
	s.log.Info("project updated", zap.String("name", updated.Name), zap.Uint("id", id))
	return &updated, nil
}

func (s *ProjectService) Remove(ctx context.Context, id, adminID uint) error {
	project, err := s.owned(ctx, id, adminID, "delete")
	if err != nil {
		return err
	}

	s.log.Warn("deleting project", zap.String("name", project.Name), zap.Uint("id", id))
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteProjects(tx, []uint{id})
	})
	if err != nil {
		return err
	}
	s.log.Info("project deleted", zap.String("name", project.Name), zap.Uint("id", id))
	return nil
}

// deleteProjects removes the projects and everything hanging off them. It
// must run inside a transaction.
func deleteProjects(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("project_id IN ?", ids).Delete(&models.Task{}).Error; err != nil {
		return err
	}
	if err := tx.Where("project_id IN ?", ids).Delete(&models.ProjectUser{}).Error; err != nil {
		return err
	}
	if err := tx.Where("project_id IN ?", ids).Delete(&models.ProjectDesignation{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.Project{}).Error
}

// memberNames lists "First Last" for every member in assignment order.
func (s *ProjectService) memberNames(ctx context.Context, projectID uint) ([]string, error) {
	var members []models.ProjectUser
	if err := s.DB.WithContext(ctx).
		Preload("User").
		Where("project_id = ?", projectID).
		Order("id ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}

	names := make([]string, 0, len(members))
	for _, m := range members {
		if m.User != nil {
			names = append(names, m.User.FullName())
		}
	}
	return names, nil
}

func (s *ProjectService) AssignUser(ctx context.Context, projectID, userID, adminID uint) ([]string, error) {
	project, err := s.owned(ctx, projectID, adminID, "assign users to")
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("User with ID %d not found", userID)
		}
		return nil, err
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.ProjectUser{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, Conflict("User is already assigned to this project")
	}

	s.log.Debug("assigning user", zap.String("email", user.Email), zap.String("project", project.Name))
	if err := s.DB.WithContext(ctx).Create(&models.ProjectUser{ProjectID: projectID, UserID: userID}).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, Conflict("User is already assigned to this project")
		}
		return nil, err
	}
	s.log.Info("user assigned to project",
		zap.String("email", user.Email),
		zap.String("project", project.Name),
		zap.Uint("projectId", projectID))

	return s.memberNames(ctx, projectID)
}

// RemoveUser is idempotent: removing a non-member returns the current list.
func (s *ProjectService) RemoveUser(ctx context.Context, projectID, userID, adminID uint) ([]string, error) {
	project, err := s.owned(ctx, projectID, adminID, "remove users from")
	if err != nil {
		return nil, err
	}

	res := s.DB.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectUser{})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		s.log.Warn("user not assigned to project, skipping removal",
			zap.Uint("userId", userID),
			zap.String("project", project.Name),
			zap.Uint("projectId", projectID))
	} else {
		s.log.Info("user removed from project", zap.Uint("userId", userID), zap.Uint("projectId", projectID))
	}

	return s.memberNames(ctx, projectID)
}

// designationNames lists the names of designations attached to the
// project, sorted by name.
func (s *ProjectService) designationNames(ctx context.Context, projectID uint) ([]string, error) {
	summaries, err := s.designationSummaries(ctx, projectID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(summaries))
	for _, d := range summaries {
		names = append(names, d.Name)
	}
	return names, nil
}

func (s *ProjectService) designationSummaries(ctx context.Context, projectID uint) ([]ProjectDesignationSummary, error) {
	var links []models.ProjectDesignation
	if err := s.DB.WithContext(ctx).
		Preload("Designation").
		Where("project_id = ?", projectID).
		Find(&links).Error; err != nil {
		return nil, err
	}

	out := make([]ProjectDesignationSummary, 0, len(links))
	for _, l := range links {
		if l.Designation == nil {
			continue
		}
		out = append(out, ProjectDesignationSummary{
			ID:          l.Designation.ID,
			Name:        l.Designation.Name,
			Description: l.Designation.Description,
			AssignedAt:  l.AssignedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *ProjectService) AssignDesignation(ctx context.Context, projectID, designationID, adminID uint) ([]string, error) {
	project, err := s.owned(ctx, projectID, adminID, "assign designations to")
	if err != nil {
		return nil, err
	}

	var designation models.Designation
	if err := s.DB.WithContext(ctx).First(&designation, designationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Designation with ID %d not found", designationID)
		}
		return nil, err
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.ProjectDesignation{}).
		Where("project_id = ? AND designation_id = ?", projectID, designationID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, Conflict("Designation is already assigned to this project")
	}

	link := models.ProjectDesignation{ProjectID: projectID, DesignationID: designationID}
	if err := s.DB.WithContext(ctx).Create(&link).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, Conflict("Designation is already assigned to this project")
		}
		return nil, err
	}
	s.log.Info("designation assigned to project",
		zap.String("designation", designation.Name),
		zap.String("project", project.Name),
		zap.Uint("projectId", projectID))

	return s.designationNames(ctx, projectID)
}

// RemoveDesignation detaches the designation and clears it from any member
// of the project holding it. Detaching an unattached designation is a no-op.
func (s *ProjectService) RemoveDesignation(ctx context.Context, projectID, designationID, adminID uint) ([]string, error) {
	if _, err := s.owned(ctx, projectID, adminID, "remove designations from"); err != nil {
		return nil, err
	}

	var removed int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ProjectUser{}).
			Where("project_id = ? AND designation_id = ?", projectID, designationID).
			Update("designation_id", nil).Error; err != nil {
			return err
		}
		res := tx.Where("project_id = ? AND designation_id = ?", projectID, designationID).
			Delete(&models.ProjectDesignation{})
		removed = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return nil, err
	}
	if removed == 0 {
		s.log.Warn("designation not assigned to project, skipping removal",
			zap.Uint("designationId", designationID),
			zap.Uint("projectId", projectID))
	} else {
		s.log.Info("designation removed from project",
			zap.Uint("designationId", designationID),
			zap.Uint("projectId", projectID))
	}

	return s.designationNames(ctx, projectID)
}

func (s *ProjectService) GetProjectDesignations(ctx context.Context, projectID uint) ([]ProjectDesignationSummary, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Project{}).Where("id = ?", projectID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, NotFound("Project with ID %d not found", projectID)
	}
	return s.designationSummaries(ctx, projectID)
}

func (s *ProjectService) membership(ctx context.Context, projectID, userID uint) (*models.ProjectUser, error) {
	var member models.ProjectUser
	err := s.DB.WithContext(ctx).
		Preload("User").
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("User with ID %d is not assigned to project %d", userID, projectID)
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func memberDesignation(m *models.ProjectUser, designation *string) *MemberDesignation {
	out := &MemberDesignation{ID: m.UserID, Designation: designation}
	if m.User != nil {
		out.FirstName = m.User.FirstName
		out.LastName = m.User.LastName
	}
	return out
}

// SetUserDesignation gives a project member one of the designations
// attached to the project.
func (s *ProjectService) SetUserDesignation(ctx context.Context, projectID, userID, designationID, adminID uint) (*MemberDesignation, error) {
	if _, err := s.owned(ctx, projectID, adminID, "manage designations in"); err != nil {
		return nil, err
	}

	member, err := s.membership(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	var link models.ProjectDesignation
	err = s.DB.WithContext(ctx).
		Preload("Designation").
		Where("project_id = ? AND designation_id = ?", projectID, designationID).
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, BadRequest("Designation %d is not assigned to this project. Assign the designation to the project first", designationID)
	}
	if err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Model(&models.ProjectUser{}).Where("id = ?", member.ID).Update("designation_id", designationID).Error; err != nil {
		return nil, err
	}

	var name *string
	if link.Designation != nil {
		name = &link.Designation.Name
	}
	s.log.Info("member designation set",
		zap.Uint("userId", userID),
		zap.Uint("projectId", projectID),
		zap.Uint("designationId", designationID))
	return memberDesignation(member, name), nil
}

func (s *ProjectService) RemoveUserDesignation(ctx context.Context, projectID, userID, adminID uint) (*MemberDesignation, error) {
	if _, err := s.owned(ctx, projectID, adminID, "manage designations in"); err != nil {
		return nil, err
	}

	member, err := s.membership(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&models.ProjectUser{}).Where("id = ?", member.ID).Update("designation_id", nil).Error; err != nil {
		return nil, err
	}

	s.log.Info("member designation cleared", zap.Uint("userId", userID), zap.Uint("projectId", projectID))
	return memberDesignation(member, nil), nil
}
