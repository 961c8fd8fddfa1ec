package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskhub-backend/models"
)

type DesignationInput struct {
	Name        string
	Description *string
}

type DesignationPatch struct {
	Name        *string
	Description *string
}

type DesignationService struct {
	DB  *gorm.DB
	log *zap.Logger
}

func NewDesignationService(db *gorm.DB, log *zap.Logger) *DesignationService {
	return &DesignationService{DB: db, log: log.Named("DesignationService")}
}

func (s *DesignationService) Create(ctx context.Context, in DesignationInput) (*models.Designation, error) {
	name := strings.TrimSpace(in.Name)
	s.log.Debug("creating designation", zap.String("name", name))

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Designation{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, Conflict("Designation with this name already exists")
	}

	d := models.Designation{Name: name, Description: in.Description}
	if err := s.DB.WithContext(ctx).Create(&d).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, Conflict("Designation with this name already exists")
		}
		return nil, err
	}

	s.log.Info("designation created", zap.String("name", d.Name), zap.Uint("id", d.ID))
	return &d, nil
}

func (s *DesignationService) FindAll(ctx context.Context) ([]models.Designation, error) {
	var list []models.Designation
	err := s.DB.WithContext(ctx).Order("name ASC").Find(&list).Error
	return list, err
}

func (s *DesignationService) FindOne(ctx context.Context, id uint) (*models.Designation, error) {
	var d models.Designation
	if err := s.DB.WithContext(ctx).First(&d, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Designation with ID %d not found", id)
		}
		return nil, err
	}
	return &d, nil
}

func (s *DesignationService) Update(ctx context.Context, id uint, patch DesignationPatch) (*models.Designation, error) {
	d, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		var count int64
		if err := s.DB.WithContext(ctx).Model(&models.Designation{}).
			Where("name = ? AND id <> ?", name, id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, Conflict("Designation with this name already exists")
		}
		updates["name"] = name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}

	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(d).Updates(updates).Error; err != nil {
			if isDuplicateKey(err) {
				return nil, Conflict("Designation with this name already exists")
			}
			return nil, err
		}
	}

	updated, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info("designation updated", zap.String("name", updated.Name), zap.Uint("id", id))
	return updated, nil
}

// Remove deletes the designation and detaches it from every project and
// project member that referenced it. The deleted record is returned.
func (s *DesignationService) Remove(ctx context.Context, id uint) (*models.Designation, error) {
	d, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ProjectUser{}).Where("designation_id = ?", id).Update("designation_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("designation_id = ?", id).Delete(&models.ProjectDesignation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Designation{}, id).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("designation deleted", zap.String("name", d.Name), zap.Uint("id", id))
	return d, nil
}
