package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskhub-backend/models"
)

type AdminService struct {
	DB        *gorm.DB
	passwords *PasswordService
	log       *zap.Logger
}

func NewAdminService(db *gorm.DB, passwords *PasswordService, log *zap.Logger) *AdminService {
	return &AdminService{DB: db, passwords: passwords, log: log.Named("AdminService")}
}

func (s *AdminService) Create(ctx context.Context, in AccountInput) (*models.Admin, error) {
	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	admin := models.Admin{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     normalizeEmail(in.Email),
		Password:  hash,
	}
	if err := s.DB.WithContext(ctx).Create(&admin).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, Conflict("Admin with this email already exists")
		}
		return nil, err
	}

	s.log.Info("admin created", zap.Uint("id", admin.ID), zap.String("email", admin.Email))
	return &admin, nil
}

func (s *AdminService) FindAll(ctx context.Context) ([]models.Admin, error) {
	var admins []models.Admin
	err := s.DB.WithContext(ctx).Order("created_at DESC, id DESC").Find(&admins).Error
	return admins, err
}

func (s *AdminService) FindOne(ctx context.Context, id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := s.DB.WithContext(ctx).First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Admin with ID %d not found", id)
		}
		return nil, err
	}
	return &admin, nil
}

// FindByEmail returns nil without error when no admin has the email.
func (s *AdminService) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := s.DB.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (s *AdminService) Update(ctx context.Context, id uint, patch AccountPatch) (*models.Admin, error) {
	admin, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	updates, err := patch.columns(s.passwords)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(admin).Updates(updates).Error; err != nil {
			if isDuplicateKey(err) {
				return nil, Conflict("Admin with this email already exists")
			}
			return nil, err
		}
	}

	s.log.Info("admin updated", zap.Uint("id", id))
	return s.FindOne(ctx, id)
}

// Remove deletes the admin together with the projects they own and the
// requests addressed to them. Users they created are left without an admin
// until reassigned.
func (s *AdminService) Remove(ctx context.Context, id uint) error {
	admin, err := s.FindOne(ctx, id)
	if err != nil {
		return err
	}

	s.log.Warn("deleting admin", zap.Uint("id", id), zap.String("email", admin.Email))
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var projectIDs []uint
		if err := tx.Model(&models.Project{}).Where("created_by = ?", id).Pluck("id", &projectIDs).Error; err != nil {
			return err
		}
		if err := deleteProjects(tx, projectIDs); err != nil {
			return err
		}
		if err := tx.Where("admin_id = ?", id).Delete(&models.UserRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("created_by = ?", id).Update("created_by", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Admin{}, id).Error
	})
}
