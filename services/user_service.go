package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskhub-backend/models"
)

type UserService struct {
	DB        *gorm.DB
	passwords *PasswordService
	log       *zap.Logger
}

func NewUserService(db *gorm.DB, passwords *PasswordService, log *zap.Logger) *UserService {
	return &UserService{DB: db, passwords: passwords, log: log.Named("UserService")}
}

// Create registers a user owned by adminID.
func (s *UserService) Create(ctx context.Context, in AccountInput, adminID uint) (*models.User, error) {
	existing, err := s.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, Conflict("User with this email already exists")
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     normalizeEmail(in.Email),
		Password:  hash,
		CreatedBy: &adminID,
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, Conflict("User with this email already exists")
		}
		return nil, err
	}

	s.log.Info("user created",
		zap.Uint("id", user.ID),
		zap.String("email", user.Email),
		zap.Uint("createdBy", adminID))
	return &user, nil
}

func (s *UserService) FindAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.DB.WithContext(ctx).Order("created_at DESC, id DESC").Find(&users).Error
	return users, err
}

func (s *UserService) FindOne(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("User with ID %d not found", id)
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns nil without error when no user has the email.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Update(ctx context.Context, id uint, patch AccountPatch) (*models.User, error) {
	user, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	updates, err := patch.columns(s.passwords)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
			if isDuplicateKey(err) {
				return nil, Conflict("User with this email already exists")
			}
			return nil, err
		}
	}

	s.log.Info("user updated", zap.Uint("id", id))
	return s.FindOne(ctx, id)
}

// Remove deletes the user, their memberships and requests, and unassigns
// their tasks.
func (s *UserService) Remove(ctx context.Context, id uint) error {
	user, err := s.FindOne(ctx, id)
	if err != nil {
		return err
	}

	s.log.Warn("deleting user", zap.Uint("id", id), zap.String("email", user.Email))
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.ProjectUser{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.UserRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Task{}).Where("assigned_to = ?", id).Update("assigned_to", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}

// AssignOrphansToFirstAdmin gives every user without a creating admin to the
// admin with the lowest id. It returns the number of users updated and the
// admin they were assigned to.
func (s *UserService) AssignOrphansToFirstAdmin(ctx context.Context) (int64, *models.Admin, error) {
	db := s.DB.WithContext(ctx)

	var orphans []models.User
	if err := db.Where("created_by IS NULL").Order("id ASC").Find(&orphans).Error; err != nil {
		return 0, nil, err
	}
	if len(orphans) == 0 {
		s.log.Info("all users already have an assigned admin")
		return 0, nil, nil
	}
	for _, u := range orphans {
		s.log.Info("user without admin", zap.Uint("id", u.ID), zap.String("email", u.Email))
	}

	var admin models.Admin
	if err := db.Order("id ASC").First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil, BadRequest("No admin found in the database. Please create an admin first")
		}
		return 0, nil, err
	}

	res := db.Model(&models.User{}).Where("created_by IS NULL").Update("created_by", admin.ID)
	if res.Error != nil {
		return 0, nil, res.Error
	}

	s.log.Info("orphaned users reassigned",
		zap.Int64("count", res.RowsAffected),
		zap.Uint("adminId", admin.ID),
		zap.String("adminEmail", admin.Email))
	return res.RowsAffected, &admin, nil
}
