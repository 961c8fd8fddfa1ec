package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskhub-backend/models"
)

type RequestInput struct {
	RequestType     models.RequestType
	RequestedValue  string
	CurrentPassword *string
}

type RequestService struct {
	DB        *gorm.DB
	passwords *PasswordService
	log       *zap.Logger
}

func NewRequestService(db *gorm.DB, passwords *PasswordService, log *zap.Logger) *RequestService {
	return &RequestService{DB: db, passwords: passwords, log: log.Named("RequestService")}
}

// CreateRequest files a profile change request with the user's creating
// admin. Password requests never store the requested value.
func (s *RequestService) CreateRequest(ctx context.Context, userID uint, in RequestInput) (*models.UserRequest, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("User with ID %d not found", userID)
		}
		return nil, err
	}
	if user.CreatedBy == nil {
		return nil, BadRequest("User does not have an assigned admin")
	}

	req := models.UserRequest{
		UserID:         userID,
		AdminID:        *user.CreatedBy,
		RequestType:    in.RequestType,
		RequestedValue: in.RequestedValue,
		Status:         models.RequestStatusPending,
	}

	switch in.RequestType {
	case models.RequestTypePassword:
		if in.CurrentPassword == nil || *in.CurrentPassword == "" {
			return nil, BadRequest("Current password is required for password change requests")
		}
		if !s.passwords.Compare(*in.CurrentPassword, user.Password) {
			return nil, BadRequest("Current password is incorrect")
		}
		req.RequestedValue = models.HiddenRequestValue
	case models.RequestTypeFirstName:
		req.CurrentValue = &user.FirstName
	case models.RequestTypeLastName:
		req.CurrentValue = &user.LastName
	case models.RequestTypeEmail:
		req.CurrentValue = &user.Email
	default:
		return nil, BadRequest("Unsupported request type %q", in.RequestType)
	}

	s.log.Debug("creating change request", zap.String("type", string(in.RequestType)), zap.String("email", user.Email))
	if err := s.DB.WithContext(ctx).Create(&req).Error; err != nil {
		return nil, err
	}

	s.log.Info("request created", zap.String("type", string(req.RequestType)), zap.Uint("id", req.ID))
	return &req, nil
}

func (s *RequestService) FindAllByUser(ctx context.Context, userID uint) ([]models.UserRequest, error) {
	var list []models.UserRequest
	err := s.DB.WithContext(ctx).
		Preload("Admin").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

func (s *RequestService) FindAllByAdmin(ctx context.Context, adminID uint) ([]models.UserRequest, error) {
	var list []models.UserRequest
	err := s.DB.WithContext(ctx).
		Preload("User").
		Where("admin_id = ?", adminID).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

// FindOne returns nil without error when the request does not exist.
func (s *RequestService) FindOne(ctx context.Context, id uint) (*models.UserRequest, error) {
	var req models.UserRequest
	err := s.DB.WithContext(ctx).Preload("User").Preload("Admin").First(&req, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *RequestService) pending(ctx context.Context, id, adminID uint, verb string) (*models.UserRequest, error) {
	req, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, NotFound("Request with ID %d not found", id)
	}
	if req.AdminID != adminID {
		return nil, Forbidden("You can only %s requests from your users", verb)
	}
	if req.Status != models.RequestStatusPending {
		return nil, BadRequest("Request is already %s", req.Status)
	}
	return req, nil
}

// ApproveRequest writes the requested value into the user's profile and
// marks the request approved in one transaction.
func (s *RequestService) ApproveRequest(ctx context.Context, id, adminID uint) (*models.UserRequest, error) {
	req, err := s.pending(ctx, id, adminID, "approve")
	if err != nil {
		return nil, err
	}
	if req.RequestType == models.RequestTypePassword {
		return nil, BadRequest("Password change requests cannot be approved by admins for security reasons")
	}
	column, ok := req.RequestType.Column()
	if !ok {
		return nil, BadRequest("Unsupported request type %q", req.RequestType)
	}

	value := req.RequestedValue
	if req.RequestType == models.RequestTypeEmail {
		value = normalizeEmail(value)
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.RequestType == models.RequestTypeEmail {
			var count int64
			if err := tx.Model(&models.User{}).Where("email = ? AND id <> ?", value, req.UserID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return Conflict("User with this email already exists")
			}
		}
		if err := tx.Model(&models.User{}).Where("id = ?", req.UserID).Update(column, value).Error; err != nil {
			if isDuplicateKey(err) {
				return Conflict("User with this email already exists")
			}
			return err
		}
		return tx.Model(&models.UserRequest{}).Where("id = ?", id).Update("status", models.RequestStatusApproved).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("request approved",
		zap.Uint("id", id),
		zap.String("type", string(req.RequestType)),
		zap.Uint("userId", req.UserID))
	return s.reload(ctx, id)
}

func (s *RequestService) RejectRequest(ctx context.Context, id, adminID uint) (*models.UserRequest, error) {
	req, err := s.pending(ctx, id, adminID, "reject")
	if err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Model(&models.UserRequest{}).
		Where("id = ?", id).
		Update("status", models.RequestStatusRejected).Error; err != nil {
		return nil, err
	}

	s.log.Info("request rejected",
		zap.Uint("id", id),
		zap.String("type", string(req.RequestType)),
		zap.Uint("userId", req.UserID))
	return s.reload(ctx, id)
}

func (s *RequestService) reload(ctx context.Context, id uint) (*models.UserRequest, error) {
	var req models.UserRequest
	if err := s.DB.WithContext(ctx).First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}
