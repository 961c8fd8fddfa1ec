package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskhub-backend/config"
	"taskhub-backend/models"
	"taskhub-backend/services"
)

type fixture struct {
	ctx context.Context
	db  *gorm.DB

	passwords    *services.PasswordService
	tokens       *services.TokenService
	admins       *services.AdminService
	users        *services.UserService
	auth         *services.AuthService
	designations *services.DesignationService
	projects     *services.ProjectService
	tasks        *services.TaskService
	requests     *services.RequestService
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.ConnectDatabase(config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	log := zap.NewNop()

	passwords := services.NewPasswordService(bcrypt.MinCost)
	tokens := services.NewTokenService("test-secret", time.Hour)
	admins := services.NewAdminService(db, passwords, log)
	users := services.NewUserService(db, passwords, log)

	return &fixture{
		ctx:          context.Background(),
		db:           db,
		passwords:    passwords,
		tokens:       tokens,
		admins:       admins,
		users:        users,
		auth:         services.NewAuthService(admins, users, passwords, tokens, log),
		designations: services.NewDesignationService(db, log),
		projects:     services.NewProjectService(db, log),
		tasks:        services.NewTaskService(db, log),
		requests:     services.NewRequestService(db, passwords, log),
	}
}

func (f *fixture) admin(t *testing.T, email string) *models.Admin {
	t.Helper()
	a, err := f.admins.Create(f.ctx, services.AccountInput{
		FirstName: "Alice", LastName: "Admin", Email: email, Password: "secret1",
	})
	require.NoError(t, err)
	return a
}

func (f *fixture) user(t *testing.T, first, last, email string, adminID uint) *models.User {
	t.Helper()
	u, err := f.users.Create(f.ctx, services.AccountInput{
		FirstName: first, LastName: last, Email: email, Password: "secret1",
	}, adminID)
	require.NoError(t, err)
	return u
}

func (f *fixture) project(t *testing.T, name string, adminID uint) *models.Project {
	t.Helper()
	p, err := f.projects.Create(f.ctx, adminID, services.ProjectInput{Name: name})
	require.NoError(t, err)
	return p
}

func (f *fixture) designation(t *testing.T, name string) *models.Designation {
	t.Helper()
	d, err := f.designations.Create(f.ctx, services.DesignationInput{Name: name})
	require.NoError(t, err)
	return d
}

func strp(s string) *string { return &s }

func uintp(v uint) *uint { return &v }
