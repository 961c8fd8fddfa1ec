package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskhub-backend/config"
	"taskhub-backend/controllers"
	"taskhub-backend/metrics"
	"taskhub-backend/middleware"
	"taskhub-backend/services"
)

// Controllers groups every handler set the router mounts.
type Controllers struct {
	Auth        *controllers.AuthController
	Admin       *controllers.AdminController
	User        *controllers.UserController
	Designation *controllers.DesignationController
	Project     *controllers.ProjectController
	Task        *controllers.TaskController
	Request     *controllers.RequestController
	Health      *controllers.HealthController
}

// NewControllers builds the services and controllers on top of db.
func NewControllers(db *gorm.DB, cfg *config.Config, tokens *services.TokenService, log *zap.Logger) Controllers {
	passwords := services.NewPasswordService(cfg.BcryptCost)
	admins := services.NewAdminService(db, passwords, log)
	users := services.NewUserService(db, passwords, log)

	return Controllers{
		Auth:        controllers.NewAuthController(services.NewAuthService(admins, users, passwords, tokens, log), log),
		Admin:       controllers.NewAdminController(admins, log),
		User:        controllers.NewUserController(users, log),
		Designation: controllers.NewDesignationController(services.NewDesignationService(db, log), log),
		Project:     controllers.NewProjectController(services.NewProjectService(db, log), log),
		Task:        controllers.NewTaskController(services.NewTaskService(db, log), log),
		Request:     controllers.NewRequestController(services.NewRequestService(db, passwords, log), log),
		Health:      controllers.NewHealthController(db, log),
	}
}

func corsMiddleware(raw string) gin.HandlerFunc {
	origins := config.ParseCorsOrigins(raw)
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	})
}

// SetupRouter mounts every route with its guard.
func SetupRouter(cfg *config.Config, log *zap.Logger, tokens middleware.TokenVerifier, limiter *middleware.RateLimiter, ctl Controllers) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(log, cfg.EnableHTTPLogging),
		metrics.Middleware(),
		corsMiddleware(cfg.CORSOrigins),
	)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"name": "taskhub-backend", "status": "ok"})
	})
	r.GET("/health", ctl.Health.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	authenticated := middleware.Authenticate(tokens, log)
	adminOnly := middleware.Require(middleware.RoleIs(services.RoleAdmin))
	userOnly := middleware.Require(middleware.RoleIs(services.RoleUser))

	auth := r.Group("/auth")
	{
		auth.POST("/signup", limiter.Handler(), ctl.Auth.Signup)
		auth.POST("/login", limiter.Handler(), ctl.Auth.Login)
		auth.POST("/logout", authenticated, ctl.Auth.Logout)
		auth.POST("/user/login", limiter.Handler(), ctl.Auth.LoginUser)
		auth.POST("/user/logout", authenticated, ctl.Auth.LogoutUser)
	}

	admins := r.Group("/admin", authenticated, adminOnly)
	{
		admins.GET("", ctl.Admin.GetAdmins)
		admins.GET("/:id", ctl.Admin.GetAdmin)
		admins.PATCH("/:id", ctl.Admin.UpdateAdmin)
		admins.DELETE("/:id", ctl.Admin.DeleteAdmin)
	}

	users := r.Group("/user", authenticated)
	{
		users.POST("", adminOnly, ctl.User.CreateUser)
		users.GET("", ctl.User.GetUsers)
		users.GET("/:id", ctl.User.GetUser)
		users.PATCH("/:id", adminOnly, ctl.User.UpdateUser)
		users.DELETE("/:id", adminOnly, ctl.User.DeleteUser)
	}

	designations := r.Group("/designation", authenticated, adminOnly)
	{
		designations.POST("", ctl.Designation.CreateDesignation)
		designations.GET("", ctl.Designation.GetDesignations)
		designations.GET("/:id", ctl.Designation.GetDesignation)
		designations.PATCH("/:id", ctl.Designation.UpdateDesignation)
		designations.DELETE("/:id", ctl.Designation.DeleteDesignation)
	}

	projects := r.Group("/project", authenticated)
	{
		projects.POST("", adminOnly, ctl.Project.CreateProject)
		projects.GET("", ctl.Project.GetProjects)
		projects.GET("/:id", ctl.Project.GetProject)
		projects.PATCH("/:id", adminOnly, ctl.Project.UpdateProject)
		projects.DELETE("/:id", adminOnly, ctl.Project.DeleteProject)

		projects.POST("/:id/assign-user", adminOnly, ctl.Project.AssignUser)
		projects.DELETE("/:id/remove-user/:userId", adminOnly, ctl.Project.RemoveUser)
		projects.POST("/:id/assign-designation", adminOnly, ctl.Project.AssignDesignation)
		projects.DELETE("/:id/remove-designation/:designationId", adminOnly, ctl.Project.RemoveDesignation)
		projects.GET("/:id/designations", ctl.Project.GetProjectDesignations)
		projects.PATCH("/:id/user/:userId/designation", adminOnly, ctl.Project.SetUserDesignation)
		projects.DELETE("/:id/user/:userId/designation", adminOnly, ctl.Project.RemoveUserDesignation)
	}

	tasks := r.Group("/task", authenticated)
	{
		tasks.POST("", adminOnly, ctl.Task.CreateTask)
		tasks.GET("", ctl.Task.GetTasks)
		tasks.GET("/:id", ctl.Task.GetTask)
		tasks.PATCH("/:id", ctl.Task.UpdateTask)
		tasks.DELETE("/:id", adminOnly, ctl.Task.DeleteTask)
	}

	requests := r.Group("/request", authenticated)
	{
		requests.POST("", userOnly, ctl.Request.CreateRequest)
		requests.GET("/my-requests", userOnly, ctl.Request.GetMyRequests)
		requests.GET("/admin-requests", adminOnly, ctl.Request.GetAdminRequests)
		requests.GET("/:id", ctl.Request.GetRequest)
		requests.PATCH("/:id/approve", adminOnly, ctl.Request.ApproveRequest)
		requests.PATCH("/:id/reject", adminOnly, ctl.Request.RejectRequest)
	}

	return r
}
