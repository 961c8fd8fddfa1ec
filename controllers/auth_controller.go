package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskhub-backend/services"
)

type signupPayload struct {
	FirstName string `json:"firstName" binding:"required,min=3"`
	LastName  string `json:"lastName" binding:"required,min=3"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

func (p signupPayload) input() services.AccountInput {
	return services.AccountInput{FirstName: p.FirstName, LastName: p.LastName, Email: p.Email, Password: p.Password}
}

type loginPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=admin user"`
}

type userLoginPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	AuthSvc *services.AuthService
	log     *zap.Logger
}

func NewAuthController(svc *services.AuthService, log *zap.Logger) *AuthController {
	return &AuthController{AuthSvc: svc, log: log}
}

// POST /auth/signup
func (c *AuthController) Signup(ctx *gin.Context) {
	var payload signupPayload
	if !bindJSON(ctx, &payload) {
		return
	}
	res, err := c.AuthSvc.Signup(ctx.Request.Context(), payload.input())
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, res)
}

// POST /auth/login
func (c *AuthController) Login(ctx *gin.Context) {
	var payload loginPayload
	if !bindJSON(ctx, &payload) {
		return
	}
	res, err := c.AuthSvc.Login(ctx.Request.Context(), services.Credentials{
		Email:    payload.Email,
		Password: payload.Password,
		Role:     payload.Role,
	})
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

// POST /auth/user/login
func (c *AuthController) LoginUser(ctx *gin.Context) {
	var payload userLoginPayload
	if !bindJSON(ctx, &payload) {
		return
	}
	res, err := c.AuthSvc.LoginUser(ctx.Request.Context(), services.Credentials{
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

// POST /auth/logout
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.AuthSvc.Logout(principal(ctx)))
}

// POST /auth/user/logout
func (c *AuthController) LogoutUser(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.AuthSvc.LogoutUser(principal(ctx)))
}
