package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"taskhub-backend/middleware"
	"taskhub-backend/services"
	"taskhub-backend/utils"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

// jsonFieldName makes validation messages use the JSON key instead of the
// Go field name.
func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be an email", fe.Field())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be longer than or equal to %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must not be less than %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be shorter than or equal to %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must not be greater than %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of the following values: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt":
		return fmt.Sprintf("%s must be a positive number", fe.Field())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

// bindJSON decodes and validates the request body, writing a 400 on failure.
func bindJSON(ctx *gin.Context, payload any) bool {
	if err := ctx.ShouldBindJSON(payload); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, validationMessage(fe))
			}
			utils.JSONError(ctx, http.StatusBadRequest, strings.Join(msgs, "; "))
			return false
		}
		utils.JSONError(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// respondError maps service errors onto their HTTP status. Anything else is
// logged and reported as a 500.
func respondError(ctx *gin.Context, log *zap.Logger, err error) {
	var se *services.Error
	if errors.As(err, &se) {
		utils.JSONError(ctx, se.Status(), se.Message)
		return
	}
	_ = ctx.Error(err)
	log.Error("unhandled error",
		zap.String("method", ctx.Request.Method),
		zap.String("path", ctx.Request.URL.Path),
		zap.String("requestId", middleware.GetRequestID(ctx)),
		zap.Error(err))
	utils.JSONError(ctx, http.StatusInternalServerError, "Internal server error")
}

// principal returns the authenticated caller. Routes using it always sit
// behind middleware.Authenticate.
func principal(ctx *gin.Context) services.Principal {
	p, _ := middleware.CurrentPrincipal(ctx)
	return p
}

type messageResponse struct {
	Message string `json:"message"`
}
