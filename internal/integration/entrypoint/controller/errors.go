package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/mealsync/backend/internal/domain/error"
	"github.com/mealsync/backend/internal/integration/entrypoint/dto"
	"github.com/mealsync/backend/internal/integration/entrypoint/middleware"
)

// handleError maps domain errors to HTTP responses.
func handleError(ctx *gin.Context, err error) {
	var planErr *domainerror.PlanError
	if errors.As(err, &planErr) {
		ctx.JSON(getStatusCodeForPlanError(planErr.Code), dto.ErrorResponse{
			Error: planErr.Message,
			Code:  string(planErr.Code),
		})
		return
	}

	var sessionErr *domainerror.SessionError
	if errors.As(err, &sessionErr) {
		ctx.JSON(getStatusCodeForSessionError(sessionErr.Code), dto.ErrorResponse{
			Error: sessionErr.Message,
			Code:  string(sessionErr.Code),
		})
		return
	}

	var emailErr *domainerror.EmailError
	if errors.As(err, &emailErr) {
		slog.Error("Email request failed", "code", emailErr.Code, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: emailErr.Message,
			Code:  string(emailErr.Code),
		})
		return
	}

	slog.Error("Unhandled request error", "path", ctx.FullPath(), "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForPlanError maps plan error codes to HTTP status codes.
func getStatusCodeForPlanError(code domainerror.PlanErrorCode) int {
	switch code {
	case domainerror.ErrCodePlanNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeDigestNotConfigured:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidWeek,
		domainerror.ErrCodeInvalidDay,
		domainerror.ErrCodeInvalidMealType,
		domainerror.ErrCodeSlotUnavailable,
		domainerror.ErrCodeInvalidChoice,
		domainerror.ErrCodeInvalidBudgetKey,
		domainerror.ErrCodeInvalidBudgetAmount,
		domainerror.ErrCodeMainMealFixed,
		domainerror.ErrCodeInvalidDigestEmail,
		domainerror.ErrCodeMissingPlanFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForSessionError maps session error codes to HTTP status codes.
func getStatusCodeForSessionError(code domainerror.SessionErrorCode) int {
	switch code {
	case domainerror.ErrCodeMissingSessionToken, domainerror.ErrCodeInvalidSessionToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeTooManySessions:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// requirePlanID reads the session's plan from the context, writing a 401 when absent.
func requirePlanID(ctx *gin.Context) (uuid.UUID, bool) {
	planID, ok := middleware.GetPlanIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Plan session required",
			Code:  string(domainerror.ErrCodeMissingSessionToken),
		})
		return uuid.Nil, false
	}
	return planID, true
}

// intParam parses an integer path or query value, writing a 400 with code on failure.
func intParam(ctx *gin.Context, raw, name string, code domainerror.PlanErrorCode) (int, bool) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + name + ": must be an integer",
			Code:  string(code),
		})
		return 0, false
	}
	return v, true
}
