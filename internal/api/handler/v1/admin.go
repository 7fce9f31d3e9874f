package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skillswap/skillswap-api/internal/api/handler/v1/request"
	"github.com/skillswap/skillswap-api/internal/api/handler/v1/response"
	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/service"
)

type AdminService interface {
	GetStats(ctx context.Context) (domain.AdminStats, error)
	ListUsers(ctx context.Context, page, limit int, role, search string) (domain.Page[domain.User], error)
	GetUser(ctx context.Context, id uint) (domain.User, error)
	UpdateRole(ctx context.Context, id uint, role domain.Role) (domain.User, error)
	SuspendUser(ctx context.Context, adminID, id uint) (domain.User, error)
	AddCredits(ctx context.Context, id uint, amount int) (domain.User, error)
	ResetPassword(ctx context.Context, id uint, newPassword string) error
	DeleteUser(ctx context.Context, adminID, id uint) error
	ListSkills(ctx context.Context, page, limit int, category, level, search string) (domain.Page[domain.Skill], error)
	DeleteSkill(ctx context.Context, id uint) error
}

type AdminHandler struct {
	svc AdminService
}

func NewAdminHandler(svc AdminService) *AdminHandler {
	return &AdminHandler{
		svc: svc,
	}
}

// HandleAdminStats godoc
// @Summary      Get moderation dashboard aggregates
// @Tags         admin
// @Produce      json
// @Success      200 {object} domain.AdminStats
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /admin/stats [get]
func (h *AdminHandler) HandleAdminStats(ctx *gin.Context) {
	stats, err := h.svc.GetStats(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleAdminStats -> h.svc.GetStats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// HandleListUsers godoc
// @Summary      List users with role filter and search
// @Tags         admin
// @Produce      json
// @Param        page   query int    false "page, starts at 1"
// @Param        limit  query int    false "page size, defaults to 20"
// @Param        role   query string false "filter by role"
// @Param        search query string false "search in names and emails"
// @Success      200 {object} domain.Page[domain.User]
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /admin/users [get]
func (h *AdminHandler) HandleListUsers(ctx *gin.Context) {
	page, limit, err := parsePagination(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	users, err := h.svc.ListUsers(ctx.Request.Context(), page, limit, ctx.Query("role"), ctx.Query("search"))
	if err != nil {
		err = fmt.Errorf("v1.HandleListUsers -> h.svc.ListUsers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, users)
}

// HandleGetManagedUser godoc
// @Summary      Get any user by ID
// @Tags         admin
// @Produce      json
// @Param        userID path int true "user ID"
// @Success      200 {object} domain.User
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /admin/users/{userID} [get]
func (h *AdminHandler) HandleGetManagedUser(ctx *gin.Context) {
	userID, err := parseIDParam(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		h.renderAdminUserErr(ctx, err, userID, "HandleGetManagedUser")

		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleUpdateUserRole godoc
// @Summary      Change a user's role
// @Tags         admin
// @Produce      json
// @Param        userID path int true "user ID"
// @Param        request body request.UpdateRoleRequest true "request body"
// @Success      200 {object} response.UserResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /admin/users/{userID}/role [put]
func (h *AdminHandler) HandleUpdateUserRole(ctx *gin.Context) {
	userID, err := parseIDParam(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.UpdateRoleRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.svc.UpdateRole(ctx.Request.Context(), userID, domain.Role(req.Role))
	if err != nil {
		if errors.Is(err, service.ErrInvalidRole) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidRole))

			return
		}

		h.renderAdminUserErr(ctx, err, userID, "HandleUpdateUserRole")

		return
	}

	ctx.JSON(http.StatusOK, response.UserResponse{
		Message: "Role updated",
		User:    user,
	})
}

// HandleSuspendUser godoc
// @Summary      Suspend a user by zeroing their credits
// @Tags         admin
// @Produce      json
// @Param        userID path int true "user ID"
// @Success      200 {object} response.UserResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /admin/users/{userID}/suspend [put]
func (h *AdminHandler) HandleSuspendUser(ctx *gin.Context) {
	adminID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("Authorization is required"))

		return
	}

	userID, err := parseIDParam(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.svc.SuspendUser(ctx.Request.Context(), adminID, userID)
	if err != nil {
		if errors.Is(err, service.ErrSelfModeration) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrSelfModeration))

			return
		}

		h.renderAdminUserErr(ctx, err, userID, "HandleSuspendUser")

		return
	}

	ctx.JSON(http.StatusOK, response.UserResponse{
		Message: "User suspended",
		User:    user,
	})
}

// HandleAddCredits godoc
// @Summary      Top up a user's credit balance
// @Tags         admin
// @Produce      json
// @Param        userID path int true "user ID"
// @Param        request body request.AddCreditsRequest true "request body"
// @Success      200 {object} response.UserResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /admin/users/{userID}/credits [put]
func (h *AdminHandler) HandleAddCredits(ctx *gin.Context) {
	userID, err := parseIDParam(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.AddCreditsRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.svc.AddCredits(ctx.Request.Context(), userID, req.Amount)
	if err != nil {
		h.renderAdminUserErr(ctx, err, userID, "HandleAddCredits")

		return
	}

	ctx.JSON(http.StatusOK, response.UserResponse{
		Message: "Credits added",
		User:    user,
	})
}

// HandleResetPassword godoc
// @Summary      Reset a user's password
// @Tags         admin
// @Produce      json
// @Param        userID path int true "user ID"
// @Param        request body request.ResetPasswordRequest true "request body"
// @Success      200 {object} response.MessageResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /admin/users/{userID}/reset-password [put]
func (h *AdminHandler) HandleResetPassword(ctx *gin.Context) {
	userID, err := parseIDParam(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.ResetPasswordRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.ResetPassword(ctx.Request.Context(), userID, req.NewPassword); err != nil {
		h.renderAdminUserErr(ctx, err, userID, "HandleResetPassword")

		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{
		Message: "Password reset",
	})
}

// HandleDeleteUser godoc
// @Summary      Delete a user and their skills
// @Tags         admin
// @Produce      json
// @Param        userID path int true "user ID"
// @Success      200 {object} response.MessageResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /admin/users/{userID} [delete]
func (h *AdminHandler) HandleDeleteUser(ctx *gin.Context) {
	adminID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("Authorization is required"))

		return
	}

	userID, err := parseIDParam(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeleteUser(ctx.Request.Context(), adminID, userID); err != nil {
		if errors.Is(err, service.ErrSelfModeration) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrSelfModeration))

			return
		}

		h.renderAdminUserErr(ctx, err, userID, "HandleDeleteUser")

		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{
		Message: "User deleted",
	})
}

// HandleListAllSkills godoc
// @Summary      List skills with moderation filters
// @Tags         admin
// @Produce      json
// @Param        page     query int    false "page, starts at 1"
// @Param        limit    query int    false "page size, defaults to 20"
// @Param        category query string false "filter by category"
// @Param        level    query string false "filter by level"
// @Param        search   query string false "search in titles"
// @Success      200 {object} domain.Page[domain.Skill]
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /admin/skills [get]
func (h *AdminHandler) HandleListAllSkills(ctx *gin.Context) {
	page, limit, err := parsePagination(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	skills, err := h.svc.ListSkills(ctx.Request.Context(), page, limit,
		ctx.Query("category"), ctx.Query("level"), ctx.Query("search"))
	if err != nil {
		err = fmt.Errorf("v1.HandleListAllSkills -> h.svc.ListSkills -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, skills)
}

// HandleForceDeleteSkill godoc
// @Summary      Delete any skill
// @Tags         admin
// @Produce      json
// @Param        skillID path int true "skill ID"
// @Success      200 {object} response.MessageResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /admin/skills/{skillID} [delete]
func (h *AdminHandler) HandleForceDeleteSkill(ctx *gin.Context) {
	skillID, err := parseIDParam(ctx, "skillID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeleteSkill(ctx.Request.Context(), skillID); err != nil {
		if errors.Is(err, service.ErrSkillNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("skill", "ID", skillID))

			return
		}

		err = fmt.Errorf("v1.HandleForceDeleteSkill -> h.svc.DeleteSkill -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{
		Message: "Skill deleted",
	})
}

func (h *AdminHandler) renderAdminUserErr(ctx *gin.Context, err error, userID uint, op string) {
	if errors.Is(err, service.ErrUserNotFound) {
		response.RenderErr(ctx, response.ErrNotFound("user", "ID", userID))

		return
	}

	err = fmt.Errorf("v1.%v -> %w", op, err)
	response.RenderErr(ctx, response.ErrInternalServerError(err))
}

func parsePagination(ctx *gin.Context) (int, int, error) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 0, 0, errors.New("page must be a positive integer")
	}

	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		return 0, 0, errors.New("limit must be between 1 and 100")
	}

	return page, limit, nil
}
