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

type SkillService interface {
	CreateSkill(ctx context.Context, skill domain.Skill) (domain.Skill, error)
	GetSkill(ctx context.Context, id uint) (domain.Skill, error)
	ListSkills(ctx context.Context, page, limit int, category, level, search string) (domain.Page[domain.Skill], error)
	SearchSkills(ctx context.Context, keyword, category string) ([]domain.Skill, error)
	UpdateSkill(ctx context.Context, userID uint, skill domain.Skill) (domain.Skill, error)
	DeleteSkill(ctx context.Context, userID, skillID uint) error
}

type SkillHandler struct {
	svc SkillService
}

func NewSkillHandler(svc SkillService) *SkillHandler {
	return &SkillHandler{
		svc: svc,
	}
}

// HandleCreateSkill godoc
// @Summary      Offer a new skill
// @Tags         skills
// @Produce      json
// @Param        request body request.CreateSkillRequest true "request body"
// @Success      201 {object} response.SkillResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /skills [post]
func (h *SkillHandler) HandleCreateSkill(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("Authorization is required"))

		return
	}

	var req request.CreateSkillRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	skill, err := h.svc.CreateSkill(ctx.Request.Context(), domain.Skill{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Level:       domain.SkillLevel(req.Level),
		UserID:      userID,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateSkill -> h.svc.CreateSkill -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, response.SkillResponse{
		Message: "Skill created successfully",
		Skill:   skill,
	})
}

// HandleListSkills godoc
// @Summary      List skills with optional filters
// @Tags         skills
// @Produce      json
// @Param        page     query int    false "page, starts at 1"
// @Param        limit    query int    false "page size, defaults to 20"
// @Param        category query string false "filter by category"
// @Param        level    query string false "filter by level"
// @Param        search   query string false "search in titles"
// @Success      200 {object} domain.Page[domain.Skill]
// @Failure      400 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /skills [get]
func (h *SkillHandler) HandleListSkills(ctx *gin.Context) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("page must be a positive integer")))

		return
	}

	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("limit must be between 1 and 100")))

		return
	}

	skills, err := h.svc.ListSkills(ctx.Request.Context(), page, limit,
		ctx.Query("category"), ctx.Query("level"), ctx.Query("search"))
	if err != nil {
		err = fmt.Errorf("v1.HandleListSkills -> h.svc.ListSkills -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, skills)
}

// HandleSearchSkills godoc
// @Summary      Search skills by keyword
// @Tags         skills
// @Produce      json
// @Param        q        query string false "keyword matched against titles"
// @Param        category query string false "filter by category"
// @Success      200 {object} response.SkillListResponse
// @Failure      500 {object} response.Err
// @Router       /skills/search [get]
func (h *SkillHandler) HandleSearchSkills(ctx *gin.Context) {
	skills, err := h.svc.SearchSkills(ctx.Request.Context(), ctx.Query("q"), ctx.Query("category"))
	if err != nil {
		err = fmt.Errorf("v1.HandleSearchSkills -> h.svc.SearchSkills -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.SkillListResponse{
		Skills: skills,
	})
}

// HandleGetSkill godoc
// @Summary      Get a skill by ID
// @Tags         skills
// @Produce      json
// @Param        skillID path int true "skill ID"
// @Success      200 {object} domain.Skill
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /skills/{skillID} [get]
func (h *SkillHandler) HandleGetSkill(ctx *gin.Context) {
	skillID, err := parseIDParam(ctx, "skillID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	skill, err := h.svc.GetSkill(ctx.Request.Context(), skillID)
	if err != nil {
		if errors.Is(err, service.ErrSkillNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("skill", "ID", skillID))

			return
		}

		err = fmt.Errorf("v1.HandleGetSkill -> h.svc.GetSkill -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, skill)
}

// HandleUpdateSkill godoc
// @Summary      Update an owned skill
// @Tags         skills
// @Produce      json
// @Param        skillID path int true "skill ID"
// @Param        request body request.UpdateSkillRequest true "request body"
// @Success      200 {object} response.SkillResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /skills/{skillID} [put]
func (h *SkillHandler) HandleUpdateSkill(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("Authorization is required"))

		return
	}

	skillID, err := parseIDParam(ctx, "skillID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.UpdateSkillRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	skill, err := h.svc.UpdateSkill(ctx.Request.Context(), userID, domain.Skill{
		ID:          skillID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Level:       domain.SkillLevel(req.Level),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSkillNotFound):
			response.RenderErr(ctx, response.ErrNotFound("skill", "ID", skillID))
		case errors.Is(err, service.ErrNotSkillOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied("Only the owner can update this skill"))
		default:
			err = fmt.Errorf("v1.HandleUpdateSkill -> h.svc.UpdateSkill -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.SkillResponse{
		Message: "Skill updated successfully",
		Skill:   skill,
	})
}

// HandleDeleteSkill godoc
// @Summary      Delete an owned skill
// @Tags         skills
// @Produce      json
// @Param        skillID path int true "skill ID"
// @Success      200 {object} response.MessageResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /skills/{skillID} [delete]
func (h *SkillHandler) HandleDeleteSkill(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("Authorization is required"))

		return
	}

	skillID, err := parseIDParam(ctx, "skillID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeleteSkill(ctx.Request.Context(), userID, skillID); err != nil {
		switch {
		case errors.Is(err, service.ErrSkillNotFound):
			response.RenderErr(ctx, response.ErrNotFound("skill", "ID", skillID))
		case errors.Is(err, service.ErrNotSkillOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied("Only the owner can delete this skill"))
		default:
			err = fmt.Errorf("v1.HandleDeleteSkill -> h.svc.DeleteSkill -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{
		Message: "Skill deleted successfully",
	})
}

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%v must be a positive integer", name)
	}

	return uint(id), nil
}
