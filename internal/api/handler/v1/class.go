package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillswap/skillswap-api/internal/api/handler/v1/request"
	"github.com/skillswap/skillswap-api/internal/api/handler/v1/response"
	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/service"
)

type ClassService interface {
	CreateClass(ctx context.Context, class domain.Class) (domain.Class, error)
	ListClasses(ctx context.Context) ([]domain.Class, error)
	GetClass(ctx context.Context, id uint) (domain.Class, error)
	UpdateClass(ctx context.Context, instructorID uint, class domain.Class) (domain.Class, error)
	DeleteClass(ctx context.Context, instructorID, classID uint) error
	JoinClass(ctx context.Context, classID, userID uint) (domain.Class, error)
	CompleteClass(ctx context.Context, instructorID, classID uint) (domain.ClassCompletionResult, error)
	EnrolledClasses(ctx context.Context, userID uint) ([]domain.Class, error)
	CreatedClasses(ctx context.Context, instructorID uint) ([]domain.Class, error)
	Roster(ctx context.Context, instructorID, classID uint) ([]domain.User, error)
	CreatePost(ctx context.Context, post domain.ClassPost) (domain.ClassPost, error)
	ListPosts(ctx context.Context, userID, classID uint) ([]domain.ClassPost, error)
	ReactToPost(ctx context.Context, userID, classID, postID uint, reaction domain.ReactionKind) (domain.ClassPost, error)
}

type ClassHandler struct {
	svc ClassService
}

func NewClassHandler(svc ClassService) *ClassHandler {
	return &ClassHandler{
		svc: svc,
	}
}

// HandleCreateClass godoc
// @Summary      Open a group class for an owned skill
// @Tags         classes
// @Produce      json
// @Param        request body request.CreateClassRequest true "request body"
// @Success      201 {object} response.ClassResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /classes [post]
func (h *ClassHandler) HandleCreateClass(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("Authorization is required"))

		return
	}

	var req request.CreateClassRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	class, err := h.svc.CreateClass(ctx.Request.Context(), domain.Class{
		Title:        req.Title,
		Description:  req.Description,
		SkillID:      req.SkillID,
		InstructorID: userID,
		Date:         req.ParsedDate(),
		MaxStudents:  req.MaxStudents,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSkillNotFound):
			response.RenderErr(ctx, response.ErrNotFound("skill", "ID", req.SkillID))
		case errors.Is(err, service.ErrNotSkillOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied("Classes can only be created from your own skills"))
		default:
			err = fmt.Errorf("v1.HandleCreateClass -> h.svc.CreateClass -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, response.ClassResponse{
		Message: "Class created successfully",
		Class:   class,
	})
}

// HandleListClasses godoc
// @Summary      List all upcoming classes
// @Tags         classes
// @Produce      json
// @Success      200 {object} response.ClassListResponse
// @Failure      500 {object} response.Err
// @Router       /classes [get]
func (h *ClassHandler) HandleListClasses(ctx *gin.Context) {
	classes, err := h.svc.ListClasses(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListClasses -> h.svc.ListClasses -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.ClassListResponse{
		Classes: classes,
	})
}

// HandleGetClass godoc
// @Summary      Get a class the caller teaches or attends
// @Tags         classes
// @Produce      json
// @Param        classID path int true "class ID"
// @Success      200 {object} domain.Class
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /classes/{classID} [get]
func (h *ClassHandler) HandleGetClass(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("Authorization is required"))

		return
	}

	classID, err := parseIDParam(ctx, "classID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	class, err := h.svc.GetClass(ctx.Request.Context(), classID)
	if err != nil {
		h.renderClassErr(ctx, err, classID, "HandleGetClass")

		return
	}

	if class.InstructorID != userID && !class.IsEnrolled(userID) {
		response.RenderErr(ctx, response.ErrPermissionDenied("Only the instructor or enrolled students can view this class"))

		return
	}

	ctx.JSON(http.StatusOK, class)
}

// HandleUpdateClass godoc
// @Summary      Update an owned class
// @Tags         classes
// @Produce      json
// @Param        classID path int true "class ID"
// @Param        request body request.UpdateClassRequest true "request body"
// @Success      200 {object} response.ClassResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /classes/{classID} [put]
func (h *ClassHandler) HandleUpdateClass(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("Authorization is required"))

		return
	}

	classID, err := parseIDParam(ctx, "classID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.UpdateClassRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	class, err := h.svc.UpdateClass(ctx.Request.Context(), userID, domain.Class{
		ID:          classID,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.ParsedDate(),
		MaxStudents: req.MaxStudents,
	})
	if err != nil {
		h.renderClassErr(ctx, err, classID, "HandleUpdateClass")

		return
	}

	ctx.JSON(http.StatusOK, response.ClassResponse{
		Message: "Class updated successfully",
		Class:   class,
	})
}

// HandleDeleteClass godoc
// @Summary      Delete an owned class
// @Tags         classes
// @Produce      json
// @Param        classID path int true "class ID"
// @Success      200 {object} response.MessageResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /classes/{classID} [delete]
func (h *ClassHandler) HandleDeleteClass(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("Authorization is required"))

		return
	}

	classID, err := parseIDParam(ctx, "classID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeleteClass(ctx.Request.Context(), userID, classID); err != nil {
		h.renderClassErr(ctx, err, classID, "HandleDeleteClass")

		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{
		Message: "Class deleted successfully",
	})
}

// HandleJoinClass godoc
// @Summary      Enroll in a class, holding one credit
// @Tags         classes
// @Produce      json
// @Param        classID path int true "class ID"
// @Success      200 {object} response.ClassResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /classes/join/{classID} [post]
func (h *ClassHandler) HandleJoinClass(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("Authorization is required"))

		return
	}

	classID, err := parseIDParam(ctx, "classID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	class, err := h.svc.JoinClass(ctx.Request.Context(), classID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClassNotFound):
			response.RenderErr(ctx, response.ErrNotFound("class", "ID", classID))
		case errors.Is(err, service.ErrOwnClass):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrOwnClass))
		case errors.Is(err, service.ErrAlreadyEnrolled):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrAlreadyEnrolled))
		case errors.Is(err, service.ErrClassFull):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrClassFull))
		case errors.Is(err, service.ErrInsufficientCredits):
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("Insufficient credits to join this class")))
		default:
			err = fmt.Errorf("v1.HandleJoinClass -> h.svc.JoinClass -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.ClassResponse{
		Message: "Enrolled successfully",
		Class:   class,
	})
}

// HandleCompleteClass godoc
// @Summary      Complete a class and settle the roster's credits
// @Tags         classes
// @Produce      json
// @Param        classID path int true "class ID"
// @Success      200 {object} response.ClassCompletionResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /classes/{classID}/complete [put]
func (h *ClassHandler) HandleCompleteClass(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("Authorization is required"))

		return
	}

	classID, err := parseIDParam(ctx, "classID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	result, err := h.svc.CompleteClass(ctx.Request.Context(), userID, classID)
	if err != nil {
		h.renderClassErr(ctx, err, classID, "HandleCompleteClass")

		return
	}

	ctx.JSON(http.StatusOK, response.ClassCompletionResponse{
		Message:          "Class completed",
		CreditsEarned:    result.CreditsEarned,
		InstructorCredit: result.InstructorCredit,
	})
}

// HandleEnrolledClasses godoc
// @Summary      List classes the caller is enrolled in
// @Tags         classes
// @Produce      json
// @Success      200 {object} response.ClassListResponse
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /classes/enrolled [get]
func (h *ClassHandler) HandleEnrolledClasses(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("Authorization is required"))

		return
	}

	classes, err := h.svc.EnrolledClasses(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleEnrolledClasses -> h.svc.EnrolledClasses -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.ClassListResponse{
		Classes: classes,
	})
}

// HandleMyClasses godoc
// @Summary      List classes the caller teaches
// @Tags         classes
// @Produce      json
// @Success      200 {object} response.ClassListResponse
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /classes/mine [get]
func (h *ClassHandler) HandleMyClasses(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("Authorization is required"))

		return
	}

	classes, err := h.svc.CreatedClasses(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleMyClasses -> h.svc.CreatedClasses -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.ClassListResponse{
		Classes: classes,
	})
}

// HandleClassRoster godoc
// @Summary      List enrolled students of an owned class
// @Tags         classes
// @Produce      json
// @Param        classID path int true "class ID"
// @Success      200 {object} response.RosterResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /classes/{classID}/students [get]
func (h *ClassHandler) HandleClassRoster(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("Authorization is required"))

		return
	}

	classID, err := parseIDParam(ctx, "classID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	students, err := h.svc.Roster(ctx.Request.Context(), userID, classID)
	if err != nil {
		h.renderClassErr(ctx, err, classID, "HandleClassRoster")

		return
	}

	ctx.JSON(http.StatusOK, response.RosterResponse{
		Students: students,
	})
}

// HandleCreateClassPost godoc
// @Summary      Post a message on the class wall
// @Tags         classes
// @Produce      json
// @Param        classID path int true "class ID"
// @Param        request body request.CreateClassPostRequest true "request body"
// @Success      201 {object} response.ClassPostResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /classes/{classID}/posts [post]
func (h *ClassHandler) HandleCreateClassPost(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("Authorization is required"))

		return
	}

	classID, err := parseIDParam(ctx, "classID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.CreateClassPostRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	post, err := h.svc.CreatePost(ctx.Request.Context(), domain.ClassPost{
		ClassID: classID,
		UserID:  userID,
		Message: req.Message,
	})
	if err != nil {
		h.renderClassErr(ctx, err, classID, "HandleCreateClassPost")

		return
	}

	ctx.JSON(http.StatusCreated, response.ClassPostResponse{
		Message: "Post published",
		Post:    post,
	})
}

// HandleListClassPosts godoc
// @Summary      List the class wall, newest first
// @Tags         classes
// @Produce      json
// @Param        classID path int true "class ID"
// @Success      200 {object} response.ClassPostListResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /classes/{classID}/posts [get]
func (h *ClassHandler) HandleListClassPosts(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("Authorization is required"))

		return
	}

	classID, err := parseIDParam(ctx, "classID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	posts, err := h.svc.ListPosts(ctx.Request.Context(), userID, classID)
	if err != nil {
		h.renderClassErr(ctx, err, classID, "HandleListClassPosts")

		return
	}

	ctx.JSON(http.StatusOK, response.ClassPostListResponse{
		Posts: posts,
	})
}

// HandleReactToClassPost godoc
// @Summary      React to a class wall post
// @Tags         classes
// @Produce      json
// @Param        classID path int true "class ID"
// @Param        postID path int true "post ID"
// @Param        request body request.ReactToPostRequest true "request body"
// @Success      200 {object} response.ClassPostResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /classes/{classID}/posts/{postID}/react [post]
func (h *ClassHandler) HandleReactToClassPost(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("Authorization is required"))

		return
	}

	classID, err := parseIDParam(ctx, "classID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	postID, err := parseIDParam(ctx, "postID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.ReactToPostRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	post, err := h.svc.ReactToPost(ctx.Request.Context(), userID, classID, postID, domain.ReactionKind(req.Reaction))
	if err != nil {
		if errors.Is(err, service.ErrClassPostNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("post", "ID", postID))

			return
		}

		h.renderClassErr(ctx, err, classID, "HandleReactToClassPost")

		return
	}

	ctx.JSON(http.StatusOK, response.ClassPostResponse{
		Message: "Reaction added",
		Post:    post,
	})
}

func (h *ClassHandler) renderClassErr(ctx *gin.Context, err error, classID uint, op string) {
	switch {
	case errors.Is(err, service.ErrClassNotFound):
		response.RenderErr(ctx, response.ErrNotFound("class", "ID", classID))
	case errors.Is(err, service.ErrNotClassInstructor):
		response.RenderErr(ctx, response.ErrPermissionDenied("Only the instructor can perform this action"))
	case errors.Is(err, service.ErrNotClassMember):
		response.RenderErr(ctx, response.ErrPermissionDenied("Only class participants can perform this action"))
	case errors.Is(err, service.ErrClassCompleted):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrClassCompleted))
	default:
		err = fmt.Errorf("v1.%v -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
