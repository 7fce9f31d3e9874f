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

type FeedbackService interface {
	SubmitFeedback(ctx context.Context, feedback domain.Feedback) (domain.Feedback, error)
	ForClass(ctx context.Context, classID uint) ([]domain.Feedback, error)
	ForInstructor(ctx context.Context, instructorID uint) ([]domain.Feedback, error)
}

type FeedbackHandler struct {
	svc FeedbackService
}

func NewFeedbackHandler(svc FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		svc: svc,
	}
}

// HandleSubmitFeedback godoc
// @Summary      Rate a class the caller attended
// @Tags         feedback
// @Produce      json
// @Param        request body request.SubmitFeedbackRequest true "request body"
// @Success      201 {object} response.FeedbackResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /feedback [post]
func (h *FeedbackHandler) HandleSubmitFeedback(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("Authorization is required"))

		return
	}

	var req request.SubmitFeedbackRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	feedback, err := h.svc.SubmitFeedback(ctx.Request.Context(), domain.Feedback{
		ClassID:   req.ClassID,
		StudentID: userID,
		Rating:    req.Rating,
		Comments:  req.Comments,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClassNotFound):
			response.RenderErr(ctx, response.ErrNotFound("class", "ID", req.ClassID))
		case errors.Is(err, service.ErrNotClassMember):
			response.RenderErr(ctx, response.ErrPermissionDenied("Only enrolled students can leave feedback"))
		case errors.Is(err, service.ErrFeedbackExists):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrFeedbackExists))
		case errors.Is(err, service.ErrInvalidRating):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidRating))
		default:
			err = fmt.Errorf("v1.HandleSubmitFeedback -> h.svc.SubmitFeedback -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, response.FeedbackResponse{
		Message:  "Feedback submitted",
		Feedback: feedback,
	})
}

// HandleClassFeedback godoc
// @Summary      List feedback left on a class
// @Tags         feedback
// @Produce      json
// @Param        classID path int true "class ID"
// @Success      200 {object} response.FeedbackListResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /feedback/class/{classID} [get]
func (h *FeedbackHandler) HandleClassFeedback(ctx *gin.Context) {
	classID, err := parseIDParam(ctx, "classID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	feedbacks, err := h.svc.ForClass(ctx.Request.Context(), classID)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("class", "ID", classID))

			return
		}

		err = fmt.Errorf("v1.HandleClassFeedback -> h.svc.ForClass -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.FeedbackListResponse{
		Feedbacks: feedbacks,
	})
}

// HandleInstructorFeedback godoc
// @Summary      List feedback received as an instructor
// @Tags         feedback
// @Produce      json
// @Success      200 {object} response.FeedbackListResponse
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /feedback/instructor [get]
func (h *FeedbackHandler) HandleInstructorFeedback(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("Authorization is required"))

		return
	}

	feedbacks, err := h.svc.ForInstructor(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleInstructorFeedback -> h.svc.ForInstructor -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.FeedbackListResponse{
		Feedbacks: feedbacks,
	})
}
