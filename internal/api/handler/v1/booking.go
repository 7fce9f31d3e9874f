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

type BookingService interface {
	CreateBooking(ctx context.Context, booking domain.Booking) (domain.Booking, error)
	GetBooking(ctx context.Context, userID, bookingID uint) (domain.Booking, error)
	ListAsLearner(ctx context.Context, learnerID uint) ([]domain.Booking, error)
	ListAsTeacher(ctx context.Context, teacherID uint) ([]domain.Booking, error)
	AcceptBooking(ctx context.Context, teacherID, bookingID uint, teacherResponse, meetingLink string, classID *uint) (domain.Booking, error)
	RejectBooking(ctx context.Context, teacherID, bookingID uint, teacherResponse string) (domain.Booking, error)
	CompleteBooking(ctx context.Context, userID, bookingID uint, meetingNotes string) (domain.Booking, error)
	CancelBooking(ctx context.Context, learnerID, bookingID uint) (domain.Booking, error)
	GetStats(ctx context.Context, userID uint) (domain.BookingStats, error)
}

type BookingUserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

type BookingHandler struct {
	svc     BookingService
	userSvc BookingUserService
}

func NewBookingHandler(svc BookingService, userSvc BookingUserService) *BookingHandler {
	return &BookingHandler{
		svc:     svc,
		userSvc: userSvc,
	}
}

// HandleCreateBooking godoc
// @Summary      Request a session with a teacher
// @Tags         bookings
// @Produce      json
// @Param        request body request.CreateBookingRequest true "request body"
// @Success      201 {object} response.BookingResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /bookings [post]
func (h *BookingHandler) HandleCreateBooking(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("Authorization is required"))

		return
	}

	var req request.CreateBookingRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	booking, err := h.svc.CreateBooking(ctx.Request.Context(), domain.Booking{
		LearnerID:     userID,
		TeacherID:     req.TeacherID,
		SkillID:       req.SkillID,
		ClassID:       req.ClassID,
		Message:       req.Message,
		PreferredDate: req.ParsedPreferredDate(),
		PreferredTime: req.PreferredTime,
		Duration:      domain.SessionDuration(req.Duration),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInsufficientCredits):
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("Insufficient credits to book a session")))
		case errors.Is(err, service.ErrSelfBooking):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrSelfBooking))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("teacher", "ID", req.TeacherID))
		case errors.Is(err, service.ErrSkillNotFound):
			response.RenderErr(ctx, response.ErrNotFound("skill", "ID", req.SkillID))
		default:
			err = fmt.Errorf("v1.HandleCreateBooking -> h.svc.CreateBooking -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	resp := response.BookingResponse{
		Message: "Booking request sent",
		Booking: booking,
	}
	if learner, err := h.userSvc.GetUser(ctx.Request.Context(), userID); err == nil {
		snapshot := learner.CreditBalance()
		resp.Credits = &snapshot
	}

	ctx.JSON(http.StatusCreated, resp)
}

// HandleListMyBookings godoc
// @Summary      List the caller's bookings as a learner
// @Tags         bookings
// @Produce      json
// @Success      200 {object} response.BookingListResponse
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /bookings/my-bookings [get]
func (h *BookingHandler) HandleListMyBookings(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("Authorization is required"))

		return
	}

	bookings, err := h.svc.ListAsLearner(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMyBookings -> h.svc.ListAsLearner -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.BookingListResponse{
		Bookings: bookings,
	})
}

// HandleListBookingRequests godoc
// @Summary      List incoming booking requests as a teacher
// @Tags         bookings
// @Produce      json
// @Success      200 {object} response.BookingListResponse
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /bookings/requests [get]
func (h *BookingHandler) HandleListBookingRequests(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("Authorization is required"))

		return
	}

	bookings, err := h.svc.ListAsTeacher(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListBookingRequests -> h.svc.ListAsTeacher -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.BookingListResponse{
		Bookings: bookings,
	})
}

// HandleBookingStats godoc
// @Summary      Get booking counts by status on both sides
// @Tags         bookings
// @Produce      json
// @Success      200 {object} domain.BookingStats
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /bookings/stats/summary [get]
func (h *BookingHandler) HandleBookingStats(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("Authorization is required"))

		return
	}

	stats, err := h.svc.GetStats(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleBookingStats -> h.svc.GetStats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// HandleGetBooking godoc
// @Summary      Get a booking the caller participates in
// @Tags         bookings
// @Produce      json
// @Param        bookingID path int true "booking ID"
// @Success      200 {object} domain.Booking
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /bookings/{bookingID} [get]
func (h *BookingHandler) HandleGetBooking(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("Authorization is required"))

		return
	}

	bookingID, err := parseIDParam(ctx, "bookingID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	booking, err := h.svc.GetBooking(ctx.Request.Context(), userID, bookingID)
	if err != nil {
		h.renderBookingErr(ctx, err, bookingID, "HandleGetBooking")

		return
	}

	ctx.JSON(http.StatusOK, booking)
}

// HandleAcceptBooking godoc
// @Summary      Accept a pending booking request
// @Tags         bookings
// @Produce      json
// @Param        bookingID path int true "booking ID"
// @Param        request body request.AcceptBookingRequest true "request body"
// @Success      200 {object} response.BookingResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /bookings/{bookingID}/accept [put]
func (h *BookingHandler) HandleAcceptBooking(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("Authorization is required"))

		return
	}

	bookingID, err := parseIDParam(ctx, "bookingID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.AcceptBookingRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	booking, err := h.svc.AcceptBooking(ctx.Request.Context(), userID, bookingID, req.TeacherResponse, req.MeetingLink, req.ClassID)
	if err != nil {
		h.renderBookingErr(ctx, err, bookingID, "HandleAcceptBooking")

		return
	}

	ctx.JSON(http.StatusOK, response.BookingResponse{
		Message: "Booking accepted",
		Booking: booking,
	})
}

// HandleRejectBooking godoc
// @Summary      Reject a pending booking request
// @Tags         bookings
// @Produce      json
// @Param        bookingID path int true "booking ID"
// @Param        request body request.RejectBookingRequest true "request body"
// @Success      200 {object} response.BookingResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /bookings/{bookingID}/reject [put]
func (h *BookingHandler) HandleRejectBooking(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("Authorization is required"))

		return
	}

	bookingID, err := parseIDParam(ctx, "bookingID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.RejectBookingRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	booking, err := h.svc.RejectBooking(ctx.Request.Context(), userID, bookingID, req.TeacherResponse)
	if err != nil {
		h.renderBookingErr(ctx, err, bookingID, "HandleRejectBooking")

		return
	}

	ctx.JSON(http.StatusOK, response.BookingResponse{
		Message: "Booking rejected",
		Booking: booking,
	})
}

// HandleCompleteBooking godoc
// @Summary      Mark an accepted session as completed
// @Tags         bookings
// @Produce      json
// @Param        bookingID path int true "booking ID"
// @Param        request body request.CompleteBookingRequest true "request body"
// @Success      200 {object} response.BookingResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /bookings/{bookingID}/complete [put]
func (h *BookingHandler) HandleCompleteBooking(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("Authorization is required"))

		return
	}

	bookingID, err := parseIDParam(ctx, "bookingID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.CompleteBookingRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	booking, err := h.svc.CompleteBooking(ctx.Request.Context(), userID, bookingID, req.MeetingNotes)
	if err != nil {
		h.renderBookingErr(ctx, err, bookingID, "HandleCompleteBooking")

		return
	}

	ctx.JSON(http.StatusOK, response.BookingResponse{
		Message: "Booking completed",
		Booking: booking,
	})
}

// HandleCancelBooking godoc
// @Summary      Cancel an open booking as the learner
// @Tags         bookings
// @Produce      json
// @Param        bookingID path int true "booking ID"
// @Success      200 {object} response.BookingResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /bookings/{bookingID}/cancel [put]
func (h *BookingHandler) HandleCancelBooking(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized("Authorization is required"))

		return
	}

	bookingID, err := parseIDParam(ctx, "bookingID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	booking, err := h.svc.CancelBooking(ctx.Request.Context(), userID, bookingID)
	if err != nil {
		h.renderBookingErr(ctx, err, bookingID, "HandleCancelBooking")

		return
	}

	ctx.JSON(http.StatusOK, response.BookingResponse{
		Message: "Booking cancelled",
		Booking: booking,
	})
}

// renderBookingErr maps booking service errors onto HTTP responses shared by
// every lifecycle endpoint.
func (h *BookingHandler) renderBookingErr(ctx *gin.Context, err error, bookingID uint, op string) {
	var conflict *domain.StatusConflictError

	switch {
	case errors.Is(err, service.ErrBookingNotFound):
		response.RenderErr(ctx, response.ErrNotFound("booking", "ID", bookingID))
	case errors.Is(err, service.ErrNotBookingParticipant):
		response.RenderErr(ctx, response.ErrPermissionDenied("Not a participant of this booking"))
	case errors.Is(err, service.ErrNotBookingTeacher):
		response.RenderErr(ctx, response.ErrPermissionDenied("Only the teacher can respond to this booking"))
	case errors.Is(err, service.ErrNotBookingLearner):
		response.RenderErr(ctx, response.ErrPermissionDenied("Only the learner can cancel this booking"))
	case errors.As(err, &conflict):
		response.RenderErr(ctx, response.ErrBadRequest(conflict))
	case errors.Is(err, service.ErrBookingConflict):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrBookingConflict))
	default:
		err = fmt.Errorf("v1.%v -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
