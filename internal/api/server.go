package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/skillswap/skillswap-api/docs"
	v1 "github.com/skillswap/skillswap-api/internal/api/handler/v1"
	"github.com/skillswap/skillswap-api/internal/api/middleware"
	"github.com/skillswap/skillswap-api/internal/config"
	"github.com/skillswap/skillswap-api/internal/repository"
	"github.com/skillswap/skillswap-api/internal/repository/dao"
	"github.com/skillswap/skillswap-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	userRepo *repository.UserRepository
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config:   conf,
		Router:   engine,
		userRepo: repository.NewUserRepository(dao.NewUserDAO(db)),
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	skillHandler := s.initSkillHandler(db)
	bookingHandler := s.initBookingHandler(db)
	classHandler := s.initClassHandler(db)
	feedbackHandler := s.initFeedbackHandler(db)
	adminHandler := s.initAdminHandler(db)
	s.MountHandlers(db, authHandler, userHandler, skillHandler, bookingHandler, classHandler, feedbackHandler, adminHandler)

	return s
}

// CreditAuditor exposes the ledger audit used by the reconciliation job.
func (s *Server) CreditAuditor() service.CreditAuditor {
	return s.userRepo
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	repo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	repo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initSkillHandler(db *gorm.DB) *v1.SkillHandler {
	repo := repository.NewSkillRepository(dao.NewSkillDAO(db))
	svc := service.NewSkillService(repo)
	handler := v1.NewSkillHandler(svc)

	return handler
}

func (s *Server) initBookingHandler(db *gorm.DB) *v1.BookingHandler {
	repo := repository.NewBookingRepository(dao.NewBookingDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	skillRepo := repository.NewSkillRepository(dao.NewSkillDAO(db))
	classRepo := repository.NewClassRepository(dao.NewClassDAO(db))
	svc := service.NewBookingService(repo, userRepo, skillRepo, classRepo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewBookingHandler(svc, uSvc)

	return handler
}

func (s *Server) initClassHandler(db *gorm.DB) *v1.ClassHandler {
	repo := repository.NewClassRepository(dao.NewClassDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	skillRepo := repository.NewSkillRepository(dao.NewSkillDAO(db))
	postRepo := repository.NewFeedbackRepository(dao.NewFeedbackDAO(db))
	svc := service.NewClassService(repo, userRepo, skillRepo, postRepo)
	handler := v1.NewClassHandler(svc)

	return handler
}

func (s *Server) initFeedbackHandler(db *gorm.DB) *v1.FeedbackHandler {
	repo := repository.NewFeedbackRepository(dao.NewFeedbackDAO(db))
	classRepo := repository.NewClassRepository(dao.NewClassDAO(db))
	svc := service.NewFeedbackService(repo, classRepo)
	handler := v1.NewFeedbackHandler(svc)

	return handler
}

func (s *Server) initAdminHandler(db *gorm.DB) *v1.AdminHandler {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	skillRepo := repository.NewSkillRepository(dao.NewSkillDAO(db))
	svc := service.NewAdminService(userRepo, skillRepo)
	handler := v1.NewAdminHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	db *gorm.DB,
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	skillHandler *v1.SkillHandler,
	bookingHandler *v1.BookingHandler,
	classHandler *v1.ClassHandler,
	feedbackHandler *v1.FeedbackHandler,
	adminHandler *v1.AdminHandler,
) {
	const basePath = "/api"

	verifyJWT := middleware.NewAuthenticator([]byte(s.Config.API.JWTSigningKey)).VerifyJWT()
	adminGate := middleware.RequireAdmin(service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db))))

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/register", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	public := s.Router.Group(basePath)
	{
		public.GET("/skills", skillHandler.HandleListSkills)
		public.GET("/skills/search", skillHandler.HandleSearchSkills)
		public.GET("/skills/:skillID", skillHandler.HandleGetSkill)
		public.GET("/classes", classHandler.HandleListClasses)
	}

	users := s.Router.Group(basePath, verifyJWT)
	{
		users.GET("/users/me", userHandler.HandleGetMe)
		users.PUT("/users/me", userHandler.HandleUpdateMe)
		users.PUT("/users/me/password", userHandler.HandleChangePassword)
		users.GET("/users/me/stats", userHandler.HandleGetMyStats)
		users.GET("/users/:userID", userHandler.HandleGetUser)
	}

	skills := s.Router.Group(basePath, verifyJWT)
	{
		skills.POST("/skills", skillHandler.HandleCreateSkill)
		skills.PUT("/skills/:skillID", skillHandler.HandleUpdateSkill)
		skills.DELETE("/skills/:skillID", skillHandler.HandleDeleteSkill)
	}

	bookings := s.Router.Group(basePath, verifyJWT)
	{
		bookings.POST("/bookings", bookingHandler.HandleCreateBooking)
		bookings.GET("/bookings/my-bookings", bookingHandler.HandleListMyBookings)
		bookings.GET("/bookings/requests", bookingHandler.HandleListBookingRequests)
		bookings.GET("/bookings/stats/summary", bookingHandler.HandleBookingStats)
		bookings.GET("/bookings/:bookingID", bookingHandler.HandleGetBooking)
		bookings.PUT("/bookings/:bookingID/accept", bookingHandler.HandleAcceptBooking)
		bookings.PUT("/bookings/:bookingID/reject", bookingHandler.HandleRejectBooking)
		bookings.PUT("/bookings/:bookingID/complete", bookingHandler.HandleCompleteBooking)
		bookings.PUT("/bookings/:bookingID/cancel", bookingHandler.HandleCancelBooking)
	}

	classes := s.Router.Group(basePath, verifyJWT)
	{
		classes.POST("/classes", classHandler.HandleCreateClass)
		classes.GET("/classes/enrolled", classHandler.HandleEnrolledClasses)
		classes.GET("/classes/mine", classHandler.HandleMyClasses)
		classes.POST("/classes/join/:classID", classHandler.HandleJoinClass)
		classes.GET("/classes/:classID", classHandler.HandleGetClass)
		classes.PUT("/classes/:classID", classHandler.HandleUpdateClass)
		classes.DELETE("/classes/:classID", classHandler.HandleDeleteClass)
		classes.PUT("/classes/:classID/complete", classHandler.HandleCompleteClass)
		classes.GET("/classes/:classID/students", classHandler.HandleClassRoster)
		classes.POST("/classes/:classID/posts", classHandler.HandleCreateClassPost)
		classes.GET("/classes/:classID/posts", classHandler.HandleListClassPosts)
		classes.POST("/classes/:classID/posts/:postID/react", classHandler.HandleReactToClassPost)
	}

	feedback := s.Router.Group(basePath, verifyJWT)
	{
		feedback.POST("/feedback", feedbackHandler.HandleSubmitFeedback)
		feedback.GET("/feedback/class/:classID", feedbackHandler.HandleClassFeedback)
		feedback.GET("/feedback/instructor", feedbackHandler.HandleInstructorFeedback)
	}

	admin := s.Router.Group(basePath+"/admin", verifyJWT, adminGate)
	{
		admin.GET("/stats", adminHandler.HandleAdminStats)
		admin.GET("/users", adminHandler.HandleListUsers)
		admin.GET("/users/:userID", adminHandler.HandleGetManagedUser)
		admin.PUT("/users/:userID/role", adminHandler.HandleUpdateUserRole)
		admin.PUT("/users/:userID/suspend", adminHandler.HandleSuspendUser)
		admin.PUT("/users/:userID/credits", adminHandler.HandleAddCredits)
		admin.PUT("/users/:userID/reset-password", adminHandler.HandleResetPassword)
		admin.DELETE("/users/:userID", adminHandler.HandleDeleteUser)
		admin.GET("/skills", adminHandler.HandleListAllSkills)
		admin.DELETE("/skills/:skillID", adminHandler.HandleForceDeleteSkill)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "SkillSwap API"
	docs.SwaggerInfo.Description = "Peer-to-peer skill exchange marketplace."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
