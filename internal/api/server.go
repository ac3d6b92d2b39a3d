package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/skillswap/skillswap-api/docs"
	v1 "github.com/skillswap/skillswap-api/internal/api/handler/v1"
	"github.com/skillswap/skillswap-api/internal/api/middleware"
	"github.com/skillswap/skillswap-api/internal/cache"
	"github.com/skillswap/skillswap-api/internal/config"
	"github.com/skillswap/skillswap-api/internal/repository"
	"github.com/skillswap/skillswap-api/internal/repository/dao"
	"github.com/skillswap/skillswap-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB, redisClient *redis.Client) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	ledgerRepo := repository.NewLedgerRepository(dao.NewLedgerDAO(db))
	skillRepo := repository.NewSkillRepository(dao.NewSkillDAO(db))
	orderRepo := repository.NewOrderRepository(dao.NewOrderDAO(db))
	reviewRepo := repository.NewReviewRepository(dao.NewReviewDAO(db))
	chatRepo := repository.NewChatRepository(dao.NewChatDAO(db))
	notificationRepo := repository.NewNotificationRepository(dao.NewNotificationDAO(db))
	paymentRepo := repository.NewPaymentRepository(dao.NewPaymentDAO(db))

	notifier := service.NewNotificationService(notificationRepo)
	trending := cache.NewTrending(redisClient)

	authHandler := v1.NewAuthHandler(conf.API, service.NewAuthService(userRepo, ledgerRepo, conf.Points.SignupBonus))
	userHandler := v1.NewUserHandler(service.NewUserService(userRepo))
	skillHandler := v1.NewSkillHandler(service.NewSkillService(skillRepo, trending))
	orderHandler := v1.NewOrderHandler(service.NewOrderService(orderRepo, skillRepo, notifier, conf.Points.PlatformFeePercentage))
	pointsHandler := v1.NewPointsHandler(service.NewPointsService(ledgerRepo, userRepo))
	reviewHandler := v1.NewReviewHandler(service.NewReviewService(reviewRepo, skillRepo, userRepo, notifier))
	notificationHandler := v1.NewNotificationHandler(notifier)
	paymentHandler := v1.NewPaymentHandler(service.NewPaymentService(paymentRepo, notifier, conf.Stripe.SecretKey))
	chatHandler := v1.NewChatHandler(service.NewChatService(chatRepo, orderRepo, notifier))
	go chatHandler.Run()

	s.MountHandlers(authHandler, userHandler, skillHandler, orderHandler,
		pointsHandler, reviewHandler, notificationHandler, paymentHandler, chatHandler)

	return s
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	skillHandler *v1.SkillHandler,
	orderHandler *v1.OrderHandler,
	pointsHandler *v1.PointsHandler,
	reviewHandler *v1.ReviewHandler,
	notificationHandler *v1.NotificationHandler,
	paymentHandler *v1.PaymentHandler,
	chatHandler *v1.ChatHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	public := s.Router.Group(basePath)
	{
		public.GET("/skills", skillHandler.HandleSearchSkills)
		public.GET("/skills/categories", skillHandler.HandleGetCategories)
		public.GET("/skills/trending", skillHandler.HandleGetTrending)
		public.GET("/skills/:skillID", skillHandler.HandleGetSkill)
		public.GET("/skills/:skillID/reviews", reviewHandler.HandleGetSkillReviews)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.GET("/users/me", userHandler.HandleGetMe)
		authed.GET("/users/:userID", userHandler.HandleGetUser)

		authed.POST("/skills", skillHandler.HandleCreateSkill)

		authed.POST("/orders", orderHandler.HandleCreateOrder)
		authed.GET("/orders", orderHandler.HandleGetOrders)
		authed.GET("/orders/:orderID", orderHandler.HandleGetOrder)
		authed.POST("/orders/:orderID/accept", orderHandler.HandleAcceptOrder)
		authed.POST("/orders/:orderID/start", orderHandler.HandleStartOrder)
		authed.POST("/orders/:orderID/complete", orderHandler.HandleCompleteOrder)
		authed.POST("/orders/:orderID/cancel", orderHandler.HandleCancelOrder)
		authed.POST("/orders/:orderID/dispute", orderHandler.HandleDisputeOrder)

		authed.POST("/orders/:orderID/review", reviewHandler.HandleCreateReview)
		authed.GET("/orders/:orderID/review", reviewHandler.HandleGetOrderReview)

		authed.GET("/points/transactions", pointsHandler.HandleGetTransactions)
		authed.GET("/points/balance", pointsHandler.HandleGetBalance)
		authed.GET("/points/audit", pointsHandler.HandleAuditBalance)
		authed.GET("/points/packages", paymentHandler.HandleGetPackages)

		authed.POST("/payments", paymentHandler.HandleCreatePayment)
		authed.POST("/payments/confirm", paymentHandler.HandleConfirmPayment)
		authed.GET("/payments/:paymentID", paymentHandler.HandleGetPayment)

		authed.GET("/notifications", notificationHandler.HandleGetNotifications)
		authed.POST("/notifications/:notificationID/read", notificationHandler.HandleMarkRead)
		authed.GET("/notifications/unread-count", notificationHandler.HandleCountUnread)

		// Chat
		authed.GET("/orders/:orderID/chat", chatHandler.HandleWebSocket)
		authed.GET("/orders/:orderID/messages", chatHandler.HandleGetChatMessages)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "SkillSwap API"
	docs.SwaggerInfo.Description = "Skill-bartering marketplace with a points economy."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
