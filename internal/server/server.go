package server

import (
	"fmt"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/eventzon/eventzon/config"
	"github.com/eventzon/eventzon/internal/handlers"
	"github.com/eventzon/eventzon/internal/middleware"
	"github.com/eventzon/eventzon/internal/notify"
	"github.com/eventzon/eventzon/internal/services"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	var publisher services.Publisher = services.NoopPublisher{}
	rabbitCfg := config.LoadRabbitConfig()
	if rabbitCfg.URL != "" {
		rmq, err := notify.NewRabbit(rabbitCfg.URL, rabbitCfg.Exchange, rabbitCfg.Queue, log)
		if err != nil {
			return fmt.Errorf("failed to connect to RabbitMQ: %v", err)
		}
		defer rmq.Close()
		publisher = rmq

		smtpCfg := config.LoadSMTPConfig()
		mailer := notify.NewMailer(smtpCfg.Host, smtpCfg.Port, smtpCfg.From, smtpCfg.Password, log)
		worker := notify.NewWorker(rmq, mailer, log)
		if err := worker.Start(); err != nil {
			return fmt.Errorf("failed to start notification worker: %v", err)
		}
	} else {
		log.Warn().Msg("RABBITMQ_URL not set, booking emails disabled")
	}

	bookingCfg := config.LoadBookingConfig()
	bookingSvc := services.NewBookingService(db, publisher, log, services.BookingOptions{
		DefaultStatus: bookingCfg.DefaultStatus,
		QRSecret:      bookingCfg.QRSecret,
	})

	r := newRouter(db, bookingSvc, log)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info().Str("port", port).Msg("starting server")
	return r.Run(":" + port)
}

func newRouter(db *gorm.DB, bookingSvc *services.BookingService, log zerolog.Logger) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	eventHandler := handlers.NewEventHandler(services.NewEventRepository(db), log)
	cartHandler := handlers.NewCartHandler(services.NewCartStore(db))
	bookingHandler := handlers.NewBookingHandler(bookingSvc)
	adminHandler := handlers.NewAdminHandler(db, services.NewAnalyticsService(db))
	databaseHandler := handlers.NewDatabaseHandler(services.NewSQLConsole(db, 0))

	api := r.Group("/api")
	{
		api.GET("/events", eventHandler.List)
		api.GET("/events/:id", eventHandler.Get)
	}

	authed := api.Group("")
	authed.Use(middleware.JWTAuthMiddleware(db))
	{
		cart := authed.Group("/cart")
		{
			cart.GET("", cartHandler.List)
			cart.POST("", cartHandler.Add)
			cart.PUT("/:id", cartHandler.Update)
			cart.DELETE("/:id", cartHandler.Remove)
		}

		bookings := authed.Group("/bookings")
		{
			bookings.GET("", bookingHandler.List)
			bookings.POST("", bookingHandler.Create)
			bookings.POST("/checkout", bookingHandler.Checkout)
			bookings.GET("/:id/qr", bookingHandler.QRCode)
		}

		events := authed.Group("/events")
		events.Use(middleware.AdminRequired())
		{
			events.POST("", eventHandler.Create)
			events.PUT("/:id", eventHandler.Update)
			events.DELETE("/:id", eventHandler.Delete)
			events.POST("/:id/banner", eventHandler.UploadBanner)
		}

		admin := authed.Group("/admin")
		admin.Use(middleware.AdminRequired())
		{
			admin.GET("/events", eventHandler.AdminList)
			admin.GET("/bookings", adminHandler.ListBookings)
			admin.PUT("/bookings/:id/status", adminHandler.UpdateBookingStatus)
			admin.DELETE("/bookings/:id", adminHandler.DeleteBooking)
			admin.GET("/analytics", adminHandler.Analytics)
			admin.GET("/database/tables", databaseHandler.Tables)
			admin.GET("/database/table/:name", databaseHandler.BrowseTable)
			admin.POST("/database/execute", databaseHandler.Execute)
		}
	}

	return r
}
