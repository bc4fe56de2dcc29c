package main

import (
	"log"

	api "campusboard-backend/cmd/api"
	authdomain "campusboard-backend/internal/auth/domain"
	authRepo "campusboard-backend/internal/auth/repository"
	messagedomain "campusboard-backend/internal/message/domain"
	messageRepo "campusboard-backend/internal/message/repository"
	messageUsecase "campusboard-backend/internal/message/usecase"
	"campusboard-backend/internal/notification"
	notifdomain "campusboard-backend/internal/notification/domain"
	notifRepo "campusboard-backend/internal/notification/repository"
	pindomain "campusboard-backend/internal/pinboard/domain"
	"campusboard-backend/internal/pinboard/maintenance"
	pinRepo "campusboard-backend/internal/pinboard/repository"
	pinUsecase "campusboard-backend/internal/pinboard/usecase"
	"campusboard-backend/pkg/apns"
	"campusboard-backend/pkg/config"
	"campusboard-backend/pkg/database"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.Account{},
		&authdomain.SessionToken{},
		&pindomain.Pin{},
		&messagedomain.Message{},
		&notifdomain.DeviceRegistration{},
		&notifdomain.NotificationLog{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	pinRepository := pinRepo.NewPinRepository(db)
	messageRepository := messageRepo.NewMessageRepository(db)
	deviceRepository := notifRepo.NewDeviceRepository(db)
	logRepository := notifRepo.NewNotificationLogRepository(db)
	authGateway := authRepo.NewAuthGateway(db)

	// Initialize APNs client (optional, the dispatcher degrades to a
	// no-op when credentials are missing)
	var pusher notification.Pusher
	if cfg.APNSKeyID != "" && cfg.APNSTeamID != "" && cfg.APNSBundleID != "" && cfg.APNSPrivateKey != "" {
		apnsClient, err := apns.NewClient(cfg.APNSKeyID, cfg.APNSTeamID, cfg.APNSBundleID, cfg.APNSPrivateKey)
		if err != nil {
			log.Printf("[WARN] Failed to initialize APNs client (push notifications disabled): %v", err)
		} else {
			pusher = apnsClient
			log.Printf("[APNs] Client initialized for topic %s", cfg.APNSBundleID)
		}
	} else {
		log.Printf("[WARN] APNs credentials not configured, push notifications disabled")
	}

	dispatcher := notification.NewDispatcher(deviceRepository, logRepository, pusher,
		notifdomain.Environment(cfg.APNSEnvironment), cfg.PinTTL)

	// Initialize use cases (dependency injection)
	pinUsecaseInstance := pinUsecase.NewPinUsecase(pinRepository, cfg.GridRows, cfg.GridCols, cfg.PinTTL)
	messageUsecaseInstance := messageUsecase.NewMessageUsecase(messageRepository, pinRepository, dispatcher)

	// Start the expired-pin reaper
	reaper := maintenance.NewReaper(pinRepository, cfg.PinTTL, cfg.ReaperInterval)
	reaper.Start()
	defer reaper.Stop()

	// Initialize HTTP handler
	handler := api.NewHandler(authGateway, pinUsecaseInstance, messageUsecaseInstance, dispatcher, cfg)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
