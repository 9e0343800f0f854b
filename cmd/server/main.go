package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/surya-tn99/lumi-your-voice-for-care/config"
	"github.com/surya-tn99/lumi-your-voice-for-care/helper"
	"github.com/surya-tn99/lumi-your-voice-for-care/internal/auth"
	"github.com/surya-tn99/lumi-your-voice-for-care/internal/emergency"
	"github.com/surya-tn99/lumi-your-voice-for-care/internal/medication"
	"github.com/surya-tn99/lumi-your-voice-for-care/internal/middleware"
	"github.com/surya-tn99/lumi-your-voice-for-care/internal/nominee"
	"github.com/surya-tn99/lumi-your-voice-for-care/internal/user"
	"github.com/surya-tn99/lumi-your-voice-for-care/pkg/consul"
	"github.com/surya-tn99/lumi-your-voice-for-care/pkg/firebase"
	zaplog "github.com/surya-tn99/lumi-your-voice-for-care/pkg/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.LoadConfig()

	logger, err := zaplog.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if cfg.ConsulEnabled {
		consulConn := consul.NewConsulConn(logger, cfg)
		consulConn.Connect()
		defer consulConn.Deregister()
	}

	mongoClient, err := connectToMongoDB(cfg.MongoURI)
	if err != nil {
		logger.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Fatal(err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB)

	userRepository := user.NewUserRepository(db.Collection("users"))
	medicationRepository := medication.NewMedicationRepository(db.Collection("medications"))
	logRepository := medication.NewLogRepository(db.Collection("medication_logs"))
	nomineeRepository := nominee.NewNomineeRepository(db.Collection("nominees"))
	alertRepository := emergency.NewAlertRepository(db.Collection("emergency_alerts"))

	var notifier emergency.Notifier
	if cfg.FirebaseCredentials != "" {
		fireBaseApp, err := firebase.SetUpFireBase(cfg.FirebaseCredentials)
		if err != nil {
			logger.Errorf("Failed to set up firebase, nominee notifications disabled: %v", err)
		} else {
			notifier = emergency.NewFCMNotifier(fireBaseApp, nomineeRepository, logger)
		}
	}

	authService := auth.NewAuthService(userRepository, cfg.JWTSecret, time.Duration(cfg.TokenExpiryHours)*time.Hour, cfg.UniversalOTP)
	userService := user.NewUserService(userRepository)
	medicationService := medication.NewMedicationService(medicationRepository, logRepository)
	nomineeService := nominee.NewNomineeService(nomineeRepository)
	alertService := emergency.NewAlertService(alertRepository, notifier, time.Duration(cfg.NoResponseMinutes)*time.Minute, logger)

	authHandler := auth.NewAuthHandler(authService)
	userHandler := user.NewUserHandler(userService)
	medicationHandler := medication.NewMedicationHandler(medicationService)
	nomineeHandler := nominee.NewNomineeHandler(nomineeService)
	alertHandler := emergency.NewAlertHandler(alertService)

	gin.SetMode(cfg.Mode)
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		helper.SendSuccess(c, http.StatusOK, gin.H{"status": "ok"})
	})

	secured := middleware.Secured(authService, userRepository)
	auth.RegisterRoutes(router, authHandler)
	user.RegisterRoutes(router, userHandler, secured)
	medication.RegisterRoutes(router, medicationHandler, secured)
	nominee.RegisterRoutes(router, nomineeHandler, secured)
	emergency.RegisterRoutes(router, alertHandler, secured)

	// Escalation sweep: unresolved alerts advance stages server-side;
	// clients only observe the change on their next status fetch.
	c := cron.New(cron.WithSeconds())
	_, err = c.AddFunc(cfg.EscalationSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := alertService.EscalateOverdue(ctx); err != nil {
			logger.Errorf("EscalateOverdue failed: %v", err)
		}
	})
	if err != nil {
		logger.Fatalf("Failed to register escalation job: %v", err)
	}
	c.Start()
	defer c.Stop()

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Infof("Server running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Fatalf("Error shutting down server: %v", err)
	}
	logger.Info("Server stopped")
}

func connectToMongoDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Println("Failed to connect to MongoDB")
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Println("Failed to ping MongoDB")
		return nil, err
	}

	log.Println("Successfully connected to MongoDB")
	return client, nil
}
