package routes

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	_ "github.com/seribro/escrow-service/docs" // swag generated documentation
	"github.com/seribro/escrow-service/internal/adapter/http/handlers"
	"github.com/seribro/escrow-service/internal/adapter/http/middleware"
	"github.com/seribro/escrow-service/internal/adapter/persistence/repository"
	"github.com/seribro/escrow-service/internal/infrastructure/cache"
	"github.com/seribro/escrow-service/internal/infrastructure/database"
	"github.com/seribro/escrow-service/internal/infrastructure/directory"
	"github.com/seribro/escrow-service/internal/infrastructure/gateway"
	"github.com/seribro/escrow-service/internal/infrastructure/messaging"
	"github.com/seribro/escrow-service/internal/usecase"
	"github.com/seribro/escrow-service/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

var router = gin.New()

const serviceName = "escrow-service"

// Run starts the HTTP server, the timeout sweeper and every outbound
// adapter the environment is configured for. Optional adapters (redis,
// kafka, razorpay) degrade to nil and the use cases carry on without them.
func Run() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	shutdownTracing, err := middleware.InitTracing(serviceName)
	if err != nil {
		logger.Warn("tracing disabled", zap.Error(err))
		shutdownTracing = func(context.Context) error { return nil }
	}

	setMiddlewares(logger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", middleware.PrometheusHandler())

	sweeper := getRoutes(logger)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go sweeper.Run(sweepCtx)

	srv := &http.Server{
		Addr:    ":" + getenvDefault("HTTP_PORT", "8080"),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start the server", zap.Error(err))
		}
	}()
	logger.Info("escrow service listening", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Error("tracer shutdown", zap.Error(err))
	}
}

func getRoutes(logger *zap.Logger) *usecase.Sweeper {
	ddb := database.ConnectDynamoDB()
	paymentRepo := repository.NewPaymentDynamoRepository(ddb)

	var summaryCache interfaces.ISummaryCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		summaryCache = cache.NewRedisSummaryCache(client, 0, logger)
	} else {
		logger.Warn("REDIS_ADDR not set; summary caching disabled")
	}

	var notifier interfaces.IEventNotifier
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		kn, err := messaging.NewKafkaNotifier(strings.Split(brokers, ","), os.Getenv("KAFKA_TOPIC"), logger)
		if err != nil {
			logger.Warn("kafka notifier not configured", zap.Error(err))
		} else {
			notifier = kn
		}
	} else {
		logger.Warn("KAFKA_BROKERS not set; event publishing disabled")
	}

	var paymentGateway interfaces.IPaymentGateway
	rzp, err := gateway.NewRazorpayGateway(os.Getenv("RAZORPAY_KEY_ID"), os.Getenv("RAZORPAY_KEY_SECRET"), logger)
	if err != nil {
		logger.Warn("razorpay gateway not configured", zap.Error(err))
	} else {
		paymentGateway = rzp
	}

	projectDirectory := directory.NewHTTPProjectDirectory(getenvDefault("PROJECTS_API_URL", "http://localhost:3000"), logger)

	machine := usecase.NewEscrowStateMachine(paymentRepo, notifier, summaryCache, logger)
	orderUseCase := usecase.NewOrderUseCase(paymentRepo, machine, paymentGateway, projectDirectory, logger)
	verificationUseCase := usecase.NewVerificationUseCase(paymentRepo, machine, []byte(webhookSecret()), logger)
	releaseUseCase := usecase.NewReleaseUseCase(machine, logger)
	queryUseCase := usecase.NewQueryUseCase(paymentRepo, summaryCache, logger)

	orderHandler := handlers.NewOrderHandler(orderUseCase, logger)
	verificationHandler := handlers.NewVerificationHandler(verificationUseCase, logger)
	releaseHandler := handlers.NewReleaseHandler(releaseUseCase, logger)
	queryHandler := handlers.NewQueryHandler(queryUseCase, logger)

	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) == 0 {
		logger.Warn("JWT_SECRET not set; authenticated routes will reject every token")
	}

	v1 := router.Group("/v1")
	addPaymentRoutes(v1, jwtSecret, orderHandler, verificationHandler, releaseHandler, queryHandler)

	window := time.Duration(getenvInt("ORDER_TIMEOUT_MINUTES", 30)) * time.Minute
	interval := time.Duration(getenvInt("SWEEP_INTERVAL_SECONDS", 60)) * time.Second
	return usecase.NewSweeper(paymentRepo, machine, window, interval, logger)
}

func setMiddlewares(logger *zap.Logger) {
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(middleware.MetricsMiddleware())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("recovered from panic", zap.Any("panic", recovered))
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}

// webhookSecret is the HMAC key shared with the gateway. Razorpay signs
// checkout callbacks with the key secret, so that is the fallback.
func webhookSecret() string {
	if s := os.Getenv("RAZORPAY_WEBHOOK_SECRET"); s != "" {
		return s
	}
	return os.Getenv("RAZORPAY_KEY_SECRET")
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
