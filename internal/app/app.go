// Package app builds the object graph shared by the CLI commands.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/socialjobs/workmatch/internal/domain/contract"
	handlerHttp "github.com/socialjobs/workmatch/internal/handler/http"
	"github.com/socialjobs/workmatch/internal/infrastructure/archive"
	redisclient "github.com/socialjobs/workmatch/internal/infrastructure/cache"
	"github.com/socialjobs/workmatch/internal/infrastructure/config"
	"github.com/socialjobs/workmatch/internal/infrastructure/database"
	"github.com/socialjobs/workmatch/internal/infrastructure/eventbus"
	"github.com/socialjobs/workmatch/internal/infrastructure/external_services"
	"github.com/socialjobs/workmatch/internal/infrastructure/jwt"
	"github.com/socialjobs/workmatch/internal/infrastructure/logger"
	"github.com/socialjobs/workmatch/internal/infrastructure/metrics"
	passwordservice "github.com/socialjobs/workmatch/internal/infrastructure/password_service"
	"github.com/socialjobs/workmatch/internal/infrastructure/push"
	randomgenerator "github.com/socialjobs/workmatch/internal/infrastructure/random_generator"
	"github.com/socialjobs/workmatch/internal/infrastructure/repository/mongodb"
	"github.com/socialjobs/workmatch/internal/infrastructure/scheduler"
	"github.com/socialjobs/workmatch/internal/infrastructure/store"
	"github.com/socialjobs/workmatch/internal/infrastructure/uuidgen"
	"github.com/socialjobs/workmatch/internal/infrastructure/validator"
	"github.com/socialjobs/workmatch/internal/usecase"
)

const metricsNamespace = "workmatch"

// App owns every long-lived dependency. Close releases them.
type App struct {
	Config  *config.Config
	Logger  *logger.Logger
	Metrics *metrics.Metrics

	Mongo *database.MongoDBClient
	Redis *redis.Client
	Bus   contract.IEventBus
	queue *push.QueueChannel
	push  *push.Dispatcher

	Users         contract.IUserRepository
	UserUsecase   *usecase.UserUsecase
	JobUsecase    *usecase.JobUsecase
	Lifecycle     *usecase.JobLifecycleUsecase
	Roster        *usecase.RosterUsecase
	Notifications *usecase.NotificationUsecase
	Deletions     *usecase.DeletionUsecase
	Employers     *usecase.EmployerUsecase
}

// New connects to the backing services and wires the use cases. Redis, SMTP,
// AMQP and MinIO are optional; Mongo is not.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: log}

	mongoClient, err := database.NewMongoDBClient(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}
	a.Mongo = mongoClient
	mongoClient.EnsureIndexes(ctx, log)

	if err := a.connectRedis(ctx); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.wire(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) connectRedis(ctx context.Context) error {
	if a.Config.RedisURL == "" {
		a.Logger.Warnf("REDIS_URL not set: using the in-process event bus and no job cache")
		a.Bus = eventbus.NewInMemoryBus()
		return nil
	}
	rdb, err := redisclient.NewRedisFromURL(ctx, a.Config.RedisURL)
	if err != nil {
		return err
	}
	a.Redis = rdb
	a.Bus = eventbus.NewRedisBus(rdb, a.Logger)
	return nil
}

func (a *App) wire(ctx context.Context) error {
	cfg, log, db := a.Config, a.Logger, a.Mongo.DB

	// Dependency Injection: Repositories
	a.Users = mongodb.NewMongoUserRepository(db.Collection(contract.CollectionUsers))
	tokenRepo := mongodb.NewTokenRepository(db)
	jobRepo := mongodb.NewJobRepository(db)
	applicantRepo := mongodb.NewApplicantRepository(db)
	applicationRepo := mongodb.NewApplicationRepository(db)
	acceptedRepo := mongodb.NewAcceptedJobRepository(db)
	notificationRepo := mongodb.NewNotificationRepository(db)
	broadcastRepo := mongodb.NewBroadcastRepository(db)
	archiveRepo := mongodb.NewArchiveRepository(db)
	workflowRepo := mongodb.NewDeletionWorkflowRepository(db)
	employerRepo := mongodb.NewEmployerRepository(db)
	records := mongodb.NewRecordStore(db)
	batchWriter := mongodb.NewBatchWriter(db, cfg.BatchSize, cfg.BatchRetries, log)
	transactor := mongodb.NewTransactor(a.Mongo.Client)

	// Dependency Injection: Services
	a.Metrics = metrics.New(prometheus.DefaultRegisterer, metricsNamespace)
	hasher := passwordservice.NewHasher(0)
	jwtService := jwt.NewJWTService(jwt.NewJWTManager(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.AccessTokenExpiry, cfg.RefreshTokenExpiry))
	uuidGenerator := uuidgen.NewGenerator()

	var jobCache contract.IJobCache
	if a.Redis != nil {
		jobCache = store.NewJobCacheStore(a.Redis, cfg.JobCacheTTL)
	}

	var mailer contract.IEmailService
	channels := []contract.IPushChannel{push.NewEventBusChannel(a.Bus)}
	if cfg.SMTPHost != "" {
		mailer = external_services.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
		channels = append(channels, push.NewMailChannel(a.Users, mailer))
	}
	if cfg.AMQPURL != "" {
		queue, err := push.NewQueueChannel(cfg.AMQPURL, cfg.PushQueueName)
		if err != nil {
			return err
		}
		a.queue = queue
		channels = append(channels, queue)
	}
	pushChannel := push.NewMultiChannel(log, channels...)
	a.push = push.NewDispatcher(pushChannel, cfg.PushWorkers, cfg.PushQueueSize, cfg.PushSendTimeout, log)

	var exporter contract.IArchiveExporter
	if cfg.MinioEndpoint != "" {
		minioExporter, err := archive.NewMinioExporter(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			return err
		}
		exporter = minioExporter
	}

	// Dependency Injection: Usecases
	a.Notifications = usecase.NewNotificationUsecase(notificationRepo, broadcastRepo, a.Users, batchWriter, a.Bus, a.push, uuidGenerator, log, cfg, a.Metrics)
	a.UserUsecase = usecase.NewUserUsecase(a.Users, tokenRepo, hasher, jwtService, mailer, log, cfg, validator.NewValidator(), uuidGenerator)
	a.JobUsecase = usecase.NewJobUsecase(jobRepo, applicantRepo, applicationRepo, acceptedRepo, a.Users, jobCache, uuidGenerator, log)
	a.Lifecycle = usecase.NewJobLifecycleUsecase(jobRepo, applicantRepo, applicationRepo, acceptedRepo, a.Users, notificationRepo, a.Notifications, transactor, a.Bus, jobCache, log, a.Metrics)
	a.Roster = usecase.NewRosterUsecase(jobRepo, applicantRepo, a.Users, log)
	a.Deletions = usecase.NewDeletionUsecase(a.Users, records, batchWriter, archiveRepo, workflowRepo, exporter, a.Notifications, transactor, a.Bus, log, a.Metrics)
	a.Employers = usecase.NewEmployerUsecase(a.Users, employerRepo, a.Notifications, transactor, uuidGenerator, log)
	return nil
}

// Handler builds the gin engine serving the API.
func (a *App) Handler() (*gin.Engine, error) {
	cfg := a.Config
	gin.SetMode(cfg.GinMode)
	if err := validator.RegisterCustomValidators(); err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	router := handlerHttp.NewRouter(handlerHttp.RouterDeps{
		UserUsecase:    a.UserUsecase,
		UserHandler:    handlerHttp.NewUserHandler(a.UserUsecase),
		AccountHandler: handlerHttp.NewAccountHandler(a.Employers, a.Deletions),
		AuthHandler: handlerHttp.NewAuthHandler(a.UserUsecase, randomgenerator.NewRandomGenerator(), handlerHttp.OAuthConfig{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
		}, cfg.GinMode == gin.ReleaseMode),
		JobHandler:          handlerHttp.NewJobHandler(a.JobUsecase),
		LifecycleHandler:    handlerHttp.NewLifecycleHandler(a.Lifecycle),
		RosterHandler:       handlerHttp.NewRosterHandler(a.Roster),
		NotificationHandler: handlerHttp.NewNotificationHandler(a.Notifications),
		AdminHandler:        handlerHttp.NewAdminHandler(a.Deletions, a.Employers),
		LiveHandler:         handlerHttp.NewLiveHandler(a.Bus, a.Logger, a.Metrics.WSConnectionsActive, cfg.CORSOrigins),
		Metrics:             a.Metrics,
		RequestLog:          a.Logger.Zerolog(),
		Health:              a.healthChecks(),
		Config: handlerHttp.RouterConfig{
			CORSOrigins:        cfg.CORSOrigins,
			RateLimitPerSecond: cfg.RateLimitPerSecond,
		},
	})
	router.SetupRoutes(engine)
	return engine, nil
}

func (a *App) healthChecks() map[string]handlerHttp.HealthCheck {
	checks := map[string]handlerHttp.HealthCheck{"mongo": a.Mongo.Ping}
	if a.Redis != nil {
		checks["redis"] = func(ctx context.Context) error { return a.Redis.Ping(ctx).Err() }
	}
	return checks
}

// Serve runs the API and the deletion resumer until ctx is cancelled, then
// drains in-flight requests.
func (a *App) Serve(ctx context.Context) error {
	engine, err := a.Handler()
	if err != nil {
		return err
	}

	resumer := scheduler.NewDeletionResumer(a.Deletions, a.Config.DeletionResumeCron, a.Config.GetDeletionStaleAfter(), a.Logger)
	if err := resumer.Start(ctx); err != nil {
		return err
	}
	defer resumer.Stop()

	srv := &http.Server{
		Addr:              ":" + a.Config.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Infof("server running on port %s", a.Config.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.Logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Close releases connections in reverse order of creation.
func (a *App) Close() {
	if a.push != nil {
		a.push.Close()
	}
	if a.queue != nil {
		if err := a.queue.Close(); err != nil {
			a.Logger.Warnf("amqp close: %v", err)
		}
	}
	redisclient.Close(a.Redis)
	if a.Mongo != nil {
		if err := a.Mongo.Disconnect(); err != nil {
			a.Logger.Warnf("mongo disconnect: %v", err)
		}
	}
}
