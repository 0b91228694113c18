package http

import (
	"context"
	"net/http"
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/socialjobs/workmatch/internal/handler/http/middleware"
	"github.com/socialjobs/workmatch/internal/infrastructure/metrics"
	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

// HealthCheck reports whether a backing service is reachable.
type HealthCheck func(ctx context.Context) error

// RouterConfig carries the HTTP-level settings.
type RouterConfig struct {
	CORSOrigins        []string
	RateLimitPerSecond float64
}

type Router struct {
	userHandler         *UserHandler
	accountHandler      *AccountHandler
	authHandler         *AuthHandler
	jobHandler          *JobHandler
	lifecycleHandler    *LifecycleHandler
	rosterHandler       *RosterHandler
	notificationHandler *NotificationHandler
	adminHandler        *AdminHandler
	liveHandler         *LiveHandler

	userUsecase usecasecontract.IUserUseCase
	metrics     *metrics.Metrics
	requestLog  *zerolog.Logger
	health      map[string]HealthCheck
	config      RouterConfig
}

// RouterDeps groups everything NewRouter wires. Metrics, RequestLog and
// Health are optional.
type RouterDeps struct {
	UserUsecase         usecasecontract.IUserUseCase
	UserHandler         *UserHandler
	AccountHandler      *AccountHandler
	AuthHandler         *AuthHandler
	JobHandler          *JobHandler
	LifecycleHandler    *LifecycleHandler
	RosterHandler       *RosterHandler
	NotificationHandler *NotificationHandler
	AdminHandler        *AdminHandler
	LiveHandler         *LiveHandler
	Metrics             *metrics.Metrics
	RequestLog          *zerolog.Logger
	Health              map[string]HealthCheck
	Config              RouterConfig
}

func NewRouter(d RouterDeps) *Router {
	return &Router{
		userHandler:         d.UserHandler,
		accountHandler:      d.AccountHandler,
		authHandler:         d.AuthHandler,
		jobHandler:          d.JobHandler,
		lifecycleHandler:    d.LifecycleHandler,
		rosterHandler:       d.RosterHandler,
		notificationHandler: d.NotificationHandler,
		adminHandler:        d.AdminHandler,
		liveHandler:         d.LiveHandler,
		userUsecase:         d.UserUsecase,
		metrics:             d.Metrics,
		requestLog:          d.RequestLog,
		health:              d.Health,
		config:              d.Config,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	if r.requestLog != nil {
		router.Use(middleware.RequestLogger(r.requestLog))
	}
	if r.metrics != nil {
		router.Use(middleware.Metrics(r.metrics))
	}

	origins := r.config.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: !contains(origins, "*"),
		MaxAge:           12 * time.Hour,
	}))

	// rate limiter configuration
	rate := r.config.RateLimitPerSecond
	if rate <= 0 {
		rate = 10
	}
	lmt := tollbooth.NewLimiter(rate, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})
	lmt.SetMessage("Too many requests, please try again later.")
	router.Use(middleware.RateLimiter(lmt))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", r.healthHandler)

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Public routes (no authentication required)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", r.userHandler.CreateUser)
		auth.POST("/login", r.userHandler.Login)
		auth.POST("/refresh-token", r.userHandler.RefreshToken)
		auth.POST("/logout", r.userHandler.Logout)

		// Google OAuth endpoints
		auth.GET("/google/login", r.authHandler.HandleGoogleLogin)
		auth.GET("/google/callback", r.authHandler.HandleGoogleCallback)
	}

	// Public job board
	jobs := v1.Group("/jobs")
	{
		jobs.GET("", r.jobHandler.ListOpenJobs)
		jobs.GET("/:jobID", r.jobHandler.GetJob)
		jobs.GET("/:jobID/progress", r.lifecycleHandler.JobProgress)
		jobs.GET("/:jobID/hired-count", r.rosterHandler.HiredCount)
	}

	// Protected routes (authentication required)
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleWare(r.userUsecase))
	{
		// Current user routes
		protected.GET("/me", r.userHandler.GetCurrentUser)
		protected.PUT("/me", r.userHandler.UpdateUser)
		protected.POST("/me/employer-request", r.accountHandler.RequestEmployerRole)
		protected.POST("/me/deletion-request", r.accountHandler.RequestDeletion)
		protected.GET("/me/jobs/saved", r.jobHandler.ListSavedJobs)
		protected.GET("/me/jobs/applied", r.jobHandler.ListAppliedJobs)
		protected.GET("/me/jobs/accepted", r.jobHandler.ListAcceptedJobs)
		protected.GET("/me/jobs/worked", r.jobHandler.ListWorkedJobs)
		protected.GET("/users/:id", r.userHandler.GetUser)

		// Worker transitions
		protected.POST("/jobs/:jobID/save", r.lifecycleHandler.SaveJob)
		protected.DELETE("/jobs/:jobID/save", r.lifecycleHandler.UnsaveJob)
		protected.POST("/jobs/:jobID/save/toggle", r.lifecycleHandler.ToggleSavedJob)
		protected.POST("/jobs/:jobID/apply", r.lifecycleHandler.ApplyToJob)
		protected.DELETE("/jobs/:jobID/apply", r.lifecycleHandler.WithdrawApplication)
		protected.GET("/jobs/:jobID/coworkers", r.rosterHandler.CoWorkers)

		// Employer routes
		protected.POST("/jobs", r.jobHandler.CreateJob)
		protected.GET("/employer/jobs", r.jobHandler.ListEmployerJobs)
		protected.GET("/jobs/:jobID/applicants", r.rosterHandler.ListApplicants)
		protected.PUT("/jobs/:jobID/applicants/:applicantID/hired", r.lifecycleHandler.SetHired)
		protected.POST("/jobs/:jobID/fully-staffed/toggle", r.lifecycleHandler.ToggleFullyStaffed)
		protected.POST("/jobs/:jobID/complete", r.lifecycleHandler.MarkCompleted)

		// Inbox
		protected.GET("/notifications", r.notificationHandler.ListInbox)
		protected.GET("/notifications/unread-count", r.notificationHandler.UnreadCount)
		protected.POST("/notifications/read-all", r.notificationHandler.MarkAllRead)
		protected.POST("/notifications/:notificationID/read", r.notificationHandler.MarkRead)

		protected.GET("/live/notifications", r.liveHandler.Notifications)
	}

	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleWare(r.userUsecase), middleware.AdminOnly())
	{
		admin.GET("/deletions", r.adminHandler.ListPendingDeletions)
		admin.POST("/deletions/:userID/approve", r.adminHandler.ApproveDeletion)
		admin.POST("/deletions/:userID/reject", r.adminHandler.RejectDeletion)
		admin.GET("/archives/:userID", r.adminHandler.GetArchive)

		admin.GET("/employers/pending", r.adminHandler.ListPendingEmployers)
		admin.POST("/employers/:userID/approve", r.adminHandler.ApproveEmployer)
		admin.POST("/employers/:userID/reject", r.adminHandler.RejectEmployer)

		admin.GET("/broadcasts", r.notificationHandler.ListBroadcasts)
		admin.POST("/broadcasts", r.notificationHandler.Broadcast)
		admin.PUT("/broadcasts/:broadcastID", r.notificationHandler.EditBroadcast)
		admin.DELETE("/broadcasts/:broadcastID", r.notificationHandler.DeleteBroadcast)
		admin.POST("/broadcasts/clear", r.notificationHandler.ClearHistory)

		admin.GET("/live/deletions", r.liveHandler.DeletionRequests)
		admin.GET("/live/broadcasts", r.liveHandler.Broadcasts)
	}
}

func (r *Router) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(r.health))
	for name, check := range r.health {
		if err := check(ctx); err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}
	c.JSON(status, gin.H{"status": http.StatusText(status), "checks": checks})
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
