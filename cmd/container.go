package main

import (
	"context"
	"time"

	"github.com/Abraxas-365/hirely/pkg/config"
	"github.com/Abraxas-365/hirely/pkg/fsx"
	"github.com/Abraxas-365/hirely/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/hirely/pkg/iam/auth"
	"github.com/Abraxas-365/hirely/pkg/iam/auth/authinfra"
	"github.com/Abraxas-365/hirely/pkg/logx"
	"github.com/Abraxas-365/hirely/pkg/metrics"
	"github.com/Abraxas-365/hirely/recruitment/application"
	"github.com/Abraxas-365/hirely/recruitment/application/applicationapi"
	"github.com/Abraxas-365/hirely/recruitment/application/applicationinfra"
	"github.com/Abraxas-365/hirely/recruitment/application/applicationsrv"
	"github.com/Abraxas-365/hirely/recruitment/job/jobapi"
	"github.com/Abraxas-365/hirely/recruitment/job/jobinfra"
	"github.com/Abraxas-365/hirely/recruitment/job/jobsrv"
	"github.com/Abraxas-365/hirely/recruitment/notification"
	"github.com/Abraxas-365/hirely/recruitment/notification/notificationinfra"
	"github.com/Abraxas-365/hirely/recruitment/notification/notificationsrv"
	"github.com/Abraxas-365/hirely/recruitment/notification/worker"
	"github.com/Abraxas-365/hirely/recruitment/profilefield/profilefieldapi"
	"github.com/Abraxas-365/hirely/recruitment/profilefield/profilefieldinfra"
	"github.com/Abraxas-365/hirely/recruitment/profilefield/profilefieldsrv"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	AWS        *aws.Config
	FileSystem fsx.FileSystem

	// Services
	AuthService         *auth.Service
	ProfileFieldService *profilefieldsrv.Service
	JobService          *jobsrv.JobService
	ApplicationService  *applicationsrv.Service
	NotificationService *notificationsrv.Service

	// Background
	NotificationWorker *worker.NotificationWorker

	// API Handlers
	AuthHandlers         *auth.Handlers
	ProfileFieldHandlers *profilefieldapi.Handlers
	JobHandlers          *jobapi.Handlers
	ApplicationHandlers  *applicationapi.Handlers

	// Middleware
	AuthMiddleware *auth.Middleware
}

// NewContainer initializes the dependency injection container
func NewContainer(cfg *config.Config) *Container {
	c := &Container{Config: cfg}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	db, err := sqlx.Connect("postgres", c.Config.Database.DSN())
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(c.Config.Database.MaxOpenConns)
	db.SetMaxIdleConns(c.Config.Database.MaxIdleConns)
	db.SetConnMaxLifetime(c.Config.Database.ConnMaxLifetime)
	c.DB = db

	// 2. Redis Connection
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Addr,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := c.Redis.Ping(pingCtx).Err(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. AWS Configuration
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(c.Config.AWS.Region))
	if err != nil {
		logx.Fatalf("unable to load SDK config, %v", err)
	}
	c.AWS = &awsCfg

	// 4. Photo storage
	if c.Config.AWS.Bucket != "" {
		c.FileSystem = fsxs3.NewS3FileSystem(s3.NewFromConfig(awsCfg), c.Config.AWS.Bucket, "")
	} else {
		logx.Warn("aws.bucket is not set, photos are kept in memory")
		c.FileSystem = fsx.NewMemoryFileSystem()
	}
}

func (c *Container) initServices() {
	cfg := c.Config

	// --- Repositories ---
	userRepo := authinfra.NewPostgresUserRepository(c.DB)
	fieldRepo := profilefieldinfra.NewPostgresFieldRepository(c.DB)
	jobRepo := jobinfra.NewPostgresJobRepository(c.DB)
	applicationRepo := applicationinfra.NewPostgresApplicationRepository(c.DB)

	// --- Auth ---
	tokens := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL, cfg.Auth.Issuer)
	c.AuthService = auth.NewService(
		userRepo,
		authinfra.NewBcryptPasswordService(),
		tokens,
		authinfra.NewRedisRevocationStore(c.Redis),
	)
	c.AuthService.OnAuthStateChange(func(event auth.AuthEvent, session *auth.Session) {
		metrics.AuthEvents.WithLabelValues(string(event)).Inc()
		if session != nil {
			logx.Debugf("auth event %s for user %s", event, session.User.ID)
		}
	})

	// --- Profile fields ---
	c.ProfileFieldService = profilefieldsrv.NewService(
		fieldRepo,
		profilefieldinfra.NewRedisFieldCache(c.Redis, cfg.Application.FieldCacheTTL),
	)

	// --- Jobs ---
	c.JobService = jobsrv.NewJobService(jobRepo, applicationRepo, c.ProfileFieldService)

	// --- Notifications ---
	var notifier application.Notifier
	if cfg.Notification.Enabled {
		queue := notificationinfra.NewRedisQueue(c.Redis, cfg.Notification.QueueName)
		c.NotificationService = notificationsrv.NewService(
			queue,
			cfg.Notification.MaxRetries,
			cfg.Notification.RetryBackoff,
			c.senders()...,
		)
		c.NotificationWorker = worker.NewNotificationWorker(c.NotificationService, queue, cfg.Notification.Workers, 0)
		notifier = c.NotificationService
	}

	// --- Applications ---
	c.ApplicationService = applicationsrv.NewService(
		applicationRepo,
		jobRepo,
		c.ProfileFieldService,
		c.FileSystem,
		applicationinfra.NewRedisSubmitGuard(c.Redis),
		notifier,
		applicationsrv.Config{
			SubmitLockTTL: cfg.Application.SubmitLockTTL,
			PhotoPrefix:   cfg.AWS.PhotoPrefix,
		},
	)

	// --- Handlers ---
	c.AuthHandlers = auth.NewHandlers(c.AuthService)
	c.ProfileFieldHandlers = profilefieldapi.NewHandlers(c.ProfileFieldService)
	c.JobHandlers = jobapi.NewHandlers(c.JobService)
	c.ApplicationHandlers = applicationapi.NewHandlers(
		c.ApplicationService,
		int64(cfg.Application.MaxPhotoSizeMB)<<20,
	)

	// --- Middleware ---
	c.AuthMiddleware = auth.NewMiddleware(c.AuthService)
}

// senders returns the channels that have configuration
func (c *Container) senders() []notification.Sender {
	var out []notification.Sender

	if sender := c.Config.AWS.SESSender; sender != "" {
		out = append(out, notificationinfra.NewSESSender(ses.NewFromConfig(*c.AWS), sender))
	} else {
		logx.Info("aws.ses_sender is not set, confirmation emails are disabled")
	}

	if topic := c.Config.AWS.SNSTopicARN; topic != "" {
		out = append(out, notificationinfra.NewSNSSender(sns.NewFromConfig(*c.AWS), topic))
	} else {
		logx.Info("aws.sns_topic_arn is not set, admin notices are disabled")
	}

	return out
}

// Close releases connections
func (c *Container) Close() {
	if err := c.Redis.Close(); err != nil {
		logx.Warnf("closing redis: %v", err)
	}
	if err := c.DB.Close(); err != nil {
		logx.Warnf("closing database: %v", err)
	}
}
