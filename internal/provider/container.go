package provider

import (
	"github.com/heartlink/internal/cache"
	"github.com/heartlink/internal/config"
	"github.com/heartlink/internal/logger"
	"github.com/heartlink/internal/models"
	"github.com/heartlink/internal/queue"
	"github.com/heartlink/internal/repository"
	"github.com/heartlink/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo         repository.UserRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	PhotoRepo        repository.ProfilePhotoRepository
	SwipeRepo        repository.SwipeRepository
	MatchRepo        repository.MatchRepository
	MessageRepo      repository.MessageRepository

	// Services
	TokenService        *service.TokenService
	VerificationService *service.VerificationService
	EmailService        *service.EmailService
	UserAuthService     *service.UserAuthService
	ProfileService      *service.ProfileService
	DiscoveryService    *service.DiscoveryService
	MatchService        *service.MatchService
	MessageService      *service.MessageService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.RefreshTokenRepo = repository.NewRefreshTokenRepository(db)
	c.PhotoRepo = repository.NewProfilePhotoRepository(db)
	c.SwipeRepo = repository.NewSwipeRepository(db)
	c.MatchRepo = repository.NewMatchRepository(db)
	c.MessageRepo = repository.NewMessageRepository(db)
}

func (c *Container) initServices() {
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.TokenService = service.NewTokenService(c.Config, c.RefreshTokenRepo)
	c.VerificationService = service.NewVerificationService(c.Config, c.UserRepo)
	c.UserAuthService = service.NewUserAuthService(
		c.Config, c.UserRepo, c.TokenService, c.VerificationService, c.EmailService, c.QueueClient)
	c.ProfileService = service.NewProfileService(c.Config, c.UserRepo, c.PhotoRepo)
	c.DiscoveryService = service.NewDiscoveryService(c.Config, c.UserRepo, c.PhotoRepo, c.SwipeRepo, c.MatchRepo)
	c.MatchService = service.NewMatchService(c.UserRepo, c.PhotoRepo, c.MatchRepo)
	c.MessageService = service.NewMessageService(c.MatchRepo, c.MessageRepo)
}
