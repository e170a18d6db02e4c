package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"campushub/internal/cache"
	"campushub/internal/config"
	"campushub/internal/database"
	"campushub/internal/handlers"
	"campushub/internal/messaging"
	"campushub/internal/middleware"
	"campushub/internal/models"
	"campushub/internal/repository"
	"campushub/internal/search"
	"campushub/internal/service"
)

// Server is the HTTP API entrypoint
type Server struct {
	router   *gin.Engine
	config   *config.Config
	db       *database.DB
	nats     *messaging.NATSClient
	cache    *cache.Client
	search   *search.ElasticsearchClient
	services *service.Services
	repos    *repository.Repositories
}

// NewServer wires the whole application together. NATS is required;
// Valkey and Elasticsearch are optional and absent in small deployments.
func NewServer(cfg *config.Config) (*Server, error) {
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.RunMigrations(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	var cacheClient *cache.Client
	if cfg.Cache.Addr != "" {
		cacheClient, err = cache.NewClient(cfg.Cache)
		if err != nil {
			slog.Warn("Valkey unavailable, continuing without cache", "error", err)
			cacheClient = nil
		}
	}

	var searchClient *search.ElasticsearchClient
	if cfg.Elasticsearch.Enabled() {
		searchClient, err = search.NewElasticsearchClient(cfg.Elasticsearch)
		if err != nil {
			slog.Warn("Elasticsearch unavailable, continuing with database search", "error", err)
			searchClient = nil
		}
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, natsClient, cacheClient, searchClient, cfg.Auth)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	server := &Server{
		router:   router,
		config:   cfg,
		db:       db,
		nats:     natsClient,
		cache:    cacheClient,
		search:   searchClient,
		services: services,
		repos:    repos,
	}

	server.setupRoutes()

	return server, nil
}

func (s *Server) setupRoutes() {
	h := handlers.New(s.services)
	requireAuth := middleware.RequireAuth(s.services.Auth)
	organizerOnly := middleware.RequireRole(models.RoleOrganizer)
	adminOnly := middleware.RequireRole()

	api := s.router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Signup)
			auth.POST("/login", h.Login)
			auth.GET("/profile", requireAuth, h.GetProfile)
			auth.PUT("/profile", requireAuth, h.UpdateProfile)
		}

		events := api.Group("/events")
		{
			events.GET("", h.ListEvents)
			events.GET("/:slug", h.GetEvent)
			events.GET("/:slug/gallery", h.ListGallery)
			events.POST("", requireAuth, organizerOnly, h.CreateEvent)
			events.PUT("/:slug", requireAuth, organizerOnly, h.UpdateEvent)
			events.DELETE("/:slug", requireAuth, organizerOnly, h.DeleteEvent)
			events.POST("/:slug/gallery", requireAuth, organizerOnly, h.AddGalleryImage)
			events.GET("/:slug/export-participants", requireAuth, organizerOnly, h.ExportParticipants)
		}

		api.POST("/register", requireAuth, h.Register)

		registrations := api.Group("/registrations", requireAuth)
		{
			registrations.GET("/my", h.MyRegistrations)
			registrations.PUT("/:id/confirm", h.ConfirmRegistration)
			registrations.DELETE("/:id", h.CancelRegistration)
		}

		notifications := api.Group("/notifications", requireAuth)
		{
			notifications.GET("", h.ListNotifications)
			notifications.GET("/unread-count", h.UnreadCount)
			notifications.PUT("/:id/read", h.MarkNotificationRead)
		}

		clubs := api.Group("/clubs")
		{
			clubs.GET("", h.ListClubs)
			clubs.GET("/:slug", h.GetClub)
			clubs.POST("", requireAuth, adminOnly, h.CreateClub)
			clubs.PUT("/:slug", requireAuth, h.UpdateClub)
			clubs.DELETE("/:slug", requireAuth, h.DeleteClub)
		}

		placements := api.Group("/placements")
		{
			placements.GET("/companies", h.ListCompanies)
			placements.GET("/students", h.ListPlacedStudents)
			placements.GET("/stats", h.PlacementStats)
			placements.POST("/companies", requireAuth, adminOnly, h.CreateCompany)
			placements.PUT("/companies/:id", requireAuth, adminOnly, h.UpdateCompany)
			placements.DELETE("/companies/:id", requireAuth, adminOnly, h.DeleteCompany)
			placements.POST("/students", requireAuth, adminOnly, h.CreatePlacedStudent)
		}

		api.POST("/chat", h.Chat)
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (s *Server) healthCheck(c *gin.Context) {
	status := "ok"
	code := http.StatusOK

	dbHealth := s.db.HealthCheck(c.Request.Context())
	if dbHealth.Status != "healthy" {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	cacheStatus := "disabled"
	if s.cache != nil {
		cacheStatus = "ok"
		if err := s.cache.HealthCheck(c.Request.Context()); err != nil {
			cacheStatus = err.Error()
			status = "degraded"
		}
	}

	searchStatus := "disabled"
	if s.search != nil {
		searchStatus = "ok"
		if err := s.search.HealthCheck(c.Request.Context()); err != nil {
			searchStatus = err.Error()
			status = "degraded"
		}
	}

	c.JSON(code, gin.H{
		"status":  status,
		"service": "campushub-api",
		"checks": gin.H{
			"database": dbHealth,
			"cache":    cacheStatus,
			"search":   searchStatus,
		},
	})
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter exposes the router for tests
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup closes the outbound connections
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}

	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			slog.Error("Error closing Valkey connection", "error", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
