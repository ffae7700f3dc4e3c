// Package httpapi exposes the aura service as a JSON API for browser
// clients.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/aura/internal/logging"
	"github.com/dmitrijs2005/aura/internal/server/models"
	"github.com/dmitrijs2005/aura/internal/server/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Authenticator interface {
	Authenticate(ctx context.Context, authorization string) (models.Principal, error)
}

type UserService interface {
	Login(ctx context.Context, handle string, secret []byte) (*services.LoginResult, error)
	CurrentPrincipal(ctx context.Context, subject string) (models.Principal, error)
}

type ResourceService interface {
	Create(ctx context.Context, p models.Principal, title, storageKey string) (*models.Resource, error)
	List(ctx context.Context, p models.Principal) ([]*models.Resource, error)
}

type TransferBroker interface {
	CheckUpload(p models.Principal) error
	IssueUploadGrant(ctx context.Context, p models.Principal, fileName, contentType string) (*models.TransferGrant, error)
	UploadDirect(ctx context.Context, p models.Principal, fileName, contentType string, data []byte) (*models.UploadReceipt, error)
	IssueDownloadGrant(ctx context.Context, p models.Principal, resourceID string) (*models.TransferGrant, error)
}

// Options configures the router.
type Options struct {
	AllowedOrigins []string
	MaxUploadSize  int64
}

type Server struct {
	address   string
	opts      Options
	gate      Authenticator
	users     UserService
	resources ResourceService
	broker    TransferBroker
	logger    logging.Logger
}

func NewServer(address string, opts Options, l logging.Logger, gate Authenticator, us UserService, rs ResourceService, b TransferBroker) *Server {
	return &Server{
		address:   address,
		opts:      opts,
		gate:      gate,
		users:     us,
		resources: rs,
		broker:    b,
		logger:    l.With("module", "http_server"),
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	if len(s.opts.AllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = s.opts.AllowedOrigins
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
		corsConfig.ExposeHeaders = []string{requestIDHeader}
		router.Use(cors.New(corsConfig))
	}

	router.GET("/health", s.health)

	api := router.Group("/api")
	{
		api.POST("/auth/login", s.login)

		protected := api.Group("")
		protected.Use(s.requireAuth())
		{
			protected.GET("/users/me", s.currentUser)
			protected.GET("/resources", s.listResources)
			protected.POST("/resources", s.createResource)
			protected.POST("/resources/upload-url", s.issueUploadGrant)
			protected.POST("/resources/upload", s.uploadDirect)
			protected.GET("/resources/:id/download", s.issueDownloadGrant)
		}
	}

	return router
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
