// Package http is the REST transport of itemkeeper, built on gin. Routes live
// under APIPrefix; errors are rendered as {"detail": "..."}.
package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/logging"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/dmitrijs2005/itemkeeper/internal/server/services"
	"github.com/gin-gonic/gin"
)

const (
	APIPrefix       = "/api/v1"
	shutdownTimeout = 5 * time.Second
)

type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.TokenResponse, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id string) (bool, error)
}

type ItemService interface {
	Create(ctx context.Context, caller *models.Identity, title string, description *string) (*models.Item, error)
	List(ctx context.Context, caller *models.Identity, offset, limit int) ([]*models.Item, error)
	Get(ctx context.Context, caller *models.Identity, id string) (*models.Item, error)
	Update(ctx context.Context, caller *models.Identity, id string, patch models.ItemPatch) (*models.Item, error)
	Delete(ctx context.Context, caller *models.Identity, id string) error
	AttachmentUploadURL(ctx context.Context, caller *models.Identity, id string) (*services.Attachment, error)
	AttachmentDownloadURL(ctx context.Context, caller *models.Identity, id string) (*services.Attachment, error)
}

type Authenticator interface {
	AuthenticateActive(ctx context.Context, token string) (*models.Identity, error)
}

type HTTPServer struct {
	address        string
	users          UserService
	items          ItemService
	gate           Authenticator
	logger         logging.Logger
	allowedOrigins []string
}

func NewHTTPServer(a string, l logging.Logger, us UserService, is ItemService, gate Authenticator) *HTTPServer {
	return &HTTPServer{
		address: a,
		logger:  l.With("module", "http_server"),
		users:   us,
		items:   is,
		gate:    gate,
	}
}

// Router builds the gin engine with every route registered.
func (s *HTTPServer) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	if s.allowedOrigins != nil {
		r.Use(corsMiddleware(s.allowedOrigins))
	}

	r.GET("/", s.welcome)

	v1 := r.Group(APIPrefix)

	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/register", s.register)
		authRoutes.POST("/login", s.login)
	}

	me := v1.Group("/auth/me", s.authRequired())
	{
		me.GET("", s.getMe)
		me.PATCH("", s.updateMe)
		me.DELETE("", s.deleteMe)
	}

	itemRoutes := v1.Group("/items", s.authRequired())
	{
		itemRoutes.POST("", s.createItem)
		itemRoutes.GET("", s.listItems)
		itemRoutes.GET("/:id", s.getItem)
		itemRoutes.PUT("/:id", s.updateItem)
		itemRoutes.PATCH("/:id", s.updateItem)
		itemRoutes.DELETE("/:id", s.deleteItem)
		itemRoutes.POST("/:id/attachment/upload-url", s.attachmentUploadURL)
		itemRoutes.GET("/:id/attachment/download-url", s.attachmentDownloadURL)
	}

	return r
}

func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve handles requests on lis until ctx is cancelled, then shuts down
// gracefully.
func (s *HTTPServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
