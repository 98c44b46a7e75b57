package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/tresidus/tresidus-api/consulting"
)

const (
	modeDevelopment = "development"

	// ISO-8601 with milliseconds, always UTC
	isoTimestamp = "2006-01-02T15:04:05.000Z"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// consulting request lifecycle
	service *consulting.Service

	startedAt time.Time
}

// NewServer new instance of server
func NewServer(service *consulting.Service) *Server {
	return &Server{
		service:   service,
		startedAt: time.Now(),
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	return s.server.ListenAndServe()
}

// Handler returns the http handler serving every route
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	// the collection answers with and without a trailing slash instead of
	// redirecting, a redirect carries no CORS headers
	r.RedirectTrailingSlash = false
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))
	r.Use(requestLogger("API"))
	r.Use(preflight())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    corsAllowMethods,
		AllowHeaders:    corsAllowHeaders,
		ExposeHeaders:   []string{"Content-Length", requestIDHeader},
		MaxAge:          12 * time.Hour,
	}))

	r.GET("/", s.banner)
	r.GET("/health", s.health)

	apiRoute := r.Group("/api")
	{
		apiRoute.GET("/projects", s.projects)
		apiRoute.GET("/analytics", s.analytics)
	}

	consultingRoute := apiRoute.Group("/consulting")
	{
		consultingRoute.POST("", s.createConsultingRequest)
		consultingRoute.POST("/", s.createConsultingRequest)
	}

	// routes other than create are for the admin dashboard
	if key := viper.GetString("server.apikey.admin"); key != "" {
		consultingRoute.Use(s.apikeyAuthentication(key))
	}
	{
		consultingRoute.GET("", s.listConsultingRequests)
		consultingRoute.GET("/", s.listConsultingRequests)
		consultingRoute.GET("/:id", s.getConsultingRequest)
		consultingRoute.PUT("/:id", s.updateConsultingRequest)
		consultingRoute.DELETE("/:id", s.deleteConsultingRequest)
		consultingRoute.POST("/:id/communication", s.appendCommunication)
	}

	r.NoRoute(s.routeNotFound)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// shouldInterupt sends error message and determine if it should interupt the current flow
func shouldInterupt(err error, c *gin.Context) bool {
	if err == nil {
		return false
	}

	log.Error(err)
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer.withMessage(internalMessage(err)), err)
	return true
}

// internalMessage hides the error detail unless the server runs in development mode
func internalMessage(err error) string {
	if viper.GetString("server.mode") == modeDevelopment {
		return err.Error()
	}
	return errorMessageMap[999]
}

// abortWithServiceError maps an error of the consulting service onto the
// response. failure is the envelope used for unexpected errors.
func abortWithServiceError(c *gin.Context, failure ErrorResponse, err error) {
	var validationErr *consulting.ValidationError

	switch {
	case errors.As(err, &validationErr):
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters.withError(validationErr.Reason))
	case errors.Is(err, consulting.ErrRequestNotFound):
		abortWithEncoding(c, http.StatusNotFound, errorRequestNotFound)
	default:
		log.WithError(err).Error(failure.Error)
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		abortWithEncoding(c, http.StatusInternalServerError, failure.withMessage(internalMessage(err)), err)
	}
}

func (s *Server) routeNotFound(c *gin.Context) {
	abortWithEncoding(c, http.StatusNotFound,
		errorRouteNotFound.withMessage("Cannot "+c.Request.Method+" "+c.Request.URL.RequestURI()))
}

func responseWithEncoding(c *gin.Context, code int, obj interface{}) {
	acceptEncoding := c.GetHeader("Accept-Encoding")
	switch acceptEncoding {
	default:
		c.JSON(code, obj)
	}
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	responseWithEncoding(c, code, obj)
	c.Abort()
}

func timestamp(t time.Time) string {
	return t.UTC().Format(isoTimestamp)
}
