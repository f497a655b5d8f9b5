package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/festify/console/core"
	"github.com/festify/console/core/admin"
	"github.com/festify/console/core/email"
	"github.com/festify/console/core/home"
	"github.com/festify/console/core/lesson"
	"github.com/festify/console/core/notification"
	"github.com/festify/console/core/reward"
	"github.com/festify/console/core/timeline"
	"github.com/festify/console/core/user"
)

type (
	Deps struct {
		Logger     core.Logger
		Translator ut.Translator
		Verifier   core.TokenVerifier

		TimelineSvc     timeline.ServiceInterface
		LessonSvc       lesson.ServiceInterface
		RewardSvc       reward.ServiceInterface
		UserSvc         user.ServiceInterface
		AdminSvc        admin.ServiceInterface
		EmailSvc        email.ServiceInterface
		NotificationSvc notification.ServiceInterface
		HomeSvc         home.ServiceInterface
	}

	Server struct {
		app      *echo.Echo
		conf     *core.Config
		deps     Deps
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(conf *core.Config, deps Deps) *Server {
	s := &Server{
		app:      echo.New(),
		conf:     conf,
		deps:     deps,
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	debug := s.conf.Debug && !s.conf.TestMode

	s.app.HideBanner = true
	s.app.JSONSerializer = jsonSerializer{}
	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = debug

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(debug || s.conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.conf.Server.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	s.app.Use(metricsMiddleware)

	s.app.GET("/", s.home)
	s.app.GET("/healthz", healthz)
	s.app.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	rpc := s.app.Group("/rpc", authMiddleware(s.deps.Verifier, s.deps.AdminSvc))

	registerTimelineAPI(rpc, s.deps.TimelineSvc)
	registerLessonAPI(rpc, s.deps.LessonSvc)
	registerRewardAPI(rpc, s.deps.RewardSvc)
	registerUserAPI(rpc, s.deps.UserSvc)
	registerAdminAPI(rpc, s.deps.AdminSvc)
	registerEmailAPI(rpc, s.deps.EmailSvc)
	registerNotificationAPI(rpc, s.deps.NotificationSvc)
	registerHomeAPI(rpc, s.deps.HomeSvc)
}

// Start listens until the server is shut down; any other failure is sent on Errors.
func (s *Server) Start() {
	if err := s.app.Start(s.conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the "+s.conf.AppName+" console API!")
}

func healthz(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
