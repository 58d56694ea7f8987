// Package httpapi exposes the booking and admin surface as a JSON HTTP API.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/fairwaylab/studio_scheduler/internal/model"
	"github.com/fairwaylab/studio_scheduler/internal/service"
)

// PeriodStore is the admin CRUD surface for schedule periods.
type PeriodStore interface {
	Create(ctx context.Context, p *model.SchedulePeriod) error
	GetByID(ctx context.Context, id int64) (*model.SchedulePeriod, error)
	GetAll(ctx context.Context) ([]*model.SchedulePeriod, error)
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

// TemplateStore is the admin CRUD surface for templates and their entries.
type TemplateStore interface {
	Create(ctx context.Context, t *model.ScheduleTemplate) error
	GetByID(ctx context.Context, id int64) (*model.ScheduleTemplate, error)
	GetAll(ctx context.Context) ([]*model.ScheduleTemplate, error)
	Delete(ctx context.Context, id int64) error
	CreateEntry(ctx context.Context, e *model.TemplateEntry) error
	GetEntries(ctx context.Context, templateID int64) ([]*model.TemplateEntry, error)
	DeleteEntry(ctx context.Context, id int64) error
}

// InstanceStore is the admin read/cancel surface for live instances.
type InstanceStore interface {
	GetByPeriod(ctx context.Context, periodID int64) ([]*model.LiveInstance, error)
	SetCancelled(ctx context.Context, id int64, cancelled bool) error
}

type Server struct {
	echo       *echo.Echo
	bookings   *service.BookingService
	generator  *service.GeneratorService
	periods    PeriodStore
	templates  TemplateStore
	instances  InstanceStore
	adminToken string
	location   string
	logger     *zap.Logger
}

func NewServer(
	bookings *service.BookingService,
	generator *service.GeneratorService,
	periods PeriodStore,
	templates TemplateStore,
	instances InstanceStore,
	adminToken string,
	logger *zap.Logger,
) *Server {
	s := &Server{
		echo:       echo.New(),
		bookings:   bookings,
		generator:  generator,
		periods:    periods,
		templates:  templates,
		instances:  instances,
		adminToken: adminToken,
		location:   "Fairway Lab Studio",
		logger:     logger,
	}

	s.echo.HideBanner = true
	s.echo.Validator = &requestValidator{validate: validator.New()}

	s.echo.Use(middleware.Recover())
	// The portal and marketing site are served from other origins; the API is
	// CORS-open and answers OPTIONS preflight.
	s.echo.Use(middleware.CORS())

	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.echo.Group("/api/v1")
	api.GET("/availability", s.handleAvailability)
	api.POST("/bookings", s.handleBook)
	api.DELETE("/bookings/:id", s.handleCancel)
	api.GET("/bookings/:id/calendar-link", s.handleCalendarLink)
	api.GET("/members/:id/bookings", s.handleMemberBookings)
	api.GET("/members/:id/session-limits", s.handleSessionLimits)

	// Wire-compatible with the hosted functions the portal used to call.
	fns := s.echo.Group("/functions")
	fns.POST("/generate-schedule-instances", s.handleGenerateInstances)
	fns.POST("/cleanup-orphaned-instances", s.handleCleanupOrphans)

	admin := api.Group("/admin", s.adminAuth)
	admin.POST("/templates", s.handleCreateTemplate)
	admin.GET("/templates", s.handleListTemplates)
	admin.DELETE("/templates/:id", s.handleDeleteTemplate)
	admin.POST("/templates/:id/entries", s.handleCreateEntry)
	admin.GET("/templates/:id/entries", s.handleListEntries)
	admin.DELETE("/entries/:id", s.handleDeleteEntry)
	admin.POST("/periods", s.handleCreatePeriod)
	admin.GET("/periods", s.handleListPeriods)
	admin.PATCH("/periods/:id/active", s.handleSetPeriodActive)
	admin.DELETE("/periods/:id", s.handleDeletePeriod)
	admin.GET("/periods/:id/instances", s.handleListInstances)
	admin.PATCH("/instances/:id/cancelled", s.handleSetInstanceCancelled)
}

// Start serves until the context is cancelled or the listener fails.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the router; tests drive it through httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// adminAuth is a static bearer token, not real authentication. The admin
// portal is operated by studio staff on a trusted network.
func (s *Server) adminAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.adminToken == "" {
			return next(c)
		}
		if c.Request().Header.Get("Authorization") != "Bearer "+s.adminToken {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}
		return next(c)
	}
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
