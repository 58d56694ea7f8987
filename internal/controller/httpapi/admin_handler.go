package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fairwaylab/studio_scheduler/internal/model"
	"github.com/fairwaylab/studio_scheduler/internal/repository/base"
)

type createTemplateRequest struct {
	Name string `json:"name" validate:"required"`
}

type createEntryRequest struct {
	Weekday         int    `json:"weekday" validate:"gte=0,lte=6"`
	StartHour       int    `json:"start_hour" validate:"gte=0,lte=23"`
	StartMinute     int    `json:"start_minute" validate:"gte=0,lte=59"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0"`
	ClassName       string `json:"class_name" validate:"required"`
	Tier            string `json:"tier" validate:"required,oneof=pro amateur"`
	MaxParticipants int    `json:"max_participants" validate:"required,gt=0"`
}

type createPeriodRequest struct {
	TemplateID int64  `json:"template_id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	StartDate  string `json:"start_date" validate:"required"` // YYYY-MM-DD
	EndDate    string `json:"end_date" validate:"required"`
	IsActive   bool   `json:"is_active"`
}

func (s *Server) handleCreateTemplate(c echo.Context) error {
	var req createTemplateRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	t := &model.ScheduleTemplate{Name: req.Name}
	if err := s.templates.Create(c.Request().Context(), t); err != nil {
		s.logger.Error("Create template failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return c.JSON(http.StatusCreated, t)
}

func (s *Server) handleListTemplates(c echo.Context) error {
	templates, err := s.templates.GetAll(c.Request().Context())
	if err != nil {
		s.logger.Error("List templates failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"templates": templates})
}

func (s *Server) handleDeleteTemplate(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := s.templates.Delete(c.Request().Context(), id); err != nil {
		return s.mutationError(c, "Delete template failed", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleCreateEntry(c echo.Context) error {
	templateID, err := paramID(c)
	if err != nil {
		return err
	}

	var req createEntryRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if t, err := s.templates.GetByID(ctx, templateID); err != nil || t == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "template not found"})
	}

	e := &model.TemplateEntry{
		TemplateID:      templateID,
		Weekday:         req.Weekday,
		StartHour:       req.StartHour,
		StartMinute:     req.StartMinute,
		DurationMinutes: req.DurationMinutes,
		ClassName:       req.ClassName,
		Tier:            model.Tier(req.Tier),
		MaxParticipants: req.MaxParticipants,
	}
	if err := s.templates.CreateEntry(ctx, e); err != nil {
		s.logger.Error("Create entry failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return c.JSON(http.StatusCreated, e)
}

func (s *Server) handleListEntries(c echo.Context) error {
	templateID, err := paramID(c)
	if err != nil {
		return err
	}
	entries, err := s.templates.GetEntries(c.Request().Context(), templateID)
	if err != nil {
		s.logger.Error("List entries failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"entries": entries})
}

func (s *Server) handleDeleteEntry(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := s.templates.DeleteEntry(c.Request().Context(), id); err != nil {
		return s.mutationError(c, "Delete entry failed", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleCreatePeriod(c echo.Context) error {
	var req createPeriodRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date must be YYYY-MM-DD"})
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must be YYYY-MM-DD"})
	}
	if end.Before(start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date before start_date"})
	}

	ctx := c.Request().Context()
	if t, err := s.templates.GetByID(ctx, req.TemplateID); err != nil || t == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "template not found"})
	}

	p := &model.SchedulePeriod{
		TemplateID: req.TemplateID,
		Name:       req.Name,
		StartDate:  start,
		EndDate:    end,
		IsActive:   req.IsActive,
	}
	if err := s.periods.Create(ctx, p); err != nil {
		s.logger.Error("Create period failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	// Activating a period materializes its instances immediately. A failure
	// here must not look like success: the period would sit active with no
	// instances behind it.
	if p.IsActive {
		if _, err := s.generator.GenerateForPeriod(ctx, p.ID); err != nil {
			s.logger.Error("Generation after period create failed",
				zap.Int64("period_id", p.ID), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error":  "period created but instance generation failed: " + err.Error(),
				"period": p,
			})
		}
	}

	return c.JSON(http.StatusCreated, p)
}

func (s *Server) handleListPeriods(c echo.Context) error {
	periods, err := s.periods.GetAll(c.Request().Context())
	if err != nil {
		s.logger.Error("List periods failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"periods": periods})
}

type setActiveRequest struct {
	IsActive bool `json:"is_active"`
}

func (s *Server) handleSetPeriodActive(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req setActiveRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := s.periods.SetActive(ctx, id, req.IsActive); err != nil {
		return s.mutationError(c, "Set period active failed", err)
	}

	// Re-activation regenerates the period's instances.
	if req.IsActive {
		if _, err := s.generator.GenerateForPeriod(ctx, id); err != nil {
			s.logger.Error("Generation after activation failed",
				zap.Int64("period_id", id), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleDeletePeriod(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := s.periods.Delete(c.Request().Context(), id); err != nil {
		return s.mutationError(c, "Delete period failed", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleListInstances(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	instances, err := s.instances.GetByPeriod(c.Request().Context(), id)
	if err != nil {
		s.logger.Error("List instances failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"instances": instances})
}

type setCancelledRequest struct {
	IsCancelled bool `json:"is_cancelled"`
}

func (s *Server) handleSetInstanceCancelled(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req setCancelledRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	if err := s.instances.SetCancelled(c.Request().Context(), id, req.IsCancelled); err != nil {
		return s.mutationError(c, "Set instance cancelled failed", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// mutationError maps a missing row to 404 and everything else to 500, so a
// real database failure never reads as "not found".
func (s *Server) mutationError(c echo.Context, op string, err error) error {
	if errors.Is(err, base.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	s.logger.Error(op, zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

func paramID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be numeric")
	}
	return id, nil
}
