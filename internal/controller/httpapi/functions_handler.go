package httpapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fairwaylab/studio_scheduler/internal/i18n"
)

// The /functions endpoints keep the wire shape of the hosted functions the
// admin tool originally called: period_id travels as a string, success and
// failure are flagged in the body. Errors are reported in that body shape,
// not through the echo validator.
type generateRequest struct {
	PeriodID string `json:"period_id"`
}

type generateResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message,omitempty"`
	InstancesCount int    `json:"instances_count,omitempty"`
	Error          string `json:"error,omitempty"`
}

func (s *Server) handleGenerateInstances(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.PeriodID == "" {
		return c.JSON(http.StatusBadRequest, generateResponse{
			Success: false,
			Error:   "period_id is required",
		})
	}

	periodID, err := strconv.ParseInt(req.PeriodID, 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, generateResponse{
			Success: false,
			Error:   "period_id must be numeric",
		})
	}

	count, err := s.generator.GenerateForPeriod(c.Request().Context(), periodID)
	if err != nil {
		s.logger.Error("Instance generation failed",
			zap.Int64("period_id", periodID),
			zap.Error(err),
		)
		return c.JSON(http.StatusInternalServerError, generateResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, generateResponse{
		Success:        true,
		Message:        i18n.T(c.Request().Header.Get("Accept-Language"), i18n.MsgInstancesBuilt),
		InstancesCount: count,
	})
}

type cleanupResponse struct {
	Success      bool   `json:"success"`
	RemovedCount int64  `json:"removed_count"`
	Error        string `json:"error,omitempty"`
}

func (s *Server) handleCleanupOrphans(c echo.Context) error {
	removed, err := s.generator.CleanupOrphans(c.Request().Context())
	if err != nil {
		s.logger.Error("Orphan cleanup failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, cleanupResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, cleanupResponse{
		Success:      true,
		RemovedCount: removed,
	})
}
