package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fairwaylab/studio_scheduler/internal/calendar"
	"github.com/fairwaylab/studio_scheduler/internal/i18n"
	"github.com/fairwaylab/studio_scheduler/internal/schedule"
	"github.com/fairwaylab/studio_scheduler/internal/service"
)

type bookRequest struct {
	MemberID   string `json:"member_id" validate:"required"`
	WeekOffset int    `json:"week_offset" validate:"gte=0,lte=1"`
	DayOffset  int    `json:"day_offset" validate:"gte=0,lte=6"`
	Hour       int    `json:"hour" validate:"gte=0,lte=23"`
}

type conflictResponse struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type availabilityItem struct {
	schedule.Occurrence
	ClassLabel string `json:"class_label"`
}

func (s *Server) handleAvailability(c echo.Context) error {
	occs, err := s.bookings.Availability(c.Request().Context())
	if err != nil {
		s.logger.Error("Availability failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	lang := c.Request().Header.Get("Accept-Language")
	items := make([]availabilityItem, len(occs))
	for i, occ := range occs {
		items[i] = availabilityItem{
			Occurrence: occ,
			ClassLabel: i18n.ClassLabel(lang, occ.ClassName),
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"occurrences": items})
}

func (s *Server) handleBook(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	lang := c.Request().Header.Get("Accept-Language")

	booking, err := s.bookings.Book(c.Request().Context(), req.MemberID, req.WeekOffset, req.DayOffset, req.Hour)
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, echo.Map{
			"booking": booking,
			"message": i18n.T(lang, i18n.MsgBookingConfirmed),
		})
	case errors.Is(err, service.ErrMemberNotFound):
		return c.JSON(http.StatusNotFound, conflictResponse{
			Reason:  "member_not_found",
			Message: i18n.T(lang, i18n.MsgMemberNotFound),
		})
	case errors.Is(err, service.ErrAlreadyBooked):
		return c.JSON(http.StatusConflict, conflictResponse{
			Reason:  "already_booked",
			Message: i18n.T(lang, i18n.MsgAlreadyBooked),
		})
	case errors.Is(err, service.ErrClassFull):
		return c.JSON(http.StatusConflict, conflictResponse{
			Reason:  "class_full",
			Message: i18n.T(lang, i18n.MsgClassFull),
		})
	case errors.Is(err, service.ErrQuotaExceeded):
		return c.JSON(http.StatusConflict, conflictResponse{
			Reason:  "quota_exceeded",
			Message: i18n.T(lang, i18n.MsgQuotaExceeded),
		})
	case errors.Is(err, service.ErrPastOccurrence):
		return c.JSON(http.StatusBadRequest, conflictResponse{
			Reason:  "past_occurrence",
			Message: i18n.T(lang, i18n.MsgPastOccurrence),
		})
	default:
		s.logger.Error("Booking failed", zap.Error(err), zap.String("member_id", req.MemberID))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
}

func (s *Server) handleCancel(c echo.Context) error {
	lang := c.Request().Header.Get("Accept-Language")

	err := s.bookings.Cancel(c.Request().Context(), c.Param("id"))
	if errors.Is(err, service.ErrBookingNotFound) {
		return c.JSON(http.StatusNotFound, conflictResponse{
			Reason:  "booking_not_found",
			Message: i18n.T(lang, i18n.MsgBookingNotFound),
		})
	}
	if err != nil {
		s.logger.Error("Cancel failed", zap.Error(err), zap.String("booking_id", c.Param("id")))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleMemberBookings(c echo.Context) error {
	ctx := c.Request().Context()
	memberID := c.Param("id")

	var err error
	var bookings any
	if c.QueryParam("upcoming") == "true" {
		bookings, err = s.bookings.UpcomingBookings(ctx, memberID)
	} else {
		bookings, err = s.bookings.MemberBookings(ctx, memberID)
	}
	if err != nil {
		s.logger.Error("List member bookings failed", zap.Error(err), zap.String("member_id", memberID))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

func (s *Server) handleSessionLimits(c echo.Context) error {
	info, err := s.bookings.SessionLimits(c.Request().Context(), c.Param("id"))
	if err != nil {
		s.logger.Error("Session limits failed", zap.Error(err), zap.String("member_id", c.Param("id")))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	if info == nil {
		// No member session: no applicable limit, not a fault.
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, info)
}

func (s *Server) handleCalendarLink(c echo.Context) error {
	booking, err := s.bookings.GetBooking(c.Request().Context(), c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	if booking == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"url": calendar.GoogleLink(booking, s.location)})
}
