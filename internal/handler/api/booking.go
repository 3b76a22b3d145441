package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	reqdto "roombook/internal/handler/dto/request"
	resdto "roombook/internal/handler/dto/response"
	"roombook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
}

func NewBookingHandler(bookingCommands commands.BookingCommands) *BookingHandler {
	return &BookingHandler{bookingCommands: bookingCommands}
}

// @Summary Create booking
// @Description Create a booking, optionally expanding a recurrence rule into occurrences
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.CreateBookingResponse
// @Failure 400 {object} resdto.Outcome
// @Failure 404 {object} resdto.Outcome
// @Failure 409 {object} resdto.Outcome
// @Failure 422 {object} resdto.Outcome
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, resdto.Outcome{Success: false, Message: "Invalid request format"})
		return
	}

	result, err := h.bookingCommands.CreateBooking(c.Request.Context(), req.ToInput())
	if err != nil {
		status, message := mapCreateBookingError(err)
		c.JSON(status, resdto.Outcome{Success: false, Message: message})
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCreateBookingResult(result))
}

// @Summary Check room availability
// @Description Advisory availability check for a candidate interval
// @Tags bookings
// @Produce json
// @Param id path string true "Room ID"
// @Param start query string true "Interval start (RFC3339)"
// @Param end query string true "Interval end (RFC3339)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} resdto.Outcome
// @Router /rooms/{id}/availability [get]
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, resdto.Outcome{Success: false, Message: "Invalid room ID"})
		return
	}

	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, resdto.Outcome{Success: false, Message: "Invalid start time"})
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, resdto.Outcome{Success: false, Message: "Invalid end time"})
		return
	}

	available, err := h.bookingCommands.CheckAvailability(c.Request.Context(), roomID, start, end, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, resdto.Outcome{Success: false, Message: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.AvailabilityResponse{Available: available})
}

func mapCreateBookingError(err error) (int, string) {
	switch {
	case errors.Is(err, commands.ErrInvalidRange):
		return http.StatusBadRequest, "End time must be after start time."
	case errors.Is(err, commands.ErrPastDate):
		return http.StatusBadRequest, "Bookings cannot be created in the past."
	case errors.Is(err, commands.ErrDurationExceeded):
		return http.StatusBadRequest, "The maximum booking duration is 8 hours."
	case errors.Is(err, commands.ErrInvalidRecurrence):
		return http.StatusBadRequest, "The recurrence rule is invalid."
	case errors.Is(err, commands.ErrTooManyOccurrences):
		return http.StatusUnprocessableEntity, "The recurrence produces too many bookings. Shorten the period."
	case errors.Is(err, commands.ErrConflict):
		return http.StatusConflict, conflictMessage(err)
	case errors.Is(err, commands.ErrRoomNotFound):
		return http.StatusNotFound, "Room not found."
	case errors.Is(err, commands.ErrValidation):
		return http.StatusBadRequest, "Invalid booking data."
	default:
		return http.StatusInternalServerError, "Unexpected error while creating the booking."
	}
}

func conflictMessage(err error) string {
	var conflict *commands.ConflictError
	if errors.As(err, &conflict) && conflict.Occurrence {
		return fmt.Sprintf(
			"The recurring occurrence on %s is already booked. Please choose another time.",
			conflict.Date.Format("2006-01-02"),
		)
	}
	return "This time slot is already booked. Please choose another time."
}
