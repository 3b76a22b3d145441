package api

import (
	"errors"
	"net/http"

	reqdto "roombook/internal/handler/dto/request"
	resdto "roombook/internal/handler/dto/response"
	"roombook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Rejection copy is deliberately identical for "booking missing" and "email
// wrong" so callers cannot enumerate bookings or probe addresses.
const (
	msgEmailMismatch  = "E-mail does not match the booking."
	msgInvalidCode    = "Invalid or expired code."
	msgDeliveryFailed = "Failed to send the code. Please try again."
)

type CancellationHandler struct {
	cancellationCommands commands.CancellationCommands
}

func NewCancellationHandler(cancellationCommands commands.CancellationCommands) *CancellationHandler {
	return &CancellationHandler{cancellationCommands: cancellationCommands}
}

// @Summary Request cancellation code
// @Description Email a one-time cancellation code to the booking's creator
// @Tags cancellations
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.RequestCancellationRequest true "Claimed creator email"
// @Success 200 {object} resdto.Outcome
// @Failure 400 {object} resdto.Outcome
// @Failure 429 {object} resdto.RateLimitedResponse
// @Failure 502 {object} resdto.Outcome
// @Router /bookings/{id}/cancellation-request [post]
func (h *CancellationHandler) Request(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, resdto.Outcome{Success: false, Message: "Invalid booking ID"})
		return
	}

	var req reqdto.RequestCancellationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, resdto.Outcome{Success: false, Message: "Invalid request format"})
		return
	}

	if err := h.cancellationCommands.RequestCancellation(c.Request.Context(), bookingID, req.Email); err != nil {
		switch {
		case errors.Is(err, commands.ErrRateLimited):
			resetIn := 0
			var limited *commands.RateLimitedError
			if errors.As(err, &limited) {
				resetIn = int(limited.ResetIn.Seconds())
			}
			c.JSON(http.StatusTooManyRequests, resdto.RateLimitedResponse{
				Success:        false,
				Message:        "Too many attempts. Please try again later.",
				ResetInSeconds: resetIn,
			})
		case errors.Is(err, commands.ErrEmailMismatch):
			c.JSON(http.StatusBadRequest, resdto.Outcome{Success: false, Message: msgEmailMismatch})
		case errors.Is(err, commands.ErrDeliveryFailed):
			c.JSON(http.StatusBadGateway, resdto.Outcome{Success: false, Message: msgDeliveryFailed})
		default:
			c.JSON(http.StatusInternalServerError, resdto.Outcome{Success: false, Message: "Unexpected error while processing the request."})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.Outcome{Success: true, Message: "A cancellation code was sent to your e-mail."})
}

// @Summary Confirm cancellation
// @Description Verify the one-time code and delete the booking
// @Tags cancellations
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.ConfirmCancellationRequest true "One-time code"
// @Success 200 {object} resdto.Outcome
// @Failure 400 {object} resdto.Outcome
// @Router /bookings/{id}/cancellation-confirm [post]
func (h *CancellationHandler) Confirm(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, resdto.Outcome{Success: false, Message: "Invalid booking ID"})
		return
	}

	var req reqdto.ConfirmCancellationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, resdto.Outcome{Success: false, Message: "Invalid request format"})
		return
	}

	if err := h.cancellationCommands.ConfirmCancellation(c.Request.Context(), bookingID, req.Code); err != nil {
		if errors.Is(err, commands.ErrInvalidOrExpiredCode) {
			c.JSON(http.StatusBadRequest, resdto.Outcome{Success: false, Message: msgInvalidCode})
			return
		}
		c.JSON(http.StatusInternalServerError, resdto.Outcome{Success: false, Message: "Unexpected error while confirming the cancellation."})
		return
	}

	c.JSON(http.StatusOK, resdto.Outcome{Success: true, Message: "Booking cancelled."})
}
