package response

import "roombook/internal/usecase/commands"

// Outcome is the plain result record every mutating endpoint returns; no
// exception detail ever crosses this boundary.
type Outcome struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type CreateBookingResponse struct {
	Success     bool   `json:"success"`
	BookingID   string `json:"bookingId,omitempty"`
	Occurrences int    `json:"occurrences"`
	Message     string `json:"message,omitempty"`
}

func FromCreateBookingResult(result *commands.CreateBookingResult) CreateBookingResponse {
	return CreateBookingResponse{
		Success:     true,
		BookingID:   result.BookingID.String(),
		Occurrences: result.Occurrences,
		Message:     "Booking created successfully",
	}
}

type AvailabilityResponse struct {
	Available bool `json:"available"`
}

type RateLimitedResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	ResetInSeconds int    `json:"resetInSeconds"`
}
