package request

import (
	"time"

	"roombook/internal/usecase/commands"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomID            string     `json:"roomId" binding:"required,uuid"`
	CreatorName       string     `json:"creatorName" binding:"required,min=3"`
	CreatorEmail      string     `json:"creatorEmail" binding:"required,email"`
	Title             string     `json:"title" binding:"required,min=3,max=100"`
	Description       string     `json:"description" binding:"omitempty,max=500"`
	StartTime         time.Time  `json:"startTime" binding:"required"`
	EndTime           time.Time  `json:"endTime" binding:"required"`
	IsRecurring       bool       `json:"isRecurring"`
	RecurrenceKind    string     `json:"recurrenceKind" binding:"omitempty,oneof=none daily weekly monthly custom"`
	RecurrenceEndDate *time.Time `json:"recurrenceEndDate"`
	DaysOfWeek        []int      `json:"daysOfWeek" binding:"omitempty,weekdays"`
}

func (r *CreateBookingRequest) ToInput() commands.CreateBookingInput {
	roomID, _ := uuid.Parse(r.RoomID) // already validated by binding

	return commands.CreateBookingInput{
		RoomID:            roomID,
		CreatorName:       r.CreatorName,
		CreatorEmail:      r.CreatorEmail,
		Title:             r.Title,
		Description:       r.Description,
		StartTime:         r.StartTime,
		EndTime:           r.EndTime,
		IsRecurring:       r.IsRecurring,
		RecurrenceKind:    r.RecurrenceKind,
		RecurrenceEndDate: r.RecurrenceEndDate,
		DaysOfWeek:        r.DaysOfWeek,
	}
}

// RegisterValidations wires the custom binding validators. Call once during
// router setup.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("weekdays", validateWeekdays)
	}
}

func validateWeekdays(fl validator.FieldLevel) bool {
	days, ok := fl.Field().Interface().([]int)
	if !ok {
		return false
	}
	for _, d := range days {
		if d < 0 || d > 6 {
			return false
		}
	}
	return true
}
