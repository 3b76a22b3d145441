package request

type RequestCancellationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ConfirmCancellationRequest struct {
	Code string `json:"code" binding:"required,len=6,numeric"`
}
