package httperr

// Response is the envelope every error path serializes. Handlers attach it
// to gin's error stack as public metadata; the error middleware renders it.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
}

func New(status int, message string) Response {
	resp := Response{Status: status}
	resp.Error.Message = message
	return resp
}
