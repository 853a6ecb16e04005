package dto

// Response is the envelope every endpoint returns.
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func OK(message string, data any) Response {
	return Response{Status: true, Message: message, Data: data}
}

func Fail(message string) Response {
	return Response{Status: false, Message: message}
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
