package dto

import "fmt"

// APIError ответ сервиса с неуспешным HTTP-статусом.
type APIError struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	Endpoint string `json:"endpoint"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message == "" {
		return fmt.Sprintf("%d status from %s", e.Code, e.Endpoint)
	}
	return fmt.Sprintf("%d status from %s: %s", e.Code, e.Endpoint, e.Message)
}
