package models

import "github.com/gofiber/fiber/v2"

// APIResponse is the success envelope returned by every endpoint.
type APIResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// Respond writes the standard success envelope.
func Respond(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(APIResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// RespondWithError writes the standard error envelope. When err carries an
// AppError code the status is derived from it unless the caller overrides it.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	msg := "Internal server error"
	if err != nil {
		msg = err.Error()
	}
	return c.Status(status).JSON(ErrorResponse{
		StatusCode: status,
		Message:    msg,
		Success:    false,
	})
}
