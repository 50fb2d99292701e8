// Package response defines the envelope every API response is wrapped in.
package response

import "github.com/gofiber/fiber/v2"

// ApiResponse is the uniform payload envelope. Data is null on failure.
type ApiResponse struct {
	Success    bool   `json:"success"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

func Ok(data any, message string) ApiResponse {
	return ApiResponse{Success: true, Data: data, Message: message, StatusCode: fiber.StatusOK}
}

func BadRequest(message string) ApiResponse {
	return ApiResponse{Success: false, Message: message, StatusCode: fiber.StatusBadRequest}
}

func InternalServerError(message string) ApiResponse {
	return ApiResponse{Success: false, Message: message, StatusCode: fiber.StatusInternalServerError}
}
