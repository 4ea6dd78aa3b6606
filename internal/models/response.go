package models

import "github.com/gofiber/fiber/v2"

// Response is the success envelope shared by every endpoint:
// {success, data?, count?, message?}.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
	UserID  uint   `json:"userId,omitempty"`
}

// Respond writes a success envelope with the given data.
func Respond(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(Response{Success: true, Data: data})
}

// RespondWithCount writes a success envelope carrying a collection and
// its length.
func RespondWithCount(c *fiber.Ctx, data any, count int) error {
	return c.JSON(Response{Success: true, Data: data, Count: &count})
}

// RespondWithMessage writes a success envelope with data and a
// human-readable message.
func RespondWithMessage(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(Response{Success: true, Data: data, Message: message})
}
