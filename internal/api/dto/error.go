package dto

// Error represents a transport level error response
type Error struct {
	Error string `json:"error" example:"error message"`
}
