package dto

// ErrorContent describes a failed operation inside a Response
type ErrorContent struct {
	Name   string `json:"name" example:"UserManagement"`
	Code   int    `json:"code" example:"16002"`
	Msg    string `json:"msg" example:"Permission denied"`
	Method string `json:"method,omitempty" example:"createUser"`
}

type Result struct {
	Code  int           `json:"code" example:"200"`
	Error *ErrorContent `json:"error,omitempty"`
}

// Response is the envelope every query and mutation answers with
type Response struct {
	Data   any    `json:"data"`
	Result Result `json:"result"`
}

// MutationResult is the data of a successful mutation
type MutationResult struct {
	Code    int    `json:"code" example:"200"`
	Message string `json:"message" example:"User with id: 7f0c has been created"`
}

type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn"`
	RefreshExpiresIn int    `json:"refreshExpiresIn"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
