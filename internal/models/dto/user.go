package dto

import "time"

// BaseResponse is embedded in every success payload. Field names are
// part of the wire contract consumed by the gateway and frontend.
type BaseResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorCode int    `json:"errorCode"`
}

// OK returns the standard success envelope.
func OK() BaseResponse {
	return BaseResponse{Success: true, Message: "success", ErrorCode: 200}
}

// Created returns the envelope for resource-creating endpoints.
func Created() BaseResponse {
	return BaseResponse{Success: true, Message: "created", ErrorCode: 201}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	BaseResponse
	Token     string    `json:"token"`
	UserID    int64     `json:"userId"`
	Username  string    `json:"username"`
	Nickname  string    `json:"nickname"`
	LoginTime time.Time `json:"loginTime"`
}

type RegisterRequest struct {
	Username        string `json:"username"`
	Nickname        string `json:"nickname"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type RegisterResponse struct {
	BaseResponse
	UserID       int64     `json:"userId"`
	Username     string    `json:"username"`
	Nickname     string    `json:"nickname"`
	Email        string    `json:"email"`
	RegisterTime time.Time `json:"registerTime"`
}

type UpdatePasswordRequest struct {
	Username           string `json:"username"`
	OldPassword        string `json:"oldPassword"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

type UpdatePasswordResponse struct {
	BaseResponse
	UserID     int64     `json:"userId"`
	Username   string    `json:"username"`
	UpdateTime time.Time `json:"updateTime"`
}

type UserResponse struct {
	BaseResponse
	UserID       int64     `json:"userId"`
	Username     string    `json:"username"`
	Nickname     string    `json:"nickname"`
	RegisterTime time.Time `json:"registerTime"`
}
