package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/aiqa-platform/user-service/internal/apperr"
	"github.com/aiqa-platform/user-service/internal/http/respond"
	"github.com/aiqa-platform/user-service/internal/middleware"
	"github.com/aiqa-platform/user-service/internal/models"
	"github.com/aiqa-platform/user-service/internal/models/dto"
	"github.com/aiqa-platform/user-service/internal/service"
)

// UserHandler owns the account endpoints: login, register,
// updatePassword, and user lookups.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler constructs the handler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Login handles POST /api/users/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, apperr.BadRequest("invalid JSON payload"))
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		respond.Error(w, apperr.BadRequest("username and password are required"))
		return
	}

	log.Printf("login attempt username=%s", req.Username)
	user, token, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, dto.LoginResponse{
		BaseResponse: dto.OK(),
		Token:        token,
		UserID:       user.ID,
		Username:     user.Username,
		Nickname:     user.Nickname,
		LoginTime:    time.Now(),
	})
}

// Register handles POST /api/users/register.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, apperr.BadRequest("invalid JSON payload"))
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		respond.Error(w, apperr.BadRequest("username and password are required"))
		return
	}

	log.Printf("register attempt username=%s", req.Username)
	created, err := h.users.Register(r.Context(), strings.TrimSpace(req.Username),
		strings.TrimSpace(req.Nickname), strings.TrimSpace(req.Email),
		req.Password, req.ConfirmPassword)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, dto.RegisterResponse{
		BaseResponse: dto.Created(),
		UserID:       created.ID,
		Username:     created.Username,
		Nickname:     created.Nickname,
		Email:        created.Email,
		RegisterTime: created.CreatedAt,
	})
}

// UpdatePassword handles POST /api/users/updatePassword. The bearer
// token's subject is authoritative: a body username that names anyone
// else is rejected before any password work.
func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, apperr.BadRequest("invalid JSON payload"))
		return
	}

	principal := middleware.MustPrincipal(r.Context())
	if req.Username != "" && req.Username != principal.Username {
		respond.Error(w, apperr.ErrInvalidToken)
		return
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		respond.Error(w, apperr.BadRequest("oldPassword and newPassword are required"))
		return
	}

	updated, err := h.users.UpdatePassword(r.Context(), principal.Username,
		req.OldPassword, req.NewPassword, req.ConfirmNewPassword)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, dto.UpdatePasswordResponse{
		BaseResponse: dto.OK(),
		UserID:       updated.ID,
		Username:     updated.Username,
		UpdateTime:   updated.UpdatedAt,
	})
}

// GetByID handles GET /api/users/{id}.
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respond.Error(w, apperr.BadRequest("invalid user id"))
		return
	}

	user, err := h.users.GetUserByID(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, userResponse(user))
}

// GetByUsername handles GET /api/users/username/{username}.
func (h *UserHandler) GetByUsername(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.FindByUsername(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, userResponse(user))
}

func userResponse(user models.User) dto.UserResponse {
	return dto.UserResponse{
		BaseResponse: dto.OK(),
		UserID:       user.ID,
		Username:     user.Username,
		Nickname:     user.Nickname,
		RegisterTime: user.CreatedAt,
	}
}
