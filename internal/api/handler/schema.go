package handler

import "github.com/myapp/catalog-api/internal/core/domain"

// errorResponse mirrors the envelope rendered by the central error handler.
// It exists for the API docs.
type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// --- Auth ---

type registerRequest struct {
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name"  validate:"required"`
	Email     string  `json:"email"      validate:"required,email"`
	Password  string  `json:"password"   validate:"required,min=6"`
	Phone     *string `json:"phone"      validate:"omitempty,min=8"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type checkEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type authResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    *domain.Account `json:"user"`
}

type checkEmailResponse struct {
	Exists bool `json:"exists"`
}

type profileResponse struct {
	User *domain.Account `json:"user"`
}

// --- Catalog ---

type categoryRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
}

type productRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
	CategoryID  *int64 `json:"category_id" validate:"omitempty,gt=0"`
}

type categoryResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	Data    *domain.Category `json:"data"`
}

type categoryListResponse struct {
	Success bool              `json:"success"`
	Data    []domain.Category `json:"data"`
}

type productResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    *domain.Product `json:"data"`
}

type productListResponse struct {
	Success bool             `json:"success"`
	Data    []domain.Product `json:"data"`
}

type categoryOptionsResponse struct {
	Success bool                    `json:"success"`
	Data    []domain.CategoryOption `json:"data"`
}

type countResponse struct {
	Count int64 `json:"count"`
}
