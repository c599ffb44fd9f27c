package handler

// --- Request / Response types ---

type roleRefRequest struct {
	ID *int64 `json:"id"`
}

type registerRequest struct {
	Email    string           `json:"email"    validate:"required,email"`
	Password string           `json:"password" validate:"required,min=8"`
	Phone    string           `json:"phone,omitempty"`
	Locale   string           `json:"locale,omitempty"`
	Roles    []roleRefRequest `json:"roles,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type passwordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type passwordResetConfirmRequest struct {
	Token       string `json:"token"        validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type messageResponse struct {
	Message string `json:"message"`
}
