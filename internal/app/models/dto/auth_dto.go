package dto

import "github.com/nnrgconnect/backend/internal/app/models"

// LoginRequest represents login credentials. DeviceID identifies the
// session slot the login binds to.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	DeviceID string `json:"deviceId" binding:"required"`
}

// RegisterRequest represents a student registration request.
// Registration never yields a session; the student logs in separately
// once an admin has approved the account.
type RegisterRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	Name       string `json:"name" binding:"required"`
	RollNumber string `json:"rollNumber" binding:"required"`
	IDCardURL  string `json:"idCardUrl"`
}

// IDCardUploadResponse carries the stored location of an uploaded ID card
type IDCardUploadResponse struct {
	IDCardURL string `json:"idCardUrl"`
}

// RegisterResponse confirms a pending registration
type RegisterResponse struct {
	UserID         int64  `json:"userId"`
	Email          string `json:"email"`
	ApprovalStatus string `json:"approvalStatus" example:"PENDING"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int64  `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn,omitempty"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest clears the session slot for a device
type LogoutRequest struct {
	DeviceID     string `json:"deviceId" binding:"required"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// SessionResponse is the public view of a device session
type SessionResponse struct {
	UserID         int64  `json:"userId"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	RoleType       string `json:"roleType" example:"STUDENT"`
	ApprovalStatus string `json:"approvalStatus" example:"APPROVED"`
	RollNumber     string `json:"rollNumber,omitempty"`
}

// LoginResponse bundles the issued tokens with the established session
type LoginResponse struct {
	Token   TokenResponse   `json:"token"`
	Session SessionResponse `json:"session"`
}

// UserResponse represents basic account information with the password
// hash stripped
type UserResponse struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	RoleType       string `json:"roleType"`
	RollNumber     string `json:"rollNumber,omitempty"`
	IDCardURL      string `json:"idCardUrl,omitempty"`
	ApprovalStatus string `json:"approvalStatus"`
	CreatedAt      string `json:"createdAt"`
}

// NewUserResponse maps a user model to its public representation
func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		Name:           user.Name,
		RoleType:       string(user.RoleType),
		RollNumber:     user.RollNumber,
		IDCardURL:      user.IDCardURL,
		ApprovalStatus: string(user.ApprovalStatus),
		CreatedAt:      user.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
