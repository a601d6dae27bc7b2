package models

// SignInRequest represents the request body for sign-in
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignOutRequest represents the request body for sign-out. Both ids must
// match the stored row for the deletion to happen.
type SignOutRequest struct {
	AuthTokenID string `json:"authTokenId" binding:"required"`
	UserID      string `json:"userId" binding:"required"`
}

// ResetPasswordRequest represents the request body for password-reset issuance
type ResetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}
