package dto

// SignUpRequest starts the passwordless flow: the server responds by issuing
// a confirmation code out-of-band.
type SignUpRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Email    string `json:"email" binding:"required,max=254"`
}

// SignUpResponse echoes the accepted identity; the code is never in the body.
type SignUpResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenRequest exchanges a confirmation code for an access token.
type TokenRequest struct {
	Username         string `json:"username" binding:"required"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
