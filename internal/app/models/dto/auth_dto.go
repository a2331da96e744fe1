package dto

// RegisterRequest creates a login account for a pre-provisioned student or
// instructor email.
type RegisterRequest struct {
	Username        string `json:"username" binding:"required,max=150" example:"jdoe"`
	Email           string `json:"email" binding:"required,email" example:"COM1a2b@stu.uni.edu"`
	Password        string `json:"password" binding:"required,min=8" example:"s3cret-pass"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required,eqfield=Password" example:"s3cret-pass"`
}

// LoginRequest authenticates with the university email and password.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"COM1a2b@stu.uni.edu"`
	Password string `json:"password" binding:"required" example:"s3cret-pass"`
}

// TokenResponse carries the issued token pair. RoleType tells the client
// which dashboard to load.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn" example:"3600"`
	RoleType     string `json:"roleType" example:"STUDENT"`
}
