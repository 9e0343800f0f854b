package auth

type CheckUserRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type CheckUserResponse struct {
	Exists bool `json:"exists"`
}

type LoginRequest struct {
	Phone string `json:"phone" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

type RegisterRequest struct {
	Fullname   string `json:"fullname" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	DOB        string `json:"dob" binding:"required"`
	BloodGroup string `json:"blood_group" binding:"required"`
	Address    string `json:"address"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	IsRegistered bool   `json:"is_registered"`
}
