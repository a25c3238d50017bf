package dto

// ── auth ──

// RegisterRequest POST /auth/register
type RegisterRequest struct {
	Name                 string `json:"name"                  form:"name"                  binding:"required,max=255"`
	Email                string `json:"email"                 form:"email"                 binding:"required,email,max=255"`
	Telephone            string `json:"telephone"             form:"telephone"             binding:"required,max=20"`
	Password             string `json:"password"              form:"password"              binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation"`
	DeviceName           string `json:"device_name"           form:"device_name"           binding:"required,max=255"`
}

// LoginRequest POST /auth/login and POST /auth/token
type LoginRequest struct {
	Email      string `json:"email"       form:"email"       binding:"required,email"`
	Password   string `json:"password"    form:"password"    binding:"required"`
	DeviceName string `json:"device_name" form:"device_name" binding:"required,max=255"`
}

// RequestMeta is caller information recorded in audit logs and admin mail.
type RequestMeta struct {
	IP        string
	UserAgent string
}
