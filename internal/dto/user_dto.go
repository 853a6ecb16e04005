package dto

type SaveUserRequest struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	MobileNumber string `json:"mobileNumber"`
}

// UpdateUserRequest changes profile fields only. Passwords go through
// ChangePassword and roles through CreateAdminUser.
type UpdateUserRequest struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email" validate:"required,email"`
	MobileNumber string `json:"mobileNumber"`
}

type SaveDoctorRequest struct {
	Name           string `json:"name" validate:"required"`
	Specialization string `json:"specialization"`
	Email          string `json:"email" validate:"required,email"`
	PhoneNumber    string `json:"phoneNumber"`
	Password       string `json:"password" validate:"omitempty,min=8"`
	IsAvailable    *bool  `json:"isAvailable"`
}

type UserSettingsRequest struct {
	IsDarkMode bool    `json:"isDarkMode"`
	FontFamily string  `json:"fontFamily"`
	FontSize   float64 `json:"fontSize" validate:"omitempty,gt=0"`
	Language   string  `json:"language"`
}
