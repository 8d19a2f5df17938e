package httpdto

import (
	"account-service/internal/domain/user"
)

// LoginRequest is used for POST /login
type LoginRequest struct {
	Email string `json:"email"`
	ID    string `json:"id,omitempty"`
}

// LoginResponse is returned after a login or registration
type LoginResponse struct {
	ID string `json:"id"`
}

// UpdateProfileRequest is used for POST /profile when sent as JSON. Multipart
// requests carry the same fields as form values, with settings JSON-encoded.
type UpdateProfileRequest struct {
	Email    string        `json:"email"`
	Username string        `json:"username,omitempty"`
	AboutMe  string        `json:"aboutMe,omitempty"`
	Gender   string        `json:"gender,omitempty"`
	Age      float64       `json:"age,omitempty"`
	Settings user.Settings `json:"settings,omitempty"`
}

// ToProfileUpdate converts the request into a domain update
func (r UpdateProfileRequest) ToProfileUpdate(img *user.Image) user.ProfileUpdate {
	return user.ProfileUpdate{
		Username: r.Username,
		AboutMe:  r.AboutMe,
		Gender:   r.Gender,
		Age:      r.Age,
		Settings: r.Settings,
		Image:    img,
	}
}
