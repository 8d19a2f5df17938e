package user

import (
	"encoding/base64"
)

// Image is an uploaded profile picture, buffered fully in memory.
type Image struct {
	ContentType string
	Data        []byte
}

// DataURI encodes the image as data:<mime>;base64,<payload>.
func (i Image) DataURI() string {
	return "data:" + i.ContentType + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// ProfileUpdate carries the optional fields of a profile update. Zero values
// mean "not provided": an empty string or a zero age can never clear a stored
// value.
type ProfileUpdate struct {
	Username string
	AboutMe  string
	Gender   string
	Age      float64
	Settings Settings
	Image    *Image
}

// ApplyProfileUpdate merges p into u. Each scalar takes the incoming value if
// set, else the stored value if set, else the field default. Settings are
// replaced wholesale when provided; the profile image only when a file was
// uploaded.
func (u *User) ApplyProfileUpdate(p ProfileUpdate) {
	u.Username = firstSet(p.Username, u.Username, DefaultUsername)
	u.Gender = firstSet(p.Gender, u.Gender, DefaultGender)

	switch {
	case p.AboutMe != "":
		aboutMe := p.AboutMe
		u.AboutMe = &aboutMe
	case u.AboutMe != nil && *u.AboutMe != "":
	default:
		u.AboutMe = nil
	}

	switch {
	case p.Age != 0:
		age := p.Age
		u.Age = &age
	case u.Age != nil && *u.Age != 0:
	default:
		u.Age = nil
	}

	if p.Settings != nil {
		u.Settings = p.Settings
	}

	if p.Image != nil {
		uri := p.Image.DataURI()
		u.ProfileImage = &uri
	}
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
