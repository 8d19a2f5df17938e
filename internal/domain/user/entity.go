package user

import (
	"time"
)

const (
	DefaultUsername = "Anonymous"
	DefaultGender   = "Unknown"
)

// Settings is an application-defined document stored as-is.
type Settings map[string]any

// User represents the users table / collection. A user is created with only
// ID and Email set; profile fields are filled in by the first profile update.
type User struct {
	ID           string    `gorm:"type:text;primaryKey" bson:"_id" json:"id"`
	Email        string    `gorm:"type:text;not null;uniqueIndex:idx_users_email" bson:"email" json:"email"`
	Username     string    `gorm:"type:text" bson:"username,omitempty" json:"username,omitempty"`
	AboutMe      *string   `gorm:"type:text" bson:"aboutMe" json:"aboutMe"`
	Gender       string    `gorm:"type:text" bson:"gender,omitempty" json:"gender,omitempty"`
	Age          *float64  `bson:"age" json:"age"`
	Settings     Settings  `gorm:"type:jsonb;serializer:json" bson:"settings,omitempty" json:"settings,omitempty"`
	ProfileImage *string   `gorm:"type:text" bson:"profileImage" json:"profileImage"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Clone returns a copy that shares no mutable state with u.
func (u User) Clone() User {
	out := u
	if u.AboutMe != nil {
		v := *u.AboutMe
		out.AboutMe = &v
	}
	if u.Age != nil {
		v := *u.Age
		out.Age = &v
	}
	if u.ProfileImage != nil {
		v := *u.ProfileImage
		out.ProfileImage = &v
	}
	if u.Settings != nil {
		out.Settings = make(Settings, len(u.Settings))
		for k, v := range u.Settings {
			out.Settings[k] = v
		}
	}
	return out
}
