package domain

import "time"

type User struct {
	ID        string
	Email     string
	FullName  string
	CreatedAt time.Time
}

// DisplayName is what outward-facing surfaces (order messages) call the user.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}
