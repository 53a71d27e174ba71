package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the payload of the session cookie issued after the host
// identity was verified.
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID    int64          `json:"uid"`
	FirstName string         `json:"first_name,omitempty"`
	Source    IdentitySource `json:"src"`
}

func (c *SessionClaims) HostUser() HostUser {
	return HostUser{ID: c.UserID, FirstName: c.FirstName, Source: c.Source}
}
