package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the explicit sign-in context. It is created on sign-in, cleared
// on sign-out, and passed to every component that needs identity or the
// classroom bearer token. Nothing in the service keeps ambient auth state.
type Session struct {
	ID             string    `json:"id"`
	TeacherID      string    `json:"teacherId"`
	Email          string    `json:"email"`
	DisplayName    string    `json:"displayName"`
	ClassroomToken string    `json:"classroomToken,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	ExpiresAt      time.Time `json:"expiresAt"`
}

// SessionClaims are the JWT claims embedded in the session token.
type SessionClaims struct {
	SessionID string `json:"sid"`
	TeacherID string `json:"teacherId"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// SignInRequest is the sign-in exchange payload. The identity fields come
// from the upstream identity provider; the access token is the classroom
// collaborator bearer token captured during the popup flow.
type SignInRequest struct {
	TeacherID      string `json:"teacherId" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	DisplayName    string `json:"displayName"`
	ClassroomToken string `json:"classroomToken"`
}

// SignInResponse carries the issued session token.
type SignInResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
