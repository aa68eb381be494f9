package domain

import (
	"errors"
	"strings"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidToken = errors.New("invalid authorization token")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("no user was found")
var ErrPostNotFound = errors.New("post not found")

// Field constraint messages, matching the texts persisted clients rely on.
const (
	MsgNameLength       = "Name must be between 5 and 50 characters long"
	MsgNameTaken        = "Name already in use"
	MsgEmailFormat      = "Please enter a valid email address"
	MsgEmailTaken       = "Email address already in use"
	MsgCredentialLength = "Password hash must be exactly 97 characters long"
	MsgTitleLength      = "Title must be between 5 and 100 characters"
	MsgContentLength    = "Content must be between 5 and 1000 characters"
)

// ValidationError enumerates every violated field constraint of a request.
// No record is created or updated when one is returned.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid fields: " + strings.Join(e.Fields, "; ")
}
