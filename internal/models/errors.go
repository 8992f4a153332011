package models

import "errors"

// Domain errors
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrPostNotFound  = errors.New("post not found")
	ErrNotPostAuthor = errors.New("only the author can delete this post")
)
