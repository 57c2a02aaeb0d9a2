// Package types defines the post and comment payloads exchanged with the openboard API.
package types

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// CommentStatus is the client-side moderation state attached to a comment.
// The backing resource has no native status field, so the zero value on the
// wire is treated as StatusPending.
type CommentStatus string

const (
	// StatusPending indicates a comment awaiting moderation.
	StatusPending CommentStatus = "pending"
	// StatusApproved indicates a comment accepted by a moderator.
	StatusApproved CommentStatus = "approved"
	// StatusRejected indicates a comment hidden by a moderator.
	StatusRejected CommentStatus = "rejected"
)

// Valid reports whether s is one of the known moderation states.
func (s CommentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

const (
	// MaxCommentBodyLen is the entry cap on comment body length, in runes.
	MaxCommentBodyLen = 200
	// MinPostTitleLen is the minimum accepted post title length.
	MinPostTitleLen = 5
)

// Post is the public post resource payload.
type Post struct {
	UserID    int    `json:"userId"`
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Completed bool   `json:"completed"`
}

// Comment is the public comment resource payload. Status is a client-side
// extension; comments arriving without one default to pending.
type Comment struct {
	PostID int           `json:"postId"`
	ID     int           `json:"id"`
	Name   string        `json:"name"`
	Email  string        `json:"email"`
	Body   string        `json:"body"`
	Status CommentStatus `json:"status,omitempty"`
}

// NewPost is the body for POST /posts. The server assigns the ID.
type NewPost struct {
	UserID    int    `json:"userId"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Completed bool   `json:"completed"`
}

// Validate checks entry constraints for a new post.
func (p NewPost) Validate() error {
	if utf8.RuneCountInString(strings.TrimSpace(p.Title)) < MinPostTitleLen {
		return fmt.Errorf("post title must be at least %d characters", MinPostTitleLen)
	}
	if strings.TrimSpace(p.Body) == "" {
		return fmt.Errorf("post body is required")
	}
	return nil
}

// PostPatch is a partial post update. Nil fields are left untouched.
type PostPatch struct {
	Title     *string `json:"title,omitempty"`
	Body      *string `json:"body,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// NewComment is the body for POST /comments. The server assigns the ID.
type NewComment struct {
	PostID int           `json:"postId"`
	Name   string        `json:"name"`
	Email  string        `json:"email"`
	Body   string        `json:"body"`
	Status CommentStatus `json:"status,omitempty"`
}

// Validate checks entry constraints for a new comment.
func (c NewComment) Validate() error {
	if c.PostID <= 0 {
		return fmt.Errorf("comment post id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("comment author name is required")
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(c.Email)); err != nil {
		return fmt.Errorf("comment author email %q is not a valid address", c.Email)
	}
	body := strings.TrimSpace(c.Body)
	if body == "" {
		return fmt.Errorf("comment body is required")
	}
	if utf8.RuneCountInString(body) > MaxCommentBodyLen {
		return fmt.Errorf("comment body exceeds %d characters", MaxCommentBodyLen)
	}
	return nil
}

// CommentPatch is a partial comment update. Nil fields are left untouched.
type CommentPatch struct {
	Name   *string        `json:"name,omitempty"`
	Email  *string        `json:"email,omitempty"`
	Body   *string        `json:"body,omitempty"`
	Status *CommentStatus `json:"status,omitempty"`
}

// Apply merges the patch into a comment and returns the result.
func (p CommentPatch) Apply(c Comment) Comment {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Body != nil {
		c.Body = *p.Body
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	return c
}
