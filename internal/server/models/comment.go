package models

import "time"

type Comment struct {
	ID        int64
	UserID    int64
	ProductID int64
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CommentWithAuthor is the thread view: a comment joined with its author's
// public fields.
type CommentWithAuthor struct {
	Comment
	AuthorName    string
	AuthorSurname string
	AuthorAvatar  *string
}
