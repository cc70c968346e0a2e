package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	AddComment(ctx context.Context, req AddCommentRequest) (*CommentView, error)
	DeleteComment(ctx context.Context, req DeleteCommentRequest) error
	AddReply(ctx context.Context, req AddReplyRequest) (*ReplyView, error)
	DeleteReply(ctx context.Context, req DeleteReplyRequest) error
	Thread(ctx context.Context, videoID snowflake.ID) ([]CommentView, error)
}

// AuthorSnapshot is the author identity captured when a post is created.
type AuthorSnapshot struct {
	ID       snowflake.ID
	Username string
	DP       string
}

type AddCommentRequest struct {
	VideoID snowflake.ID
	Text    string
	Author  AuthorSnapshot
}

type DeleteCommentRequest struct {
	VideoID   snowflake.ID
	CommentID snowflake.ID
	ActorID   snowflake.ID
}

type AddReplyRequest struct {
	VideoID   snowflake.ID
	CommentID snowflake.ID
	Text      string
	Author    AuthorSnapshot
}

type DeleteReplyRequest struct {
	VideoID   snowflake.ID
	CommentID snowflake.ID
	ReplyID   snowflake.ID
	ActorID   snowflake.ID
}

type CommentView struct {
	ID      string      `json:"id"`
	VideoID string      `json:"video_id"`
	Text    string      `json:"text"`
	Author  AuthorView  `json:"author"`
	Created time.Time   `json:"created"`
	Replies []ReplyView `json:"replies"`
}

type ReplyView struct {
	ID      string     `json:"id"`
	Text    string     `json:"text"`
	Author  AuthorView `json:"author"`
	Created time.Time  `json:"created"`
}

type AuthorView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	DP       string `json:"dp"`
}

var (
	ErrEmptyText       = errors.New("post text is empty")
	ErrCommentNotFound = errors.New("comment not found")
	ErrReplyNotFound   = errors.New("reply not found")
	ErrNotAuthor       = errors.New("only the author can delete a post")
)
