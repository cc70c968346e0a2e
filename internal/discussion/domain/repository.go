package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	CreateComment(ctx context.Context, comment *Comment) error
	FindCommentByID(ctx context.Context, id snowflake.ID) (*Comment, error)
	DeleteComment(ctx context.Context, id snowflake.ID) error
	CreateReply(ctx context.Context, reply *Reply) error
	FindReplyByID(ctx context.Context, id snowflake.ID) (*Reply, error)
	DeleteReply(ctx context.Context, id snowflake.ID) error
	ListByVideo(ctx context.Context, videoID snowflake.ID) ([]Comment, error)
}
