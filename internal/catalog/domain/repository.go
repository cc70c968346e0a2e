package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	FindByCompositeKey(ctx context.Context, key string) ([]Video, error)
	DistinctSubjects(ctx context.Context, key string) ([]string, error)
	FindByID(ctx context.Context, id snowflake.ID) (*Video, error)
	CreateVideo(ctx context.Context, video *Video) error
	CountVideos(ctx context.Context) (int64, error)
	FindMentorByName(ctx context.Context, name string) (*Mentor, error)
	CreateMentor(ctx context.Context, mentor *Mentor) error
}
