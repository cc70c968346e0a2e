// Package domain contains core types for the watch page.
package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/swiftprep/swiftprep/internal/catalog/domain"
	discussiondomain "github.com/swiftprep/swiftprep/internal/discussion/domain"
)

type Service interface {
	WatchPage(ctx context.Context, videoID string) (*WatchPage, error)
	Play(ctx context.Context, userID snowflake.ID) (int, error)
	Pause(ctx context.Context, userID snowflake.ID) (int, error)
}

// WatchPage is everything the player view needs: the video with its
// mentor, plus the full discussion thread.
type WatchPage struct {
	Video    catalogdomain.VideoView        `json:"video"`
	Comments []discussiondomain.CommentView `json:"comments"`
}
