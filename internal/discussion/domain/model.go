// Package domain contains core types for video discussion threads.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Comment is a top-level post on a video. The author's username and
// avatar are copied in at creation time and never updated, so a thread
// shows what the author looked like when they posted.
type Comment struct {
	ID             snowflake.ID `gorm:"primaryKey"`
	VideoID        snowflake.ID `gorm:"column:video_id;not null;index"`
	Text           string       `gorm:"type:text;not null"`
	AuthorID       snowflake.ID `gorm:"column:author_id;not null;index"`
	AuthorUsername string       `gorm:"column:author_username;type:text;not null"`
	AuthorDP       string       `gorm:"column:author_dp;type:text;not null"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	Replies        []Reply      `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`
}

func (Comment) TableName() string { return "comments" }

// Reply is a nested post under a comment, with the same author snapshot.
type Reply struct {
	ID             snowflake.ID `gorm:"primaryKey"`
	CommentID      snowflake.ID `gorm:"column:comment_id;not null;index"`
	Text           string       `gorm:"type:text;not null"`
	AuthorID       snowflake.ID `gorm:"column:author_id;not null;index"`
	AuthorUsername string       `gorm:"column:author_username;type:text;not null"`
	AuthorDP       string       `gorm:"column:author_dp;type:text;not null"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Reply) TableName() string { return "replies" }
