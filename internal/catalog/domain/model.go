// Package domain contains core types for the lecture catalog.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Mentor is the instructor a lecture video belongs to.
type Mentor struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	Name      string       `gorm:"type:text;not null;uniqueIndex"`
	Photo     string       `gorm:"type:text"`
	Bio       string       `gorm:"type:text"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Mentor) TableName() string { return "mentors" }

// Video is a single lecture chapter addressed by the college-branch-semester
// composite key, e.g. "PES-CSE-5".
type Video struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	CompositeKey string       `gorm:"column:composite_key;type:text;not null;index"`
	Subject      string       `gorm:"type:text;not null"`
	SubjectShort string       `gorm:"column:subject_short;type:text;not null"`
	Chapter      int          `gorm:"not null"`
	AssetName    string       `gorm:"column:asset_name;type:text;not null"`
	NotesFile    string       `gorm:"column:notes_file;type:text;not null"`
	MentorID     snowflake.ID `gorm:"column:mentor_id;not null;index"`
	Mentor       *Mentor      `gorm:"foreignKey:MentorID"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Video) TableName() string { return "videos" }
