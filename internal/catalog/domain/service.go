package domain

import (
	"context"
	"errors"
)

type Service interface {
	ListBySelection(ctx context.Context, req ListRequest) (*ListResult, error)
	Get(ctx context.Context, id string) (*VideoView, error)
	CompositeKey(college, branch string) string
}

type ListRequest struct {
	College string `json:"college" form:"college"`
	Branch  string `json:"branch" form:"branch"`
}

type ListResult struct {
	CompositeKey string      `json:"composite_key"`
	Subjects     []string    `json:"subjects"`
	Videos       []VideoView `json:"videos"`
}

type VideoView struct {
	ID           string      `json:"id"`
	CompositeKey string      `json:"composite_key"`
	Subject      string      `json:"subject"`
	SubjectShort string      `json:"subject_short"`
	Chapter      int         `json:"chapter"`
	VideoURL     string      `json:"video_url"`
	NotesURL     string      `json:"notes_url,omitempty"`
	Mentor       *MentorView `json:"mentor,omitempty"`
}

type MentorView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Photo string `json:"photo,omitempty"`
	Bio   string `json:"bio,omitempty"`
}

var (
	ErrInvalidSelection = errors.New("unknown college or branch")
	ErrVideoNotFound    = errors.New("video not found")
	ErrMentorNotFound   = errors.New("mentor not found")
)
