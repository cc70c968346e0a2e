package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/swiftprep/swiftprep/internal/catalog/domain"
	catalogrepo "github.com/swiftprep/swiftprep/internal/catalog/repository"
	"gorm.io/gorm"
)

const defaultMentorName = "Aditya"

type sampleVideo struct {
	CompositeKey string
	Subject      string
	SubjectShort string
	Chapter      int
	AssetName    string
	NotesFile    string
}

var sampleVideos = []sampleVideo{
	{CompositeKey: "PES-CSE-5", Subject: "Machine Intelligence", SubjectShort: "MI", Chapter: 1, AssetName: "PES-CSE-5-MI-1", NotesFile: "PES-CSE-5-MI-1.pdf"},
	{CompositeKey: "PES-CSE-5", Subject: "Machine Intelligence", SubjectShort: "MI", Chapter: 2, AssetName: "PES-CSE-5-MI-2", NotesFile: "PES-CSE-5-MI-2.pdf"},
	{CompositeKey: "PES-ECE-5", Subject: "Computer Organization", SubjectShort: "CO", Chapter: 1, AssetName: "PES-ECE-5-CO-1", NotesFile: "PES-ECE-5-CO-1.pdf"},
}

// EnsureSampleCatalog seeds the starter mentor and lecture videos so a
// fresh install has browsable content. It is a no-op once any video exists.
func EnsureSampleCatalog(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := catalogrepo.New(tx)

		count, err := repo.CountVideos(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		mentor, err := ensureMentor(ctx, repo, node, defaultMentorName)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		for _, sample := range sampleVideos {
			video := catalogdomain.Video{
				ID:           node.Generate(),
				CompositeKey: sample.CompositeKey,
				Subject:      sample.Subject,
				SubjectShort: sample.SubjectShort,
				Chapter:      sample.Chapter,
				AssetName:    sample.AssetName,
				NotesFile:    sample.NotesFile,
				MentorID:     mentor.ID,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := repo.CreateVideo(ctx, &video); err != nil {
				return err
			}
		}
		return nil
	})
}

func ensureMentor(ctx context.Context, repo catalogdomain.Repository, node *snowflake.Node, name string) (*catalogdomain.Mentor, error) {
	mentor, err := repo.FindMentorByName(ctx, name)
	if err == nil {
		return mentor, nil
	}
	if !errors.Is(err, catalogdomain.ErrMentorNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	created := &catalogdomain.Mentor{
		ID:        node.Generate(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.CreateMentor(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}
