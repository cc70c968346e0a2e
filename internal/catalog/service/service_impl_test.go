package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swiftprep/swiftprep/internal/catalog/domain"
	"github.com/swiftprep/swiftprep/internal/catalog/repository"
	"github.com/swiftprep/swiftprep/internal/config"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupCatalogService(t *testing.T) (domain.Service, domain.Repository, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Mentor{}, &domain.Video{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	holder, err := config.NewCatalogConfigHolder()
	require.NoError(t, err)

	cfg := config.Config{
		Semester:          "5",
		VideoAssetBaseURL: "https://cdn.swiftprep.in/videos",
		NotesAssetBaseURL: "https://cdn.swiftprep.in/notes",
	}

	repo := repository.New(db)
	svc := New(zap.NewNop(), cfg, holder, repo)
	return svc, repo, node
}

func seedVideo(t *testing.T, repo domain.Repository, node *snowflake.Node, mentor *domain.Mentor, key, subject, short string, chapter int) *domain.Video {
	t.Helper()

	video := &domain.Video{
		ID:           node.Generate(),
		CompositeKey: key,
		Subject:      subject,
		SubjectShort: short,
		Chapter:      chapter,
		AssetName:    key + "-" + short + "-" + strconv.Itoa(chapter),
		NotesFile:    key + "-" + short + "-" + strconv.Itoa(chapter) + ".pdf",
		MentorID:     mentor.ID,
	}
	require.NoError(t, repo.CreateVideo(context.Background(), video))
	return video
}

func seedMentor(t *testing.T, repo domain.Repository, node *snowflake.Node, name string) *domain.Mentor {
	t.Helper()

	mentor := &domain.Mentor{
		ID:   node.Generate(),
		Name: name,
	}
	require.NoError(t, repo.CreateMentor(context.Background(), mentor))
	return mentor
}

func TestCompositeKeyNormalizesSelection(t *testing.T) {
	svc, _, _ := setupCatalogService(t)

	assert.Equal(t, "PES-CSE-5", svc.CompositeKey("pes", "cse"))
	assert.Equal(t, "RVCE-ECE-5", svc.CompositeKey(" RVCE ", " ece"))
}

func TestListBySelectionReturnsVideosAndSubjects(t *testing.T) {
	svc, repo, node := setupCatalogService(t)
	ctx := context.Background()

	mentor := seedMentor(t, repo, node, "Aditya")
	seedVideo(t, repo, node, mentor, "PES-CSE-5", "Machine Intelligence", "MI", 2)
	seedVideo(t, repo, node, mentor, "PES-CSE-5", "Machine Intelligence", "MI", 1)
	seedVideo(t, repo, node, mentor, "PES-CSE-5", "Computer Networks", "CN", 1)
	seedVideo(t, repo, node, mentor, "PES-ECE-5", "Computer Organization", "CO", 1)

	result, err := svc.ListBySelection(ctx, domain.ListRequest{College: "PES", Branch: "CSE"})
	require.NoError(t, err)

	assert.Equal(t, "PES-CSE-5", result.CompositeKey)
	assert.Equal(t, []string{"Computer Networks", "Machine Intelligence"}, result.Subjects)
	require.Len(t, result.Videos, 3)

	// ordered by subject, then chapter
	assert.Equal(t, "Computer Networks", result.Videos[0].Subject)
	assert.Equal(t, 1, result.Videos[1].Chapter)
	assert.Equal(t, 2, result.Videos[2].Chapter)

	first := result.Videos[0]
	assert.Equal(t, "https://cdn.swiftprep.in/videos/"+"PES-CSE-5-CN-1", first.VideoURL)
	assert.Equal(t, "https://cdn.swiftprep.in/notes/"+"PES-CSE-5-CN-1.pdf", first.NotesURL)
	require.NotNil(t, first.Mentor)
	assert.Equal(t, "Aditya", first.Mentor.Name)
}

func TestListBySelectionIsCaseInsensitive(t *testing.T) {
	svc, repo, node := setupCatalogService(t)

	mentor := seedMentor(t, repo, node, "Aditya")
	seedVideo(t, repo, node, mentor, "PES-CSE-5", "Machine Intelligence", "MI", 1)

	result, err := svc.ListBySelection(context.Background(), domain.ListRequest{College: "pes", Branch: "cse"})
	require.NoError(t, err)
	assert.Len(t, result.Videos, 1)
}

func TestListBySelectionEmptyBranchStillResolves(t *testing.T) {
	svc, _, _ := setupCatalogService(t)

	result, err := svc.ListBySelection(context.Background(), domain.ListRequest{College: "PES", Branch: "EEE"})
	require.NoError(t, err)
	assert.Empty(t, result.Videos)
	assert.Empty(t, result.Subjects)
}

func TestListBySelectionRejectsUnknownSelection(t *testing.T) {
	svc, _, _ := setupCatalogService(t)

	_, err := svc.ListBySelection(context.Background(), domain.ListRequest{College: "MIT", Branch: "CSE"})
	assert.ErrorIs(t, err, domain.ErrInvalidSelection)

	_, err = svc.ListBySelection(context.Background(), domain.ListRequest{College: "PES", Branch: "CIVIL"})
	assert.ErrorIs(t, err, domain.ErrInvalidSelection)
}

func TestGetReturnsVideoWithMentor(t *testing.T) {
	svc, repo, node := setupCatalogService(t)

	mentor := seedMentor(t, repo, node, "Aditya")
	video := seedVideo(t, repo, node, mentor, "PES-CSE-5", "Machine Intelligence", "MI", 1)

	view, err := svc.Get(context.Background(), video.ID.String())
	require.NoError(t, err)
	assert.Equal(t, video.ID.String(), view.ID)
	assert.Equal(t, "Machine Intelligence", view.Subject)
	require.NotNil(t, view.Mentor)
	assert.Equal(t, "Aditya", view.Mentor.Name)
}

func TestNotesURLUsesNotesFile(t *testing.T) {
	svc, repo, node := setupCatalogService(t)

	mentor := seedMentor(t, repo, node, "Aditya")
	video := &domain.Video{
		ID:           node.Generate(),
		CompositeKey: "PES-CSE-5",
		Subject:      "Machine Intelligence",
		SubjectShort: "MI",
		Chapter:      1,
		AssetName:    "PES-CSE-5-MI-1",
		NotesFile:    "mi-unit1-handout.pdf",
		MentorID:     mentor.ID,
	}
	require.NoError(t, repo.CreateVideo(context.Background(), video))

	view, err := svc.Get(context.Background(), video.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.swiftprep.in/videos/PES-CSE-5-MI-1", view.VideoURL)
	assert.Equal(t, "https://cdn.swiftprep.in/notes/mi-unit1-handout.pdf", view.NotesURL)
}

func TestGetUnknownVideo(t *testing.T) {
	svc, _, node := setupCatalogService(t)

	_, err := svc.Get(context.Background(), node.Generate().String())
	assert.ErrorIs(t, err, domain.ErrVideoNotFound)

	_, err = svc.Get(context.Background(), "not-a-snowflake")
	assert.ErrorIs(t, err, domain.ErrVideoNotFound)
}
