package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	authdomain "github.com/swiftprep/swiftprep/internal/auth/domain"
	authrepository "github.com/swiftprep/swiftprep/internal/auth/repository"
	authservice "github.com/swiftprep/swiftprep/internal/auth/service"
	catalogdomain "github.com/swiftprep/swiftprep/internal/catalog/domain"
	catalogrepository "github.com/swiftprep/swiftprep/internal/catalog/repository"
	catalogservice "github.com/swiftprep/swiftprep/internal/catalog/service"
	"github.com/swiftprep/swiftprep/internal/clock"
	"github.com/swiftprep/swiftprep/internal/config"
	discussiondomain "github.com/swiftprep/swiftprep/internal/discussion/domain"
	discussionrepository "github.com/swiftprep/swiftprep/internal/discussion/repository"
	discussionservice "github.com/swiftprep/swiftprep/internal/discussion/service"
	"github.com/swiftprep/swiftprep/internal/playback/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc        domain.Service
	auth       authdomain.Service
	catalog    catalogdomain.Repository
	discussion discussiondomain.Service
	node       *snowflake.Node
}

func setupPlayback(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&authdomain.User{},
		&authdomain.Session{},
		&catalogdomain.Mentor{},
		&catalogdomain.Video{},
		&discussiondomain.Comment{},
		&discussiondomain.Reply{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	log := zap.NewNop()
	cfg := config.Config{
		SessionTTL:        6 * time.Hour,
		Semester:          "5",
		VideoAssetBaseURL: "https://cdn.swiftprep.in/videos",
	}

	holder, err := config.NewCatalogConfigHolder()
	require.NoError(t, err)

	authRepo, sessionRepo := authrepository.New(db)
	authSvc := authservice.New(log, cfg, authRepo, sessionRepo, node, clk)

	catalogRepo := catalogrepository.New(db)
	catalogSvc := catalogservice.New(log, cfg, holder, catalogRepo)

	discussionSvc := discussionservice.New(log, discussionrepository.New(db), node, clk)

	return &fixture{
		svc:        New(log, catalogSvc, discussionSvc, authSvc, nil),
		auth:       authSvc,
		catalog:    catalogRepo,
		discussion: discussionSvc,
		node:       node,
	}
}

func (f *fixture) seedVideo(t *testing.T) *catalogdomain.Video {
	t.Helper()

	mentor := &catalogdomain.Mentor{ID: f.node.Generate(), Name: "Aditya"}
	require.NoError(t, f.catalog.CreateMentor(context.Background(), mentor))

	video := &catalogdomain.Video{
		ID:           f.node.Generate(),
		CompositeKey: "PES-CSE-5",
		Subject:      "Machine Intelligence",
		SubjectShort: "MI",
		Chapter:      1,
		AssetName:    "PES-CSE-5-MI-1",
		NotesFile:    "PES-CSE-5-MI-1.pdf",
		MentorID:     mentor.ID,
	}
	require.NoError(t, f.catalog.CreateVideo(context.Background(), video))
	return video
}

func (f *fixture) login(t *testing.T) *authdomain.User {
	t.Helper()

	result, err := f.auth.LoginWithGoogle(context.Background(), authdomain.GoogleLoginRequest{
		GoogleID: "google-sub-1",
		Username: "alice",
		DP:       "https://lh3.googleusercontent.com/alice",
	})
	require.NoError(t, err)
	return result.User
}

func TestWatchPageIncludesVideoAndThread(t *testing.T) {
	f := setupPlayback(t)
	ctx := context.Background()

	video := f.seedVideo(t)
	user := f.login(t)

	page, err := f.svc.WatchPage(ctx, video.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Machine Intelligence", page.Video.Subject)
	require.NotNil(t, page.Video.Mentor)
	assert.Equal(t, "Aditya", page.Video.Mentor.Name)
	assert.Empty(t, page.Comments)

	_, err = f.discussion.AddComment(ctx, discussiondomain.AddCommentRequest{
		VideoID: video.ID,
		Text:    "first",
		Author: discussiondomain.AuthorSnapshot{
			ID:       user.ID,
			Username: user.Username,
			DP:       user.DP,
		},
	})
	require.NoError(t, err)

	page, err = f.svc.WatchPage(ctx, video.ID.String())
	require.NoError(t, err)
	require.Len(t, page.Comments, 1)
	assert.Equal(t, "first", page.Comments[0].Text)
}

func TestWatchPageUnknownVideo(t *testing.T) {
	f := setupPlayback(t)

	_, err := f.svc.WatchPage(context.Background(), f.node.Generate().String())
	assert.ErrorIs(t, err, catalogdomain.ErrVideoNotFound)
}

func TestPlayPauseTracksLoggedDevices(t *testing.T) {
	f := setupPlayback(t)
	ctx := context.Background()

	user := f.login(t)

	devices, err := f.svc.Play(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, devices)

	devices, err = f.svc.Play(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, devices)

	devices, err = f.svc.Pause(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, devices)

	// pauses past zero never go negative
	_, err = f.svc.Pause(ctx, user.ID)
	require.NoError(t, err)
	devices, err = f.svc.Pause(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, devices)
}
