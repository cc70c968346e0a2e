package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/swiftprep/swiftprep/internal/auth/domain"
	catalogdomain "github.com/swiftprep/swiftprep/internal/catalog/domain"
	discussiondomain "github.com/swiftprep/swiftprep/internal/discussion/domain"
	"github.com/swiftprep/swiftprep/internal/observability/metrics"
	"github.com/swiftprep/swiftprep/internal/playback/domain"
	"go.uber.org/zap"
)

type Service struct {
	log        *zap.Logger
	catalog    catalogdomain.Service
	discussion discussiondomain.Service
	auth       authdomain.Service
	metrics    *metrics.Metrics
}

func New(log *zap.Logger, catalog catalogdomain.Service, discussion discussiondomain.Service, auth authdomain.Service, m *metrics.Metrics) domain.Service {
	return &Service{
		log:        log.Named("playback.service"),
		catalog:    catalog,
		discussion: discussion,
		auth:       auth,
		metrics:    m,
	}
}

func (s *Service) WatchPage(ctx context.Context, videoID string) (*domain.WatchPage, error) {
	video, err := s.catalog.Get(ctx, videoID)
	if err != nil {
		return nil, err
	}

	id, err := snowflake.ParseString(video.ID)
	if err != nil {
		return nil, catalogdomain.ErrVideoNotFound
	}

	comments, err := s.discussion.Thread(ctx, id)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordVideoView(video.CompositeKey)

	return &domain.WatchPage{
		Video:    *video,
		Comments: comments,
	}, nil
}

// Play records that the user started playback on another device.
func (s *Service) Play(ctx context.Context, userID snowflake.ID) (int, error) {
	return s.adjustDevices(ctx, userID, 1)
}

// Pause records that the user stopped playback on a device.
func (s *Service) Pause(ctx context.Context, userID snowflake.ID) (int, error) {
	return s.adjustDevices(ctx, userID, -1)
}

func (s *Service) adjustDevices(ctx context.Context, userID snowflake.ID, delta int) (int, error) {
	if err := s.auth.AdjustLoggedDevices(ctx, userID, delta); err != nil {
		return 0, err
	}
	user, err := s.auth.UserByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.LoggedDevices, nil
}
