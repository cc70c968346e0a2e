package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/swiftprep/swiftprep/internal/catalog/domain"
	"github.com/swiftprep/swiftprep/internal/config"
	"go.uber.org/zap"
)

type Service struct {
	log     *zap.Logger
	repo    domain.Repository
	catalog *config.CatalogConfigHolder

	semester     string
	videoBaseURL string
	notesBaseURL string
}

func New(log *zap.Logger, cfg config.Config, catalog *config.CatalogConfigHolder, repo domain.Repository) domain.Service {
	return &Service{
		log:          log.Named("catalog.service"),
		repo:         repo,
		catalog:      catalog,
		semester:     cfg.Semester,
		videoBaseURL: cfg.VideoAssetBaseURL,
		notesBaseURL: cfg.NotesAssetBaseURL,
	}
}

// CompositeKey renders the college-branch-semester selector videos are
// filed under, e.g. "PES-CSE-5".
func (s *Service) CompositeKey(college, branch string) string {
	return strings.ToUpper(strings.TrimSpace(college)) + "-" + strings.ToUpper(strings.TrimSpace(branch)) + "-" + s.semester
}

func (s *Service) ListBySelection(ctx context.Context, req domain.ListRequest) (*domain.ListResult, error) {
	college := strings.ToUpper(strings.TrimSpace(req.College))
	branch := strings.ToUpper(strings.TrimSpace(req.Branch))
	if !s.selectionKnown(college, branch) {
		return nil, domain.ErrInvalidSelection
	}

	key := s.CompositeKey(college, branch)

	videos, err := s.repo.FindByCompositeKey(ctx, key)
	if err != nil {
		return nil, err
	}
	subjects, err := s.repo.DistinctSubjects(ctx, key)
	if err != nil {
		return nil, err
	}

	views := make([]domain.VideoView, 0, len(videos))
	for i := range videos {
		views = append(views, s.videoView(&videos[i]))
	}

	return &domain.ListResult{
		CompositeKey: key,
		Subjects:     subjects,
		Videos:       views,
	}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.VideoView, error) {
	videoID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrVideoNotFound
	}

	video, err := s.repo.FindByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	view := s.videoView(video)
	return &view, nil
}

func (s *Service) selectionKnown(college, branch string) bool {
	cfg := s.catalog.Get()
	return contains(cfg.Colleges, college) && contains(cfg.Branches, branch)
}

func (s *Service) videoView(video *domain.Video) domain.VideoView {
	view := domain.VideoView{
		ID:           video.ID.String(),
		CompositeKey: video.CompositeKey,
		Subject:      video.Subject,
		SubjectShort: video.SubjectShort,
		Chapter:      video.Chapter,
		VideoURL:     assetURL(s.videoBaseURL, video.AssetName),
		NotesURL:     assetURL(s.notesBaseURL, video.NotesFile),
	}
	if video.Mentor != nil {
		view.Mentor = &domain.MentorView{
			ID:    video.Mentor.ID.String(),
			Name:  video.Mentor.Name,
			Photo: video.Mentor.Photo,
			Bio:   video.Mentor.Bio,
		}
	}
	return view
}

func assetURL(base, assetName string) string {
	if strings.TrimSpace(base) == "" || strings.TrimSpace(assetName) == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + assetName
}

func contains(values []string, want string) bool {
	for _, value := range values {
		if strings.EqualFold(value, want) {
			return true
		}
	}
	return false
}
