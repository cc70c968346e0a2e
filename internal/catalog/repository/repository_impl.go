package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/swiftprep/swiftprep/internal/catalog/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) FindByCompositeKey(ctx context.Context, key string) ([]domain.Video, error) {
	var videos []domain.Video
	err := r.db.WithContext(ctx).
		Preload("Mentor").
		Where("composite_key = ?", key).
		Order("subject ASC, chapter ASC").
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *repo) DistinctSubjects(ctx context.Context, key string) ([]string, error) {
	var subjects []string
	err := r.db.WithContext(ctx).
		Model(&domain.Video{}).
		Distinct("subject").
		Where("composite_key = ?", key).
		Order("subject ASC").
		Pluck("subject", &subjects).Error
	if err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *repo) FindByID(ctx context.Context, id snowflake.ID) (*domain.Video, error) {
	var video domain.Video
	err := r.db.WithContext(ctx).Preload("Mentor").Where("id = ?", id).First(&video).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrVideoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *repo) CreateVideo(ctx context.Context, video *domain.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *repo) CountVideos(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Video{}).Count(&count).Error
	return count, err
}

func (r *repo) FindMentorByName(ctx context.Context, name string) (*domain.Mentor, error) {
	var mentor domain.Mentor
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&mentor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrMentorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &mentor, nil
}

func (r *repo) CreateMentor(ctx context.Context, mentor *domain.Mentor) error {
	return r.db.WithContext(ctx).Create(mentor).Error
}
