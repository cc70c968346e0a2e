package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/swiftprep/swiftprep/internal/discussion/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) CreateComment(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *repo) FindCommentByID(ctx context.Context, id snowflake.ID) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.db.WithContext(ctx).
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", id).
		First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes the comment and its replies in one transaction
// so a thread never keeps orphaned replies.
func (r *repo) DeleteComment(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", id).Delete(&domain.Reply{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&domain.Comment{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrCommentNotFound
		}
		return nil
	})
}

func (r *repo) CreateReply(ctx context.Context, reply *domain.Reply) error {
	return r.db.WithContext(ctx).Create(reply).Error
}

func (r *repo) FindReplyByID(ctx context.Context, id snowflake.ID) (*domain.Reply, error) {
	var reply domain.Reply
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&reply).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrReplyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

func (r *repo) DeleteReply(ctx context.Context, id snowflake.ID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Reply{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrReplyNotFound
	}
	return nil
}

func (r *repo) ListByVideo(ctx context.Context, videoID snowflake.ID) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := r.db.WithContext(ctx).
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("video_id = ?", videoID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
