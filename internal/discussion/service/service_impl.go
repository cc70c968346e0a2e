package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/swiftprep/swiftprep/internal/clock"
	"github.com/swiftprep/swiftprep/internal/discussion/domain"
	"go.uber.org/zap"
)

type Service struct {
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
	clock clock.Clock
}

func New(log *zap.Logger, repo domain.Repository, genID *snowflake.Node, clk clock.Clock) domain.Service {
	return &Service{
		log:   log.Named("discussion.service"),
		repo:  repo,
		genID: genID,
		clock: clk,
	}
}

func (s *Service) AddComment(ctx context.Context, req domain.AddCommentRequest) (*domain.CommentView, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, domain.ErrEmptyText
	}

	comment := &domain.Comment{
		ID:             s.genID.Generate(),
		VideoID:        req.VideoID,
		Text:           text,
		AuthorID:       req.Author.ID,
		AuthorUsername: req.Author.Username,
		AuthorDP:       req.Author.DP,
		CreatedAt:      s.clock.Now(),
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	view := commentView(comment)
	return &view, nil
}

func (s *Service) DeleteComment(ctx context.Context, req domain.DeleteCommentRequest) error {
	comment, err := s.repo.FindCommentByID(ctx, req.CommentID)
	if err != nil {
		return err
	}
	if comment.VideoID != req.VideoID {
		return domain.ErrCommentNotFound
	}
	if comment.AuthorID != req.ActorID {
		return domain.ErrNotAuthor
	}

	return s.repo.DeleteComment(ctx, comment.ID)
}

func (s *Service) AddReply(ctx context.Context, req domain.AddReplyRequest) (*domain.ReplyView, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, domain.ErrEmptyText
	}

	comment, err := s.repo.FindCommentByID(ctx, req.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.VideoID != req.VideoID {
		return nil, domain.ErrCommentNotFound
	}

	reply := &domain.Reply{
		ID:             s.genID.Generate(),
		CommentID:      comment.ID,
		Text:           text,
		AuthorID:       req.Author.ID,
		AuthorUsername: req.Author.Username,
		AuthorDP:       req.Author.DP,
		CreatedAt:      s.clock.Now(),
	}
	if err := s.repo.CreateReply(ctx, reply); err != nil {
		return nil, err
	}

	view := replyView(reply)
	return &view, nil
}

func (s *Service) DeleteReply(ctx context.Context, req domain.DeleteReplyRequest) error {
	comment, err := s.repo.FindCommentByID(ctx, req.CommentID)
	if err != nil {
		return err
	}
	if comment.VideoID != req.VideoID {
		return domain.ErrCommentNotFound
	}

	reply, err := s.repo.FindReplyByID(ctx, req.ReplyID)
	if err != nil {
		return err
	}
	if reply.CommentID != comment.ID {
		return domain.ErrReplyNotFound
	}
	if reply.AuthorID != req.ActorID {
		return domain.ErrNotAuthor
	}

	return s.repo.DeleteReply(ctx, reply.ID)
}

func (s *Service) Thread(ctx context.Context, videoID snowflake.ID) ([]domain.CommentView, error) {
	comments, err := s.repo.ListByVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	views := make([]domain.CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, commentView(&comments[i]))
	}
	return views, nil
}

func commentView(comment *domain.Comment) domain.CommentView {
	replies := make([]domain.ReplyView, 0, len(comment.Replies))
	for i := range comment.Replies {
		replies = append(replies, replyView(&comment.Replies[i]))
	}
	return domain.CommentView{
		ID:      comment.ID.String(),
		VideoID: comment.VideoID.String(),
		Text:    comment.Text,
		Author: domain.AuthorView{
			ID:       comment.AuthorID.String(),
			Username: comment.AuthorUsername,
			DP:       comment.AuthorDP,
		},
		Created: comment.CreatedAt,
		Replies: replies,
	}
}

func replyView(reply *domain.Reply) domain.ReplyView {
	return domain.ReplyView{
		ID:   reply.ID.String(),
		Text: reply.Text,
		Author: domain.AuthorView{
			ID:       reply.AuthorID.String(),
			Username: reply.AuthorUsername,
			DP:       reply.AuthorDP,
		},
		Created: reply.CreatedAt,
	}
}
