package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swiftprep/swiftprep/internal/clock"
	"github.com/swiftprep/swiftprep/internal/discussion/domain"
	"github.com/swiftprep/swiftprep/internal/discussion/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupDiscussionService(t *testing.T) (domain.Service, *snowflake.Node, *clock.FakeClock) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Comment{}, &domain.Reply{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	svc := New(zap.NewNop(), repository.New(db), node, clk)
	return svc, node, clk
}

func author(id snowflake.ID, username string) domain.AuthorSnapshot {
	return domain.AuthorSnapshot{
		ID:       id,
		Username: username,
		DP:       "https://lh3.googleusercontent.com/" + username,
	}
}

func TestAddCommentAndThread(t *testing.T) {
	svc, node, clk := setupDiscussionService(t)
	ctx := context.Background()

	videoID := node.Generate()
	alice := author(node.Generate(), "alice")

	view, err := svc.AddComment(ctx, domain.AddCommentRequest{
		VideoID: videoID,
		Text:    "  great explanation  ",
		Author:  alice,
	})
	require.NoError(t, err)
	assert.Equal(t, "great explanation", view.Text)
	assert.Equal(t, "alice", view.Author.Username)
	assert.Equal(t, clk.Now(), view.Created)

	thread, err := svc.Thread(ctx, videoID)
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Equal(t, view.ID, thread[0].ID)
	assert.Empty(t, thread[0].Replies)
}

func TestAddCommentRejectsEmptyText(t *testing.T) {
	svc, node, _ := setupDiscussionService(t)

	_, err := svc.AddComment(context.Background(), domain.AddCommentRequest{
		VideoID: node.Generate(),
		Text:    "   ",
		Author:  author(node.Generate(), "alice"),
	})
	assert.ErrorIs(t, err, domain.ErrEmptyText)
}

func TestThreadOrdersCommentsAndReplies(t *testing.T) {
	svc, node, clk := setupDiscussionService(t)
	ctx := context.Background()

	videoID := node.Generate()
	alice := author(node.Generate(), "alice")
	bob := author(node.Generate(), "bob")

	first, err := svc.AddComment(ctx, domain.AddCommentRequest{VideoID: videoID, Text: "first", Author: alice})
	require.NoError(t, err)

	clk.Advance(time.Minute)
	second, err := svc.AddComment(ctx, domain.AddCommentRequest{VideoID: videoID, Text: "second", Author: bob})
	require.NoError(t, err)

	firstID, err := snowflake.ParseString(first.ID)
	require.NoError(t, err)

	clk.Advance(time.Minute)
	_, err = svc.AddReply(ctx, domain.AddReplyRequest{VideoID: videoID, CommentID: firstID, Text: "late reply", Author: bob})
	require.NoError(t, err)

	thread, err := svc.Thread(ctx, videoID)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, first.ID, thread[0].ID)
	assert.Equal(t, second.ID, thread[1].ID)
	require.Len(t, thread[0].Replies, 1)
	assert.Equal(t, "late reply", thread[0].Replies[0].Text)
}

func TestAuthorSnapshotIsImmutable(t *testing.T) {
	svc, node, clk := setupDiscussionService(t)
	ctx := context.Background()

	videoID := node.Generate()
	aliceID := node.Generate()

	_, err := svc.AddComment(ctx, domain.AddCommentRequest{
		VideoID: videoID,
		Text:    "signed alice",
		Author:  author(aliceID, "alice"),
	})
	require.NoError(t, err)

	// the same user posts again under a refreshed google profile; the
	// earlier comment keeps the name it was signed with
	clk.Advance(time.Minute)
	_, err = svc.AddComment(ctx, domain.AddCommentRequest{
		VideoID: videoID,
		Text:    "signed alice2",
		Author:  author(aliceID, "alice2"),
	})
	require.NoError(t, err)

	thread, err := svc.Thread(ctx, videoID)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, "alice", thread[0].Author.Username)
	assert.Equal(t, "alice2", thread[1].Author.Username)
}

func TestDeleteCommentRequiresAuthor(t *testing.T) {
	svc, node, _ := setupDiscussionService(t)
	ctx := context.Background()

	videoID := node.Generate()
	alice := author(node.Generate(), "alice")
	bob := author(node.Generate(), "bob")

	view, err := svc.AddComment(ctx, domain.AddCommentRequest{VideoID: videoID, Text: "mine", Author: alice})
	require.NoError(t, err)
	commentID, err := snowflake.ParseString(view.ID)
	require.NoError(t, err)

	err = svc.DeleteComment(ctx, domain.DeleteCommentRequest{VideoID: videoID, CommentID: commentID, ActorID: bob.ID})
	assert.ErrorIs(t, err, domain.ErrNotAuthor)

	err = svc.DeleteComment(ctx, domain.DeleteCommentRequest{VideoID: videoID, CommentID: commentID, ActorID: alice.ID})
	require.NoError(t, err)

	thread, err := svc.Thread(ctx, videoID)
	require.NoError(t, err)
	assert.Empty(t, thread)
}

func TestDeleteCommentRemovesReplies(t *testing.T) {
	svc, node, _ := setupDiscussionService(t)
	ctx := context.Background()

	videoID := node.Generate()
	alice := author(node.Generate(), "alice")
	bob := author(node.Generate(), "bob")

	view, err := svc.AddComment(ctx, domain.AddCommentRequest{VideoID: videoID, Text: "thread root", Author: alice})
	require.NoError(t, err)
	commentID, err := snowflake.ParseString(view.ID)
	require.NoError(t, err)

	reply, err := svc.AddReply(ctx, domain.AddReplyRequest{VideoID: videoID, CommentID: commentID, Text: "reply", Author: bob})
	require.NoError(t, err)
	replyID, err := snowflake.ParseString(reply.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteComment(ctx, domain.DeleteCommentRequest{VideoID: videoID, CommentID: commentID, ActorID: alice.ID}))

	err = svc.DeleteReply(ctx, domain.DeleteReplyRequest{VideoID: videoID, CommentID: commentID, ReplyID: replyID, ActorID: bob.ID})
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
}

func TestDeleteCommentWrongVideo(t *testing.T) {
	svc, node, _ := setupDiscussionService(t)
	ctx := context.Background()

	videoID := node.Generate()
	otherVideoID := node.Generate()
	alice := author(node.Generate(), "alice")

	view, err := svc.AddComment(ctx, domain.AddCommentRequest{VideoID: videoID, Text: "mine", Author: alice})
	require.NoError(t, err)
	commentID, err := snowflake.ParseString(view.ID)
	require.NoError(t, err)

	err = svc.DeleteComment(ctx, domain.DeleteCommentRequest{VideoID: otherVideoID, CommentID: commentID, ActorID: alice.ID})
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
}

func TestDeleteReplyRequiresAuthor(t *testing.T) {
	svc, node, _ := setupDiscussionService(t)
	ctx := context.Background()

	videoID := node.Generate()
	alice := author(node.Generate(), "alice")
	bob := author(node.Generate(), "bob")

	view, err := svc.AddComment(ctx, domain.AddCommentRequest{VideoID: videoID, Text: "root", Author: alice})
	require.NoError(t, err)
	commentID, err := snowflake.ParseString(view.ID)
	require.NoError(t, err)

	reply, err := svc.AddReply(ctx, domain.AddReplyRequest{VideoID: videoID, CommentID: commentID, Text: "reply", Author: bob})
	require.NoError(t, err)
	replyID, err := snowflake.ParseString(reply.ID)
	require.NoError(t, err)

	err = svc.DeleteReply(ctx, domain.DeleteReplyRequest{VideoID: videoID, CommentID: commentID, ReplyID: replyID, ActorID: alice.ID})
	assert.ErrorIs(t, err, domain.ErrNotAuthor)

	require.NoError(t, svc.DeleteReply(ctx, domain.DeleteReplyRequest{VideoID: videoID, CommentID: commentID, ReplyID: replyID, ActorID: bob.ID}))

	thread, err := svc.Thread(ctx, videoID)
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Empty(t, thread[0].Replies)
}

func TestAddReplyUnknownComment(t *testing.T) {
	svc, node, _ := setupDiscussionService(t)

	_, err := svc.AddReply(context.Background(), domain.AddReplyRequest{
		VideoID:   node.Generate(),
		CommentID: node.Generate(),
		Text:      "orphan",
		Author:    author(node.Generate(), "alice"),
	})
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
}
