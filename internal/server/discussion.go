package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	authdomain "github.com/swiftprep/swiftprep/internal/auth/domain"
	catalogdomain "github.com/swiftprep/swiftprep/internal/catalog/domain"
	discussiondomain "github.com/swiftprep/swiftprep/internal/discussion/domain"
	"go.uber.org/zap"
)

type postBody struct {
	Text string `json:"text" form:"text"`
}

// CommentThread returns just the discussion thread for a video.
func (s *Server) CommentThread(c *gin.Context) {
	video, err := s.catalogSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	videoID, err := parseVideoID(video.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	comments, err := s.discussionSvc.Thread(c.Request.Context(), videoID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"video_id": video.ID,
		"comments": comments,
	})
}

// CreateComment posts a top-level comment on a video.
func (s *Server) CreateComment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	videoID, err := parseVideoID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var body postBody
	if err := c.ShouldBind(&body); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if !s.allowPost(c, user) {
		return
	}

	view, err := s.discussionSvc.AddComment(c.Request.Context(), discussiondomain.AddCommentRequest{
		VideoID: videoID,
		Text:    body.Text,
		Author:  authorSnapshot(user),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordCommentCreated()
	s.respondOrRedirect(c, http.StatusCreated, videoID, view)
}

// CreateReply posts a reply under an existing comment.
func (s *Server) CreateReply(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	videoID, err := parseVideoID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	commentID, err := parseCommentID(c.Param("commentId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var body postBody
	if err := c.ShouldBind(&body); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if !s.allowPost(c, user) {
		return
	}

	view, err := s.discussionSvc.AddReply(c.Request.Context(), discussiondomain.AddReplyRequest{
		VideoID:   videoID,
		CommentID: commentID,
		Text:      body.Text,
		Author:    authorSnapshot(user),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordReplyCreated()
	s.respondOrRedirect(c, http.StatusCreated, videoID, view)
}

// DeleteComment removes a comment and its replies. Only the author may
// delete it.
func (s *Server) DeleteComment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	videoID, err := parseVideoID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	commentID, err := parseCommentID(c.Param("commentId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.discussionSvc.DeleteComment(c.Request.Context(), discussiondomain.DeleteCommentRequest{
		VideoID:   videoID,
		CommentID: commentID,
		ActorID:   user.ID,
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordCommentDeleted()
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// DeleteReply removes a single reply. Only the author may delete it.
func (s *Server) DeleteReply(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	videoID, err := parseVideoID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	commentID, err := parseCommentID(c.Param("commentId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	replyID, err := snowflake.ParseString(strings.TrimSpace(c.Param("replyId")))
	if err != nil {
		AbortWithError(c, discussiondomain.ErrReplyNotFound)
		return
	}

	if err := s.discussionSvc.DeleteReply(c.Request.Context(), discussiondomain.DeleteReplyRequest{
		VideoID:   videoID,
		CommentID: commentID,
		ReplyID:   replyID,
		ActorID:   user.ID,
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordReplyDeleted()
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// allowPost applies the per-user comment rate limit. Returns false after
// aborting the request when the bucket is dry. Redis being down fails
// open so a cache outage never blocks the discussion board.
func (s *Server) allowPost(c *gin.Context, user *authdomain.User) bool {
	if !s.commentLimiter.Enabled() {
		return true
	}

	allowed, err := s.commentLimiter.AllowUser(c.Request.Context(), user.ID.String())
	if err != nil {
		s.log.Warn("comment rate limit check failed", zap.Error(err))
		return true
	}
	if !allowed {
		s.obsMetrics.RecordRateLimitDenied("discussion")
		AbortWithError(c, ErrTooManyRequests)
		return false
	}
	return true
}

// respondOrRedirect sends JSON to API callers and bounces plain form
// posts back to the watch page.
func (s *Server) respondOrRedirect(c *gin.Context, status int, videoID snowflake.ID, payload any) {
	if wantsJSON(c) {
		c.JSON(status, payload)
		return
	}
	c.Redirect(http.StatusFound, "/view/"+videoID.String()+"/comment")
}

func wantsJSON(c *gin.Context) bool {
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		return true
	}
	return strings.Contains(c.ContentType(), "application/json")
}

func authorSnapshot(user *authdomain.User) discussiondomain.AuthorSnapshot {
	return discussiondomain.AuthorSnapshot{
		ID:       user.ID,
		Username: user.Username,
		DP:       user.DP,
	}
}

func parseVideoID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, catalogdomain.ErrVideoNotFound
	}
	return id, nil
}

func parseCommentID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, discussiondomain.ErrCommentNotFound
	}
	return id, nil
}
