package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// WatchVideo serves the watch page payload: the video with its mentor
// plus the comment thread.
func (s *Server) WatchVideo(c *gin.Context) {
	page, err := s.playbackSvc.WatchPage(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// VideoAction fans out POST /view/:id/{comment,play,pause}. The three
// verbs share one wildcard route, see registerVideoRoutes.
func (s *Server) VideoAction(c *gin.Context) {
	switch c.Param("commentId") {
	case "comment":
		s.CreateComment(c)
	case "play":
		s.Play(c)
	case "pause":
		s.Pause(c)
	default:
		AbortWithError(c, ErrNotFound)
	}
}

// Play records that the viewer started playback on another device.
func (s *Server) Play(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	devices, err := s.playbackSvc.Play(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logged_devices": devices})
}

// Pause records that the viewer stopped playback on a device.
func (s *Server) Pause(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	devices, err := s.playbackSvc.Pause(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logged_devices": devices})
}
