package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/linkvault/internal/common"
)

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type createBookmarkRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	Link        string  `json:"link" binding:"required"`
}

func (s *Server) handleSignUp(c *gin.Context) {

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user data"})
		return
	}

	ctx := c.Request.Context()
	s.logger.Info(ctx, "Signup request")

	token, err := s.auth.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"message": "email is already in use"})
		case errors.Is(err, common.ErrorValidation):
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user data"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "something went wrong"})
		}
		return
	}

	s.logger.Info(ctx, "Registered", "email", req.Email)
	c.JSON(http.StatusCreated, token)
}

func (s *Server) handleSignIn(c *gin.Context) {

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid email or password"})
		return
	}

	token, err := s.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// every signin failure maps to the same response on purpose
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, token)
}

func (s *Server) handleListBookmarks(c *gin.Context) {

	userID := c.GetString(contextUserIDKey)

	list, err := s.bookmarks.ListByUser(c.Request.Context(), userID)
	if err != nil {
		s.logger.Error(c.Request.Context(), "listing bookmarks failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "something went wrong"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (s *Server) handleCreateBookmark(c *gin.Context) {

	var req createBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid bookmark data"})
		return
	}

	userID := c.GetString(contextUserIDKey)

	bookmark, err := s.bookmarks.Create(c.Request.Context(), userID, req.Title, req.Link, req.Description)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid bookmark data"})
			return
		}
		s.logger.Error(c.Request.Context(), "creating bookmark failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "something went wrong"})
		return
	}

	c.JSON(http.StatusCreated, bookmark)
}

func (s *Server) handleDeleteBookmark(c *gin.Context) {

	userID := c.GetString(contextUserIDKey)

	err := s.bookmarks.Delete(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "bookmark not found"})
			return
		}
		s.logger.Error(c.Request.Context(), "deleting bookmark failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "something went wrong"})
		return
	}

	c.Status(http.StatusNoContent)
}
