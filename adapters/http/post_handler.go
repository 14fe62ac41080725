package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	postUC "github.com/devconnect/api/internal/application/usecase/post"
	"github.com/devconnect/api/internal/domain/post"
	"github.com/devconnect/api/pkg/logger"
)

type PostHandler struct {
	postUseCase *postUC.PostUseCase
	logger      logger.Logger
}

func NewPostHandler(uc *postUC.PostUseCase, log logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: uc,
		logger:      log,
	}
}

func (h *PostHandler) actorID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
		return uuid.Nil, false
	}
	return userID, true
}

// postID parses the :post_id path param; a malformed id answers the same
// 404 as an unknown one.
func (h *PostHandler) postID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("post_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Post not found"})
		return uuid.Nil, false
	}
	return id, true
}

// Create handles POST /api/posts.
func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := h.actorID(c)
	if !ok {
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadJSON(c)
		return
	}

	p, err := h.postUseCase.ExecuteCreate(c.Request.Context(), userID, req.Text)
	if err != nil {
		fallbackError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// ListAll handles GET /api/posts: every post, newest first.
func (h *PostHandler) ListAll(c *gin.Context) {
	posts, err := h.postUseCase.ExecuteListAll(c.Request.Context())
	if err != nil {
		fallbackError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// GetByID handles GET /api/posts/:post_id.
func (h *PostHandler) GetByID(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}

	p, err := h.postUseCase.ExecuteGetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Post not found"})
			return
		}
		fallbackError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /api/posts/:post_id. Only the author may delete.
func (h *PostHandler) Delete(c *gin.Context) {
	userID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.postID(c)
	if !ok {
		return
	}

	if err := h.postUseCase.ExecuteDelete(c.Request.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, post.ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": "Post not found"})
		case errors.Is(err, post.ErrNotOwner):
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "User not authorized"})
		default:
			fallbackError(c, h.logger, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Post removed"})
}

// Like handles PUT /api/posts/like/:post_id and answers the updated likes.
func (h *PostHandler) Like(c *gin.Context) {
	userID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.postID(c)
	if !ok {
		return
	}

	likes, err := h.postUseCase.ExecuteLike(c.Request.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, post.ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": "Post not found"})
		case errors.Is(err, post.ErrAlreadyLiked):
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Post already liked"})
		default:
			fallbackError(c, h.logger, err)
		}
		return
	}

	c.JSON(http.StatusOK, likes)
}

// Unlike handles PUT /api/posts/unlike/:post_id.
func (h *PostHandler) Unlike(c *gin.Context) {
	userID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.postID(c)
	if !ok {
		return
	}

	likes, err := h.postUseCase.ExecuteUnlike(c.Request.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, post.ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": "Post not found"})
		case errors.Is(err, post.ErrNotLiked):
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Post has not yet been liked"})
		default:
			fallbackError(c, h.logger, err)
		}
		return
	}

	c.JSON(http.StatusOK, likes)
}

// AddComment handles POST /api/posts/comment/:post_id and answers the
// updated comments.
func (h *PostHandler) AddComment(c *gin.Context) {
	userID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.postID(c)
	if !ok {
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadJSON(c)
		return
	}

	comments, err := h.postUseCase.ExecuteAddComment(c.Request.Context(), id, userID, req.Text)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Post not found"})
			return
		}
		fallbackError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// RemoveComment handles DELETE /api/posts/comment/:post_id/:comment_id.
// Only the comment's author may remove it.
func (h *PostHandler) RemoveComment(c *gin.Context) {
	userID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.postID(c)
	if !ok {
		return
	}

	commentID, err := uuid.Parse(c.Param("comment_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Comment does not exist"})
		return
	}

	comments, err := h.postUseCase.ExecuteRemoveComment(c.Request.Context(), id, commentID, userID)
	if err != nil {
		switch {
		case errors.Is(err, post.ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": "Post not found"})
		case errors.Is(err, post.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": "Comment does not exist"})
		case errors.Is(err, post.ErrNotOwner):
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "User not authorized"})
		default:
			fallbackError(c, h.logger, err)
		}
		return
	}

	c.JSON(http.StatusOK, comments)
}
