package handlers

import (
	"net/http"

	"github.com/campushub/backend/internal/models"
	"github.com/campushub/backend/internal/repositories"
	"github.com/campushub/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles comments and replies under posts. Creating a
// comment notifies the post's author; creating a reply notifies the parent
// comment's author.
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
	userRepository    repositories.UserRepository
	notifier          *services.Notifier
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	commentRepo repositories.CommentRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	notifier *services.Notifier,
) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
		userRepository:    userRepo,
		notifier:          notifier,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/posts/:post_id/comments", h.ListComments)
	g.POST("/posts/:post_id/comments", h.CreateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// ListComments returns a post's comments newest first.
func (h *CommentHandler) ListComments(c echo.Context) error {
	postID, err := paramUint(c, "post_id")
	if err != nil {
		return err
	}
	if _, err := h.postRepository.GetPostByID(postID); err != nil {
		return domainError(err)
	}

	comments, total, err := h.commentRepository.ListCommentsByPost(postID, queryInt(c, "page", 1), queryInt(c, "limit", 20))
	if err != nil {
		return domainError(err)
	}

	views := make([]models.CommentView, len(comments))
	for i := range comments {
		views[i] = h.buildView(&comments[i])
	}
	return c.JSON(http.StatusOK, echo.Map{
		"comments": views,
		"total":    total,
	})
}

// CreateComment appends a comment (or reply) to a post and emits the
// corresponding notification as a best-effort follow-up.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	postID, err := paramUint(c, "post_id")
	if err != nil {
		return err
	}
	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		return domainError(err)
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var parent *models.Comment
	if req.ParentID != nil {
		parent, err = h.commentRepository.GetCommentByID(*req.ParentID)
		if err != nil {
			return domainError(err)
		}
		if parent.PostID != postID {
			return echo.NewHTTPError(http.StatusBadRequest, "Parent comment belongs to another post")
		}
	}

	comment := &models.Comment{
		PostID:      postID,
		AuthorID:    userID,
		Content:     req.Content,
		IsAnonymous: req.IsAnonymous,
		ParentID:    req.ParentID,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return domainError(err)
	}

	ctx := c.Request().Context()
	if parent != nil {
		h.notifier.NotifyComment(ctx, userID, comment, parent.AuthorID, models.NotifReply)
	} else if post.AuthorID != nil {
		h.notifier.NotifyComment(ctx, userID, comment, *post.AuthorID, models.NotifComment)
	}

	return c.JSON(http.StatusCreated, h.buildView(comment))
}

// DeleteComment removes a comment. Only its author may delete it.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}
	comment, err := h.commentRepository.GetCommentByID(id)
	if err != nil {
		return domainError(err)
	}
	if comment.AuthorID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "Not the author")
	}
	if err := h.commentRepository.DeleteComment(id); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CommentHandler) buildView(comment *models.Comment) models.CommentView {
	view := models.CommentView{Comment: *comment, Author: models.AnonymousAuthor()}
	if !comment.IsAnonymous {
		if author, err := h.userRepository.GetUserByID(comment.AuthorID); err == nil {
			view.Author = author.ToCompact()
		}
	}
	view.RepliesCount, _ = h.commentRepository.RepliesCount(comment.ID)
	return view
}
