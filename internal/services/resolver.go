package services

import (
	"errors"

	"github.com/campushub/backend/internal/models"
	"github.com/campushub/backend/internal/repositories"
	"gorm.io/gorm"
)

const previewLength = 50

// ResolvedTarget is the outcome of dereferencing an EntityRef. AuthorID is
// nil when the entity has no author (deleted account on a post).
type ResolvedTarget struct {
	Object   models.TargetObject
	AuthorID *uint
}

// TargetResolver dereferences entity references by dispatching on kind.
// Resolve is total: a missing row yields (nil, nil), never an error. Whether
// that absence is a client error (toggling a reaction) or an expected
// lifecycle event (reading a stale notification) is the caller's call.
type TargetResolver struct {
	posts    repositories.PostRepository
	comments repositories.CommentRepository
}

// NewTargetResolver creates a resolver over the two entity stores.
func NewTargetResolver(posts repositories.PostRepository, comments repositories.CommentRepository) *TargetResolver {
	return &TargetResolver{posts: posts, comments: comments}
}

func (r *TargetResolver) Resolve(ref models.EntityRef) (*ResolvedTarget, error) {
	switch ref.Kind {
	case models.KindPost:
		post, err := r.posts.GetPostByID(ref.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return &ResolvedTarget{
			Object: models.TargetObject{
				Type:  string(models.KindPost),
				ID:    post.ID,
				Title: post.Title,
			},
			AuthorID: post.AuthorID,
		}, nil

	case models.KindComment:
		comment, err := r.comments.GetCommentByID(ref.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
		authorID := comment.AuthorID
		return &ResolvedTarget{
			Object: models.TargetObject{
				Type:           string(models.KindComment),
				ID:             comment.ID,
				ContentPreview: preview(comment.Content),
			},
			AuthorID: &authorID,
		}, nil

	default:
		return nil, nil
	}
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLength {
		return content
	}
	return string(runes[:previewLength])
}
