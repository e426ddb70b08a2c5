package models

import "fmt"

// EntityKind names a reactable entity type.
type EntityKind string

const (
	KindPost    EntityKind = "post"
	KindComment EntityKind = "comment"
)

// Valid reports whether k is a known entity kind.
func (k EntityKind) Valid() bool {
	return k == KindPost || k == KindComment
}

// EntityRef is a typed pointer to a Post or a Comment. It is embedded into
// actions and notifications rather than stored on its own. The link is weak:
// the referenced row may be deleted out from under it, which orphans the
// referrer but is never an error in itself.
type EntityRef struct {
	Kind EntityKind `json:"kind"`
	ID   uint       `json:"id"`
}

func (r EntityRef) String() string {
	return fmt.Sprintf("%s/%d", r.Kind, r.ID)
}

// PostRef builds a reference to a post.
func PostRef(id uint) EntityRef { return EntityRef{Kind: KindPost, ID: id} }

// CommentRef builds a reference to a comment.
func CommentRef(id uint) EntityRef { return EntityRef{Kind: KindComment, ID: id} }

// TargetObject is the resolved, client-facing form of an EntityRef. A nil
// *TargetObject in a serialized notification means the reference is absent or
// orphaned.
type TargetObject struct {
	Type           string `json:"type"`
	ID             uint   `json:"id"`
	Title          string `json:"title,omitempty"`
	ContentPreview string `json:"content_preview,omitempty"`
}
