package post

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrAlreadyLiked    = errors.New("post already liked")
	ErrNotLiked        = errors.New("post has not yet been liked")
	ErrCommentNotFound = errors.New("comment does not exist")
	ErrNotOwner        = errors.New("user not authorized")
)

type Like struct {
	User uuid.UUID `json:"user"`
}

// Comment snapshots the author's name and avatar at creation time. The copy
// goes stale if the author later edits their account; that is accepted.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	User      uuid.UUID `json:"user"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type Post struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Text      string    `json:"text"`
	Likes     []Like    `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
}

// Like records a like for userID at the head of the list. A user can hold at
// most one like per post.
func (p *Post) Like(userID uuid.UUID) error {
	for _, l := range p.Likes {
		if l.User == userID {
			return ErrAlreadyLiked
		}
	}
	p.Likes = append([]Like{{User: userID}}, p.Likes...)
	return nil
}

func (p *Post) Unlike(userID uuid.UUID) error {
	for i, l := range p.Likes {
		if l.User == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return nil
		}
	}
	return ErrNotLiked
}

// AddComment inserts the comment at the head so the list stays
// most-recent-first.
func (p *Post) AddComment(c Comment) Comment {
	c.ID = uuid.New()
	c.CreatedAt = time.Now().UTC()
	p.Comments = append([]Comment{c}, p.Comments...)
	return c
}

// RemoveComment deletes the comment with the given id if actorID wrote it.
func (p *Post) RemoveComment(commentID, actorID uuid.UUID) error {
	for i, c := range p.Comments {
		if c.ID == commentID {
			if c.User != actorID {
				return ErrNotOwner
			}
			p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
			return nil
		}
	}
	return ErrCommentNotFound
}

type Repository interface {
	Save(ctx context.Context, p *Post) error
	// Update replaces the likes and comments documents (last write wins).
	Update(ctx context.Context, p *Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*Post, error)
	ListAll(ctx context.Context) ([]*Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
