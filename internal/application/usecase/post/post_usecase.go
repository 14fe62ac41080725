package post

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devconnect/api/internal/application/service"
	"github.com/devconnect/api/internal/domain/post"
	"github.com/devconnect/api/internal/domain/user"
	"github.com/devconnect/api/pkg/apperror"
	"github.com/devconnect/api/pkg/logger"
)

type PostUseCase struct {
	postRepo post.Repository
	userRepo user.Repository
	events   service.EventPublisher
	logger   logger.Logger
}

func NewPostUseCase(pRepo post.Repository, uRepo user.Repository, events service.EventPublisher, log logger.Logger) *PostUseCase {
	return &PostUseCase{
		postRepo: pRepo,
		userRepo: uRepo,
		events:   events,
		logger:   log,
	}
}

// ExecuteCreate writes a new post carrying a snapshot of the author's
// current name and avatar. The snapshot is not kept in sync with later
// account edits.
func (uc *PostUseCase) ExecuteCreate(ctx context.Context, userID uuid.UUID, text string) (*post.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperror.NewValidation("Text is required")
	}

	author, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	newPost := &post.Post{
		ID:        uuid.New(),
		UserID:    author.ID,
		Name:      author.Name,
		Avatar:    author.Avatar,
		Text:      text,
		Likes:     []post.Like{},
		Comments:  []post.Comment{},
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.postRepo.Save(ctx, newPost); err != nil {
		return nil, err
	}

	go func() {
		err := uc.events.PublishPostEvent(context.Background(), service.PostEvent{
			EventType: service.PostEventCreated,
			PostID:    newPost.ID,
			UserID:    newPost.UserID,
		})
		if err != nil {
			uc.logger.Warn("Failed to publish 'created' event", zap.String("post_id", newPost.ID.String()), zap.Error(err))
		}
	}()

	return newPost, nil
}

func (uc *PostUseCase) ExecuteListAll(ctx context.Context) ([]*post.Post, error) {
	return uc.postRepo.ListAll(ctx)
}

func (uc *PostUseCase) ExecuteGetByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	return uc.postRepo.FindByID(ctx, id)
}

func (uc *PostUseCase) ExecuteDelete(ctx context.Context, postID, actorID uuid.UUID) error {
	p, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		return err
	}

	if p.UserID != actorID {
		return post.ErrNotOwner
	}

	if err := uc.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	go func() {
		err := uc.events.PublishPostEvent(context.Background(), service.PostEvent{
			EventType: service.PostEventDeleted,
			PostID:    postID,
			UserID:    actorID,
		})
		if err != nil {
			uc.logger.Warn("Failed to publish 'deleted' event", zap.String("post_id", postID.String()), zap.Error(err))
		}
	}()

	return nil
}

// ExecuteLike appends the caller to the head of the likes list. Two
// concurrent likes race at the document level; last write wins.
func (uc *PostUseCase) ExecuteLike(ctx context.Context, postID, userID uuid.UUID) ([]post.Like, error) {
	p, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := p.Like(userID); err != nil {
		return nil, err
	}

	if err := uc.postRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p.Likes, nil
}

func (uc *PostUseCase) ExecuteUnlike(ctx context.Context, postID, userID uuid.UUID) ([]post.Like, error) {
	p, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := p.Unlike(userID); err != nil {
		return nil, err
	}

	if err := uc.postRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p.Likes, nil
}

func (uc *PostUseCase) ExecuteAddComment(ctx context.Context, postID, userID uuid.UUID, text string) ([]post.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperror.NewValidation("Text is required")
	}

	author, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	p, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	p.AddComment(post.Comment{
		User:   author.ID,
		Name:   author.Name,
		Avatar: author.Avatar,
		Text:   text,
	})

	if err := uc.postRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p.Comments, nil
}

func (uc *PostUseCase) ExecuteRemoveComment(ctx context.Context, postID, commentID, actorID uuid.UUID) ([]post.Comment, error) {
	p, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := p.RemoveComment(commentID, actorID); err != nil {
		return nil, err
	}

	if err := uc.postRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p.Comments, nil
}
