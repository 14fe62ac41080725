package post

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnect/api/internal/application/service"
	"github.com/devconnect/api/internal/domain/post"
	"github.com/devconnect/api/internal/domain/user"
	"github.com/devconnect/api/pkg/apperror"
	"github.com/devconnect/api/pkg/logger"
)

type fakePostRepo struct {
	posts map[uuid.UUID]*post.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[uuid.UUID]*post.Post)}
}

func (r *fakePostRepo) Save(_ context.Context, p *post.Post) error {
	cp := *p
	r.posts[p.ID] = &cp
	return nil
}

func (r *fakePostRepo) Update(_ context.Context, p *post.Post) error {
	if _, ok := r.posts[p.ID]; !ok {
		return post.ErrPostNotFound
	}
	cp := *p
	r.posts[p.ID] = &cp
	return nil
}

func (r *fakePostRepo) FindByID(_ context.Context, id uuid.UUID) (*post.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, post.ErrPostNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePostRepo) ListAll(_ context.Context) ([]*post.Post, error) {
	out := make([]*post.Post, 0, len(r.posts))
	for _, p := range r.posts {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakePostRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.posts[id]; !ok {
		return post.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, _ string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

type chanPublisher struct {
	postEvents chan service.PostEvent
}

func (p *chanPublisher) PublishUserEvent(_ context.Context, _ service.UserEvent) error { return nil }

func (p *chanPublisher) PublishPostEvent(_ context.Context, e service.PostEvent) error {
	p.postEvents <- e
	return nil
}

func waitPostEvent(t *testing.T, p *chanPublisher) service.PostEvent {
	t.Helper()
	select {
	case e := <-p.postEvents:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for post event")
		return service.PostEvent{}
	}
}

func newTestUseCase(t *testing.T) (*PostUseCase, *fakePostRepo, *chanPublisher, *user.User) {
	t.Helper()
	postRepo := newFakePostRepo()
	author := &user.User{
		ID:     uuid.New(),
		Name:   "Alice",
		Avatar: "https://www.gravatar.com/avatar/alice",
	}
	userRepo := &fakeUserRepo{users: map[uuid.UUID]*user.User{author.ID: author}}
	events := &chanPublisher{postEvents: make(chan service.PostEvent, 8)}
	uc := NewPostUseCase(postRepo, userRepo, events, logger.NewNop())
	return uc, postRepo, events, author
}

func TestExecuteCreate_SnapshotsAuthor(t *testing.T) {
	uc, _, events, author := newTestUseCase(t)

	p, err := uc.ExecuteCreate(context.Background(), author.ID, "hello world")
	require.NoError(t, err)

	assert.Equal(t, author.ID, p.UserID)
	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, author.Avatar, p.Avatar)
	assert.Empty(t, p.Likes)
	assert.Empty(t, p.Comments)

	e := waitPostEvent(t, events)
	assert.Equal(t, service.PostEventCreated, e.EventType)
	assert.Equal(t, p.ID, e.PostID)
}

func TestExecuteCreate_EmptyText(t *testing.T) {
	uc, _, _, author := newTestUseCase(t)

	_, err := uc.ExecuteCreate(context.Background(), author.ID, "   ")

	var vErr *apperror.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"Text is required"}, vErr.Messages)
}

func TestExecuteCreate_UnknownAuthor(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)

	_, err := uc.ExecuteCreate(context.Background(), uuid.New(), "hello")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestExecuteDelete_OnlyAuthor(t *testing.T) {
	uc, _, events, author := newTestUseCase(t)

	p, err := uc.ExecuteCreate(context.Background(), author.ID, "mine")
	require.NoError(t, err)
	waitPostEvent(t, events)

	err = uc.ExecuteDelete(context.Background(), p.ID, uuid.New())
	assert.ErrorIs(t, err, post.ErrNotOwner)

	require.NoError(t, uc.ExecuteDelete(context.Background(), p.ID, author.ID))
	deleted := waitPostEvent(t, events)
	assert.Equal(t, service.PostEventDeleted, deleted.EventType)

	all, err := uc.ExecuteListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestExecuteLikeUnlike(t *testing.T) {
	uc, _, events, author := newTestUseCase(t)

	p, err := uc.ExecuteCreate(context.Background(), author.ID, "likeable")
	require.NoError(t, err)
	waitPostEvent(t, events)

	likes, err := uc.ExecuteLike(context.Background(), p.ID, author.ID)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, author.ID, likes[0].User)

	_, err = uc.ExecuteLike(context.Background(), p.ID, author.ID)
	assert.ErrorIs(t, err, post.ErrAlreadyLiked)

	likes, err = uc.ExecuteUnlike(context.Background(), p.ID, author.ID)
	require.NoError(t, err)
	assert.Empty(t, likes)

	_, err = uc.ExecuteUnlike(context.Background(), p.ID, author.ID)
	assert.ErrorIs(t, err, post.ErrNotLiked)
}

func TestExecuteAddComment_SnapshotsAuthor(t *testing.T) {
	uc, _, events, author := newTestUseCase(t)

	p, err := uc.ExecuteCreate(context.Background(), author.ID, "discuss")
	require.NoError(t, err)
	waitPostEvent(t, events)

	comments, err := uc.ExecuteAddComment(context.Background(), p.ID, author.ID, "nice post")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Alice", comments[0].Name)
	assert.Equal(t, author.Avatar, comments[0].Avatar)
	assert.Equal(t, "nice post", comments[0].Text)
}

func TestExecuteRemoveComment(t *testing.T) {
	uc, _, events, author := newTestUseCase(t)

	p, err := uc.ExecuteCreate(context.Background(), author.ID, "discuss")
	require.NoError(t, err)
	waitPostEvent(t, events)

	comments, err := uc.ExecuteAddComment(context.Background(), p.ID, author.ID, "first")
	require.NoError(t, err)
	commentID := comments[0].ID

	_, err = uc.ExecuteRemoveComment(context.Background(), p.ID, commentID, uuid.New())
	assert.ErrorIs(t, err, post.ErrNotOwner)

	remaining, err := uc.ExecuteRemoveComment(context.Background(), p.ID, commentID, author.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	_, err = uc.ExecuteRemoveComment(context.Background(), p.ID, commentID, author.ID)
	assert.ErrorIs(t, err, post.ErrCommentNotFound)
}

func TestExecuteGetByID_NotFound(t *testing.T) {
	uc, _, _, _ := newTestUseCase(t)

	_, err := uc.ExecuteGetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, post.ErrPostNotFound)
}
