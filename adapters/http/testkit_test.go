package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/devconnect/api/internal/application/service"
	authUC "github.com/devconnect/api/internal/application/usecase/auth"
	postUC "github.com/devconnect/api/internal/application/usecase/post"
	profileUC "github.com/devconnect/api/internal/application/usecase/profile"
	"github.com/devconnect/api/internal/domain/post"
	"github.com/devconnect/api/internal/domain/profile"
	"github.com/devconnect/api/internal/domain/user"
	"github.com/devconnect/api/pkg/auth"
	"github.com/devconnect/api/pkg/logger"
)

// In-memory repositories backing the handler tests. They mirror the
// persistence contracts closely enough to exercise every route without a
// database.

type memUserRepo struct {
	byEmail map[string]*user.User
	byID    map[uuid.UUID]*user.User

	// cascade targets, wired in newTestServer
	profiles *memProfileRepo
	posts    *memPostRepo
}

func (r *memUserRepo) Create(_ context.Context, u *user.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return user.ErrEmailTaken
	}
	cp := *u
	r.byEmail[u.Email] = &cp
	r.byID[u.ID] = &cp
	return nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	u, ok := r.byID[id]
	if !ok {
		return user.ErrUserNotFound
	}
	for postID, p := range r.posts.posts {
		if p.UserID == id {
			delete(r.posts.posts, postID)
		}
	}
	delete(r.profiles.profiles, id)
	delete(r.byEmail, u.Email)
	delete(r.byID, id)
	return nil
}

type memProfileRepo struct {
	profiles map[uuid.UUID]*profile.Profile
	users    *memUserRepo
}

func (r *memProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*profile.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	cp := *p
	if u, ok := r.users.byID[userID]; ok {
		cp.Owner.Name = u.Name
		cp.Owner.Avatar = u.Avatar
	}
	return &cp, nil
}

func (r *memProfileRepo) GetAll(ctx context.Context) ([]*profile.Profile, error) {
	out := make([]*profile.Profile, 0, len(r.profiles))
	for userID := range r.profiles {
		p, err := r.GetByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r *memProfileRepo) Upsert(_ context.Context, p *profile.Profile) error {
	cp := *p
	if existing, ok := r.profiles[p.Owner.ID]; ok {
		cp.Experience = existing.Experience
		cp.Education = existing.Education
	}
	r.profiles[p.Owner.ID] = &cp
	return nil
}

func (r *memProfileRepo) UpdateExperience(_ context.Context, userID uuid.UUID, entries []profile.Experience) error {
	p, ok := r.profiles[userID]
	if !ok {
		return profile.ErrProfileNotFound
	}
	p.Experience = entries
	return nil
}

func (r *memProfileRepo) UpdateEducation(_ context.Context, userID uuid.UUID, entries []profile.Education) error {
	p, ok := r.profiles[userID]
	if !ok {
		return profile.ErrProfileNotFound
	}
	p.Education = entries
	return nil
}

type memPostRepo struct {
	posts map[uuid.UUID]*post.Post
}

func (r *memPostRepo) Save(_ context.Context, p *post.Post) error {
	cp := *p
	r.posts[p.ID] = &cp
	return nil
}

func (r *memPostRepo) Update(_ context.Context, p *post.Post) error {
	if _, ok := r.posts[p.ID]; !ok {
		return post.ErrPostNotFound
	}
	cp := *p
	r.posts[p.ID] = &cp
	return nil
}

func (r *memPostRepo) FindByID(_ context.Context, id uuid.UUID) (*post.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, post.ErrPostNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memPostRepo) ListAll(_ context.Context) ([]*post.Post, error) {
	out := make([]*post.Post, 0, len(r.posts))
	for _, p := range r.posts {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memPostRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.posts[id]; !ok {
		return post.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

// noopCache reports every key as a miss so handlers always hit the repos.
type noopCache struct{}

func (noopCache) GetJSON(_ context.Context, _ string, _ any) (bool, error) { return false, nil }

func (noopCache) SetJSON(_ context.Context, _ string, _ any, _ time.Duration) error { return nil }

type noopPublisher struct{}

func (noopPublisher) PublishUserEvent(_ context.Context, _ service.UserEvent) error { return nil }

func (noopPublisher) PublishPostEvent(_ context.Context, _ service.PostEvent) error { return nil }

type stubGithub struct {
	repos []service.GithubRepo
	err   error
}

func (g *stubGithub) ListRepos(_ context.Context, _ string) ([]service.GithubRepo, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.repos, nil
}

type testServer struct {
	router *gin.Engine
	users  *memUserRepo
	posts  *memPostRepo
	jwtSvc *auth.JWTService
	github *stubGithub
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := &memUserRepo{
		byEmail: make(map[string]*user.User),
		byID:    make(map[uuid.UUID]*user.User),
	}
	profiles := &memProfileRepo{profiles: make(map[uuid.UUID]*profile.Profile), users: users}
	posts := &memPostRepo{posts: make(map[uuid.UUID]*post.Post)}
	users.profiles = profiles
	users.posts = posts

	jwtSvc := auth.NewJWTService("test-secret", 10*time.Minute)
	log := logger.NewNop()
	github := &stubGithub{}

	authUseCase := authUC.NewAuthUseCase(users, jwtSvc, noopPublisher{}, log)
	profileUseCase := profileUC.NewProfileUseCase(profiles, noopCache{}, github, log)
	postUseCase := postUC.NewPostUseCase(posts, users, noopPublisher{}, log)

	router := NewRouter(
		NewAuthHandler(authUseCase, log),
		NewProfileHandler(profileUseCase, log),
		NewPostHandler(postUseCase, log),
		jwtSvc,
	)

	return &testServer{router: router, users: users, posts: posts, jwtSvc: jwtSvc, github: github}
}

// do performs a request with an optional JSON body and token, answering the
// recorder and the decoded JSON body.
func (s *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

// doList is do for endpoints answering a JSON array.
func (s *testServer) doList(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, []map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var decoded []map[string]any
	if rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '[' {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

// register creates an account through the API and answers its token.
func (s *testServer) register(t *testing.T, name, email, password string) string {
	t.Helper()

	rec, body := s.do(t, http.MethodPost, "/api/users", "", gin.H{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token, ok := body["token"].(string)
	require.True(t, ok, "register response missing token")
	return token
}

// firstErrorMsg digs the first msg out of a {"errors":[{"msg":...}]} body.
func firstErrorMsg(t *testing.T, body map[string]any) string {
	t.Helper()

	raw, ok := body["errors"].([]any)
	require.True(t, ok, "body has no errors array: %v", body)
	require.NotEmpty(t, raw)
	entry, ok := raw[0].(map[string]any)
	require.True(t, ok)
	msg, _ := entry["msg"].(string)
	return msg
}
