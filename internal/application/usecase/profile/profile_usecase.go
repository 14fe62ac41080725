package profile

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devconnect/api/internal/application/service"
	"github.com/devconnect/api/internal/domain/profile"
	"github.com/devconnect/api/pkg/apperror"
	"github.com/devconnect/api/pkg/logger"
)

const profileListCacheKey = "profiles:all"

const profileListCacheTTL = 60 * time.Second

type ProfileUseCase struct {
	profileRepo profile.Repository
	cache       service.Cache
	github      service.GithubGateway
	logger      logger.Logger
}

func NewProfileUseCase(repo profile.Repository, cache service.Cache, github service.GithubGateway, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: repo,
		cache:       cache,
		github:      github,
		logger:      log,
	}
}

func (uc *ProfileUseCase) ExecuteGetMine(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	return uc.profileRepo.GetByUserID(ctx, userID)
}

// ExecuteGetAll serves the public profile directory through a short-lived
// cache; a stale entry can outlive an upsert by at most the TTL.
func (uc *ProfileUseCase) ExecuteGetAll(ctx context.Context) ([]*profile.Profile, error) {
	var cached []*profile.Profile
	if found, err := uc.cache.GetJSON(ctx, profileListCacheKey, &cached); err == nil && found {
		return cached, nil
	}

	profiles, err := uc.profileRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.SetJSON(ctx, profileListCacheKey, profiles, profileListCacheTTL); err != nil {
		uc.logger.Warn("Failed to cache profile list", zap.Error(err))
	}
	return profiles, nil
}

func (uc *ProfileUseCase) ExecuteGetByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	return uc.profileRepo.GetByUserID(ctx, userID)
}

type UpsertInput struct {
	UserID         uuid.UUID
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         string
	Bio            string
	GithubUsername string
	Youtube        string
	Twitter        string
	Facebook       string
	Linkedin       string
	Instagram      string
}

// ExecuteUpsert creates the caller's profile or updates it in place; one
// profile per user. Experience and education entries survive the update.
func (uc *ProfileUseCase) ExecuteUpsert(ctx context.Context, input UpsertInput) (*profile.Profile, error) {
	var msgs []string
	if strings.TrimSpace(input.Status) == "" {
		msgs = append(msgs, "Status is required")
	}
	skills := profile.NormalizeSkills(input.Skills)
	if len(skills) == 0 {
		msgs = append(msgs, "Skills are required")
	}
	if len(msgs) > 0 {
		return nil, apperror.NewValidation(msgs...)
	}

	p := &profile.Profile{
		Owner:          profile.Owner{ID: input.UserID},
		Company:        input.Company,
		Website:        input.Website,
		Location:       input.Location,
		Status:         input.Status,
		Skills:         skills,
		Bio:            input.Bio,
		GithubUsername: input.GithubUsername,
		Social: profile.Social{
			Youtube:   input.Youtube,
			Twitter:   input.Twitter,
			Facebook:  input.Facebook,
			Linkedin:  input.Linkedin,
			Instagram: input.Instagram,
		},
		UpdatedAt: time.Now().UTC(),
	}

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	return uc.profileRepo.GetByUserID(ctx, input.UserID)
}

type ExperienceInput struct {
	UserID      uuid.UUID
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

func (uc *ProfileUseCase) ExecuteAddExperience(ctx context.Context, input ExperienceInput) (*profile.Profile, error) {
	var msgs []string
	if strings.TrimSpace(input.Title) == "" {
		msgs = append(msgs, "Title is required")
	}
	if strings.TrimSpace(input.Company) == "" {
		msgs = append(msgs, "Company is required")
	}
	if input.From.IsZero() {
		msgs = append(msgs, "From date is required")
	}
	if len(msgs) > 0 {
		return nil, apperror.NewValidation(msgs...)
	}

	p, err := uc.profileRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	p.AddExperience(profile.Experience{
		Title:       input.Title,
		Company:     input.Company,
		Location:    input.Location,
		From:        input.From,
		To:          input.To,
		Current:     input.Current,
		Description: input.Description,
	})

	if err := uc.profileRepo.UpdateExperience(ctx, input.UserID, p.Experience); err != nil {
		return nil, err
	}
	return p, nil
}

// ExecuteRemoveExperience deletes an entry from the caller's own profile.
// The profile is looked up by the authenticated user id, so cross-user
// removal is structurally impossible; an unknown entry id is a no-op.
func (uc *ProfileUseCase) ExecuteRemoveExperience(ctx context.Context, userID, entryID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.RemoveExperience(entryID)

	if err := uc.profileRepo.UpdateExperience(ctx, userID, p.Experience); err != nil {
		return nil, err
	}
	return p, nil
}

type EducationInput struct {
	UserID       uuid.UUID
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

func (uc *ProfileUseCase) ExecuteAddEducation(ctx context.Context, input EducationInput) (*profile.Profile, error) {
	var msgs []string
	if strings.TrimSpace(input.School) == "" {
		msgs = append(msgs, "School is required")
	}
	if strings.TrimSpace(input.Degree) == "" {
		msgs = append(msgs, "Degree is required")
	}
	if strings.TrimSpace(input.FieldOfStudy) == "" {
		msgs = append(msgs, "Field of study is required")
	}
	if input.From.IsZero() {
		msgs = append(msgs, "From date is required")
	}
	if len(msgs) > 0 {
		return nil, apperror.NewValidation(msgs...)
	}

	p, err := uc.profileRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	p.AddEducation(profile.Education{
		School:       input.School,
		Degree:       input.Degree,
		FieldOfStudy: input.FieldOfStudy,
		From:         input.From,
		To:           input.To,
		Current:      input.Current,
		Description:  input.Description,
	})

	if err := uc.profileRepo.UpdateEducation(ctx, input.UserID, p.Education); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *ProfileUseCase) ExecuteRemoveEducation(ctx context.Context, userID, entryID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.RemoveEducation(entryID)

	if err := uc.profileRepo.UpdateEducation(ctx, userID, p.Education); err != nil {
		return nil, err
	}
	return p, nil
}

// ExecuteGithubRepos lists a user's five newest public repositories via the
// gateway, caching each username for a few minutes.
func (uc *ProfileUseCase) ExecuteGithubRepos(ctx context.Context, username string) ([]service.GithubRepo, error) {
	cacheKey := "github:repos:" + username

	var cached []service.GithubRepo
	if found, err := uc.cache.GetJSON(ctx, cacheKey, &cached); err == nil && found {
		return cached, nil
	}

	repos, err := uc.github.ListRepos(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.SetJSON(ctx, cacheKey, repos, 10*time.Minute); err != nil {
		uc.logger.Warn("Failed to cache github repos", zap.String("username", username), zap.Error(err))
	}
	return repos, nil
}
