package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/devconnect/api/internal/application/service"
	profileUC "github.com/devconnect/api/internal/application/usecase/profile"
	"github.com/devconnect/api/internal/domain/profile"
	"github.com/devconnect/api/pkg/logger"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	logger         logger.Logger
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: uc,
		logger:         log,
	}
}

// GetMine handles GET /api/profile/me.
func (h *ProfileHandler) GetMine(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
		return
	}

	p, err := h.profileUseCase.ExecuteGetMine(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "There is no profile for this user"})
			return
		}
		fallbackError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// GetAll handles GET /api/profile. Public.
func (h *ProfileHandler) GetAll(c *gin.Context) {
	profiles, err := h.profileUseCase.ExecuteGetAll(c.Request.Context())
	if err != nil {
		fallbackError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, profiles)
}

// GetByUserID handles GET /api/profile/user/:user_id. A malformed id maps
// to the same not-found response as an unknown one.
func (h *ProfileHandler) GetByUserID(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Profile not found"})
		return
	}

	p, err := h.profileUseCase.ExecuteGetByUserID(c.Request.Context(), targetID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Profile not found"})
			return
		}
		fallbackError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// Upsert handles POST /api/profile: create-or-update keyed by the
// authenticated user, one profile per user.
func (h *ProfileHandler) Upsert(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
		return
	}

	var req upsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadJSON(c)
		return
	}

	p, err := h.profileUseCase.ExecuteUpsert(c.Request.Context(), profileUC.UpsertInput{
		UserID:         userID,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Skills:         req.Skills,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Youtube:        req.Youtube,
		Twitter:        req.Twitter,
		Facebook:       req.Facebook,
		Linkedin:       req.Linkedin,
		Instagram:      req.Instagram,
	})
	if err != nil {
		fallbackError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// AddExperience handles PUT /api/profile/experience.
func (h *ProfileHandler) AddExperience(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
		return
	}

	var req experienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadJSON(c)
		return
	}

	p, err := h.profileUseCase.ExecuteAddExperience(c.Request.Context(), profileUC.ExperienceInput{
		UserID:      userID,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "There is no profile for this user"})
			return
		}
		fallbackError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// RemoveExperience handles DELETE /api/profile/experience/:exp_id. Removing
// an id the profile does not hold succeeds with the unchanged profile.
func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
		return
	}

	// An unparseable entry id matches nothing, which is the same no-op.
	entryID, _ := uuid.Parse(c.Param("exp_id"))

	p, err := h.profileUseCase.ExecuteRemoveExperience(c.Request.Context(), userID, entryID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "There is no profile for this user"})
			return
		}
		fallbackError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// AddEducation handles PUT /api/profile/education.
func (h *ProfileHandler) AddEducation(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
		return
	}

	var req educationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadJSON(c)
		return
	}

	p, err := h.profileUseCase.ExecuteAddEducation(c.Request.Context(), profileUC.EducationInput{
		UserID:       userID,
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "There is no profile for this user"})
			return
		}
		fallbackError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// RemoveEducation handles DELETE /api/profile/education/:edu_id.
func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
		return
	}

	entryID, _ := uuid.Parse(c.Param("edu_id"))

	p, err := h.profileUseCase.ExecuteRemoveEducation(c.Request.Context(), userID, entryID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "There is no profile for this user"})
			return
		}
		fallbackError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// GithubRepos handles GET /api/profile/github/:username. Public.
func (h *ProfileHandler) GithubRepos(c *gin.Context) {
	repos, err := h.profileUseCase.ExecuteGithubRepos(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrGithubUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "No Github profile found"})
			return
		}
		fallbackError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, repos)
}
