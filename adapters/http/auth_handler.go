package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	authUC "github.com/devconnect/api/internal/application/usecase/auth"
	"github.com/devconnect/api/internal/domain/user"
	"github.com/devconnect/api/pkg/logger"
)

type AuthHandler struct {
	authUseCase *authUC.AuthUseCase
	logger      logger.Logger
}

func NewAuthHandler(uc *authUC.AuthUseCase, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: uc,
		logger:      log,
	}
}

// Register handles POST /api/users.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadJSON(c)
		return
	}

	output, err := h.authUseCase.ExecuteRegister(c.Request.Context(), authUC.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		fallbackError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": output.Token})
}

// Login handles POST /api/auth. Unknown email and wrong password answer the
// same body.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadJSON(c)
		return
	}

	output, err := h.authUseCase.ExecuteLogin(c.Request.Context(), authUC.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, authUC.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, validationBody([]string{"Invalid credentials"}))
			return
		}
		fallbackError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": output.Token})
}

// CurrentUser handles GET /api/auth: the account behind the token, without
// the password hash.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
		return
	}

	u, err := h.authUseCase.ExecuteCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
			return
		}
		fallbackError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, u)
}

// DeleteAccount handles DELETE /api/profile: removes the user, their
// profile and their posts.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
		return
	}

	if err := h.authUseCase.ExecuteDeleteAccount(c.Request.Context(), userID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
			return
		}
		fallbackError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "User deleted"})
}
