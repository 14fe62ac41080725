package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devconnect/api/pkg/apperror"
	"github.com/devconnect/api/pkg/logger"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type upsertProfileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status"`
	Skills         string `json:"skills"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

type experienceRequest struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

type educationRequest struct {
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

type postRequest struct {
	Text string `json:"text"`
}

// validationBody renders the {"errors":[{"msg":...}]} shape every
// validation failure answers with.
func validationBody(msgs []string) gin.H {
	items := make([]gin.H, len(msgs))
	for i, m := range msgs {
		items[i] = gin.H{"msg": m}
	}
	return gin.H{"errors": items}
}

func abortBadJSON(c *gin.Context) {
	c.JSON(http.StatusBadRequest, validationBody([]string{"Invalid request body"}))
}

// fallbackError handles whatever the route-specific checks did not claim:
// validation errors keep their messages, everything else collapses to a
// generic 500 with details only in the log.
func fallbackError(c *gin.Context, log logger.Logger, err error) {
	var vErr *apperror.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, validationBody(vErr.Messages))
		return
	}

	log.Error("request failed", err)
	c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
}
