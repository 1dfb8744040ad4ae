package mockserver

import (
	"net/http"
	"strings"
	"time"

	"telekom-gateway/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, model.Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

func respondDetail(c *gin.Context, status int, detail string) {
	c.JSON(status, model.ErrorDetail{Detail: detail})
}

// bind decodes the cached JSON body into dst and answers 422 on failure.
func bind(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindBodyWith(dst, binding.JSON); err != nil {
		c.JSON(http.StatusUnprocessableEntity, model.ErrorDetail{
			Detail: []model.ValidationIssue{{
				Loc:  []string{"body"},
				Msg:  err.Error(),
				Type: "value_error",
			}},
		})
		return false
	}
	return true
}

// sessionToken prefers the bearer header and falls back to the body field.
func sessionToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		if token := strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")); token != "" {
			return token
		}
	}

	var body struct {
		SessionToken *string `json:"session_token"`
	}
	if err := c.ShouldBindBodyWith(&body, binding.JSON); err == nil && body.SessionToken != nil {
		return *body.SessionToken
	}
	return ""
}

// requireAccount answers 401 when the request carries no valid credential.
func (s *Server) requireAccount(c *gin.Context) (*account, bool) {
	token := sessionToken(c)
	if token == "" {
		respondDetail(c, http.StatusUnauthorized, "Not authenticated")
		return nil, false
	}
	acc, ok := s.state.accountForToken(token)
	if !ok {
		respondDetail(c, http.StatusUnauthorized, "Invalid or expired session token")
		return nil, false
	}
	return acc, true
}
