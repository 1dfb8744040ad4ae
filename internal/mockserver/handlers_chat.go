package mockserver

import (
	"fmt"
	"net/http"
	"time"

	"telekom-gateway/internal/model"

	"github.com/gin-gonic/gin"
)

const defaultModel = "telekom-assistant-v6"

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
	})
}

func (s *Server) systemStatus(c *gin.Context) {
	s.state.mu.RLock()
	sessions := len(s.state.tokens)
	s.state.mu.RUnlock()

	respondOK(c, "system operational", gin.H{
		"ai_model":        defaultModel,
		"model_loaded":    true,
		"active_sessions": sessions,
	})
}

func (s *Server) modelInfo(c *gin.Context) {
	respondOK(c, "model info", gin.H{
		"name":     defaultModel,
		"backend":  "mock",
		"language": "tr",
	})
}

func (s *Server) sendMessage(c *gin.Context) {
	var req model.ChatMessage
	if !bind(c, &req) {
		return
	}

	aiModel := req.AIModel
	if aiModel == "" {
		aiModel = defaultModel
	}

	data := gin.H{
		"response":      fmt.Sprintf("Mesajınız alındı: %s", req.Message),
		"ai_model":      aiModel,
		"session_id":    req.SessionID,
		"user_id":       req.UserID,
		"authenticated": false,
	}
	if token := sessionToken(c); token != "" {
		if _, ok := s.state.accountForToken(token); ok {
			data["authenticated"] = true
		}
	}
	respondOK(c, "ok", data)
}

func (s *Server) clearSession(c *gin.Context) {
	var req model.ClearSessionRequest
	if !bind(c, &req) {
		return
	}
	respondOK(c, "session cleared", gin.H{"session_id": req.SessionID})
}
