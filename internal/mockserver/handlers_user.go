package mockserver

import (
	"errors"
	"net/http"
	"strconv"

	"telekom-gateway/internal/model"

	"github.com/gin-gonic/gin"
)

func (s *Server) register(c *gin.Context) {
	var req model.UserRegistration
	if !bind(c, &req) {
		return
	}

	acc, err := s.state.register(req)
	if errors.Is(err, errEmailTaken) {
		respondDetail(c, http.StatusBadRequest, "Email already registered")
		return
	}
	if err != nil {
		respondDetail(c, http.StatusInternalServerError, err.Error())
		return
	}

	token := s.state.issueToken(acc)
	c.JSON(http.StatusOK, model.AuthResult{
		Success:      true,
		Message:      "registered",
		SessionToken: token,
		UserID:       acc.ID,
	})
}

func (s *Server) login(c *gin.Context) {
	var req model.Credentials
	if !bind(c, &req) {
		return
	}

	token, acc, ok := s.state.login(req.Email, req.Password)
	if !ok {
		respondDetail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	c.JSON(http.StatusOK, model.AuthResult{
		Success:      true,
		Message:      "logged in",
		SessionToken: token,
		UserID:       acc.ID,
	})
}

func (s *Server) profile(c *gin.Context) {
	acc, ok := s.requireAccount(c)
	if !ok {
		return
	}

	s.state.mu.RLock()
	view := acc.view()
	s.state.mu.RUnlock()
	respondOK(c, "profile", view)
}

func (s *Server) updateProfile(c *gin.Context) {
	acc, ok := s.requireAccount(c)
	if !ok {
		return
	}
	var req model.UserUpdate
	if !bind(c, &req) {
		return
	}

	s.state.mu.Lock()
	if req.Username != nil {
		acc.Username = *req.Username
	}
	if req.FullName != nil {
		acc.FullName = *req.FullName
	}
	if req.Phone != nil {
		acc.Phone = *req.Phone
	}
	if req.Email != nil && *req.Email != acc.Email {
		if _, taken := s.state.byEmail[*req.Email]; taken {
			s.state.mu.Unlock()
			respondDetail(c, http.StatusBadRequest, "Email already registered")
			return
		}
		delete(s.state.byEmail, acc.Email)
		acc.Email = *req.Email
		s.state.byEmail[acc.Email] = acc.ID
	}
	for k, v := range req.Preferences {
		acc.Preferences[k] = v
	}
	view := acc.view()
	s.state.mu.Unlock()

	respondOK(c, "profile updated", view)
}

func (s *Server) userByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		respondDetail(c, http.StatusBadRequest, "user_id must be numeric")
		return
	}

	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	acc, ok := s.state.accounts[id]
	if !ok {
		respondDetail(c, http.StatusNotFound, "User not found")
		return
	}
	respondOK(c, "profile", acc.view())
}

func (s *Server) logout(c *gin.Context) {
	if _, ok := s.requireAccount(c); !ok {
		return
	}
	s.state.revoke(sessionToken(c))
	respondOK(c, "logged out", nil)
}

func (s *Server) activeUsers(c *gin.Context) {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	active := map[int]bool{}
	for _, id := range s.state.tokens {
		active[id] = true
	}
	users := make([]map[string]interface{}, 0, len(active))
	for id := range active {
		users = append(users, s.state.accounts[id].view())
	}
	respondOK(c, "active users", users)
}
