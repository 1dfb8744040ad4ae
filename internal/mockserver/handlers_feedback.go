package mockserver

import (
	"net/http"

	"telekom-gateway/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *Server) submitFeedback(c *gin.Context) {
	var req model.Feedback
	if !bind(c, &req) {
		return
	}
	if req.FeedbackType != model.FeedbackPositive && req.FeedbackType != model.FeedbackNegative {
		respondDetail(c, http.StatusBadRequest, "feedback_type must be positive or negative")
		return
	}

	s.state.mu.Lock()
	s.state.feedback = append(s.state.feedback, req)
	s.state.mu.Unlock()

	respondOK(c, "feedback recorded", gin.H{"feedback_id": uuid.NewString()})
}

type feedbackCounts struct {
	Total    int     `json:"total"`
	Positive int     `json:"positive"`
	Negative int     `json:"negative"`
	Ratio    float64 `json:"satisfaction_ratio"`
}

func countFeedback(items []model.Feedback, keep func(model.Feedback) bool) feedbackCounts {
	var fc feedbackCounts
	for _, f := range items {
		if !keep(f) {
			continue
		}
		fc.Total++
		if f.FeedbackType == model.FeedbackPositive {
			fc.Positive++
		} else {
			fc.Negative++
		}
	}
	if fc.Total > 0 {
		fc.Ratio = float64(fc.Positive) / float64(fc.Total)
	}
	return fc
}

func (s *Server) feedbackStats(c *gin.Context) {
	userID := c.Param("user_id")

	s.state.mu.RLock()
	stats := countFeedback(s.state.feedback, func(f model.Feedback) bool { return f.UserID == userID })
	s.state.mu.RUnlock()

	if stats.Total == 0 {
		respondDetail(c, http.StatusNotFound, "No feedback for user")
		return
	}
	respondOK(c, "feedback stats", stats)
}

func (s *Server) feedbackPatterns(c *gin.Context) {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	byIntent := map[string]feedbackCounts{}
	for _, f := range s.state.feedback {
		intent, _ := f.Context["intent"].(string)
		if intent == "" {
			intent = "general"
		}
		if _, seen := byIntent[intent]; seen {
			continue
		}
		byIntent[intent] = countFeedback(s.state.feedback, func(o model.Feedback) bool {
			oi, _ := o.Context["intent"].(string)
			if oi == "" {
				oi = "general"
			}
			return oi == intent
		})
	}

	respondOK(c, "feedback patterns", gin.H{
		"overall":   countFeedback(s.state.feedback, func(model.Feedback) bool { return true }),
		"by_intent": byIntent,
	})
}

func (s *Server) feedbackImprovements(c *gin.Context) {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	suggestions := make([]gin.H, 0)
	for _, f := range s.state.feedback {
		if f.FeedbackType != model.FeedbackNegative {
			continue
		}
		suggestions = append(suggestions, gin.H{
			"message_id":    f.MessageID,
			"user_question": f.UserQuestion,
			"ai_response":   f.AIResponse,
		})
	}
	respondOK(c, "improvement suggestions", suggestions)
}
