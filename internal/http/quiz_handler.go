package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tuankiet247/OpenDayGame/internal/domain"
	"github.com/tuankiet247/OpenDayGame/internal/service"
)

// QuizHandler mantiene dependencias para los endpoints del juego.
type QuizHandler struct {
	logger    *zap.Logger
	questions *service.QuestionService
	results   *service.ResultService
}

// NewQuizHandler crea una instancia de QuizHandler con dependencias necesarias.
func NewQuizHandler(logger *zap.Logger, questions *service.QuestionService, results *service.ResultService) *QuizHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizHandler{
		logger:    logger,
		questions: questions,
		results:   results,
	}
}

// GenerateQuestion maneja POST /api/generate-question.
// A body with only game_type (older front-end) is served by open generation.
func (h *QuizHandler) GenerateQuestion(c *gin.Context) {
	var req struct {
		CategoryID    string `json:"category_id"`
		QuestionIndex *int   `json:"question_index"`
		GameType      string `json:"game_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid generate question request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	categoryID := strings.TrimSpace(req.CategoryID)
	if categoryID == "" && strings.TrimSpace(req.GameType) != "" {
		h.serveOpenQuestion(c, req.GameType)
		return
	}
	if categoryID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category_id is required"})
		return
	}

	index := 0
	if req.QuestionIndex != nil {
		index = *req.QuestionIndex
	}

	eq, err := h.questions.NextQuestion(c.Request.Context(), categoryID, index)
	if err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			c.JSON(http.StatusOK, gin.H{"error": "Question not found"})
			return
		}
		h.logger.Error("next question failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load question"})
		return
	}

	c.JSON(http.StatusOK, eq)
}

// GenerateOpenQuestion maneja POST /api/generate-open-question.
func (h *QuizHandler) GenerateOpenQuestion(c *gin.Context) {
	var req struct {
		CategoryID string `json:"category_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid generate open question request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	h.serveOpenQuestion(c, req.CategoryID)
}

func (h *QuizHandler) serveOpenQuestion(c *gin.Context, categoryID string) {
	eq, err := h.questions.GenerateOpenQuestion(c.Request.Context(), categoryID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, eq)
	case errors.Is(err, service.ErrCategoryNotFound):
		c.JSON(http.StatusOK, gin.H{"error": "Category not found"})
	case errors.Is(err, service.ErrOracleUnavailable):
		h.logger.Warn("open question unavailable", zap.String("category_id", categoryID), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Không thể tạo câu hỏi lúc này, vui lòng thử lại."})
	default:
		h.logger.Error("open question failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate question"})
	}
}

// SubmitResult maneja POST /api/submit-result. Always answers 200 once the body parses.
func (h *QuizHandler) SubmitResult(c *gin.Context) {
	var req struct {
		Scores      map[string]int `json:"scores"`
		UserProfile map[string]any `json:"user_profile"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid submit result request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	totals := domain.MajorScoresFromMap(req.Scores)
	profile := domain.UserProfileFromMap(stringifyProfile(req.UserProfile))

	result := h.results.Aggregate(c.Request.Context(), totals, profile)
	c.JSON(http.StatusOK, result)
}

// Categories maneja GET /api/categories.
func (h *QuizHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.questions.Categories()})
}

// Health maneja GET /healthz.
func (h *QuizHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "questions": h.questions.TotalQuestions()})
}

// stringifyProfile acepta valores no string del front-end (edad, clase) y los guarda como texto.
func stringifyProfile(raw map[string]any) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			out[k] = val
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}
