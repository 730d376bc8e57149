package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) overview(c *gin.Context) {
	o, err := h.statsService.Overview(c.Request.Context(), currentUser(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{
		"total_study_time":    o.TotalStudyMinutes,
		"total_conversations": o.TotalConversations,
		"total_words":         o.TotalWords,
		"mastered_words":      o.MasteredWords,
		"current_streak":      o.CurrentStreak,
		"target_language":     o.TargetLanguage,
		"current_level":       o.Level,
	})
}

func (h *Handler) today(c *gin.Context) {
	t, err := h.statsService.Today(c.Request.Context(), currentUser(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{
		"date":          t.Date.Format("2006-01-02"),
		"conversations": t.Conversations,
		"words_added":   t.WordsAdded,
		"study_time":    t.StudyTimeMinutes,
		"streak":        t.CurrentStreak,
	})
}

func (h *Handler) weekly(c *gin.Context) {
	days, err := h.statsService.Weekly(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	data := make([]gin.H, 0, len(days))
	for _, d := range days {
		data = append(data, gin.H{
			"date":          d.DateString(),
			"conversations": d.Conversations,
			"words_added":   d.WordsAdded,
		})
	}
	success(c, http.StatusOK, gin.H{
		"period": "last_7_days",
		"data":   data,
	})
}

func (h *Handler) progress(c *gin.Context) {
	p, err := h.statsService.Progress(c.Request.Context(), currentUser(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{
		"current_level":    p.Level,
		"conversations":    newGoalView(p.Conversations),
		"vocabulary":       newGoalView(p.Vocabulary),
		"overall_progress": p.Overall,
	})
}
