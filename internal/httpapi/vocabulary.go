package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"lingotutor/internal/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type vocabularyReq struct {
	Word        string  `json:"word" binding:"required"`
	Meaning     string  `json:"meaning" binding:"required"`
	Example     *string `json:"example"`
	Translation *string `json:"translation"`
	Difficulty  string  `json:"difficulty"`
}

type masteryReq struct {
	IsMastered *bool `json:"is_mastered" binding:"required"`
}

func (h *Handler) addWord(c *gin.Context) {
	var req vocabularyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidParam, "word and meaning are required")
		return
	}

	entry, err := h.vocabularyService.Add(c.Request.Context(), currentUser(c), service.NewVocabulary{
		Word:        req.Word,
		Meaning:     req.Meaning,
		Example:     req.Example,
		Translation: req.Translation,
		Difficulty:  req.Difficulty,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	success(c, http.StatusCreated, newVocabularyView(entry))
}

func (h *Handler) listWords(c *gin.Context) {
	skip, ok := queryInt(c, "skip", 0)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", 50)
	if !ok {
		return
	}

	var mastered *bool
	if raw := c.Query("mastered"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			fail(c, http.StatusBadRequest, CodeInvalidParam, "mastered must be true or false")
			return
		}
		mastered = &v
	}

	entries, err := h.vocabularyService.List(c.Request.Context(), currentUser(c).ID, skip, limit, mastered)
	if err != nil {
		h.writeError(c, err)
		return
	}
	success(c, http.StatusOK, newVocabularyViews(entries))
}

func (h *Handler) reviewWords(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 20)
	if !ok {
		return
	}

	entries, err := h.vocabularyService.DueForReview(c.Request.Context(), currentUser(c).ID, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	success(c, http.StatusOK, newVocabularyViews(entries))
}

func (h *Handler) setMastery(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req masteryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidParam, "is_mastered is required")
		return
	}

	entry, err := h.vocabularyService.SetMastery(c.Request.Context(), currentUser(c).ID, id, *req.IsMastered)
	if err != nil {
		h.writeError(c, err)
		return
	}
	success(c, http.StatusOK, newVocabularyView(entry))
}

func (h *Handler) deleteWord(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.vocabularyService.Remove(c.Request.Context(), currentUser(c).ID, id); err != nil {
		h.writeError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) vocabularyStats(c *gin.Context) {
	stats, err := h.vocabularyService.Stats(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{
		"total_words":    stats.Total,
		"mastered_words": stats.Mastered,
		"learning_words": stats.Learning,
		"mastery_rate":   stats.MasteryRate,
	})
}

func (h *Handler) exportWords(c *gin.Context) {
	data, err := h.vocabularyService.ExportXLSX(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"vocabulary_%s.xlsx\"",
		time.Now().UTC().Format("20060102")))
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (h *Handler) importWords(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidParam, "file is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidParam, "cannot read file")
		return
	}
	defer f.Close()

	result, err := h.vocabularyService.ImportXLSX(c.Request.Context(), currentUser(c), f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{
		"imported": result.Imported,
		"skipped":  result.Skipped,
		"errors":   result.Errors,
	})
}
