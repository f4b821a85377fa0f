package sections

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/multiweb/multiweb-backend/internal/auth"
	"github.com/multiweb/multiweb-backend/internal/pages"
)

type Handler struct {
	repo  *Repo
	pages *pages.Repo
}

// Register wires section routes: creation/listing under a page, item
// operations addressed by section id.
func Register(rg *gin.RouterGroup, repo *Repo, pageRepo *pages.Repo) {
	h := &Handler{repo: repo, pages: pageRepo}

	rg.POST("/pages/:page_id/sections", h.create)
	rg.GET("/pages/:page_id/sections", h.list)
	rg.GET("/sections/:section_id", h.get)
	rg.PATCH("/sections/:section_id", h.update)
	rg.DELETE("/sections/:section_id", h.delete)
}

func (h *Handler) ownedPage(c *gin.Context) (string, bool) {
	pageID := c.Param("page_id")
	owner, err := h.pages.OwnerOf(c.Request.Context(), pageID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "page not found"})
		return "", false
	}
	if owner != auth.UserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "not your page"})
		return "", false
	}
	return pageID, true
}

func (h *Handler) ownedSection(c *gin.Context) (string, bool) {
	sectionID := c.Param("section_id")
	owner, err := h.repo.OwnerOf(c.Request.Context(), sectionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "section not found"})
		return "", false
	}
	if owner != auth.UserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "not your section"})
		return "", false
	}
	return sectionID, true
}

type createReq struct {
	Order  *int                   `json:"order" binding:"omitempty,min=0"`
	Height int                    `json:"height" binding:"omitempty,min=1"`
	Styles map[string]interface{} `json:"styles"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	pageID, ok := h.ownedPage(c)
	if !ok {
		return
	}

	s, err := h.repo.Create(c.Request.Context(), pageID, req.Order, req.Height, req.Styles)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "section": s})
}

func (h *Handler) list(c *gin.Context) {
	pageID, ok := h.ownedPage(c)
	if !ok {
		return
	}

	items, err := h.repo.ListByPage(c.Request.Context(), pageID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "sections": items})
}

func (h *Handler) get(c *gin.Context) {
	sectionID, ok := h.ownedSection(c)
	if !ok {
		return
	}

	s, err := h.repo.GetByID(c.Request.Context(), sectionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "section not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "section": s})
}

type updateReq struct {
	Order  *int                   `json:"order" binding:"omitempty,min=0"`
	Height *int                   `json:"height" binding:"omitempty,min=1"`
	Styles map[string]interface{} `json:"styles"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	sectionID, ok := h.ownedSection(c)
	if !ok {
		return
	}

	s, err := h.repo.Update(c.Request.Context(), sectionID, req.Order, req.Height, req.Styles)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "section not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "section": s})
}

func (h *Handler) delete(c *gin.Context) {
	sectionID, ok := h.ownedSection(c)
	if !ok {
		return
	}

	deleted, err := h.repo.Delete(c.Request.Context(), sectionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "section not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
