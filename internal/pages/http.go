package pages

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/multiweb/multiweb-backend/internal/auth"
	"github.com/multiweb/multiweb-backend/internal/projects"
)

type Handler struct {
	repo     *Repo
	projects *projects.Repo
}

// Register wires page routes under /projects/:slug/pages.
func Register(rg *gin.RouterGroup, repo *Repo, projectRepo *projects.Repo) {
	h := &Handler{repo: repo, projects: projectRepo}

	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:page_id", h.get)
	rg.PATCH("/reorder", h.reorder)
	rg.PATCH("/:page_id", h.update)
	rg.DELETE("/:page_id", h.delete)
}

// ownedProject resolves the route's project and enforces ownership.
func (h *Handler) ownedProject(c *gin.Context) *projects.Project {
	p, err := h.projects.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return nil
	}
	if p.UserID != auth.UserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "not your project"})
		return nil
	}
	return p
}

// ownedPage enforces ownership of the page addressed by :page_id.
func (h *Handler) ownedPage(c *gin.Context) (string, bool) {
	pageID := c.Param("page_id")
	owner, err := h.repo.OwnerOf(c.Request.Context(), pageID)
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

type createReq struct {
	Name   string `json:"name" binding:"required"`
	Path   string `json:"path" binding:"required,pagepath"`
	Order  *int   `json:"order" binding:"omitempty,min=0"`
	IsHome bool   `json:"is_home"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	project := h.ownedProject(c)
	if project == nil {
		return
	}

	p, err := h.repo.Create(c.Request.Context(), project.ID, strings.TrimSpace(req.Name), req.Path, req.Order, req.IsHome)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "page": p})
}

func (h *Handler) list(c *gin.Context) {
	project := h.ownedProject(c)
	if project == nil {
		return
	}

	items, err := h.repo.ListByProject(c.Request.Context(), project.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "pages": items})
}

func (h *Handler) get(c *gin.Context) {
	pageID, ok := h.ownedPage(c)
	if !ok {
		return
	}

	p, err := h.repo.GetByID(c.Request.Context(), pageID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "page not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "page": p})
}

type updateReq struct {
	Name   *string `json:"name"`
	Path   *string `json:"path" binding:"omitempty,pagepath"`
	Order  *int    `json:"order" binding:"omitempty,min=0"`
	IsHome *bool   `json:"is_home"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	pageID, ok := h.ownedPage(c)
	if !ok {
		return
	}

	p, err := h.repo.Update(c.Request.Context(), pageID, req.Name, req.Path, req.Order, req.IsHome)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "page not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "page": p})
}

func (h *Handler) delete(c *gin.Context) {
	pageID, ok := h.ownedPage(c)
	if !ok {
		return
	}

	deleted, err := h.repo.Delete(c.Request.Context(), pageID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "page not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type reorderReq struct {
	PageIDs []string `json:"page_ids" binding:"required,min=1,dive,uuid"`
}

func (h *Handler) reorder(c *gin.Context) {
	var req reorderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	project := h.ownedProject(c)
	if project == nil {
		return
	}

	items, err := h.repo.Reorder(c.Request.Context(), project.ID, req.PageIDs)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "some pages do not belong to this project"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "pages": items})
}
