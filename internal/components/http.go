package components

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/multiweb/multiweb-backend/internal/auth"
	"github.com/multiweb/multiweb-backend/internal/sections"
)

type Handler struct {
	repo     *Repo
	sections *sections.Repo
}

// Register wires component routes: creation/listing under a section, item
// operations by component id, and the canvas editor's batch geometry update.
func Register(rg *gin.RouterGroup, repo *Repo, sectionRepo *sections.Repo) {
	h := &Handler{repo: repo, sections: sectionRepo}

	rg.POST("/sections/:section_id/components", h.create)
	rg.GET("/sections/:section_id/components", h.list)
	rg.GET("/components/:component_id", h.get)
	rg.PATCH("/components/batch", h.batchUpdate)
	rg.PATCH("/components/:component_id", h.update)
	rg.DELETE("/components/:component_id", h.delete)
}

func (h *Handler) ownedSection(c *gin.Context) (string, bool) {
	sectionID := c.Param("section_id")
	owner, err := h.sections.OwnerOf(c.Request.Context(), sectionID)
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

func (h *Handler) ownedComponent(c *gin.Context) (string, bool) {
	componentID := c.Param("component_id")
	owner, err := h.repo.OwnerOf(c.Request.Context(), componentID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "component not found"})
		return "", false
	}
	if owner != auth.UserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "not your component"})
		return "", false
	}
	return componentID, true
}

type createReq struct {
	Type   Variant                `json:"type" binding:"required"`
	X      float64                `json:"x"`
	Y      float64                `json:"y"`
	Width  float64                `json:"width" binding:"omitempty,min=10"`
	Height float64                `json:"height" binding:"omitempty,min=10"`
	Props  map[string]interface{} `json:"props"`
	Styles map[string]interface{} `json:"styles"`
	ZIndex int                    `json:"z_index" binding:"omitempty,min=0"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	// Validates the variant tag and its props schema up front.
	if _, err := DecodeProps(req.Type, req.Props); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	sectionID, ok := h.ownedSection(c)
	if !ok {
		return
	}

	cp, err := h.repo.Create(c.Request.Context(), sectionID, &Component{
		Type:   req.Type,
		X:      req.X,
		Y:      req.Y,
		Width:  req.Width,
		Height: req.Height,
		Props:  req.Props,
		Styles: req.Styles,
		ZIndex: req.ZIndex,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "component": cp})
}

func (h *Handler) list(c *gin.Context) {
	sectionID, ok := h.ownedSection(c)
	if !ok {
		return
	}

	items, err := h.repo.ListBySection(c.Request.Context(), sectionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "components": items})
}

func (h *Handler) get(c *gin.Context) {
	componentID, ok := h.ownedComponent(c)
	if !ok {
		return
	}

	cp, err := h.repo.GetByID(c.Request.Context(), componentID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "component not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "component": cp})
}

type updateReq struct {
	X      *float64               `json:"x"`
	Y      *float64               `json:"y"`
	Width  *float64               `json:"width" binding:"omitempty,min=10"`
	Height *float64               `json:"height" binding:"omitempty,min=10"`
	ZIndex *int                   `json:"z_index" binding:"omitempty,min=0"`
	Props  map[string]interface{} `json:"props"`
	Styles map[string]interface{} `json:"styles"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	componentID, ok := h.ownedComponent(c)
	if !ok {
		return
	}

	if req.Props != nil {
		existing, err := h.repo.GetByID(c.Request.Context(), componentID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "component not found"})
			return
		}
		if _, err := DecodeProps(existing.Type, req.Props); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
	}

	cp, err := h.repo.Update(c.Request.Context(), componentID, UpdateFields{
		X: req.X, Y: req.Y, Width: req.Width, Height: req.Height,
		ZIndex: req.ZIndex, Props: req.Props, Styles: req.Styles,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "component not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "component": cp})
}

type batchItemReq struct {
	ID     string   `json:"id" binding:"required,uuid"`
	X      *float64 `json:"x"`
	Y      *float64 `json:"y"`
	Width  *float64 `json:"width" binding:"omitempty,min=10"`
	Height *float64 `json:"height" binding:"omitempty,min=10"`
	ZIndex *int     `json:"z_index" binding:"omitempty,min=0"`
}

type batchReq struct {
	Components []batchItemReq `json:"components" binding:"required,min=1,dive"`
}

func (h *Handler) batchUpdate(c *gin.Context) {
	var req batchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	items := make([]BatchItem, len(req.Components))
	for i, item := range req.Components {
		items[i] = BatchItem{ID: item.ID, X: item.X, Y: item.Y, Width: item.Width, Height: item.Height, ZIndex: item.ZIndex}
	}

	updated, err := h.repo.BatchUpdate(c.Request.Context(), auth.UserID(c), items)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "some components were not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "components": updated})
}

func (h *Handler) delete(c *gin.Context) {
	componentID, ok := h.ownedComponent(c)
	if !ok {
		return
	}

	deleted, err := h.repo.Delete(c.Request.Context(), componentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "component not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
