package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/multiweb/multiweb-backend/internal/users"
)

type Handler struct {
	issuer   *TokenIssuer
	userRepo *users.Repo
}

// Register wires the public auth endpoints onto rg and the authenticated
// /auth/me endpoint onto authed.
func Register(rg, authed *gin.RouterGroup, issuer *TokenIssuer, userRepo *users.Repo) {
	h := &Handler{issuer: issuer, userRepo: userRepo}

	rg.POST("/register", h.register)
	rg.POST("/login", h.login)
	authed.GET("/me", h.me)
}

type registerReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "hash password"})
		return
	}

	user, err := h.userRepo.Create(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)), string(hash), strings.TrimSpace(req.Name))
	if err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.respondWithToken(c, http.StatusCreated, user)
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	user, err := h.userRepo.GetByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid credentials"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid credentials"})
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

func (h *Handler) me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": user})
}

func (h *Handler) respondWithToken(c *gin.Context, status int, user *users.User) {
	token, err := h.issuer.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "issue token"})
		return
	}
	c.JSON(status, gin.H{"ok": true, "access_token": token, "user": user})
}
