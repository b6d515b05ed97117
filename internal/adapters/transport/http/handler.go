package http

import (
	"net/http"
	"time"

	"github.com/ademarov/feedline/internal/adapters/transport/http/dto"
	"github.com/ademarov/feedline/internal/adapters/transport/http/middleware"
	"github.com/ademarov/feedline/internal/app/feed/service"
	authErrors "github.com/ademarov/feedline/internal/domain/feed/errors"
	"github.com/ademarov/feedline/internal/domain/feed/model"
	"github.com/ademarov/feedline/internal/infra/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	svc service.Service
	cfg *config.Config
	log *zap.Logger
}

func NewHandler(svc service.Service, cfg *config.Config, log *zap.Logger) *Handler {
	return &Handler{svc: svc, cfg: cfg, log: log}
}

// Register wires all routes onto the router. Posts mutation routes sit
// behind the auth guard; listing is public.
func (h *Handler) Register(router *gin.Engine) {
	auth := router.Group("/auth")
	auth.GET("/registration-status", h.registrationStatus)
	auth.POST("/register", h.register)
	auth.POST("/login", h.login)
	auth.POST("/logout", middleware.Auth(h.svc), h.logout)

	router.GET("/posts", h.listPosts)

	protected := router.Group("/posts", middleware.Auth(h.svc))
	protected.POST("", h.createPost)
	protected.PUT("/:id", h.updatePost)
	protected.DELETE("/:id", h.deletePost)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
	})
}

func (h *Handler) registrationStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"enabled": h.svc.RegistrationOpen()})
}

func (h *Handler) register(c *gin.Context) {
	var body dto.RegisterDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.svc.Register(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.issueCredential(c, res.Credential)
	c.JSON(http.StatusCreated, gin.H{
		"user":      userJSON(res.User),
		"token":     res.Credential.Token,
		"expiresIn": int(res.Credential.TTL.Seconds()),
	})
}

func (h *Handler) login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.svc.Login(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.issueCredential(c, res.Credential)
	c.JSON(http.StatusOK, gin.H{
		"user":      userJSON(res.User),
		"token":     res.Credential.Token,
		"expiresIn": int(res.Credential.TTL.Seconds()),
	})
}

func (h *Handler) logout(c *gin.Context) {
	raw := middleware.CredentialFrom(c)
	if err := h.svc.Logout(c.Request.Context(), raw); err != nil {
		h.handleError(c, err)
		return
	}

	h.clearCredential(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *Handler) listPosts(c *gin.Context) {
	posts, err := h.svc.ListPosts(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	out := make([]gin.H, 0, len(posts))
	for _, p := range posts {
		out = append(out, postJSON(p))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) createPost(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var body dto.CreatePostDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.svc.CreatePost(c.Request.Context(), uid, body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, postJSON(post))
}

func (h *Handler) updatePost(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	var body dto.UpdatePostDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.svc.UpdatePost(c.Request.Context(), uid, postID, body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, postJSON(post))
}

func (h *Handler) deletePost(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	if err := h.svc.DeletePost(c.Request.Context(), uid, postID); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

// issueCredential also sets the session cookie in session mode so browser
// clients work without touching the JSON body.
func (h *Handler) issueCredential(c *gin.Context, cred model.Credential) {
	if h.cfg.AuthMode != config.AuthModeSession {
		return
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		middleware.SessionCookie,
		cred.Token,
		int(cred.TTL.Seconds()),
		"/",
		h.cfg.CookieDomain,
		true, // secure
		true, // httpOnly
	)
}

func (h *Handler) clearCredential(c *gin.Context) {
	if h.cfg.AuthMode != config.AuthModeSession {
		return
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", h.cfg.CookieDomain, true, true)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case authErrors.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case authErrors.IsInvalidCredentials(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case authErrors.IsInvalidToken(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
	case authErrors.IsRegistrationClosed(err):
		c.JSON(http.StatusForbidden, gin.H{"error": "registration is currently disabled"})
	case authErrors.IsForbidden(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case authErrors.IsAlreadyExists(err):
		c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
	case authErrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		if h.log != nil {
			h.log.Error("internal error", zap.Error(err))
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// userJSON is the public shape of an account; the password hash never
// leaves the server.
func userJSON(u model.User) gin.H {
	return gin.H{
		"id":        u.ID.String(),
		"name":      u.Name,
		"email":     u.Email,
		"createdAt": u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func postJSON(p model.Post) gin.H {
	return gin.H{
		"id":        p.ID.String(),
		"content":   p.Content,
		"userId":    p.UserID.String(),
		"createdAt": p.CreatedAt.UTC().Format(time.RFC3339),
		"updatedAt": p.UpdatedAt.UTC().Format(time.RFC3339),
		"user": gin.H{
			"id":   p.Author.ID.String(),
			"name": p.Author.Name,
		},
	}
}
