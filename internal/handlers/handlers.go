package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/example/corneal-ai/internal/auth"
	"github.com/example/corneal-ai/internal/usecase"
)

// MaxUploadSize caps corneal image uploads at 10 MiB.
const MaxUploadSize = 10 << 20

// Handlers bundles the use cases behind the HTTP surface.
type Handlers struct {
	analyses      *usecase.AnalysisUseCase
	sessions      *usecase.SessionUseCase
	users         *usecase.UserUseCase
	modelLoaded   bool
	secureCookies bool
	cookieDomain  string
}

// New builds the handler set. modelLoaded reports whether a live scorer is
// wired in, so health checks can expose degraded mode.
func New(analyses *usecase.AnalysisUseCase, sessions *usecase.SessionUseCase, users *usecase.UserUseCase, modelLoaded, secureCookies bool, cookieDomain string) *Handlers {
	return &Handlers{
		analyses:      analyses,
		sessions:      sessions,
		users:         users,
		modelLoaded:   modelLoaded,
		secureCookies: secureCookies,
		cookieDomain:  cookieDomain,
	}
}

// RegisterRoutes wires the HTTP handlers to the Gin router.
func RegisterRoutes(router *gin.Engine, h *Handlers, mw *auth.Middleware) {
	api := router.Group("/api")

	api.GET("/health", h.health)

	api.POST("/auth/validate-session", h.validateSession)
	api.GET("/auth/me", mw.Optional(), h.currentUser)
	api.POST("/auth/logout", h.logout)

	authed := api.Group("", mw.Require())
	authed.POST("/upload/corneal-image", h.uploadCornealImage)
	authed.GET("/analysis/results", h.listResults)
	authed.GET("/analysis/results/:id", h.getResult)
	authed.PUT("/analysis/:id/validate", h.validateAnalysis)
	authed.GET("/analysis/metrics", h.metrics)
	authed.GET("/users", h.listUsers)
	authed.PUT("/users/:id/role", h.updateUserRole)
}

func (h *Handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"model_loaded": h.modelLoaded,
	})
}

func (h *Handlers) validateSession(c *gin.Context) {
	sessionID := c.GetHeader("X-Session-ID")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Session-ID header required"})
		return
	}

	result, err := h.sessions.Login(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteNoneMode)
	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	c.SetCookie(auth.SessionCookie, result.SessionToken, maxAge, "/", h.cookieDomain, h.secureCookies, true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    result.User,
		"message": "Authentication successful",
	})
}

func (h *Handlers) currentUser(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c.Request.Context())
	if !ok {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Not authenticated"})
		return
	}

	user, err := h.sessions.CurrentUser(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user, "message": "Authenticated"})
}

func (h *Handlers) logout(c *gin.Context) {
	token, _ := c.Cookie(auth.SessionCookie)
	if err := h.sessions.Logout(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie(auth.SessionCookie, "", -1, "/", h.cookieDomain, h.secureCookies, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

func (h *Handlers) uploadCornealImage(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c.Request.Context())

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if file.Size > MaxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image exceeds the upload size limit"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to open image"})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
		return
	}

	patientID := c.PostForm("patient_id")
	if patientID == "" {
		patientID = "unknown"
	}

	result, err := h.analyses.SubmitAnalysis(c.Request.Context(), identity, usecase.Upload{
		FileName:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		PatientID:   patientID,
		Data:        data,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handlers) listResults(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c.Request.Context())

	skip, ok := queryInt(c, "skip", 0)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", 20)
	if !ok {
		return
	}

	results, err := h.analyses.ListResults(c.Request.Context(), identity, skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *Handlers) getResult(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c.Request.Context())

	result, err := h.analyses.GetResult(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handlers) validateAnalysis(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c.Request.Context())

	var body struct {
		ScientistNotes string `json:"scientist_notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be JSON with scientist_notes"})
		return
	}

	if err := h.analyses.ValidateAnalysis(c.Request.Context(), identity, c.Param("id"), body.ScientistNotes); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Analysis validated successfully"})
}

func (h *Handlers) metrics(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c.Request.Context())

	summary, err := h.analyses.GetMetricsSummary(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handlers) listUsers(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c.Request.Context())

	users, err := h.users.ListUsers(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handlers) updateUserRole(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c.Request.Context())

	var body struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be JSON with role"})
		return
	}

	if err := h.users.UpdateUserRole(c.Request.Context(), identity, c.Param("id"), body.Role); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User role updated successfully"})
}

func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a non-negative integer"})
		return 0, false
	}
	return value, true
}

// respondError maps the error taxonomy onto stable HTTP statuses. Every kind
// keeps its own status so clients can branch without parsing messages.
func respondError(c *gin.Context, err error) {
	var ucErr *usecase.Error
	message := "internal error"
	if errors.As(err, &ucErr) {
		message = ucErr.Message
	}

	kind := usecase.KindOf(err)
	c.JSON(statusForKind(kind), gin.H{"error": message, "code": kind.String()})
}

func statusForKind(kind usecase.Kind) int {
	switch kind {
	case usecase.KindUnauthenticated:
		return http.StatusUnauthorized
	case usecase.KindPermissionDenied:
		return http.StatusForbidden
	case usecase.KindNotFound:
		return http.StatusNotFound
	case usecase.KindAlreadyValidated:
		return http.StatusConflict
	case usecase.KindUnsupportedMediaType:
		return http.StatusUnsupportedMediaType
	case usecase.KindInvalidRole:
		return http.StatusBadRequest
	case usecase.KindInferenceFailure:
		return http.StatusBadGateway
	case usecase.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
