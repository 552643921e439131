package handler

import (
	"fmt"
	"net/http"
	"time"

	"event_rsvp/internal/model"
	"event_rsvp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// GuestHandler serves the admin-guests endpoint
type GuestHandler struct {
	service service.GuestService
	log     zerolog.Logger
}

// NewGuestHandler creates a new GuestHandler
func NewGuestHandler(s service.GuestService, log zerolog.Logger) *GuestHandler {
	return &GuestHandler{service: s, log: log}
}

type adminGuestsRequest struct {
	Action    string           `json:"action"`
	ID        string           `json:"id"`
	Name      *string          `json:"name"`
	Phone     *phoneInput      `json:"phone"`
	Confirmed *bool            `json:"confirmed"`
	Rows      []importRowInput `json:"rows"`
}

const adminFallback = "failed to process operation"

func (h *GuestHandler) AdminGuests(c *gin.Context) {
	var req adminGuestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request")
		return
	}

	switch req.Action {
	case "list":
		h.list(c)
	case "add":
		h.add(c, req)
	case "update":
		h.update(c, req)
	case "delete":
		h.delete(c, req)
	case "import":
		h.importRows(c, req)
	case "stats":
		h.stats(c)
	default:
		errorJSON(c, http.StatusBadRequest, "invalid action")
	}
}

func (h *GuestHandler) list(c *gin.Context) {
	guests, err := h.service.ListGuests(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, adminFallback)
		return
	}
	c.JSON(http.StatusOK, gin.H{"guests": guests})
}

func (h *GuestHandler) add(c *gin.Context, req adminGuestsRequest) {
	if req.Name == nil || req.Phone == nil {
		errorJSON(c, http.StatusBadRequest, "name and phone are required")
		return
	}

	guest, err := h.service.AddGuest(c.Request.Context(), model.CreateGuestRequest{Name: *req.Name, Phone: string(*req.Phone)})
	if err != nil {
		respondError(c, h.log, err, adminFallback)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "guest": guest})
}

func (h *GuestHandler) update(c *gin.Context, req adminGuestsRequest) {
	id, ok := parseGuestID(c, req.ID)
	if !ok {
		return
	}

	guest, err := h.service.UpdateGuest(c.Request.Context(), id, model.UpdateGuestRequest{
		Name:      req.Name,
		Phone:     req.Phone.ptr(),
		Confirmed: req.Confirmed,
	})
	if err != nil {
		respondError(c, h.log, err, adminFallback)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "guest": guest})
}

func (h *GuestHandler) delete(c *gin.Context, req adminGuestsRequest) {
	id, ok := parseGuestID(c, req.ID)
	if !ok {
		return
	}

	if err := h.service.DeleteGuest(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err, adminFallback)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *GuestHandler) importRows(c *gin.Context, req adminGuestsRequest) {
	result, err := h.service.ImportGuests(c.Request.Context(), toImportRows(req.Rows))
	if err != nil {
		respondError(c, h.log, err, adminFallback)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"imported": result.Imported,
		"rejected": result.Rejected,
	})
}

func (h *GuestHandler) stats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, adminFallback)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *GuestHandler) ExportGuestsCSV(c *gin.Context) {
	csvBuffer, err := h.service.ExportGuestsCSV(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "failed to export guests")
		return
	}

	fileName := fmt.Sprintf("guests_export_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, "text/csv", csvBuffer.Bytes())
}

func parseGuestID(c *gin.Context, raw string) (uuid.UUID, bool) {
	if raw == "" {
		errorJSON(c, http.StatusBadRequest, "guest id is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid guest id")
		return uuid.Nil, false
	}
	return id, true
}

// RegisterGuestRoutes registers admin guest routes behind authMW
func (h *GuestHandler) RegisterGuestRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/admin-guests", authMW, h.AdminGuests)

	adminRoutes := rg.Group("/admin")
	adminRoutes.Use(authMW)
	{
		adminRoutes.GET("/guests/export", h.ExportGuestsCSV)
	}
}
