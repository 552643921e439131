package handler

import (
	"net/http"

	"event_rsvp/internal/middleware"
	"event_rsvp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RSVPHandler serves the public guest-rsvp endpoint
type RSVPHandler struct {
	service service.RSVPService
	log     zerolog.Logger
}

// NewRSVPHandler creates a new RSVPHandler
func NewRSVPHandler(s service.RSVPService, log zerolog.Logger) *RSVPHandler {
	return &RSVPHandler{service: s, log: log}
}

type guestRSVPRequest struct {
	Action   string   `json:"action"`
	Phone    string   `json:"phone"`
	GuestIDs []string `json:"guestIds"`
}

func (h *RSVPHandler) GuestRSVP(c *gin.Context) {
	var req guestRSVPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request")
		return
	}

	switch req.Action {
	case "search":
		h.search(c, req)
	case "confirm":
		h.confirm(c, req)
	default:
		errorJSON(c, http.StatusBadRequest, "invalid action")
	}
}

func (h *RSVPHandler) search(c *gin.Context, req guestRSVPRequest) {
	guests, err := h.service.Search(c.Request.Context(), middleware.ClientIP(c), req.Phone)
	if err != nil {
		if respondRateLimited(c, err, func(int) string { return "too many searches, try again later" }) {
			return
		}
		respondError(c, h.log, err, "failed to process request")
		return
	}
	c.JSON(http.StatusOK, gin.H{"guests": guests})
}

func (h *RSVPHandler) confirm(c *gin.Context, req guestRSVPRequest) {
	var ids []uuid.UUID
	if req.GuestIDs != nil {
		ids = make([]uuid.UUID, 0, len(req.GuestIDs))
		for _, raw := range req.GuestIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				respondError(c, h.log, service.ErrInvalidGuestIDs, "failed to process request")
				return
			}
			ids = append(ids, id)
		}
	}

	if err := h.service.Confirm(c.Request.Context(), req.Phone, ids); err != nil {
		respondError(c, h.log, err, "failed to process request")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RegisterRSVPRoutes registers the public RSVP routes
func (h *RSVPHandler) RegisterRSVPRoutes(rg *gin.RouterGroup) {
	rg.POST("/guest-rsvp", h.GuestRSVP)
}
