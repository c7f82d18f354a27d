package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rdmitry/openforum/backend/internal/models"
	"github.com/rdmitry/openforum/backend/internal/repositories"
)

// FeedHandler serves the per-user feed produced by fan-out
type FeedHandler struct {
	feedRepository repositories.FeedRepository
	userRepository repositories.UserRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedRepo repositories.FeedRepository, userRepo repositories.UserRepository) *FeedHandler {
	return &FeedHandler{
		feedRepository: feedRepo,
		userRepository: userRepo,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// EnrichedFeedEntry is a feed entry with actor info
type EnrichedFeedEntry struct {
	models.FeedEntry
	Actor models.UserCompact `json:"actor"`
}

// GetFeed returns the current user's feed entries, newest first
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	skip := int64((page - 1) * limit)

	entries, err := h.feedRepository.GetFeedByUserID(c.Request().Context(), currentUserID, skip, int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	userCache := make(map[uint]models.UserCompact)
	enriched := make([]EnrichedFeedEntry, len(entries))
	for i, entry := range entries {
		enriched[i] = EnrichedFeedEntry{FeedEntry: entry}
		if actor, ok := userCache[entry.ActorID]; ok {
			enriched[i].Actor = actor
		} else if user, err := h.userRepository.GetUserByID(entry.ActorID); err == nil {
			compact := user.ToCompact()
			userCache[entry.ActorID] = compact
			enriched[i].Actor = compact
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"entries": enriched,
		},
		"meta": echo.Map{
			"currentPage":  page,
			"itemsPerPage": limit,
		},
	})
}
