package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rdmitry/openforum/backend/internal/contentmgr"
	"github.com/rdmitry/openforum/backend/internal/models"
)

// WatchHandler exposes bookmark, watch and read-state operations
type WatchHandler struct {
	contentManager *contentmgr.Manager
}

// NewWatchHandler creates a new WatchHandler
func NewWatchHandler(manager *contentmgr.Manager) *WatchHandler {
	return &WatchHandler{contentManager: manager}
}

// RegisterWatchRoutes registers bookmark/watch/read routes
func (h *WatchHandler) RegisterWatchRoutes(g *echo.Group) {
	g.GET("/posts/:post_id/bookmark", h.GetBookmark)
	g.PUT("/posts/:post_id/bookmark", h.SetBookmark)
	g.PUT("/posts/:post_id/watch", h.SetWatch)
	g.PUT("/posts/:post_id/read", h.SetRead)
}

// GetBookmark returns the caller's flag record for a post
func (h *WatchHandler) GetBookmark(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	watch, err := h.contentManager.GetBookmark(c.Param("post_id"), currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, watch)
}

// SetBookmark sets the caller's bookmark flag on a post
func (h *WatchHandler) SetBookmark(c echo.Context) error {
	return h.setFlag(c, h.contentManager.SetBookmark)
}

// SetWatch sets the caller's watching flag on a post
func (h *WatchHandler) SetWatch(c echo.Context) error {
	return h.setFlag(c, h.contentManager.SetWatch)
}

func (h *WatchHandler) setFlag(c echo.Context, set func(postID string, userID uint, value bool) error) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.SetFlagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if err := set(c.Param("post_id"), currentUserID, req.Value); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"value": req.Value}})
}

// SetRead advances the caller's read state for a post across the
// notification and bookmark stores
func (h *WatchHandler) SetRead(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.SetReadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	changed, err := h.contentManager.SetRead(c.Param("post_id"), currentUserID, req.ReadCommentsCount, req.LastCommentID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"changed": changed}})
}
