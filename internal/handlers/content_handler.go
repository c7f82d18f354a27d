package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rdmitry/openforum/backend/internal/contentmgr"
	"github.com/rdmitry/openforum/backend/internal/models"
	"github.com/rdmitry/openforum/backend/internal/repositories"
)

// ContentHandler exposes the content manager over HTTP: post and comment
// authoring, comment reading and markup preview
type ContentHandler struct {
	contentManager *contentmgr.Manager
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(manager *contentmgr.Manager) *ContentHandler {
	return &ContentHandler{contentManager: manager}
}

// RegisterContentRoutes registers content-related routes
func (h *ContentHandler) RegisterContentRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.POST("/posts/:post_id/comments", h.CreateComment)
	g.GET("/posts/:post_id/comments", h.GetPostComments)
	g.GET("/sites/:name/posts", h.GetSitePosts)
	g.GET("/users/:id/posts", h.GetUserPosts)
	g.GET("/users/:id/comments", h.GetUserComments)
	g.POST("/preview", h.Preview)
}

// pagination reads page/limit query params with the handler defaults
func pagination(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	return page, limit
}

// CreatePost creates a new post under a site
func (h *ContentHandler) CreatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.contentManager.CreatePost(c.Request().Context(), req.SiteName, currentUserID, req.Title, req.Content, req.Format)
	if err != nil {
		if errors.Is(err, contentmgr.ErrSiteNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Site not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, view)
}

// CreateComment creates a new comment on a post
func (h *ContentHandler) CreateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	postID := c.Param("post_id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.contentManager.CreateComment(c.Request().Context(), currentUserID, postID, req.ParentID, req.Content, req.Format)
	if err != nil {
		if errors.Is(err, contentmgr.ErrCommentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Parent comment not found")
		}
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, view)
}

// GetPostComments retrieves all comments of a post as view-models
func (h *ContentHandler) GetPostComments(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	postID := c.Param("post_id")

	views, err := h.contentManager.GetPostComments(c.Request().Context(), postID, currentUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"comments": views}})
}

// GetSitePosts retrieves a page of a site's posts as view-models
func (h *ContentHandler) GetSitePosts(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	page, limit := pagination(c)

	views, err := h.contentManager.GetSitePosts(c.Request().Context(), c.Param("name"), currentUserID, int64((page-1)*limit), int64(limit))
	if err != nil {
		if errors.Is(err, contentmgr.ErrSiteNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Site not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"posts": views}})
}

// GetUserPosts retrieves a page of a user's posts as view-models
func (h *ContentHandler) GetUserPosts(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	page, limit := pagination(c)

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	views, err := h.contentManager.GetUserPosts(c.Request().Context(), uint(userID), currentUserID, int64((page-1)*limit), int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"posts": views}})
}

// GetUserComments retrieves a page of a user's comments as view-models
func (h *ContentHandler) GetUserComments(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	page, limit := pagination(c)

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	views, err := h.contentManager.GetUserComments(c.Request().Context(), uint(userID), currentUserID, (page-1)*limit, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"comments": views}})
}

// Preview renders markup without persisting anything
func (h *ContentHandler) Preview(c echo.Context) error {
	var req models.PreviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"content": h.contentManager.Preview(req.Content)})
}
