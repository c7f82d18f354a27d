package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rdmitry/openforum/backend/internal/models"
	"github.com/rdmitry/openforum/backend/internal/repositories"
)

// FollowHandler handles follow-related HTTP requests. Following a user
// subscribes the follower's feed to that user's new posts.
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

// FollowUser subscribes the current user to another user's posts
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	if uint(targetID) == currentUserID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	}

	if _, err := h.userRepository.GetUserByID(uint(targetID)); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	isFollowing, err := h.followRepository.IsFollowing(currentUserID, uint(targetID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if isFollowing {
		return echo.NewHTTPError(http.StatusConflict, "Already following this user")
	}

	follow := &models.Follow{FollowerID: currentUserID, FollowingID: uint(targetID)}
	if err := h.followRepository.CreateFollow(follow); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, follow)
}

// UnfollowUser removes the current user's subscription to another user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if err := h.followRepository.DeleteFollow(currentUserID, uint(targetID)); err != nil {
		if err.Error() == "follow relationship not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Not following this user")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// GetFollowers lists the users following the given user
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	return h.listRelated(c, h.followRepository.GetFollowerIDs, "followers")
}

// GetFollowing lists the users the given user follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	return h.listRelated(c, h.followRepository.GetFollowingIDs, "following")
}

func (h *FollowHandler) listRelated(c echo.Context, ids func(uint) ([]uint, error), key string) error {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	if _, err := h.userRepository.GetUserByID(uint(targetID)); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	userIDs, err := ids(uint(targetID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	users := make([]models.UserCompact, 0, len(userIDs))
	for _, id := range userIDs {
		user, err := h.userRepository.GetUserByID(id)
		if err != nil {
			continue
		}
		users = append(users, user.ToCompact())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{key: users}})
}
