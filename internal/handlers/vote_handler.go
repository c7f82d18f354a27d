package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rdmitry/openforum/backend/internal/repositories"
	"gorm.io/gorm"
)

// VoteHandler handles comment vote HTTP requests
type VoteHandler struct {
	voteRepository    repositories.VoteRepository
	commentRepository repositories.CommentRepository
}

// NewVoteHandler creates a new VoteHandler
func NewVoteHandler(voteRepo repositories.VoteRepository, commentRepo repositories.CommentRepository) *VoteHandler {
	return &VoteHandler{
		voteRepository:    voteRepo,
		commentRepository: commentRepo,
	}
}

// RegisterVoteRoutes registers vote-related routes
func (h *VoteHandler) RegisterVoteRoutes(g *echo.Group) {
	g.PUT("/comments/:id/vote", h.SetVote)
	g.DELETE("/comments/:id/vote", h.DeleteVote)
}

// VoteRequest defines the request body for voting on a comment
type VoteRequest struct {
	Value int `json:"value" validate:"required,oneof=1 -1"`
}

// SetVote records or replaces the caller's vote on a comment
func (h *VoteHandler) SetVote(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	var req VoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.commentRepository.GetCommentByID(uint(commentID)); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.voteRepository.SetVote(uint(commentID), currentUserID, req.Value); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"value": req.Value}})
}

// DeleteVote removes the caller's vote on a comment
func (h *VoteHandler) DeleteVote(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	if err := h.voteRepository.DeleteVote(uint(commentID), currentUserID); err != nil {
		if err.Error() == "vote not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Vote not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
