package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rdmitry/openforum/backend/internal/models"
	"github.com/rdmitry/openforum/backend/internal/repositories"
	"gorm.io/gorm"
)

// SiteHandler handles site-related HTTP requests
type SiteHandler struct {
	siteRepository repositories.SiteRepository
}

// NewSiteHandler creates a new SiteHandler
func NewSiteHandler(siteRepo repositories.SiteRepository) *SiteHandler {
	return &SiteHandler{siteRepository: siteRepo}
}

// RegisterSiteRoutes registers site-related routes
func (h *SiteHandler) RegisterSiteRoutes(g *echo.Group) {
	g.POST("/sites", h.CreateSite)
	g.GET("/sites", h.GetSites)
	g.GET("/sites/:name", h.GetSite)
}

// CreateSite creates a new site
func (h *SiteHandler) CreateSite(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateSiteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.siteRepository.GetSiteByName(req.Name); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Site with this name already exists")
	}

	site := &models.Site{Name: req.Name, Title: req.Title}
	if err := h.siteRepository.CreateSite(site); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, site)
}

// GetSites lists all sites
func (h *SiteHandler) GetSites(c echo.Context) error {
	sites, err := h.siteRepository.GetAllSites()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, sites)
}

// GetSite retrieves a site by name
func (h *SiteHandler) GetSite(c echo.Context) error {
	site, err := h.siteRepository.GetSiteByName(c.Param("name"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Site not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, site)
}
