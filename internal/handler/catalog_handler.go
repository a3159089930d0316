package handler

import (
	"net/http"

	"gamelibrary/backend/internal/models"
	"gamelibrary/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type NameInput struct {
	Name string `json:"name" binding:"required" example:"RPG"`
}

type GenreResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func newGenreResponse(genre models.Genre) GenreResponse {
	return GenreResponse{ID: genre.ID, Name: genre.Name}
}

type PlatformResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func newPlatformResponse(platform models.Platform) PlatformResponse {
	return PlatformResponse{ID: platform.ID, Name: platform.Name}
}

// CatalogHandler serves genres and platforms.
type CatalogHandler struct {
	catalog *service.CatalogService
	log     *logrus.Logger
}

func NewCatalogHandler(catalog *service.CatalogService, log *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, log: log}
}

// GetGenres godoc
// @Summary      Get all genres
// @Tags         genres
// @Produce      json
// @Success      200  {array}   GenreResponse
// @Router       /genres [get]
func (h *CatalogHandler) GetGenres(c *gin.Context) {
	genres, err := h.catalog.ListGenres(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	response := make([]GenreResponse, 0, len(genres))
	for _, g := range genres {
		response = append(response, newGenreResponse(g))
	}
	c.JSON(http.StatusOK, response)
}

// CreateGenre godoc
// @Summary      Create a new genre
// @Tags         genres
// @Accept       json
// @Produce      json
// @Param        input body NameInput true "Genre Info"
// @Success      201  {object}  GenreResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /genres [post]
func (h *CatalogHandler) CreateGenre(c *gin.Context) {
	var input NameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	genre := models.Genre{Name: input.Name}
	if err := h.catalog.AddGenre(c.Request.Context(), &genre); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, newGenreResponse(genre))
}

// GetPlatforms godoc
// @Summary      Get all platforms
// @Tags         platforms
// @Produce      json
// @Success      200  {array}   PlatformResponse
// @Router       /platforms [get]
func (h *CatalogHandler) GetPlatforms(c *gin.Context) {
	platforms, err := h.catalog.ListPlatforms(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	response := make([]PlatformResponse, 0, len(platforms))
	for _, p := range platforms {
		response = append(response, newPlatformResponse(p))
	}
	c.JSON(http.StatusOK, response)
}

// CreatePlatform godoc
// @Summary      Create a new platform
// @Tags         platforms
// @Accept       json
// @Produce      json
// @Param        input body NameInput true "Platform Info"
// @Success      201  {object}  PlatformResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /platforms [post]
func (h *CatalogHandler) CreatePlatform(c *gin.Context) {
	var input NameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	platform := models.Platform{Name: input.Name}
	if err := h.catalog.AddPlatform(c.Request.Context(), &platform); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, newPlatformResponse(platform))
}
