package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"gamelibrary/backend/internal/errs"
	"gamelibrary/backend/internal/models"
	"gamelibrary/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const saveFailedMessage = "Unable to save changes."

type listPage struct {
	Title string
	Games []models.Game
}

type gamePage struct {
	Title string
	Game  *models.Game
}

type formPage struct {
	Title     string
	Action    string
	Input     GameInput
	Genres    []models.Genre
	Platforms []models.Platform
	Errors    *errs.ValidationError
	Message   string
}

// PageHandler renders the HTML pages for browsing and editing games.
type PageHandler struct {
	games   *service.GameService
	catalog *service.CatalogService
	log     *logrus.Logger
}

func NewPageHandler(games *service.GameService, catalog *service.CatalogService, log *logrus.Logger) *PageHandler {
	return &PageHandler{games: games, catalog: catalog, log: log}
}

// Index lists every game. GET /games
func (h *PageHandler) Index(c *gin.Context) {
	games, err := h.games.ListAll(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "index.tmpl", listPage{Title: "Games", Games: games})
}

// Newest lists the games chosen by the store's newest-games routine. GET /games/newest
func (h *PageHandler) Newest(c *gin.Context) {
	games, err := h.games.GetNewest(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "index.tmpl", listPage{Title: "Newest games", Games: games})
}

// Details shows one game. GET /games/details/:id
func (h *PageHandler) Details(c *gin.Context) {
	game, ok := h.loadGame(c, "Details")
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "details.tmpl", gamePage{Title: game.Name, Game: game})
}

// CreateForm renders an empty game form. GET /games/create
func (h *PageHandler) CreateForm(c *gin.Context) {
	h.renderForm(c, http.StatusOK, h.newFormPage(c, "Add game", "/games/create", GameInput{}))
}

// Create stores a game posted from the form. POST /games/create
func (h *PageHandler) Create(c *gin.Context) {
	var input GameInput
	if err := c.ShouldBind(&input); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	page := h.newFormPage(c, "Add game", "/games/create", input)

	game, err := input.toModel(0)
	if err != nil {
		h.log.WithField("name", input.Name).Warn("Create game validation failed")
		h.renderInvalid(c, page, err)
		return
	}

	if err := h.games.Add(c.Request.Context(), game); err != nil {
		h.log.WithError(err).WithField("name", game.Name).Error("Error creating game")
		page.Message = saveFailedMessage
		h.renderForm(c, errs.HTTPStatus(err), page)
		return
	}

	h.log.WithFields(logrus.Fields{"game_id": game.ID, "name": game.Name}).Info("Game created successfully")
	c.Redirect(http.StatusFound, "/games")
}

// EditForm renders the form filled with a stored game. GET /games/edit/:id
func (h *PageHandler) EditForm(c *gin.Context) {
	game, ok := h.loadGame(c, "Edit")
	if !ok {
		return
	}

	input := GameInput{Name: game.Name, Description: game.Description}
	if game.ReleaseDate != nil {
		input.ReleaseDate = game.ReleaseDate.Format(dateLayout)
	}
	for _, gg := range game.GameGenres {
		input.GenreIDs = append(input.GenreIDs, gg.GenreID)
	}
	for _, gp := range game.GamePlatforms {
		input.PlatformIDs = append(input.PlatformIDs, gp.PlatformID)
	}

	h.renderForm(c, http.StatusOK, h.newFormPage(c, "Edit "+game.Name, editAction(game.ID), input))
}

// Edit overwrites a stored game from the form. POST /games/edit/:id
func (h *PageHandler) Edit(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var input GameInput
	if err := c.ShouldBind(&input); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	page := h.newFormPage(c, "Edit game", editAction(id), input)

	game, err := input.toModel(id)
	if err != nil {
		h.log.WithFields(logrus.Fields{"game_id": id, "name": input.Name}).Warn("Edit game validation failed")
		h.renderInvalid(c, page, err)
		return
	}

	err = h.games.Update(c.Request.Context(), game)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		h.log.WithField("game_id", id).Warn("Edit requested for non-existent game")
		h.renderNotFound(c)
		return
	case err != nil:
		h.log.WithError(err).WithFields(logrus.Fields{"game_id": id, "name": game.Name}).Error("Error updating game")
		page.Message = saveFailedMessage
		h.renderForm(c, errs.HTTPStatus(err), page)
		return
	}

	h.log.WithFields(logrus.Fields{"game_id": id, "name": game.Name}).Info("Game updated successfully")
	c.Redirect(http.StatusFound, "/games")
}

// DeleteConfirm asks before deleting. GET /games/delete/:id
func (h *PageHandler) DeleteConfirm(c *gin.Context) {
	game, ok := h.loadGame(c, "Delete")
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "delete.tmpl", gamePage{Title: "Delete " + game.Name, Game: game})
}

// Delete removes the game and returns to the list. POST /games/delete/:id
func (h *PageHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.games.Delete(c.Request.Context(), id); err != nil {
		h.log.WithError(err).WithField("game_id", id).Error("Error deleting game")
	} else {
		h.log.WithField("game_id", id).Info("Game deleted successfully")
	}
	c.Redirect(http.StatusFound, "/games")
}

func (h *PageHandler) loadGame(c *gin.Context, action string) (*models.Game, bool) {
	id, ok := h.parseID(c)
	if !ok {
		return nil, false
	}

	game, err := h.games.GetByID(c.Request.Context(), id)
	if errors.Is(err, errs.ErrNotFound) {
		h.log.WithField("game_id", id).Warnf("%s requested for non-existent game", action)
		h.renderNotFound(c)
		return nil, false
	}
	if err != nil {
		h.renderError(c, err)
		return nil, false
	}
	return game, true
}

func (h *PageHandler) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.renderNotFound(c)
		return 0, false
	}
	return uint(id), true
}

// newFormPage loads the genre and platform choices. A failed lookup leaves them empty.
func (h *PageHandler) newFormPage(c *gin.Context, title, action string, input GameInput) formPage {
	page := formPage{Title: title, Action: action, Input: input}

	var err error
	if page.Genres, err = h.catalog.ListGenres(c.Request.Context()); err != nil {
		h.log.WithError(err).Warn("Could not load genres for form")
	}
	if page.Platforms, err = h.catalog.ListPlatforms(c.Request.Context()); err != nil {
		h.log.WithError(err).Warn("Could not load platforms for form")
	}
	return page
}

func (h *PageHandler) renderInvalid(c *gin.Context, page formPage, err error) {
	var verr *errs.ValidationError
	if !errors.As(err, &verr) {
		h.renderError(c, err)
		return
	}
	page.Errors = verr
	h.renderForm(c, http.StatusBadRequest, page)
}

func (h *PageHandler) renderForm(c *gin.Context, status int, page formPage) {
	c.HTML(status, "form.tmpl", page)
}

func (h *PageHandler) renderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "notfound.tmpl", gin.H{"Title": "Not found"})
}

func (h *PageHandler) renderError(c *gin.Context, err error) {
	h.log.WithError(err).WithField("path", c.FullPath()).Error("Request failed")
	c.HTML(errs.HTTPStatus(err), "error.tmpl", gin.H{"Title": "Error"})
}

func editAction(id uint) string {
	return fmt.Sprintf("/games/edit/%d", id)
}
