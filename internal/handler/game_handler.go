package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gamelibrary/backend/internal/errs"
	"gamelibrary/backend/internal/models"
	"gamelibrary/backend/internal/service"
	"gamelibrary/backend/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

// region --- DTOs ---

// GameInput is the payload for creating or replacing a game.
// It binds from JSON bodies and from HTML forms.
type GameInput struct {
	Name        string `json:"name" form:"name" example:"Chrono Trigger"`
	ReleaseDate string `json:"release_date" form:"release_date" example:"1995-03-11"` // YYYY-MM-DD, optional
	Description string `json:"description" form:"description"`
	GenreIDs    []uint `json:"genre_ids" form:"genre_ids"`
	PlatformIDs []uint `json:"platform_ids" form:"platform_ids"`
}

// toModel builds the game and validates it.
func (in GameInput) toModel(id uint) (*models.Game, error) {
	game := &models.Game{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
	}

	var dateErr *errs.FieldError
	if s := strings.TrimSpace(in.ReleaseDate); s != "" {
		d, err := time.Parse(dateLayout, s)
		if err != nil {
			dateErr = &errs.FieldError{Field: "ReleaseDate", Error: "ReleaseDate must be a date (YYYY-MM-DD)"}
		} else {
			game.ReleaseDate = &d
		}
	}

	for _, gid := range uniqueIDs(in.GenreIDs) {
		game.GameGenres = append(game.GameGenres, models.GameGenre{GameID: id, GenreID: gid})
	}
	for _, pid := range uniqueIDs(in.PlatformIDs) {
		game.GamePlatforms = append(game.GamePlatforms, models.GamePlatform{GameID: id, PlatformID: pid})
	}

	err := validation.Struct(game)
	if dateErr != nil {
		var verr *errs.ValidationError
		if !errors.As(err, &verr) {
			verr = &errs.ValidationError{}
		}
		verr.Errors = append(verr.Errors, *dateErr)
		return game, verr
	}
	return game, err
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	var out []uint
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

type GameResponse struct {
	ID          uint               `json:"id"`
	Name        string             `json:"name"`
	ReleaseDate *string            `json:"release_date"`
	Description string             `json:"description"`
	Genres      []GenreResponse    `json:"genres"`
	Platforms   []PlatformResponse `json:"platforms"`
}

func newGameResponse(game models.Game) GameResponse {
	resp := GameResponse{
		ID:          game.ID,
		Name:        game.Name,
		Description: game.Description,
		Genres:      []GenreResponse{},
		Platforms:   []PlatformResponse{},
	}
	if game.ReleaseDate != nil {
		d := game.ReleaseDate.Format(dateLayout)
		resp.ReleaseDate = &d
	}
	for _, g := range game.Genres() {
		resp.Genres = append(resp.Genres, newGenreResponse(*g))
	}
	for _, p := range game.Platforms() {
		resp.Platforms = append(resp.Platforms, newPlatformResponse(*p))
	}
	return resp
}

func newGameResponses(games []models.Game) []GameResponse {
	out := make([]GameResponse, 0, len(games))
	for _, g := range games {
		out = append(out, newGameResponse(g))
	}
	return out
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error  string            `json:"error" example:"An error message"`
	Errors []errs.FieldError `json:"errors,omitempty"`
}

// endregion

// GameHandler serves the JSON API for games.
type GameHandler struct {
	games *service.GameService
	log   *logrus.Logger
}

func NewGameHandler(games *service.GameService, log *logrus.Logger) *GameHandler {
	return &GameHandler{games: games, log: log}
}

// GetGames godoc
// @Summary      List games
// @Description  Retrieves every game with its genres and platforms.
// @Tags         games
// @Produce      json
// @Success      200  {array}   GameResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /games [get]
func (h *GameHandler) GetGames(c *gin.Context) {
	games, err := h.games.ListAll(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGameResponses(games))
}

// GetNewestGames godoc
// @Summary      List the newest games
// @Description  Runs the store's GetNewestGames routine.
// @Tags         games
// @Produce      json
// @Success      200  {array}   GameResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /games/newest [get]
func (h *GameHandler) GetNewestGames(c *gin.Context) {
	games, err := h.games.GetNewest(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGameResponses(games))
}

// GetGameByID godoc
// @Summary      Get a single game by ID
// @Description  Retrieves a game with its genres and platforms.
// @Tags         games
// @Produce      json
// @Param        id   path      int  true  "Game ID"
// @Success      200  {object}  GameResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Router       /games/{id} [get]
func (h *GameHandler) GetGameByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	game, err := h.games.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGameResponse(*game))
}

// CreateGame godoc
// @Summary      Create a new game
// @Description  Creates a game and links it to the given genres and platforms.
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        input body GameInput true "Game Info"
// @Success      201  {object}  GameResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Unknown genre or platform"
// @Router       /games [post]
func (h *GameHandler) CreateGame(c *gin.Context) {
	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	game, err := input.toModel(0)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if err := h.games.Add(c.Request.Context(), game); err != nil {
		h.log.WithError(err).WithField("name", game.Name).Error("Error creating game")
		h.writeError(c, err)
		return
	}
	h.log.WithFields(logrus.Fields{"game_id": game.ID, "name": game.Name}).Info("Game created successfully")

	h.respondWithGame(c, http.StatusCreated, game.ID)
}

// UpdateGame godoc
// @Summary      Replace a game
// @Description  Overwrites every field of a game and replaces its genres and platforms.
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        id    path      int       true  "Game ID"
// @Param        input body      GameInput true  "New Game Info"
// @Success      200   {object}  GameResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse "Game not found"
// @Router       /games/{id} [put]
func (h *GameHandler) UpdateGame(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	game, err := input.toModel(id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if err := h.games.Update(c.Request.Context(), game); err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			h.log.WithError(err).WithFields(logrus.Fields{"game_id": id, "name": game.Name}).Error("Error updating game")
		}
		h.writeError(c, err)
		return
	}
	h.log.WithFields(logrus.Fields{"game_id": id, "name": game.Name}).Info("Game updated successfully")

	h.respondWithGame(c, http.StatusOK, id)
}

// DeleteGame godoc
// @Summary      Delete a game
// @Description  Deletes a game and its genre/platform links. Deleting a missing game succeeds.
// @Tags         games
// @Param        id path int true "Game ID"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Router       /games/{id} [delete]
func (h *GameHandler) DeleteGame(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.games.Delete(c.Request.Context(), id); err != nil {
		h.log.WithError(err).WithField("game_id", id).Error("Error deleting game")
		h.writeError(c, err)
		return
	}
	h.log.WithField("game_id", id).Info("Game deleted successfully")

	c.Status(http.StatusNoContent)
}

// respondWithGame reloads the game so genre and platform names are resolved.
func (h *GameHandler) respondWithGame(c *gin.Context, status int, id uint) {
	game, err := h.games.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(status, newGameResponse(*game))
}

func (h *GameHandler) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid ID"})
		return 0, false
	}
	return uint(id), true
}

func (h *GameHandler) writeError(c *gin.Context, err error) {
	writeError(c, h.log, err)
}

// writeError answers with the status errs.HTTPStatus picks. Store details are
// logged, not returned.
func writeError(c *gin.Context, log *logrus.Logger, err error) {
	status := errs.HTTPStatus(err)

	var verr *errs.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(status, ErrorResponse{Error: "Validation failed", Errors: verr.Errors})
	case status == http.StatusNotFound:
		c.JSON(status, ErrorResponse{Error: "Game not found"})
	case status == http.StatusConflict:
		c.JSON(status, ErrorResponse{Error: "Conflicting or unknown reference"})
	default:
		log.WithError(err).WithField("path", c.FullPath()).Error("Request failed")
		c.JSON(status, ErrorResponse{Error: http.StatusText(status)})
	}
}
