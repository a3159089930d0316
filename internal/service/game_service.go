// Package service holds the data-access layer for the game library.
package service

import (
	"context"
	"errors"

	"gamelibrary/backend/internal/database"
	"gamelibrary/backend/internal/errs"
	"gamelibrary/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GameService performs CRUD over games and resolves their genres and platforms.
// It is safe for concurrent use; isolation is left to the store.
type GameService struct {
	db *gorm.DB
}

// NewGameService returns a GameService backed by db.
func NewGameService(db *gorm.DB) *GameService {
	return &GameService{db: db}
}

// withAssociations eager-loads join rows and the genre/platform each one points at.
func withAssociations(db *gorm.DB) *gorm.DB {
	return db.Preload("GameGenres.Genre").Preload("GamePlatforms.Platform")
}

// ListAll returns every game ordered by id, associations resolved.
func (s *GameService) ListAll(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	if err := withAssociations(s.db.WithContext(ctx)).Order("id").Find(&games).Error; err != nil {
		return nil, errs.Persistence("list games", err)
	}
	return normalizeAll(games), nil
}

// GetByID returns the game with id, or an error wrapping errs.ErrNotFound.
func (s *GameService) GetByID(ctx context.Context, id uint) (*models.Game, error) {
	var game models.Game
	err := withAssociations(s.db.WithContext(ctx)).First(&game, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("game", id)
	}
	if err != nil {
		return nil, errs.Persistence("get game", err)
	}
	normalize(&game)
	return &game, nil
}

// Add stores a new game and its join rows. game.ID is assigned by the store.
func (s *GameService) Add(ctx context.Context, game *models.Game) error {
	game.ID = 0
	for i := range game.GameGenres {
		game.GameGenres[i].GameID = 0
	}
	for i := range game.GamePlatforms {
		game.GamePlatforms[i].GameID = 0
	}

	if err := s.db.WithContext(ctx).Create(game).Error; err != nil {
		return errs.Persistence("add game", err)
	}
	normalize(game)
	return nil
}

// Update overwrites the stored game matching game.ID with every supplied field
// and replaces its genre and platform sets.
func (s *GameService) Update(ctx context.Context, game *models.Game) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Game
		if err := tx.Select("id", "created_at").First(&existing, game.ID).Error; err != nil {
			return err
		}
		game.CreatedAt = existing.CreatedAt

		if err := tx.Omit(clause.Associations).Save(game).Error; err != nil {
			return err
		}

		if err := tx.Where("game_id = ?", game.ID).Delete(&models.GameGenre{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id = ?", game.ID).Delete(&models.GamePlatform{}).Error; err != nil {
			return err
		}

		for i := range game.GameGenres {
			game.GameGenres[i].GameID = game.ID
		}
		for i := range game.GamePlatforms {
			game.GamePlatforms[i].GameID = game.ID
		}
		if len(game.GameGenres) > 0 {
			if err := tx.Create(&game.GameGenres).Error; err != nil {
				return err
			}
		}
		if len(game.GamePlatforms) > 0 {
			if err := tx.Create(&game.GamePlatforms).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NotFound("game", game.ID)
	}
	if err != nil {
		return errs.Persistence("update game", err)
	}
	normalize(game)
	return nil
}

// Delete removes the game with id and its join rows. A missing id is not an error.
func (s *GameService) Delete(ctx context.Context, id uint) error {
	db := s.db.WithContext(ctx)

	var game models.Game
	err := db.First(&game, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return errs.Persistence("delete game", err)
	}

	if err := db.Select("GameGenres", "GamePlatforms").Delete(&game).Error; err != nil {
		return errs.Persistence("delete game", err)
	}
	return nil
}

// GetNewest returns the games selected by the store's GetNewestGames routine,
// in the routine's order, with associations resolved.
func (s *GameService) GetNewest(ctx context.Context) ([]models.Game, error) {
	db := s.db.WithContext(ctx)

	var rows []models.Game
	if err := db.Raw(database.NewestGamesQuery(s.db)).Scan(&rows).Error; err != nil {
		return nil, errs.Persistence("get newest games", err)
	}
	if len(rows) == 0 {
		return []models.Game{}, nil
	}

	ids := make([]uint, len(rows))
	for i, g := range rows {
		ids[i] = g.ID
	}

	var hydrated []models.Game
	if err := withAssociations(db).Where("id IN ?", ids).Find(&hydrated).Error; err != nil {
		return nil, errs.Persistence("get newest games", err)
	}

	byID := make(map[uint]models.Game, len(hydrated))
	for _, g := range hydrated {
		byID[g.ID] = g
	}
	games := make([]models.Game, 0, len(ids))
	for _, id := range ids {
		if g, ok := byID[id]; ok {
			games = append(games, g)
		}
	}
	return normalizeAll(games), nil
}

// normalize turns absent association collections into empty ones.
func normalize(g *models.Game) {
	if g.GameGenres == nil {
		g.GameGenres = []models.GameGenre{}
	}
	if g.GamePlatforms == nil {
		g.GamePlatforms = []models.GamePlatform{}
	}
}

func normalizeAll(games []models.Game) []models.Game {
	if games == nil {
		return []models.Game{}
	}
	for i := range games {
		normalize(&games[i])
	}
	return games
}
