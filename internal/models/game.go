package models

import "time"

// Game represents a video game in the library.
// Genres and platforms hang off it through the GameGenre and GamePlatform join rows.
type Game struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:200;not null" json:"name" validate:"required,max=200"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	Description string     `gorm:"size:1000" json:"description" validate:"max=1000"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	GameGenres    []GameGenre    `gorm:"foreignKey:GameID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"game_genres"`
	GamePlatforms []GamePlatform `gorm:"foreignKey:GameID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"game_platforms"`
}

// Genres returns the genres resolved through the game's join rows.
func (g Game) Genres() []*Genre {
	out := make([]*Genre, 0, len(g.GameGenres))
	for _, gg := range g.GameGenres {
		if gg.Genre != nil {
			out = append(out, gg.Genre)
		}
	}
	return out
}

// Platforms returns the platforms resolved through the game's join rows.
func (g Game) Platforms() []*Platform {
	out := make([]*Platform, 0, len(g.GamePlatforms))
	for _, gp := range g.GamePlatforms {
		if gp.Platform != nil {
			out = append(out, gp.Platform)
		}
	}
	return out
}
