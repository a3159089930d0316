package models

// GameGenre links a game to a genre.
// The primary key is a composite of (GameID, GenreID) so an edge exists at most once.
type GameGenre struct {
	GameID  uint `gorm:"primaryKey" json:"game_id"`
	GenreID uint `gorm:"primaryKey" json:"genre_id"`

	Genre *Genre `gorm:"foreignKey:GenreID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"genre,omitempty"`
}
