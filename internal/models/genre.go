package models

// Genre represents a game genre (e.g., "RPG", "Shooter", "Platformer").
type Genre struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name" validate:"required,max=100"`

	GameGenres []GameGenre `gorm:"foreignKey:GenreID" json:"-"`
}
