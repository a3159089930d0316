package models

// Platform represents a hardware or store platform a game ships on.
type Platform struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name" validate:"required,max=100"`

	GamePlatforms []GamePlatform `gorm:"foreignKey:PlatformID" json:"-"`
}
