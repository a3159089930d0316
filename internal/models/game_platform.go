package models

// GamePlatform links a game to a platform.
// The primary key is a composite of (GameID, PlatformID).
type GamePlatform struct {
	GameID     uint `gorm:"primaryKey" json:"game_id"`
	PlatformID uint `gorm:"primaryKey" json:"platform_id"`

	Platform *Platform `gorm:"foreignKey:PlatformID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"platform,omitempty"`
}
