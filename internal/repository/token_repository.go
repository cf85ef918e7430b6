package repository

import (
	"quiz_room_hub/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TokenRepository struct {
	DB *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{DB: db}
}

func (r *TokenRepository) Revoke(jti string, userID uint, expiresAt time.Time) error {
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.RevokedToken{
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}).Error
}

func (r *TokenRepository) IsRevoked(jti string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.RevokedToken{}).Where("jti = ?", jti).Count(&count).Error
	return count > 0, err
}

// PurgeExpired drops entries whose token could no longer be used anyway.
func (r *TokenRepository) PurgeExpired(now time.Time) (int64, error) {
	res := r.DB.Where("expires_at < ?", now).Delete(&model.RevokedToken{})
	return res.RowsAffected, res.Error
}
