package database

import (
	"context"
	"errors"
	"time"

	"github.com/rpupo63/agency-site-backend/errs"
	"github.com/rpupo63/agency-site-backend/models"
	"gorm.io/gorm"
)

// SessionRepo keeps login sessions in the sessions table.
type SessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) *SessionRepo {
	return &SessionRepo{db}
}

// Get returns the session or nil when it does not exist. Expiry is left to the caller.
func (r *SessionRepo) Get(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.NewDatabaseError("get", "session", err)
	}
	return &session, nil
}

func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Session{}).Error; err != nil {
		return errs.NewDatabaseError("delete", "session", err)
	}
	return nil
}

// Replace revokes every session of the user and stores session in one transaction.
func (r *SessionRepo) Replace(ctx context.Context, session models.Session) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", session.UserID).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		return tx.Create(&session).Error
	})
	if err != nil {
		return errs.NewDatabaseError("replace", "sessions", err)
	}
	return nil
}

// DeleteExpired removes sessions that expired before now and reports how many went.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at <= ?", now.UTC()).Delete(&models.Session{})
	if res.Error != nil {
		return 0, errs.NewDatabaseError("delete", "expired sessions", res.Error)
	}
	return res.RowsAffected, nil
}
