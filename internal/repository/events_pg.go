package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"gateway/internal/domain"
	"gateway/internal/infra/postgres"

	"gorm.io/gorm"
)

type EventsRepo struct {
}

func InitEventsRepo() *EventsRepo {
	return &EventsRepo{}
}

// Create is a no-op when the same (relation, type) event already exists,
// so a status can only enqueue one credit / one webhook. The unique index
// on (relation_id, type) closes the race between concurrent creators.
func (r *EventsRepo) Create(tx *gorm.DB, eventType string, eventRelationID uint, payload string) error {
	if !json.Valid([]byte(payload)) {
		return fmt.Errorf("invalid payload: %s", payload)
	}

	_, err := r.Find(tx, eventRelationID, eventType)
	if err != nil {
		if !postgres.IsNotFound(err) {
			return err
		}

		err = tx.Create(&domain.Events{Type: eventType, RelationID: eventRelationID, Payload: payload, Status: "new"}).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) { // another tx got there first
			return nil
		}
		return err
	}
	return nil
}

// Done claims the event: only a "new" row flips, the returned count tells the
// caller whether it won the claim.
func (r *EventsRepo) Done(tx *gorm.DB, eventRelationID uint, eventType string) (int64, error) {
	res := tx.Model(&domain.Events{}).
		Where("relation_id = ? AND type = ? AND status = ?", eventRelationID, eventType, "new").
		Update("status", "done")
	return res.RowsAffected, res.Error
}

func (r *EventsRepo) Find(tx *gorm.DB, eventRelationID uint, eventType string) (*domain.Events, error) {
	var existsEvent domain.Events
	return &existsEvent, tx.Where(&domain.Events{RelationID: eventRelationID, Type: eventType}).First(&existsEvent).Error
}
