package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"spaceHub/internal/errs"
	"spaceHub/internal/models"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{
		db: db,
	}
}

func preloadEvent(db *gorm.DB) *gorm.DB {
	return db.Preload("Creator").Preload("Attendees")
}

// CreateEvent stores the event and links event.Attendees, which must be existing users.
func (er *EventRepository) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	attendees := event.Attendees
	err := er.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(event).Error; err != nil {
			return err
		}
		if len(attendees) == 0 {
			return nil
		}
		return tx.Model(event).Association("Attendees").Append(attendees)
	})
	if err != nil {
		return nil, err
	}
	return er.FindEventByID(ctx, event.ID)
}

func (er *EventRepository) FindEventByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	if err := er.db.WithContext(ctx).Scopes(preloadEvent).First(&event, id).Error; err != nil {
		return nil, notFound(err, errs.ErrEventNotFound)
	}
	return &event, nil
}

// FindEvents lists a workspace's events by start time. A non-nil from or to keeps only
// events overlapping that window.
func (er *EventRepository) FindEvents(ctx context.Context, workspaceID uint, from, to *time.Time) ([]models.Event, error) {
	var events []models.Event
	query := er.db.WithContext(ctx).Scopes(preloadEvent).Where("workspace_id = ?", workspaceID)
	if from != nil {
		query = query.Where("\"end\" >= ?", *from)
	}
	if to != nil {
		query = query.Where("start <= ?", *to)
	}
	if err := query.Order("start ASC").Order("id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// UpdateEvent saves the event's columns; attendees replaces the attendee list unless nil.
func (er *EventRepository) UpdateEvent(ctx context.Context, event *models.Event, attendees []models.User) (*models.Event, error) {
	err := er.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(event).Error; err != nil {
			return err
		}
		switch {
		case attendees == nil:
			return nil
		case len(attendees) == 0:
			return tx.Model(event).Association("Attendees").Clear()
		default:
			return tx.Model(event).Association("Attendees").Replace(attendees)
		}
	})
	if err != nil {
		return nil, err
	}
	return er.FindEventByID(ctx, event.ID)
}

func (er *EventRepository) DeleteEvent(ctx context.Context, event *models.Event) error {
	return er.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(event).Association("Attendees").Clear(); err != nil {
			return err
		}
		return tx.Delete(event).Error
	})
}
