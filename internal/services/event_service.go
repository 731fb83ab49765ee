package services

import (
	"context"
	"strings"
	"time"

	"spaceHub/internal/access"
	"spaceHub/internal/enums"
	"spaceHub/internal/errs"
	"spaceHub/internal/models"
	"spaceHub/internal/repositories"
	"spaceHub/internal/validators"
)

type EventService struct {
	workspaceGate
	eventRepo *repositories.EventRepository
	authRepo  *repositories.AuthenticationRepository
}

func NewEventService(
	eventRepo *repositories.EventRepository,
	authRepo *repositories.AuthenticationRepository,
	workspaceRepo *repositories.WorkspaceRepository,
	authorizer access.Authorizer,
) *EventService {
	return &EventService{
		workspaceGate: workspaceGate{workspaceRepo: workspaceRepo, authorizer: authorizer},
		eventRepo:     eventRepo,
		authRepo:      authRepo,
	}
}

func (es *EventService) GetEvents(ctx context.Context, workspaceID, actorID uint, from, to *time.Time) ([]*models.EventResponse, []error) {
	if _, errors := es.authorize(ctx, workspaceID, actorID, access.Options{}); len(errors) > 0 {
		return nil, errors
	}

	events, err := es.eventRepo.FindEvents(ctx, workspaceID, from, to)
	if err != nil {
		return nil, []error{err}
	}
	responses := make([]*models.EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, events[i].ToEventResponse())
	}
	return responses, nil
}

// CreateEvent rejects an end that is not after start before anything is stored.
func (es *EventService) CreateEvent(ctx context.Context, workspaceID, actorID uint, body *models.EventRequestBody) (*models.EventResponse, []error) {
	if _, errors := es.authorize(ctx, workspaceID, actorID, access.Options{}); len(errors) > 0 {
		return nil, errors
	}
	if errors := validators.ValidateEvent(body); len(errors) > 0 {
		return nil, errors
	}

	attendees, err := es.authRepo.FindUsersByIDs(ctx, body.Attendees)
	if err != nil {
		return nil, []error{err}
	}

	event := &models.Event{
		WorkspaceID: workspaceID,
		CreatorID:   actorID,
		Attendees:   attendees,
	}
	applyEventBody(event, body)

	created, err := es.eventRepo.CreateEvent(ctx, event)
	if err != nil {
		return nil, []error{err}
	}
	return created.ToEventResponse(), nil
}

func (es *EventService) findEvent(ctx context.Context, workspaceID, eventID, actorID uint) (*models.Event, []error) {
	if _, errors := es.authorize(ctx, workspaceID, actorID, access.Options{}); len(errors) > 0 {
		return nil, errors
	}
	event, err := es.eventRepo.FindEventByID(ctx, eventID)
	if err != nil {
		return nil, []error{err}
	}
	if event.WorkspaceID != workspaceID {
		return nil, []error{errs.ErrEventNotFound}
	}
	return event, nil
}

// UpdateEvent replaces the event's fields with body; the same date rule as creation applies.
func (es *EventService) UpdateEvent(ctx context.Context, workspaceID, eventID, actorID uint, body *models.EventRequestBody) (*models.EventResponse, []error) {
	event, errors := es.findEvent(ctx, workspaceID, eventID, actorID)
	if len(errors) > 0 {
		return nil, errors
	}
	if errors := validators.ValidateEvent(body); len(errors) > 0 {
		return nil, errors
	}

	var attendees []models.User
	if body.Attendees != nil {
		found, err := es.authRepo.FindUsersByIDs(ctx, body.Attendees)
		if err != nil {
			return nil, []error{err}
		}
		attendees = append([]models.User{}, found...)
	}

	applyEventBody(event, body)
	event.Creator = nil
	event.Attendees = nil

	updated, err := es.eventRepo.UpdateEvent(ctx, event, attendees)
	if err != nil {
		return nil, []error{err}
	}
	return updated.ToEventResponse(), nil
}

func (es *EventService) DeleteEvent(ctx context.Context, workspaceID, eventID, actorID uint) []error {
	event, errors := es.findEvent(ctx, workspaceID, eventID, actorID)
	if len(errors) > 0 {
		return errors
	}
	if err := es.eventRepo.DeleteEvent(ctx, event); err != nil {
		return []error{err}
	}
	return nil
}

func applyEventBody(event *models.Event, body *models.EventRequestBody) {
	event.Title = strings.TrimSpace(body.Title)
	event.Description = body.Description
	event.Start = *body.Start
	event.End = *body.End
	event.AllDay = body.AllDay
	event.Location = body.Location
	event.Color = body.Color
	if event.Color == "" {
		event.Color = enums.DEFAULT_EVENT_COLOR
	}
	event.Recurring = body.Recurring
	event.RecurringPattern = body.RecurringPattern
	event.RecurringEndDate = body.RecurringEndDate
}
