package services

import (
	"context"
	"fmt"
	"strings"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/utils"
)

// MoveDirection is the direction of a single activity move.
type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

type ActivityService struct {
	Activities  ActivityStore
	Itineraries ItineraryStore
	RequestID   string
}

func (s ActivityService) store() ActivityStore {
	return activityStoreOr(s.Activities)
}

// ListActivities returns an itinerary's activities by day number, then
// sort order.
func (s ActivityService) ListActivities(ctx context.Context, itineraryID int64) ([]models.Activity, error) {
	acts, err := s.store().FetchActivities(ctx, itineraryID)
	if err != nil {
		return nil, err
	}
	domain.SortActivities(acts)
	return acts, nil
}

// AddActivity appends an activity to the end of its day.
func (s ActivityService) AddActivity(ctx context.Context, dayID int64, in models.Activity) (models.Activity, error) {
	if strings.TrimSpace(in.Title) == "" {
		return models.Activity{}, domain.ValidationError{Field: "title", Msg: "required"}
	}
	day, err := itineraryStoreOr(s.Itineraries).GetDay(ctx, dayID)
	if err != nil {
		return models.Activity{}, err
	}
	existing, err := s.store().FetchDayActivities(ctx, dayID)
	if err != nil {
		return models.Activity{}, err
	}

	in.ID = 0
	in.DayID = dayID
	in.DayNumber = day.DayNumber
	in.Title = utils.NormalizeSpace(in.Title)
	in.SortOrder = domain.NextSortOrder(existing)

	out, err := s.store().InsertActivity(ctx, in)
	if err != nil {
		utils.LogFailure(s.RequestID, "activities", "add_activity", err)
		return models.Activity{}, err
	}
	utils.LogEvent(s.RequestID, "activities", "add_activity", fmt.Sprintf("day_id=%d sort_order=%d", dayID, out.SortOrder))
	return out, nil
}

// UpdateActivity edits content fields. Day and sort order are kept.
func (s ActivityService) UpdateActivity(ctx context.Context, id int64, in models.Activity) (models.Activity, error) {
	if strings.TrimSpace(in.Title) == "" {
		return models.Activity{}, domain.ValidationError{Field: "title", Msg: "required"}
	}
	cur, err := s.store().GetActivity(ctx, id)
	if err != nil {
		return models.Activity{}, err
	}
	cur.Title = utils.NormalizeSpace(in.Title)
	cur.Description = in.Description
	cur.Location = in.Location
	cur.TimeStart = in.TimeStart
	cur.TimeEnd = in.TimeEnd
	cur.IsTransfer = in.IsTransfer

	if err := s.store().UpdateActivity(ctx, cur); err != nil {
		return models.Activity{}, err
	}
	utils.LogEvent(s.RequestID, "activities", "update_activity", fmt.Sprintf("id=%d", id))
	return cur, nil
}

// DeleteActivity leaves a permanent gap in the day's sort order.
func (s ActivityService) DeleteActivity(ctx context.Context, id int64) error {
	if err := s.store().DeleteActivity(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "activities", "delete_activity", fmt.Sprintf("id=%d", id))
	return nil
}

// MoveActivity swaps an activity with its neighbour in the given
// direction. Moving past either end is a no-op.
func (s ActivityService) MoveActivity(ctx context.Context, id int64, dir MoveDirection) ([]models.Activity, error) {
	if dir != MoveUp && dir != MoveDown {
		return nil, domain.ValidationError{Field: "direction", Msg: "must be up or down"}
	}
	cur, err := s.store().GetActivity(ctx, id)
	if err != nil {
		return nil, err
	}
	siblings, err := s.store().FetchDayActivities(ctx, cur.DayID)
	if err != nil {
		return nil, err
	}
	domain.SortActivities(siblings)

	idx := -1
	for i, a := range siblings {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.NotFoundError{Resource: "activity"}
	}
	other := idx - 1
	if dir == MoveDown {
		other = idx + 1
	}
	if other < 0 || other >= len(siblings) {
		return siblings, nil
	}

	a, b := siblings[idx], siblings[other]
	if err := s.store().SwapSortOrder(ctx, a, b); err != nil {
		return nil, err
	}
	siblings[idx].SortOrder, siblings[other].SortOrder = b.SortOrder, a.SortOrder
	domain.SortActivities(siblings)

	utils.LogEvent(s.RequestID, "activities", "move_activity", fmt.Sprintf("id=%d dir=%s", id, dir))
	return siblings, nil
}
