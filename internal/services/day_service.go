package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/utils"

	"github.com/shopspring/decimal"
)

// maxParallelDayWrites bounds concurrent inserts during InitializeDays.
const maxParallelDayWrites = 4

// DayService owns day numbering and day dates of an itinerary.
type DayService struct {
	Itineraries ItineraryStore
	RequestID   string
}

// DayFailure is one day number that could not be created.
type DayFailure struct {
	DayNumber int    `json:"day_number"`
	Error     string `json:"error"`
}

// DayInitReport lists the outcome of every missing day number. Callers
// retry only Failed.
type DayInitReport struct {
	ItineraryID int64        `json:"itinerary_id"`
	Created     []int        `json:"created"`
	Skipped     []int        `json:"skipped"`
	Failed      []DayFailure `json:"failed"`
}

// HasFailures reports whether any day number failed.
func (r DayInitReport) HasFailures() bool {
	return len(r.Failed) > 0
}

func (s DayService) store() ItineraryStore {
	return itineraryStoreOr(s.Itineraries)
}

// ListDays returns the days ordered by day number. Days without a stored
// date get one derived from the start date when the itinerary has one.
func (s DayService) ListDays(ctx context.Context, itineraryID int64) ([]models.Day, error) {
	it, err := s.store().GetItinerary(ctx, itineraryID)
	if err != nil {
		return nil, err
	}
	days, err := s.store().FetchDays(ctx, itineraryID)
	if err != nil {
		return nil, err
	}
	domain.SortDays(days)

	if it.StartDate == nil {
		return days, nil
	}
	for i := range days {
		if days[i].Date != nil {
			continue
		}
		if d, err := domain.DayDate(it.StartDate, days[i].DayNumber); err == nil {
			days[i].Date = &d
		}
	}
	return days, nil
}

// InitializeDays creates every day number in 1..duration that does not
// exist yet. Each number is written independently; a duplicate key counts
// as skipped, any other failure is reported for that number alone.
func (s DayService) InitializeDays(ctx context.Context, itineraryID int64) (DayInitReport, error) {
	report := DayInitReport{ItineraryID: itineraryID, Created: []int{}, Skipped: []int{}, Failed: []DayFailure{}}

	it, err := s.store().GetItinerary(ctx, itineraryID)
	if err != nil {
		return report, err
	}
	days, err := s.store().FetchDays(ctx, itineraryID)
	if err != nil {
		return report, err
	}

	existing := domain.DayNumbers(days)
	report.Skipped = append(report.Skipped, existing...)
	missing := domain.MissingDayNumbers(it.Duration, existing)

	dates := make(map[int]*time.Time, len(missing))
	if it.StartDate != nil {
		for _, n := range missing {
			d, err := domain.DayDate(it.StartDate, n)
			if err != nil {
				return report, err
			}
			dates[n] = &d
		}
	}

	// Issued writes run to completion even if the caller goes away.
	writeCtx := context.WithoutCancel(ctx)

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, maxParallelDayWrites)
	)
	for _, n := range missing {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			_, err := s.store().InsertDay(writeCtx, itineraryID, n, dates[n])

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				report.Created = append(report.Created, n)
			case domain.IsConflict(err):
				report.Skipped = append(report.Skipped, n)
			default:
				report.Failed = append(report.Failed, DayFailure{DayNumber: n, Error: err.Error()})
				utils.LogFailure(s.RequestID, "days", "init_day", fmt.Errorf("itinerary_id=%d day=%d: %w", itineraryID, n, err))
			}
		}(n)
	}
	wg.Wait()

	sort.Ints(report.Created)
	sort.Ints(report.Skipped)
	sort.Slice(report.Failed, func(i, j int) bool { return report.Failed[i].DayNumber < report.Failed[j].DayNumber })

	utils.LogEvent(s.RequestID, "days", "init_days", fmt.Sprintf("itinerary_id=%d created=%d skipped=%d failed=%d",
		itineraryID, len(report.Created), len(report.Skipped), len(report.Failed)))
	return report, nil
}

// AddDay appends a day at the lowest free day number, dated from the
// itinerary start when one is set.
func (s DayService) AddDay(ctx context.Context, itineraryID int64) (models.Day, error) {
	it, err := s.store().GetItinerary(ctx, itineraryID)
	if err != nil {
		return models.Day{}, err
	}
	days, err := s.store().FetchDays(ctx, itineraryID)
	if err != nil {
		return models.Day{}, err
	}

	n := domain.NextDayNumber(domain.DayNumbers(days))
	var date *time.Time
	if it.StartDate != nil {
		d, err := domain.DayDate(it.StartDate, n)
		if err != nil {
			return models.Day{}, err
		}
		date = &d
	}

	day, err := s.store().InsertDay(ctx, itineraryID, n, date)
	if err != nil {
		utils.LogFailure(s.RequestID, "days", "add_day", err)
		return models.Day{}, err
	}
	utils.LogEvent(s.RequestID, "days", "add_day", fmt.Sprintf("itinerary_id=%d day=%d", itineraryID, n))
	return day, nil
}

// DeleteDay removes a day and its activities. Surviving days keep their
// numbers; the gap is healed by the next AddDay.
func (s DayService) DeleteDay(ctx context.Context, itineraryID, dayID int64) error {
	if err := s.store().DeleteDay(ctx, itineraryID, dayID); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "days", "delete_day", fmt.Sprintf("itinerary_id=%d day_id=%d", itineraryID, dayID))
	return nil
}

// RedateDays recomputes every day's date from the current start date.
// It is the explicit re-date edit; nothing else rewrites stored dates.
func (s DayService) RedateDays(ctx context.Context, itineraryID int64) ([]models.Day, error) {
	it, err := s.store().GetItinerary(ctx, itineraryID)
	if err != nil {
		return nil, err
	}
	if it.StartDate == nil {
		return nil, domain.ValidationError{Field: "start_date", Msg: "itinerary has no start date"}
	}
	days, err := s.store().FetchDays(ctx, itineraryID)
	if err != nil {
		return nil, err
	}
	domain.SortDays(days)

	for i := range days {
		d, err := domain.DayDate(it.StartDate, days[i].DayNumber)
		if err != nil {
			return nil, err
		}
		if err := s.store().UpdateDayDate(ctx, days[i].ID, &d); err != nil {
			return nil, err
		}
		days[i].Date = &d
	}
	utils.LogEvent(s.RequestID, "days", "redate_days", fmt.Sprintf("itinerary_id=%d days=%d", itineraryID, len(days)))
	return days, nil
}

// DayDetails is the editable content of a day.
type DayDetails struct {
	HotelID int64
	Room    *models.RoomSelection
	Cab     *models.CabSelection
	Notes   string
}

// UpdateDay writes hotel, room, cab and notes. A selection without an
// explicit price is priced as quantity x unit price.
func (s DayService) UpdateDay(ctx context.Context, itineraryID, dayID int64, in DayDetails) (models.Day, error) {
	day, err := s.store().GetDay(ctx, dayID)
	if err != nil {
		return models.Day{}, err
	}
	if day.ItineraryID != itineraryID {
		return models.Day{}, domain.NotFoundError{Resource: "day"}
	}

	day.Hotel = nil
	if in.HotelID > 0 {
		day.Hotel = &models.HotelRef{ID: in.HotelID}
	}
	day.Room = in.Room
	if day.Room != nil {
		if day.Room.Quantity < 0 || day.Room.UnitPrice.IsNegative() {
			return models.Day{}, domain.ValidationError{Field: "room", Msg: "quantity and unit price must not be negative"}
		}
		day.Room.Price = priceOrLine(day.Room.Price, day.Room.Quantity, day.Room.UnitPrice)
	}
	day.Cab = in.Cab
	if day.Cab != nil {
		if day.Cab.Quantity < 0 || day.Cab.UnitPrice.IsNegative() {
			return models.Day{}, domain.ValidationError{Field: "cab", Msg: "quantity and unit price must not be negative"}
		}
		day.Cab.Price = priceOrLine(day.Cab.Price, day.Cab.Quantity, day.Cab.UnitPrice)
	}
	day.Notes = utils.TrimOrEmpty(in.Notes)

	if err := s.store().UpdateDay(ctx, day); err != nil {
		return models.Day{}, err
	}
	utils.LogEvent(s.RequestID, "days", "update_day", fmt.Sprintf("itinerary_id=%d day_id=%d", itineraryID, dayID))
	return s.store().GetDay(ctx, dayID)
}

func priceOrLine(price *decimal.Decimal, qty int, unit decimal.Decimal) *decimal.Decimal {
	if price != nil {
		return price
	}
	p := models.LinePrice(qty, unit)
	return &p
}
