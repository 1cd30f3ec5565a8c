package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
)

// memStore is an in-memory record store covering every store interface.
type memStore struct {
	mu sync.Mutex

	itineraries map[int64]models.Itinerary
	days        map[int64]models.Day
	activities  map[int64]models.Activity
	options     map[int64]models.PricingOptions
	bookings    map[int64]models.Booking
	payments    map[int64]models.Payment
	settings    models.AgencySettings
	settingsHit int

	nextID int64

	// failDay makes InsertDay fail for that day number.
	failDay map[int]error
	// insertDelay holds InsertDay open so concurrent writes overlap.
	insertDelay time.Duration
	inFlight    int
	maxInFlight int
}

func newMemStore() *memStore {
	return &memStore{
		itineraries: map[int64]models.Itinerary{},
		days:        map[int64]models.Day{},
		activities:  map[int64]models.Activity{},
		options:     map[int64]models.PricingOptions{},
		bookings:    map[int64]models.Booking{},
		payments:    map[int64]models.Payment{},
		settings:    models.DefaultAgencySettings(),
		failDay:     map[int]error{},
		nextID:      100,
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) GetItinerary(_ context.Context, id int64) (models.Itinerary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.itineraries[id]
	if !ok {
		return models.Itinerary{}, domain.NotFoundError{Resource: "itinerary"}
	}
	return it, nil
}

func (m *memStore) FetchDays(_ context.Context, itineraryID int64) ([]models.Day, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Day{}
	for _, d := range m.days {
		if d.ItineraryID == itineraryID {
			out = append(out, d)
		}
	}
	// map order stands in for arbitrary storage order
	return out, nil
}

func (m *memStore) GetDay(_ context.Context, dayID int64) (models.Day, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.days[dayID]
	if !ok {
		return models.Day{}, domain.NotFoundError{Resource: "day"}
	}
	return d, nil
}

func (m *memStore) InsertDay(ctx context.Context, itineraryID int64, dayNumber int, date *time.Time) (models.Day, error) {
	if err := ctx.Err(); err != nil {
		return models.Day{}, domain.StoreError{Op: "insert day", Err: err}
	}
	m.mu.Lock()
	m.inFlight++
	m.maxInFlight = max(m.maxInFlight, m.inFlight)
	delay := m.insertDelay
	m.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight--
	if err, ok := m.failDay[dayNumber]; ok {
		return models.Day{}, err
	}
	for _, d := range m.days {
		if d.ItineraryID == itineraryID && d.DayNumber == dayNumber {
			return models.Day{}, domain.ConflictError{Resource: "day", Msg: "already exists"}
		}
	}
	d := models.Day{ID: m.id(), ItineraryID: itineraryID, DayNumber: dayNumber, Date: date}
	m.days[d.ID] = d
	return d, nil
}

func (m *memStore) DeleteDay(_ context.Context, itineraryID, dayID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.days[dayID]
	if !ok || d.ItineraryID != itineraryID {
		return domain.NotFoundError{Resource: "day"}
	}
	delete(m.days, dayID)
	for id, a := range m.activities {
		if a.DayID == dayID {
			delete(m.activities, id)
		}
	}
	return nil
}

func (m *memStore) UpdateDayDate(_ context.Context, dayID int64, date *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.days[dayID]
	if !ok {
		return domain.NotFoundError{Resource: "day"}
	}
	d.Date = date
	m.days[dayID] = d
	return nil
}

func (m *memStore) UpdateDay(_ context.Context, d models.Day) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.days[d.ID]; !ok {
		return domain.NotFoundError{Resource: "day"}
	}
	m.days[d.ID] = d
	return nil
}

func (m *memStore) dayActivities(match func(models.Activity) bool) []models.Activity {
	out := []models.Activity{}
	for _, a := range m.activities {
		if match(a) {
			a.DayNumber = m.days[a.DayID].DayNumber
			out = append(out, a)
		}
	}
	return out
}

func (m *memStore) FetchActivities(_ context.Context, itineraryID int64) ([]models.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dayActivities(func(a models.Activity) bool { return m.days[a.DayID].ItineraryID == itineraryID }), nil
}

func (m *memStore) FetchDayActivities(_ context.Context, dayID int64) ([]models.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dayActivities(func(a models.Activity) bool { return a.DayID == dayID }), nil
}

func (m *memStore) GetActivity(_ context.Context, id int64) (models.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.activities[id]
	if !ok {
		return models.Activity{}, domain.NotFoundError{Resource: "activity"}
	}
	return a, nil
}

func (m *memStore) InsertActivity(_ context.Context, a models.Activity) (models.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.activities {
		if other.DayID == a.DayID && other.SortOrder == a.SortOrder {
			return models.Activity{}, domain.ConflictError{Resource: "activity"}
		}
	}
	a.ID = m.id()
	m.activities[a.ID] = a
	return a, nil
}

func (m *memStore) UpdateActivity(_ context.Context, a models.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.activities[a.ID]
	if !ok {
		return domain.NotFoundError{Resource: "activity"}
	}
	a.SortOrder = cur.SortOrder
	a.DayID = cur.DayID
	m.activities[a.ID] = a
	return nil
}

func (m *memStore) DeleteActivity(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.activities[id]; !ok {
		return domain.NotFoundError{Resource: "activity"}
	}
	delete(m.activities, id)
	return nil
}

func (m *memStore) SwapSortOrder(_ context.Context, a, b models.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	x, y := m.activities[a.ID], m.activities[b.ID]
	x.SortOrder, y.SortOrder = y.SortOrder, x.SortOrder
	m.activities[a.ID], m.activities[b.ID] = x, y
	return nil
}

func (m *memStore) GetPricingOptions(_ context.Context, itineraryID int64) (models.PricingOptions, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.options[itineraryID]
	return o, ok, nil
}

func (m *memStore) SavePricingOptions(_ context.Context, itineraryID int64, opts models.PricingOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.options[itineraryID] = opts
	return nil
}

func (m *memStore) GetAgencySettings(context.Context) (models.AgencySettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settingsHit++
	return m.settings, nil
}

func (m *memStore) FetchBookings(_ context.Context, f models.BookingFilter) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Booking{}
	for _, b := range m.bookings {
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memStore) CountBookings(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bookings), nil
}

func (m *memStore) GetBooking(_ context.Context, id int64) (models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return b, nil
}

func (m *memStore) withBooking(p models.Payment) models.Payment {
	b := m.bookings[p.BookingID]
	p.CustomerName = b.CustomerName
	p.ItineraryName = b.ItineraryName
	p.BookingTotal = b.TotalAmount
	return p
}

func (m *memStore) FetchPayments(_ context.Context, f models.PaymentFilter) ([]models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Payment{}
	for _, p := range m.payments {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.BookingID > 0 && p.BookingID != f.BookingID {
			continue
		}
		out = append(out, m.withBooking(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memStore) CountPayments(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.payments), nil
}

func (m *memStore) ListPaymentsByBookings(_ context.Context, ids []int64) (map[int64][]models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := map[int64]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := map[int64][]models.Payment{}
	// reverse id order so callers must sort for themselves
	keys := make([]int64, 0, len(m.payments))
	for id := range m.payments {
		keys = append(keys, id)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] > keys[j] })
	for _, id := range keys {
		p := m.payments[id]
		if want[p.BookingID] {
			out[p.BookingID] = append(out[p.BookingID], m.withBooking(p))
		}
	}
	return out, nil
}

func (m *memStore) GetPayment(_ context.Context, id int64) (models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[id]
	if !ok {
		return models.Payment{}, domain.NotFoundError{Resource: "payment"}
	}
	return m.withBooking(p), nil
}

func (m *memStore) InsertPayment(_ context.Context, p models.Payment) (models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.id()
	m.payments[p.ID] = p
	return p, nil
}

func (m *memStore) UpdatePayment(_ context.Context, p models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.payments[p.ID]; !ok {
		return domain.NotFoundError{Resource: "payment"}
	}
	m.payments[p.ID] = p
	return nil
}

func (m *memStore) DeletePayment(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.payments[id]; !ok {
		return domain.NotFoundError{Resource: "payment"}
	}
	delete(m.payments, id)
	return nil
}

// seedDay stores a day directly, bypassing the sequencer.
func (m *memStore) seedDay(d models.Day) models.Day {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d.ID == 0 {
		d.ID = m.id()
	}
	m.days[d.ID] = d
	return d
}

func (m *memStore) seedActivity(a models.Activity) models.Activity {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = m.id()
	m.activities[a.ID] = a
	return a
}

func (m *memStore) seedPayment(p models.Payment) models.Payment {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.id()
	m.payments[p.ID] = p
	return p
}

func (m *memStore) dayNumbers(itineraryID int64) []int {
	days, _ := m.FetchDays(context.Background(), itineraryID)
	out := domain.DayNumbers(days)
	sort.Ints(out)
	return out
}
