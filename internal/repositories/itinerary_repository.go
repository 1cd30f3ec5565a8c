package repositories

import (
	"context"
	"database/sql"
	"time"

	intconfig "backoffice/internal/config"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"

	"github.com/shopspring/decimal"
)

type ItineraryRepository struct {
	DB *sql.DB
}

func (r ItineraryRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetItinerary loads the itinerary row without its days.
func (r ItineraryRepository) GetItinerary(ctx context.Context, id int64) (models.Itinerary, error) {
	query := `
		SELECT i.id,
		       i.name,
		       COALESCE(i.destination,''),
		       i.start_date,
		       COALESCE(i.duration,0),
		       COALESCE(i.transfer_mode,'none'),
		       i.budget,
		       COALESCE(i.adults,0),
		       COALESCE(i.children,0),
		       COALESCE(c.name,'')
		FROM itineraries i
		LEFT JOIN customers c ON c.id = i.customer_id
		WHERE i.id=? LIMIT 1`

	var (
		it     models.Itinerary
		start  sql.NullTime
		budget decimal.NullDecimal
		mode   string
	)
	if err := r.db().QueryRowContext(ctx, query, id).Scan(
		&it.ID,
		&it.Name,
		&it.Destination,
		&start,
		&it.Duration,
		&mode,
		&budget,
		&it.Adults,
		&it.Children,
		&it.CustomerName,
	); err != nil {
		return models.Itinerary{}, storeErr("get itinerary", "itinerary", err)
	}
	it.StartDate = nullTimePtr(start)
	it.Budget = nullDecimalPtr(budget)
	it.TransferMode = models.TransferMode(mode)
	if !it.TransferMode.Valid() {
		it.TransferMode = models.TransferNone
	}
	return it, nil
}

const daySelect = `
		SELECT d.id,
		       d.itinerary_id,
		       d.day_number,
		       d.day_date,
		       d.hotel_id,
		       COALESCE(h.name,''),
		       COALESCE(h.location,''),
		       COALESCE(h.star_rating,0),
		       COALESCE(d.room_type,''),
		       COALESCE(d.meal_plan,''),
		       COALESCE(d.room_quantity,0),
		       COALESCE(d.room_unit_price,0),
		       d.room_price,
		       COALESCE(d.cab_type,''),
		       COALESCE(d.cab_route,''),
		       COALESCE(d.cab_description,''),
		       COALESCE(d.cab_quantity,0),
		       COALESCE(d.cab_unit_price,0),
		       d.cab_price,
		       COALESCE(d.notes,'')
		FROM itinerary_days d
		LEFT JOIN hotels h ON h.id = d.hotel_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDay(s rowScanner) (models.Day, error) {
	var (
		d         models.Day
		date      sql.NullTime
		hotelID   sql.NullInt64
		hotel     models.HotelRef
		room      models.RoomSelection
		roomPrice decimal.NullDecimal
		cab       models.CabSelection
		cabPrice  decimal.NullDecimal
	)
	if err := s.Scan(
		&d.ID,
		&d.ItineraryID,
		&d.DayNumber,
		&date,
		&hotelID,
		&hotel.Name,
		&hotel.Location,
		&hotel.StarRating,
		&room.RoomType,
		&room.MealPlan,
		&room.Quantity,
		&room.UnitPrice,
		&roomPrice,
		&cab.Type,
		&cab.Route,
		&cab.Description,
		&cab.Quantity,
		&cab.UnitPrice,
		&cabPrice,
		&d.Notes,
	); err != nil {
		return models.Day{}, err
	}

	d.Date = nullTimePtr(date)
	if hotelID.Valid && hotel.Name != "" {
		hotel.ID = hotelID.Int64
		d.Hotel = &hotel
	}
	if room.RoomType != "" || roomPrice.Valid {
		room.Price = nullDecimalPtr(roomPrice)
		d.Room = &room
	}
	if cab.Type != "" || cabPrice.Valid {
		cab.Price = nullDecimalPtr(cabPrice)
		d.Cab = &cab
	}
	return d, nil
}

// FetchDays returns the itinerary's days ordered by day number.
func (r ItineraryRepository) FetchDays(ctx context.Context, itineraryID int64) ([]models.Day, error) {
	rows, err := r.db().QueryContext(ctx, daySelect+`
		WHERE d.itinerary_id=?
		ORDER BY d.day_number ASC, d.id ASC`, itineraryID)
	if err != nil {
		return nil, storeErr("fetch days", "day", err)
	}
	defer rows.Close()

	out := []models.Day{}
	for rows.Next() {
		d, err := scanDay(rows)
		if err != nil {
			return out, storeErr("scan day", "day", err)
		}
		out = append(out, d)
	}
	return out, storeErr("fetch days", "day", rows.Err())
}

// GetDay loads one day by id.
func (r ItineraryRepository) GetDay(ctx context.Context, dayID int64) (models.Day, error) {
	d, err := scanDay(r.db().QueryRowContext(ctx, daySelect+` WHERE d.id=? LIMIT 1`, dayID))
	if err != nil {
		return models.Day{}, storeErr("get day", "day", err)
	}
	return d, nil
}

// InsertDay creates one day row. A taken day number yields ConflictError.
func (r ItineraryRepository) InsertDay(ctx context.Context, itineraryID int64, dayNumber int, date *time.Time) (models.Day, error) {
	res, err := r.db().ExecContext(ctx,
		`INSERT INTO itinerary_days (itinerary_id, day_number, day_date) VALUES (?,?,?)`,
		itineraryID, dayNumber, timeValue(date))
	if err != nil {
		return models.Day{}, storeErr("insert day", "day", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Day{}, storeErr("insert day", "day", err)
	}
	return models.Day{ID: id, ItineraryID: itineraryID, DayNumber: dayNumber, Date: date}, nil
}

// DeleteDay removes a day and its activities. Other days keep their numbers.
func (r ItineraryRepository) DeleteDay(ctx context.Context, itineraryID, dayID int64) error {
	tx, err := r.db().BeginTx(ctx, nil)
	if err != nil {
		return storeErr("delete day", "day", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM itinerary_days WHERE id=? AND itinerary_id=?`, dayID, itineraryID)
	if err != nil {
		return storeErr("delete day", "day", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "day"}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM activities WHERE day_id=?`, dayID); err != nil {
		return storeErr("delete day activities", "activity", err)
	}
	return storeErr("delete day", "day", tx.Commit())
}

// UpdateDayDate sets or clears a day's date.
func (r ItineraryRepository) UpdateDayDate(ctx context.Context, dayID int64, date *time.Time) error {
	_, err := r.db().ExecContext(ctx, `UPDATE itinerary_days SET day_date=? WHERE id=?`, timeValue(date), dayID)
	return storeErr("update day date", "day", err)
}

// UpdateDay writes the hotel, room, cab and notes of a day. Nil selections
// clear their columns.
func (r ItineraryRepository) UpdateDay(ctx context.Context, d models.Day) error {
	var hotelID any
	if d.Hotel != nil && d.Hotel.ID > 0 {
		hotelID = d.Hotel.ID
	}

	var roomType, mealPlan, roomQty, roomUnit, roomPrice any
	if d.Room != nil {
		roomType = d.Room.RoomType
		mealPlan = d.Room.MealPlan
		roomQty = d.Room.Quantity
		roomUnit = d.Room.UnitPrice.String()
		roomPrice = decimalValue(d.Room.Price)
	}

	var cabType, cabRoute, cabDesc, cabQty, cabUnit, cabPrice any
	if d.Cab != nil {
		cabType = d.Cab.Type
		cabRoute = d.Cab.Route
		cabDesc = d.Cab.Description
		cabQty = d.Cab.Quantity
		cabUnit = d.Cab.UnitPrice.String()
		cabPrice = decimalValue(d.Cab.Price)
	}

	res, err := r.db().ExecContext(ctx, `
		UPDATE itinerary_days SET
		  hotel_id=?,
		  room_type=?, meal_plan=?, room_quantity=?, room_unit_price=?, room_price=?,
		  cab_type=?, cab_route=?, cab_description=?, cab_quantity=?, cab_unit_price=?, cab_price=?,
		  notes=?
		WHERE id=?`,
		hotelID,
		roomType, mealPlan, roomQty, roomUnit, roomPrice,
		cabType, cabRoute, cabDesc, cabQty, cabUnit, cabPrice,
		d.Notes,
		d.ID,
	)
	if err != nil {
		return storeErr("update day", "day", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "day"}
	}
	return nil
}
