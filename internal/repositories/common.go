package repositories

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"backoffice/internal/domain"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
)

const mysqlDuplicateEntry = 1062

// storeErr wraps a driver failure; sql.ErrNoRows becomes NotFoundError.
func storeErr(op, resource string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: resource, Err: err}
	}
	if isDuplicate(err) {
		return domain.ConflictError{Resource: resource, Msg: "already exists", Err: err}
	}
	return domain.StoreError{Op: op, Err: err}
}

func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func nullTimePtr(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	t := n.Time
	return &t
}

func nullDecimalPtr(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}

func timeValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func decimalValue(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

// endOfDayExclusive turns an inclusive calendar-day bound into the next
// midnight for "< ?" comparisons.
func endOfDayExclusive(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}
