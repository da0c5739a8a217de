package reservations

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// DaysStayed cuenta ambos extremos: 2024-01-01..2024-01-03 son 3 días.
func DaysStayed(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(math.Ceil(float64(end.Sub(start))/float64(day))) + 1
}

// TotalBill = días * tarifa diaria.
func TotalBill(days int, perDayRate int64) int64 {
	return int64(days) * perDayRate
}

// BillQuote es la vista previa del modal de checkout.
type BillQuote struct {
	DaysStayed int
	PerDayRate int64
	Total      int64
}

func Quote(r Reservation, perDayRate int64) BillQuote {
	days := DaysStayed(r.StartDate, r.EndDate)
	return BillQuote{
		DaysStayed: days,
		PerDayRate: perDayRate,
		Total:      TotalBill(days, perDayRate),
	}
}
