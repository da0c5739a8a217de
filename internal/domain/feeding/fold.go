package feeding

import "sort"

// Fold colapsa las filas crudas en un Log por (kennel, fecha). Una sesión
// queda como alimentada si cualquiera de sus filas tiene fed=true; mañana y
// mediodía son independientes. numbers mapea kennelID -> número (puede faltar).
func Fold(rows []Record, numbers map[string]int) []Log {
	type key struct {
		kennelID string
		date     string
	}

	byKey := map[key]*Log{}
	order := make([]key, 0)

	for _, r := range rows {
		k := key{kennelID: r.KennelID, date: r.Date.Format(dateLayout)}
		l, ok := byKey[k]
		if !ok {
			l = &Log{
				KennelID:     r.KennelID,
				KennelNumber: numbers[r.KennelID],
				Date:         r.Date,
			}
			byKey[k] = l
			order = append(order, k)
		}

		if !r.Fed {
			continue
		}
		switch r.Session {
		case SessionMorning:
			l.MorningFed = true
		case SessionNoon:
			l.NoonFed = true
		}
	}

	out := make([]Log, 0, len(order))
	for _, k := range order {
		out = append(out, *byKey[k])
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].KennelNumber != out[j].KennelNumber {
			return out[i].KennelNumber < out[j].KennelNumber
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

const dateLayout = "2006-01-02"
