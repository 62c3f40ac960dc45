package entity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrLayoutInvalid   = errors.New("layout must be a grid, a row list or an explicit seat list")
	ErrLayoutEmpty     = errors.New("layout has no seats")
	ErrLayoutDuplicate = errors.New("layout contains duplicate seats")
	ErrLayoutTooLarge  = errors.New("layout has more seats than allowed")
)

// MaxLayoutSeats bounds every layout regardless of the hall capacity.
const MaxLayoutSeats = 10000

type Hall struct {
	BaseNoDelete
	Name     string          `db:"name"`
	Capacity int             `db:"capacity"`
	Layout   json.RawMessage `db:"layout"`
}

// Seats derives the ordered seat ids from the hall layout.
func (h *Hall) Seats() ([]string, error) {
	return LayoutSeats(h.Layout)
}

type layoutDoc struct {
	Rows        json.RawMessage `json:"rows"`
	SeatsPerRow *int            `json:"seatsPerRow"`
	Seats       []string        `json:"seats"`
}

type layoutRow struct {
	Letter string            `json:"letter"`
	Count  int               `json:"count"`
	Seats  []json.RawMessage `json:"seats"`
}

// LayoutSeats accepts three shapes:
//
//	{"rows": 10, "seatsPerRow": 12}
//	{"rows": [{"letter": "A", "seats": [1, 2, 3]}]}
//	{"seats": ["A1", "A2", "B1"]}
func LayoutSeats(raw json.RawMessage) ([]string, error) {
	return LayoutSeatsWithin(raw, MaxLayoutSeats)
}

// LayoutSeatsWithin is LayoutSeats that fails with ErrLayoutTooLarge before
// expanding more than limit seats.
func LayoutSeatsWithin(raw json.RawMessage, limit int) ([]string, error) {
	if limit <= 0 || limit > MaxLayoutSeats {
		limit = MaxLayoutSeats
	}

	var doc layoutDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLayoutInvalid, err)
	}

	var seats []string
	switch {
	case doc.Seats != nil:
		for _, s := range doc.Seats {
			seats = append(seats, strings.ToUpper(strings.TrimSpace(s)))
		}
	case len(doc.Rows) > 0 && bytes.HasPrefix(bytes.TrimSpace(doc.Rows), []byte("[")):
		var rows []layoutRow
		if err := json.Unmarshal(doc.Rows, &rows); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLayoutInvalid, err)
		}
		for i, row := range rows {
			rowSeats, err := row.seatIDs(i, limit-len(seats))
			if err != nil {
				return nil, err
			}
			seats = append(seats, rowSeats...)
		}
	case len(doc.Rows) > 0:
		var rows int
		if err := json.Unmarshal(doc.Rows, &rows); err != nil || doc.SeatsPerRow == nil {
			return nil, ErrLayoutInvalid
		}
		perRow := *doc.SeatsPerRow
		if rows < 0 || perRow < 0 {
			return nil, ErrLayoutInvalid
		}
		if rows == 0 || perRow == 0 {
			return nil, ErrLayoutEmpty
		}
		if rows > limit/perRow {
			return nil, fmt.Errorf("%w: %d rows of %d seats", ErrLayoutTooLarge, rows, perRow)
		}
		seats = make([]string, 0, rows*perRow)
		for r := 0; r < rows; r++ {
			label := RowLabel(r)
			for n := 1; n <= perRow; n++ {
				seats = append(seats, label+strconv.Itoa(n))
			}
		}
	default:
		return nil, ErrLayoutInvalid
	}

	if len(seats) == 0 {
		return nil, ErrLayoutEmpty
	}
	if len(seats) > limit {
		return nil, fmt.Errorf("%w: %d seats", ErrLayoutTooLarge, len(seats))
	}

	seen := make(map[string]struct{}, len(seats))
	for _, s := range seats {
		if s == "" {
			return nil, ErrLayoutInvalid
		}
		if _, dup := seen[s]; dup {
			return nil, fmt.Errorf("%w: %s", ErrLayoutDuplicate, s)
		}
		seen[s] = struct{}{}
	}

	return seats, nil
}

// seatIDs expands one row; remaining is how many seats the layout may still add.
func (r layoutRow) seatIDs(index, remaining int) ([]string, error) {
	letter := strings.ToUpper(strings.TrimSpace(r.Letter))
	if letter == "" {
		letter = RowLabel(index)
	}

	if len(r.Seats) == 0 {
		if r.Count <= 0 {
			return nil, fmt.Errorf("%w: row %s needs a positive count or a seat list", ErrLayoutInvalid, letter)
		}
		if r.Count > remaining {
			return nil, fmt.Errorf("%w: row %s", ErrLayoutTooLarge, letter)
		}
		out := make([]string, 0, r.Count)
		for n := 1; n <= r.Count; n++ {
			out = append(out, letter+strconv.Itoa(n))
		}
		return out, nil
	}

	if len(r.Seats) > remaining {
		return nil, fmt.Errorf("%w: row %s", ErrLayoutTooLarge, letter)
	}
	out := make([]string, 0, len(r.Seats))
	for _, raw := range r.Seats {
		var num int
		if err := json.Unmarshal(raw, &num); err == nil {
			out = append(out, letter+strconv.Itoa(num))
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("%w: row %s has a seat that is neither a number nor a string", ErrLayoutInvalid, letter)
		}
		s = strings.ToUpper(strings.TrimSpace(s))
		if !strings.HasPrefix(s, letter) {
			s = letter + s
		}
		out = append(out, s)
	}
	return out, nil
}

// RowLabel returns A..Z, then AA, AB, ... for index 0, 1, ...
func RowLabel(index int) string {
	label := ""
	for index >= 0 {
		label = string(rune('A'+index%26)) + label
		index = index/26 - 1
	}
	return label
}
