package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:   http.StatusBadRequest,
		KindInvalidToken: http.StatusBadRequest,
		KindUnauthorized: http.StatusUnauthorized,
		KindForbidden:    http.StatusForbidden,
		KindNotFound:     http.StatusNotFound,
		KindConflict:     http.StatusConflict,
		KindRateLimited:  http.StatusTooManyRequests,
		KindInternal:     http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := (&Error{Kind: kind}).StatusCode(); got != want {
			t.Errorf("%s: status = %d, want %d", kind, got, want)
		}
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("create booking: %w", Conflict("Seats already booked: A1"))
	if KindOf(err) != KindConflict || !Is(err, KindConflict) {
		t.Fatalf("KindOf(%v) = %s", err, KindOf(err))
	}
	if KindOf(errors.New("boom")) != KindInternal {
		t.Fatal("plain errors should be internal")
	}
	if Is(nil, KindInternal) {
		t.Fatal("nil must not match any kind")
	}

	cause := errors.New("driver failure")
	if !errors.Is(Internal("Failed", cause), cause) {
		t.Fatal("Internal should unwrap to its cause")
	}
}
