package services

import (
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/boutique/app/repositories"
	"github.com/shashiranjanraj/boutique/pkg/validate"
)

func orderHex(id *primitive.ObjectID) string {
	if id == nil {
		return ""
	}
	return id.Hex()
}

// orderLink renders a stored reference for a form. A nil link stays nil so
// that an explicit JSON null decoded over it clears the reference.
func orderLink(id *primitive.ObjectID) *string {
	if id == nil {
		return nil
	}
	hex := id.Hex()
	return &hex
}

func linkID(hex *string) *primitive.ObjectID {
	if hex == nil {
		return nil
	}
	return optionalID(*hex)
}

// ParseID turns a hex path parameter into an ObjectID. A malformed id cannot
// name any record, so it is reported as not found.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(hex))
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return id, nil
}

// ParseDateRange reads the startDate/endDate query values. Empty values
// leave that end open.
func ParseDateRange(start, end string) (repositories.DateRange, error) {
	var rng repositories.DateRange
	if strings.TrimSpace(start) != "" {
		t, err := validate.ParseDate(start)
		if err != nil {
			return rng, invalid("Invalid startDate")
		}
		rng.From = &t
	}
	if strings.TrimSpace(end) != "" {
		t, err := validate.ParseDate(end)
		if err != nil {
			return rng, invalid("Invalid endDate")
		}
		rng.To = &t
	}
	return rng, nil
}

// ParseYear reads an optional year query value.
func ParseYear(s string) (int, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, invalid("Invalid year")
	}
	return y, nil
}

// dateOr parses s, returning def when s is empty. Callers validate s with
// the "date" tag first.
func dateOr(s string, def time.Time) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	t, err := validate.ParseDate(s)
	if err != nil {
		return time.Time{}, invalid(err.Error())
	}
	return t, nil
}

func optionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := validate.ParseDate(s)
	if err != nil {
		return nil, invalid(err.Error())
	}
	return &t, nil
}

func optionalID(hex string) *primitive.ObjectID {
	if strings.TrimSpace(hex) == "" {
		return nil
	}
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(hex))
	if err != nil {
		return nil
	}
	return &id
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
