// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/shashiranjanraj/boutique/config"
	"github.com/shashiranjanraj/boutique/pkg/validate"
)

const defaultMaxBody = 1 << 20 // 1 MB

func maxBodyBytes() int64 {
	return int64(config.MaxBodyBytes(defaultMaxBody))
}

// JSON decodes r.Body as JSON into dest and runs validation. dest may be
// pre-populated: fields absent from the body keep their current values,
// which is how partial updates are merged over stored records.
//
// Returns (errs, nil) when there are validation failures and (nil, err)
// when the body is malformed or too large.
func JSON(r *http.Request, dest interface{}) (errs map[string]string, err error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes())

	dec := json.NewDecoder(r.Body)
	if err = dec.Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		case errors.Is(err, io.EOF):
			return nil, errors.New("request body is empty")
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	errs = validate.Struct(dest)
	if validate.HasErrors(errs) {
		return errs, nil
	}

	return nil, nil
}
