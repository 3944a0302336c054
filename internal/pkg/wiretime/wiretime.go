// Package wiretime implements the platform's fixed JSON timestamp format:
// "yyyy-MM-dd HH:mm:ss", no timezone.
package wiretime

import (
	"strings"
	"time"
)

const Layout = "2006-01-02 15:04:05"

type Time struct {
	time.Time
}

func New(t time.Time) Time { return Time{Time: t.UTC().Truncate(time.Second)} }

func Parse(s string) (Time, error) {
	t, err := time.Parse(Layout, strings.TrimSpace(s))
	if err != nil {
		return Time{}, err
	}
	return Time{Time: t}, nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(Layout) + `"`), nil
}

func (t *Time) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(Layout, s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
