package rest

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gorden73/Explore-with-me-sub000/internal/domain"
	"github.com/gorden73/Explore-with-me-sub000/internal/pkg/wiretime"
)

const (
	defaultPageFrom = 0
	defaultPageSize = 10
	maxPageSize     = 1000
)

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrValidationMeta("invalid path parameter", map[string]string{
			name: "must be a positive integer",
		})
	}
	return id, nil
}

// page reads from/size query params, falling back to 0/10.
func page(r *http.Request) (from, size int64, err error) {
	from, err = queryInt(r, "from", defaultPageFrom)
	if err != nil {
		return 0, 0, err
	}
	size, err = queryInt(r, "size", defaultPageSize)
	if err != nil {
		return 0, 0, err
	}
	if from < 0 {
		return 0, 0, domain.ErrValidationMeta("invalid pagination", map[string]string{"from": "must be >= 0"})
	}
	if size <= 0 || size > maxPageSize {
		return 0, 0, domain.ErrValidationMeta("invalid pagination", map[string]string{"size": "must be between 1 and 1000"})
	}
	return from, size, nil
}

func queryInt(r *http.Request, name string, def int64) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.ErrValidationMeta("invalid query parameter", map[string]string{
			name: "must be an integer",
		})
	}
	return v, nil
}

func queryBoolPtr(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, domain.ErrValidationMeta("invalid query parameter", map[string]string{
			name: "must be a boolean",
		})
	}
	return &v, nil
}

func queryBool(r *http.Request, name string, def bool) (bool, error) {
	p, err := queryBoolPtr(r, name)
	if err != nil {
		return false, err
	}
	if p == nil {
		return def, nil
	}
	return *p, nil
}

func queryIDs(r *http.Request, name string) ([]int64, error) {
	values := r.URL.Query()[name]
	var out []int64
	for _, raw := range values {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, domain.ErrValidationMeta("invalid query parameter", map[string]string{
					name: "must be a comma-separated list of integers",
				})
			}
			out = append(out, id)
		}
	}
	return out, nil
}

func queryStrings(r *http.Request, name string) []string {
	values := r.URL.Query()[name]
	var out []string
	for _, raw := range values {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func queryTime(r *http.Request, name string) (*wiretime.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := wiretime.Parse(raw)
	if err != nil {
		return nil, domain.ErrValidationMeta("invalid query parameter", map[string]string{
			name: "must match " + wiretime.Layout,
		})
	}
	return &t, nil
}
