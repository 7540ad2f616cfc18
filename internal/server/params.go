package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rcliao/puffin/internal/model"
	"github.com/rcliao/puffin/internal/store"
)

const maxListLimit = 200

func (s *Server) optionalTime(r *http.Request, field string) (*time.Time, error) {
	v := r.URL.Query().Get(field)
	if v == "" {
		return nil, nil
	}
	t, err := model.ParseTime(field, v, s.loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Server) requiredTime(r *http.Request, field string) (time.Time, error) {
	v := r.URL.Query().Get(field)
	if v == "" {
		return time.Time{}, &model.ValidationError{Field: field, Message: "is required"}
	}
	return model.ParseTime(field, v, s.loc)
}

func queryInt(r *http.Request, field string, def, lo, hi int) (int, error) {
	v := r.URL.Query().Get(field)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &model.ValidationError{Field: field, Message: "must be an integer"}
	}
	if n < lo || (hi > 0 && n > hi) {
		if hi > 0 {
			return 0, &model.ValidationError{Field: field, Message: "must be between " + strconv.Itoa(lo) + " and " + strconv.Itoa(hi)}
		}
		return 0, &model.ValidationError{Field: field, Message: "must be at least " + strconv.Itoa(lo)}
	}
	return n, nil
}

// listParams reads start_date, end_date, limit (1..200, default 50) and
// offset (>= 0).
func (s *Server) listParams(r *http.Request) (store.ListParams, error) {
	var p store.ListParams
	var err error
	if p.Start, err = s.optionalTime(r, "start_date"); err != nil {
		return p, err
	}
	if p.End, err = s.optionalTime(r, "end_date"); err != nil {
		return p, err
	}
	if p.Limit, err = queryInt(r, "limit", store.DefaultLimit, 1, maxListLimit); err != nil {
		return p, err
	}
	if p.Offset, err = queryInt(r, "offset", 0, 0, 0); err != nil {
		return p, err
	}
	return p, nil
}
