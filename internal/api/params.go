package api

import (
	"fmt"
	"net/http"
	"strconv"
)

// query reads typed URL parameters, keeping the first parse error.
type query struct {
	r   *http.Request
	err error
}

func (q *query) lookup(name string, required bool) (string, bool) {
	v := q.r.URL.Query().Get(name)
	if v == "" {
		if required && q.err == nil {
			q.err = fmt.Errorf("missing parameter %q", name)
		}
		return "", false
	}
	return v, true
}

func (q *query) fail(name, v string, err error) {
	if q.err == nil {
		q.err = fmt.Errorf("parameter %q: invalid value %q: %w", name, v, err)
	}
}

func (q *query) floatParam(name string, def float64, required bool) float64 {
	v, ok := q.lookup(name, required)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		q.fail(name, v, err)
		return def
	}
	return f
}

func (q *query) intParam(name string, def int) int {
	v, ok := q.lookup(name, false)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		q.fail(name, v, err)
		return def
	}
	return n
}

func (q *query) uintParam(name string, def uint64) uint64 {
	v, ok := q.lookup(name, false)
	if !ok {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		q.fail(name, v, err)
		return def
	}
	return n
}

func (q *query) boolParam(name string, def bool) bool {
	v, ok := q.lookup(name, false)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		q.fail(name, v, err)
		return def
	}
	return b
}
