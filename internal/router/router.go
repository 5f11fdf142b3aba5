// Package router implements the HTTP route table: (method, path pattern)
// pairs dispatched with exact-match lookup first and a linear scan of
// parameterized patterns second. Patterns are validated for ambiguity at
// registration time.
package router

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Params holds path parameters bound during dispatch
type Params map[string]string

type paramsContextKey struct{}

// HandlerFunc is an ordinary http.HandlerFunc; bound path parameters are
// available through Param / ParamsFromContext.
type HandlerFunc = http.HandlerFunc

type route struct {
	pattern  string
	segments []string // ":name" entries bind a parameter
	handler  http.Handler
}

// Table maps (method, pattern) pairs to handlers.
// Not safe for concurrent registration; register all routes at startup.
type Table struct {
	exact    map[string]map[string]http.Handler // method -> literal path
	patterns map[string][]route                 // method -> parameterized routes
	fallback http.Handler
}

// New creates an empty route table.
// Requests matching no route are passed to the fallback handler; without
// one they get a plain 404.
func New() *Table {
	return &Table{
		exact:    make(map[string]map[string]http.Handler),
		patterns: make(map[string][]route),
	}
}

// SetFallback sets the handler for requests that match no route
func (t *Table) SetFallback(h http.Handler) {
	t.fallback = h
}

// Handle registers a handler for the given method and pattern.
// Patterns consist of literal segments and single-segment ":name"
// parameters. Registration fails for duplicate literal routes and for any
// parameterized pattern that could match the same path as an existing one
// for the same method.
func (t *Table) Handle(method, pattern string, h http.Handler) error {
	if h == nil {
		return fmt.Errorf("route %s %s: nil handler", method, pattern)
	}
	if !strings.HasPrefix(pattern, "/") {
		return fmt.Errorf("route %s %s: pattern must start with /", method, pattern)
	}

	segments := splitPath(pattern)
	parameterized := false
	for _, seg := range segments {
		if strings.HasPrefix(seg, ":") {
			parameterized = true
			if len(seg) == 1 {
				return fmt.Errorf("route %s %s: empty parameter name", method, pattern)
			}
		}
	}

	if !parameterized {
		if _, ok := t.exact[method][pattern]; ok {
			return fmt.Errorf("route %s %s: already registered", method, pattern)
		}
		if t.exact[method] == nil {
			t.exact[method] = make(map[string]http.Handler)
		}
		t.exact[method][pattern] = h
		return nil
	}

	for _, existing := range t.patterns[method] {
		if ambiguous(existing.segments, segments) {
			return fmt.Errorf("route %s %s: ambiguous with %s", method, pattern, existing.pattern)
		}
	}
	t.patterns[method] = append(t.patterns[method], route{
		pattern:  pattern,
		segments: segments,
		handler:  h,
	})
	return nil
}

// MustHandle registers a route and panics on error.
// Route registration errors are programmer errors; surfacing them at
// startup keeps the table's no-ambiguity invariant.
func (t *Table) MustHandle(method, pattern string, h http.Handler) {
	if err := t.Handle(method, pattern, h); err != nil {
		panic(err)
	}
}

// ServeHTTP dispatches the request: exact literal match first, then the
// first structurally matching parameterized pattern, then the fallback.
func (t *Table) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h, ok := t.exact[r.Method][r.URL.Path]; ok {
		h.ServeHTTP(w, r)
		return
	}

	segments := splitPath(r.URL.Path)
	for _, rt := range t.patterns[r.Method] {
		params, ok := match(rt.segments, segments)
		if !ok {
			continue
		}
		ctx := context.WithValue(r.Context(), paramsContextKey{}, params)
		rt.handler.ServeHTTP(w, r.WithContext(ctx))
		return
	}

	if t.fallback != nil {
		t.fallback.ServeHTTP(w, r)
		return
	}
	http.NotFound(w, r)
}

// Param returns the named path parameter bound for this request, or ""
func Param(r *http.Request, name string) string {
	return ParamsFromContext(r.Context())[name]
}

// ParamsFromContext returns all path parameters bound during dispatch
func ParamsFromContext(ctx context.Context) Params {
	params, _ := ctx.Value(paramsContextKey{}).(Params)
	return params
}

// match checks a compiled pattern against request path segments.
// Segment counts must match exactly; literals must match literally;
// parameter segments bind unconditionally.
func match(pattern, segments []string) (Params, bool) {
	if len(pattern) != len(segments) {
		return nil, false
	}
	var params Params
	for i, seg := range pattern {
		if strings.HasPrefix(seg, ":") {
			if params == nil {
				params = make(Params)
			}
			params[seg[1:]] = segments[i]
			continue
		}
		if seg != segments[i] {
			return nil, false
		}
	}
	return params, true
}

// ambiguous reports whether two patterns could both match some path:
// equal segment counts, and at every position either the literals are
// equal or at least one side is a parameter.
func ambiguous(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		aParam := strings.HasPrefix(a[i], ":")
		bParam := strings.HasPrefix(b[i], ":")
		if !aParam && !bParam && a[i] != b[i] {
			return false
		}
	}
	return true
}

// splitPath splits a path into non-empty segments, tolerating trailing
// slashes
func splitPath(p string) []string {
	parts := strings.Split(p, "/")
	segments := parts[:0]
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}
