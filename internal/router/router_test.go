package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paramEcho(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(Param(r, name)))
	}
}

func constant(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}
}

func dispatch(t *Table, method, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	t.ServeHTTP(rr, httptest.NewRequest(method, path, nil))
	return rr
}

func TestExactMatch(t *testing.T) {
	table := New()
	require.NoError(t, table.Handle(http.MethodGet, "/api/games", constant("games")))

	rr := dispatch(table, http.MethodGet, "/api/games")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "games", rr.Body.String())
}

func TestParamBinding(t *testing.T) {
	table := New()
	require.NoError(t, table.Handle(http.MethodGet, "/api/game/:id", paramEcho("id")))

	rr := dispatch(table, http.MethodGet, "/api/game/42")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "42", rr.Body.String())
}

func TestSegmentCountMismatchFallsThrough(t *testing.T) {
	table := New()
	require.NoError(t, table.Handle(http.MethodGet, "/api/game/:id", paramEcho("id")))

	rr := dispatch(table, http.MethodGet, "/api/game/42/extra")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestExactMatchWinsOverParameterized(t *testing.T) {
	table := New()
	require.NoError(t, table.Handle(http.MethodGet, "/api/game/:id", constant("param")))
	require.NoError(t, table.Handle(http.MethodGet, "/api/game/latest", constant("literal")))

	rr := dispatch(table, http.MethodGet, "/api/game/latest")
	assert.Equal(t, "literal", rr.Body.String())

	rr = dispatch(table, http.MethodGet, "/api/game/7")
	assert.Equal(t, "param", rr.Body.String())
}

func TestMethodsAreIndependent(t *testing.T) {
	table := New()
	require.NoError(t, table.Handle(http.MethodGet, "/api/admin/games", constant("list")))
	require.NoError(t, table.Handle(http.MethodPost, "/api/admin/games", constant("create")))

	assert.Equal(t, "list", dispatch(table, http.MethodGet, "/api/admin/games").Body.String())
	assert.Equal(t, "create", dispatch(table, http.MethodPost, "/api/admin/games").Body.String())
}

func TestMultiParamBinding(t *testing.T) {
	table := New()
	require.NoError(t, table.Handle(http.MethodPost, "/api/game/:id/progress", paramEcho("id")))

	rr := dispatch(table, http.MethodPost, "/api/game/9/progress")
	assert.Equal(t, "9", rr.Body.String())
}

func TestTrailingSlashMatchesParameterized(t *testing.T) {
	table := New()
	require.NoError(t, table.Handle(http.MethodGet, "/api/game/:id", paramEcho("id")))

	rr := dispatch(table, http.MethodGet, "/api/game/42/")
	assert.Equal(t, "42", rr.Body.String())
}

func TestDuplicateExactRouteRejected(t *testing.T) {
	table := New()
	require.NoError(t, table.Handle(http.MethodGet, "/api/games", constant("a")))
	assert.Error(t, table.Handle(http.MethodGet, "/api/games", constant("b")))
}

func TestAmbiguousPatternsRejected(t *testing.T) {
	table := New()
	require.NoError(t, table.Handle(http.MethodGet, "/api/game/:id", constant("a")))

	// Identical shape
	assert.Error(t, table.Handle(http.MethodGet, "/api/game/:gameId", constant("b")))

	// Overlapping shape: /api/:kind/:id also matches /api/game/7
	assert.Error(t, table.Handle(http.MethodGet, "/api/:kind/:id", constant("c")))

	// Distinct literal segment disambiguates
	assert.NoError(t, table.Handle(http.MethodGet, "/api/user/:id", constant("d")))

	// Same pattern on another method is fine
	assert.NoError(t, table.Handle(http.MethodDelete, "/api/game/:id", constant("e")))
}

func TestEmptyParameterNameRejected(t *testing.T) {
	table := New()
	assert.Error(t, table.Handle(http.MethodGet, "/api/game/:", constant("a")))
}

func TestFallbackReceivesUnmatched(t *testing.T) {
	table := New()
	require.NoError(t, table.Handle(http.MethodGet, "/api/games", constant("games")))
	table.SetFallback(constant("fallback"))

	rr := dispatch(table, http.MethodGet, "/index.html")
	assert.Equal(t, "fallback", rr.Body.String())

	// Unregistered method falls back too
	rr = dispatch(table, http.MethodDelete, "/api/games")
	assert.Equal(t, "fallback", rr.Body.String())
}

func TestNoParamsOutsideDispatch(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, Param(r, "id"))
	assert.Nil(t, ParamsFromContext(r.Context()))
}
