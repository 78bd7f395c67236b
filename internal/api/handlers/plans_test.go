package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loadplanner/internal/config"
	"loadplanner/internal/planner"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Weight.TexasMax = 52000
	cfg.Weight.TexasMin = 47000
	cfg.Weight.OtherMax = 48000
	cfg.Weight.OtherMin = 44000
	cfg.Routing.SoftFullRatio = 0.98
	cfg.Routing.RemainderSafetyBound = 100
	cfg.Routing.TopperEpsilon = 1e-4
	return cfg
}

func TestLoadsHandlerReturnsPlan(t *testing.T) {
	h := &PlanHandler{Config: testConfig(), Deps: planner.Dependencies{}}
	body := `{"rows":[{"SO":"SO1","Line":"1","Customer":"Acme","ShippingCity":"Dallas","ShippingState":"TX","ReadyPieces":"10","ReadyWeight":"20000"}]}`

	req := httptest.NewRequest(http.MethodPost, "/plans/loads", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Loads(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "\"trucks\"")
}

func TestLoadsHandlerRejectsNonPost(t *testing.T) {
	h := &PlanHandler{Config: testConfig()}
	req := httptest.NewRequest(http.MethodGet, "/plans/loads", nil)
	rec := httptest.NewRecorder()

	h.Loads(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestLoadsHandlerRejectsMalformedJSON(t *testing.T) {
	h := &PlanHandler{Config: testConfig()}
	req := httptest.NewRequest(http.MethodPost, "/plans/loads", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()

	h.Loads(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoadsHandlerRejectsTrailingJSON(t *testing.T) {
	h := &PlanHandler{Config: testConfig()}
	req := httptest.NewRequest(http.MethodPost, "/plans/loads", strings.NewReader(`{"rows":[]}{"rows":[]}`))
	rec := httptest.NewRecorder()

	h.Loads(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoadsHandlerRejectsAllInvalidRows(t *testing.T) {
	h := &PlanHandler{Config: testConfig()}
	body := `{"rows":[{"Line":"1","ReadyPieces":"1","ReadyWeight":"100"}]}`
	req := httptest.NewRequest(http.MethodPost, "/plans/loads", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Loads(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
