package router

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appinv "github.com/erp/lpcore/internal/application/inventory"
	"github.com/erp/lpcore/internal/domain/inventory"
	"github.com/erp/lpcore/internal/domain/shared"
	"github.com/erp/lpcore/internal/infrastructure/cache"
	"github.com/erp/lpcore/internal/infrastructure/logger"
	"github.com/erp/lpcore/internal/infrastructure/persistence/memory"
	"github.com/erp/lpcore/internal/infrastructure/strategy"
	"github.com/erp/lpcore/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code      string         `json:"code"`
		Kind      string         `json:"kind"`
		Details   map[string]any `json:"details"`
		RequestID string         `json:"request_id"`
	} `json:"error"`
	Meta *struct {
		Total int64 `json:"total"`
	} `json:"meta"`
	NoChange bool `json:"no_change"`
}

type apiTest struct {
	t           *testing.T
	engine      *gin.Engine
	actor       uuid.UUID
	productID   uuid.UUID
	warehouseID uuid.UUID
}

func newAPITest(t *testing.T, checks map[string]handler.HealthChecker) *apiTest {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	registry, err := strategy.NewRegistryWithDefaults("FIFO")
	require.NoError(t, err)

	idem := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = idem.Close() })

	reservations := appinv.NewReservationService(store, registry, nil)
	reservations.SetIdempotencyStore(idem, shared.IdempotencyConfig{Enabled: true, TTL: time.Hour})

	productID := uuid.New()
	receiving := appinv.NewReceivingService(store, inventory.TolerancePolicy{}, nil)
	receiving.SetQAExemptProducts([]uuid.UUID{productID})

	h := Handlers{
		LicensePlates: handler.NewLicensePlateHandler(
			appinv.NewLicensePlateService(store, nil),
			appinv.NewQAService(store, inventory.DefaultQAPolicy(), nil),
		),
		Demands:      handler.NewDemandHandler(appinv.NewDemandService(store, nil)),
		Reservations: handler.NewReservationHandler(reservations, appinv.NewPickService(store, nil)),
		Receiving:    handler.NewReceivingHandler(receiving),
		System:       handler.NewSystemHandler(registry, checks),
	}

	return &apiTest{
		t:           t,
		engine:      New(h, Options{}),
		actor:       uuid.New(),
		productID:   productID,
		warehouseID: uuid.New(),
	}
}

func (a *apiTest) do(method, path string, body any, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(logger.ActorHeader, a.actor.String())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func (a *apiTest) receive(lpNumber, qty string) appinv.LicensePlateResponse {
	a.t.Helper()
	w, env := a.do(http.MethodPost, "/api/v1/receiving-lines", map[string]any{
		"asn_id":          uuid.New(),
		"product_id":      a.productID,
		"warehouse_id":    a.warehouseID,
		"expected_qty":    qty,
		"unit_of_measure": "kg",
	}, nil)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	line := decode[appinv.ReceivingLineResponse](a.t, env)

	w, env = a.do(http.MethodPost, "/api/v1/receiving-lines/"+line.ID.String()+"/receipts", map[string]any{
		"quantity":  qty,
		"lp_number": lpNumber,
	}, nil)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[appinv.ReceiptResponse](a.t, env).LicensePlate
}

func (a *apiTest) createDemand(reference, qty string) appinv.DemandResponse {
	a.t.Helper()
	w, env := a.do(http.MethodPost, "/api/v1/demands", map[string]any{
		"reference":       reference,
		"type":            "work_order",
		"product_id":      a.productID,
		"warehouse_id":    a.warehouseID,
		"required_qty":    qty,
		"unit_of_measure": "kg",
	}, nil)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[appinv.DemandResponse](a.t, env)
}

func TestRouter_ReserveAndPick(t *testing.T) {
	api := newAPITest(t, nil)
	lp := api.receive("LP-100", "10")
	assert.Equal(t, "passed", lp.QAStatus)
	demand := api.createDemand("WO-7", "4")

	commitPath := "/api/v1/demands/" + demand.ID.String() + "/reservations"
	w, env := api.do(http.MethodPost, commitPath, map[string]any{}, map[string]string{
		handler.IdempotencyKeyHeader: "commit-1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	result := decode[appinv.CommitResult](t, env)
	require.Len(t, result.Reservations, 1)
	assert.Equal(t, lp.ID, result.Reservations[0].LicensePlateID)
	assert.Equal(t, "full", result.Coverage.Status)

	w, env = api.do(http.MethodPost, commitPath, map[string]any{}, map[string]string{
		handler.IdempotencyKeyHeader: "commit-1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "DUPLICATE_REQUEST", env.Error.Code)

	reservationID := result.Reservations[0].ID.String()
	w, env = api.do(http.MethodPost, "/api/v1/reservations/"+reservationID+"/pick", map[string]any{"quantity": "4"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	pick := decode[appinv.PickResult](t, env)
	assert.True(t, decimal.NewFromInt(4).Equal(pick.PickedQty))
	assert.True(t, decimal.NewFromInt(6).Equal(pick.LicensePlate.QuantityOnHand))

	w, env = api.do(http.MethodGet, "/api/v1/license-plates/"+lp.ID.String()+"/history?page=1&page_size=50", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Meta)
	entries := decode[[]appinv.AuditEntryResponse](t, env)
	assert.Len(t, entries, int(env.Meta.Total))
	assert.NotEmpty(t, entries)
}

func TestRouter_LicensePlateErrors(t *testing.T) {
	api := newAPITest(t, nil)

	t.Run("unknown plate", func(t *testing.T) {
		w, env := api.do(http.MethodGet, "/api/v1/license-plates/"+uuid.NewString(), nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, string(shared.KindNotFound), env.Error.Kind)
		assert.NotEmpty(t, env.Error.RequestID)
	})

	t.Run("malformed id", func(t *testing.T) {
		w, env := api.do(http.MethodGet, "/api/v1/license-plates/not-a-uuid", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_ID", env.Error.Code)
	})

	lp := api.receive("LP-200", "5")

	t.Run("missing actor", func(t *testing.T) {
		w, env := api.do(http.MethodPost, "/api/v1/license-plates/"+lp.ID.String()+"/block", nil,
			map[string]string{logger.ActorHeader: ""})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "MISSING_ACTOR", env.Error.Code)
	})

	t.Run("block then block again", func(t *testing.T) {
		path := "/api/v1/license-plates/" + lp.ID.String() + "/block"
		w, env := api.do(http.MethodPost, path, map[string]any{"reason": "damaged pallet"}, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "blocked", decode[appinv.LicensePlateResponse](t, env).Status)

		w, env = api.do(http.MethodPost, path, map[string]any{"reason": "damaged pallet"}, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.True(t, env.NoChange)
		assert.Nil(t, env.Error)
		assert.Equal(t, "blocked", decode[appinv.LicensePlateResponse](t, env).Status)
	})

	t.Run("transition to current status is a no-op", func(t *testing.T) {
		historyPath := "/api/v1/license-plates/" + lp.ID.String() + "/history"
		_, before := api.do(http.MethodGet, historyPath, nil, nil)
		require.NotNil(t, before.Meta)

		w, env := api.do(http.MethodPost, "/api/v1/license-plates/"+lp.ID.String()+"/transitions",
			map[string]any{"target": "blocked"}, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.True(t, env.NoChange)
		assert.Equal(t, "blocked", decode[appinv.LicensePlateResponse](t, env).Status)

		_, after := api.do(http.MethodGet, historyPath, nil, nil)
		require.NotNil(t, after.Meta)
		assert.Equal(t, before.Meta.Total, after.Meta.Total)
	})

	t.Run("invalid transition still conflicts", func(t *testing.T) {
		w, env := api.do(http.MethodPost, "/api/v1/license-plates/"+lp.ID.String()+"/transitions",
			map[string]any{"target": "reserved"}, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, string(shared.KindInvalidTransition), env.Error.Kind)
		assert.False(t, env.NoChange)
	})

	t.Run("consumption check explains refusal", func(t *testing.T) {
		w, env := api.do(http.MethodGet, "/api/v1/license-plates/"+lp.ID.String()+"/consumption-check", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		check := decode[appinv.ConsumptionCheckResponse](t, env)
		assert.False(t, check.Valid)
		assert.Equal(t, "blocked", check.CurrentStatus)
	})

	t.Run("qa change requires role", func(t *testing.T) {
		path := "/api/v1/license-plates/" + lp.ID.String() + "/qa-status"
		body := map[string]any{"target": "quarantine", "reason": "supplier recall notice"}

		w, env := api.do(http.MethodPut, path, body, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, appinv.CodeQAForbidden, env.Error.Code)

		w, env = api.do(http.MethodPut, path, body, map[string]string{handler.RolesHeader: "picker, QA"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "quarantine", decode[appinv.QAStatusResponse](t, env).LicensePlate.QAStatus)
	})
}

func TestRouter_HistoryOrdering(t *testing.T) {
	api := newAPITest(t, nil)
	lp := api.receive("LP-300", "5")
	for _, action := range []string{"block", "unblock", "block"} {
		w, _ := api.do(http.MethodPost, "/api/v1/license-plates/"+lp.ID.String()+"/"+action, nil, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	path := "/api/v1/license-plates/" + lp.ID.String() + "/history"

	w, env := api.do(http.MethodGet, path, nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	newest := decode[[]appinv.AuditEntryResponse](t, env)
	require.GreaterOrEqual(t, len(newest), 3)
	assert.Equal(t, "blocked", newest[0].NewValue)

	t.Run("oldest first", func(t *testing.T) {
		w, env := api.do(http.MethodGet, path+"?order_by=changed_at&order_dir=asc", nil, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		oldest := decode[[]appinv.AuditEntryResponse](t, env)
		require.Len(t, oldest, len(newest))
		for i := range oldest {
			assert.Equal(t, newest[len(newest)-1-i].ID, oldest[i].ID)
		}
	})

	t.Run("unknown column falls back to newest first", func(t *testing.T) {
		w, env := api.do(http.MethodGet, path+"?order_by=actor_id", nil, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		entries := decode[[]appinv.AuditEntryResponse](t, env)
		require.Len(t, entries, len(newest))
		assert.Equal(t, newest[0].ID, entries[0].ID)
	})

	t.Run("bad direction is rejected", func(t *testing.T) {
		w, env := api.do(http.MethodGet, path+"?order_dir=sideways", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, env.Error)
	})
}

func TestRouter_System(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		api := newAPITest(t, map[string]handler.HealthChecker{"database": func() error { return nil }})
		w, _ := api.do(http.MethodGet, "/health", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"healthy"`)
	})

	t.Run("unhealthy", func(t *testing.T) {
		api := newAPITest(t, map[string]handler.HealthChecker{
			"database": func() error { return errors.New("connection refused") },
		})
		w, _ := api.do(http.MethodGet, "/health", nil, nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "connection refused")
	})

	t.Run("strategies", func(t *testing.T) {
		api := newAPITest(t, nil)
		w, env := api.do(http.MethodGet, "/api/v1/strategies", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"fefo", "fifo"}, decode[[]string](t, env))
	})

	t.Run("unknown route", func(t *testing.T) {
		api := newAPITest(t, nil)
		w, env := api.do(http.MethodGet, "/api/v1/nope", nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "ROUTE_NOT_FOUND", env.Error.Code)
	})
}

func TestRouter_Swagger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	registry, err := strategy.NewRegistryWithDefaults("FIFO")
	require.NoError(t, err)
	h := Handlers{System: handler.NewSystemHandler(registry, nil)}

	t.Run("serves the API document when enabled", func(t *testing.T) {
		engine := New(h, Options{Swagger: true})
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"/license-plates/{id}"`)
		assert.Contains(t, w.Body.String(), "License Plate Inventory API")
	})

	t.Run("absent when disabled", func(t *testing.T) {
		engine := New(h, Options{})
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
