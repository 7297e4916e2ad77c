package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"ftf/internal/license/ports/mocks"
	"ftf/internal/license/service"
	"ftf/internal/license/store/division"
	"ftf/internal/license/store/history"
	"ftf/internal/license/store/membership"
	"ftf/internal/license/store/request"
	"ftf/internal/license/validation"
	"ftf/internal/license/workflow"
	"ftf/internal/platform/config"
	"ftf/internal/platform/middleware"
)

const testSigningKey = "handler-test-signing-key"

type fixture struct {
	router chi.Router
	teamID uuid.UUID
}

func newLicenseRouter(t *testing.T) *fixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rules := config.DefaultRules()

	requests := request.NewMemory(rules.DomesticNationality)
	histories := history.NewMemory()
	memberships := membership.NewMemory()
	divisions := division.NewStatic()

	auditPub := mocks.NewMockAuditPublisher(gomock.NewController(t))
	auditPub.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	orchestrator := validation.NewOrchestrator(requests, memberships, memberships, divisions, rules, logger)
	engine := workflow.NewEngine(requests, histories, request.NewMemoryTxRunner(), auditPub, logger)
	svc := service.New(orchestrator, engine, requests, service.WithLogger(logger))

	h := New(svc, logger, WithActorMiddleware(
		middleware.RequireActor(middleware.NewHMACValidator(testSigningKey), logger)))

	router := chi.NewRouter()
	router.Use(middleware.RequestID, middleware.RequestTime, middleware.UserAgent)
	h.Register(router)

	return &fixture{
		router: router,
		teamID: uuid.New(),
	}
}

func (f *fixture) validBody() map[string]any {
	consultation := time.Now().UTC().AddDate(0, 0, -10)
	return map[string]any{
		"first_name":          "Amine",
		"last_name":           "Ben Salah",
		"birth_date":          "1998-03-21",
		"nationality":         "TN",
		"cin":                 "12345678",
		"team_id":             f.teamID.String(),
		"season":              "2024-2025",
		"regime":              "AMATEUR",
		"license_type":        "NEW",
		"examiner_first_name": "Mounir",
		"examiner_last_name":  "Gharbi",
		"consultation_date":   consultation.Format("2006-01-02"),
	}
}

func (f *fixture) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func actorToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": uuid.NewString(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSigningKey))
	require.NoError(t, err)
	return signed
}

func authHeader(t *testing.T) map[string]string {
	return map[string]string{"Authorization": "Bearer " + actorToken(t)}
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestValidateEndpoint(t *testing.T) {
	t.Run("valid request reports derived facts", func(t *testing.T) {
		f := newLicenseRouter(t)
		rec := f.do(t, http.MethodPost, "/licenses/validate", f.validBody(), nil)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeJSON[ValidationResponse](t, rec)
		assert.True(t, resp.Valid)
		assert.Empty(t, resp.Errors)
		assert.Equal(t, "SENIORS", resp.Category)
		assert.Equal(t, "REGIONAL", resp.Division)
	})

	t.Run("pipeline rejection comes back with the error list", func(t *testing.T) {
		f := newLicenseRouter(t)
		body := f.validBody()
		body["cin"] = "1234" // malformed

		rec := f.do(t, http.MethodPost, "/licenses/validate", body, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeJSON[ValidationResponse](t, rec)
		assert.False(t, resp.Valid)
		assert.Contains(t, resp.Errors, validation.MsgCINFormat)
	})

	t.Run("nothing is persisted", func(t *testing.T) {
		f := newLicenseRouter(t)
		rec := f.do(t, http.MethodPost, "/licenses/validate", f.validBody(), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		// The same player can still be created afterwards.
		rec = f.do(t, http.MethodPost, "/licenses", f.validBody(), nil)
		require.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		f := newLicenseRouter(t)
		req := httptest.NewRequest(http.MethodPost, "/licenses/validate", bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed date is a bad request", func(t *testing.T) {
		f := newLicenseRouter(t)
		body := f.validBody()
		body["birth_date"] = "21/03/1998"
		rec := f.do(t, http.MethodPost, "/licenses/validate", body, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateEndpoint(t *testing.T) {
	t.Run("created request is retrievable in the initial status", func(t *testing.T) {
		f := newLicenseRouter(t)
		rec := f.do(t, http.MethodPost, "/licenses", f.validBody(), nil)

		require.Equal(t, http.StatusCreated, rec.Code)
		created := decodeJSON[CreateResponse](t, rec)
		require.NotNil(t, created.Request)
		assert.Equal(t, "INITIAL", created.Request.Status)
		assert.Equal(t, "SENIORS", created.Request.Category)

		get := f.do(t, http.MethodGet, "/licenses/"+created.Request.ID, nil, nil)
		require.Equal(t, http.StatusOK, get.Code)
		fetched := decodeJSON[RequestResponse](t, get)
		assert.Equal(t, created.Request.ID, fetched.ID)
		assert.Equal(t, "INITIAL", fetched.Status)
	})

	t.Run("rejected request persists nothing", func(t *testing.T) {
		f := newLicenseRouter(t)
		body := f.validBody()
		delete(body, "team_id")

		rec := f.do(t, http.MethodPost, "/licenses", body, nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeJSON[ValidationResponse](t, rec)
		assert.False(t, resp.Valid)
		assert.NotEmpty(t, resp.Errors)
	})

	t.Run("duplicate player is rejected", func(t *testing.T) {
		f := newLicenseRouter(t)
		rec := f.do(t, http.MethodPost, "/licenses", f.validBody(), nil)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = f.do(t, http.MethodPost, "/licenses", f.validBody(), nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeJSON[ValidationResponse](t, rec)
		assert.Contains(t, resp.Errors, validation.MsgDuplicateRequest)
	})

	t.Run("unknown request id is not found", func(t *testing.T) {
		f := newLicenseRouter(t)
		rec := f.do(t, http.MethodGet, "/licenses/"+uuid.NewString(), nil, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-uuid path id is a bad request", func(t *testing.T) {
		f := newLicenseRouter(t)
		rec := f.do(t, http.MethodGet, "/licenses/not-a-uuid", nil, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTransitionEndpoint(t *testing.T) {
	create := func(t *testing.T, f *fixture) string {
		rec := f.do(t, http.MethodPost, "/licenses", f.validBody(), nil)
		require.Equal(t, http.StatusCreated, rec.Code)
		return decodeJSON[CreateResponse](t, rec).Request.ID
	}

	t.Run("requires a bearer token", func(t *testing.T) {
		f := newLicenseRouter(t)
		requestID := create(t, f)

		rec := f.do(t, http.MethodPost, "/licenses/"+requestID+"/transition",
			map[string]string{"status": "PENDING"}, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("legal transition moves the request and appends history", func(t *testing.T) {
		f := newLicenseRouter(t)
		requestID := create(t, f)

		rec := f.do(t, http.MethodPost, "/licenses/"+requestID+"/transition",
			map[string]string{"status": "PENDING", "comment": "dossier received"}, authHeader(t))

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeJSON[RequestResponse](t, rec)
		assert.Equal(t, "PENDING", resp.Status)

		histRec := f.do(t, http.MethodGet, "/licenses/"+requestID+"/history", nil, nil)
		require.Equal(t, http.StatusOK, histRec.Code)
		hist := decodeJSON[HistoryResponse](t, histRec)
		require.Len(t, hist.Entries, 1)
		assert.Equal(t, "INITIAL", hist.Entries[0].FromStatus)
		assert.Equal(t, "PENDING", hist.Entries[0].ToStatus)
		assert.Equal(t, "dossier received", hist.Entries[0].Comment)
		assert.NotEqual(t, "system", hist.Entries[0].ActorID)
	})

	t.Run("illegal transition is a conflict", func(t *testing.T) {
		f := newLicenseRouter(t)
		requestID := create(t, f)

		rec := f.do(t, http.MethodPost, "/licenses/"+requestID+"/transition",
			map[string]string{"status": "PRINTED"}, authHeader(t))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown target status is rejected", func(t *testing.T) {
		f := newLicenseRouter(t)
		requestID := create(t, f)

		rec := f.do(t, http.MethodPost, "/licenses/"+requestID+"/transition",
			map[string]string{"status": "SHIPPED"}, authHeader(t))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("available transitions follow the workflow table", func(t *testing.T) {
		f := newLicenseRouter(t)
		requestID := create(t, f)

		rec := f.do(t, http.MethodGet, "/licenses/"+requestID+"/transitions", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeJSON[TransitionsResponse](t, rec)
		assert.Equal(t, "INITIAL", resp.Status)
		assert.ElementsMatch(t, []string{"PENDING", "VALIDATED", "REJECTED"}, resp.Transitions)
	})
}
