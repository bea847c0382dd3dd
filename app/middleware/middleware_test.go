package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/recallify/catalog-service/app/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestID(t *testing.T) {
	testCases := []struct {
		name      string
		inboundID string
	}{
		{name: "Generates id when missing"},
		{name: "Reuses inbound id", inboundID: "abc-123"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var seen string
			h := RequestID(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = logger.GetRequestID(r.Context())
			}))
			req := httptest.NewRequest("GET", "/catalog", nil)
			if tc.inboundID != "" {
				req.Header.Set(RequestIDHeader, tc.inboundID)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
			if tc.inboundID != "" {
				assert.Equal(t, tc.inboundID, seen)
			} else {
				_, err := uuid.Parse(seen)
				assert.NoError(t, err)
			}
		})
	}
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte("done"))
		}),
		RequestID(zap.New(core)),
		AccessLog,
	)
	req := httptest.NewRequest("POST", "/catalog", nil)
	req.Header.Set(RequestIDHeader, "req-7")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "POST", fields["method"])
	assert.Equal(t, "/catalog", fields["path"])
	assert.EqualValues(t, http.StatusCreated, fields["status"])
	assert.EqualValues(t, 4, fields["bytes"])
	assert.Equal(t, "req-7", fields["request_id"])
}

func TestRecover(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}),
		RequestID(zap.New(core)),
		Recover,
	)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, httptest.NewRequest("GET", "/catalog/x", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var errResp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	assert.Equal(t, "Internal server error", errResp["error"])
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
}
