package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type MockPinger struct {
	Err   error
	calls int
}

func (m *MockPinger) Ping(ctx context.Context) error {
	m.calls++
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("ping without deadline")
	}
	return m.Err
}

func TestHandleHealth(t *testing.T) {
	testCases := []struct {
		name               string
		pingErr            error
		expectedStatusCode int
		expectedStatus     string
	}{
		{name: "Database reachable", expectedStatusCode: http.StatusOK, expectedStatus: "ok"},
		{name: "Database down", pingErr: errors.New("dial tcp: refused"), expectedStatusCode: http.StatusServiceUnavailable, expectedStatus: "unavailable"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pinger := &MockPinger{Err: tc.pingErr}
			handler := NewHealthHandler(pinger)
			rec := httptest.NewRecorder()

			handler.HandleHealth(rec, httptest.NewRequest("GET", "/healthz", nil))

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			assert.Equal(t, 1, pinger.calls)
			var resp map[string]string
			assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tc.expectedStatus, resp["status"])
		})
	}
}
