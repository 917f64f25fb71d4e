package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/npezzotti/go-clubs/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestErrorHandler_PanicRecovery(t *testing.T) {
	log, logs := testutil.ObservedLogger()
	app := &App{log: log}

	// handler that panics
	panicHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(errors.New("test panic"))
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	handler := app.errorHandler(panicHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "close", rr.Header().Get("Connection"))
	if assert.Equal(t, 1, logs.FilterMessage("panic").Len()) {
		assert.Equal(t, "test panic", logs.FilterMessage("panic").All()[0].ContextMap()["error"])
	}
}

func TestErrorHandler_PanicWithValue(t *testing.T) {
	log, logs := testutil.ObservedLogger()
	app := &App{log: log}

	rr := httptest.NewRecorder()
	app.errorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("plain string")
	})).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, 1, logs.FilterMessage("panic").Len())
}

func Test_errorHandler_NoPanic(t *testing.T) {
	app := &App{}

	// simple handler that does not panic
	called := false
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	handler := app.errorHandler(okHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
	assert.True(t, called, "expected handler to be called")
}

func Test_requireClerkId(t *testing.T) {
	app := &App{log: testutil.TestLogger(t)}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clerkId, ok := ClerkId(r.Context())
		if !ok {
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(clerkId))
	})

	tcases := []struct {
		name         string
		target       string
		expectedCode int
		expectedBody string
	}{
		{"clerkId present", "/?clerkId=user_1", http.StatusOK, "user_1"},
		{"clerkId missing", "/", http.StatusBadRequest, ""},
		{"clerkId empty", "/?clerkId=", http.StatusBadRequest, ""},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			app.requireClerkId(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, tc.target, nil))

			assert.Equal(t, tc.expectedCode, rr.Code)
			if tc.expectedBody != "" {
				assert.Equal(t, tc.expectedBody, rr.Body.String())
			}
		})
	}
}

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		handlerStatus  int
		handlerBody    string
		expectedStatus int
	}{
		{
			name:           "OK response",
			handlerStatus:  http.StatusOK,
			handlerBody:    "hello",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Internal server error",
			handlerStatus:  http.StatusInternalServerError,
			handlerBody:    "error",
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, logs := testutil.ObservedLogger()

			var seenId string
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seenId = RequestId(r.Context())
				w.WriteHeader(tt.handlerStatus)
				_, _ = w.Write([]byte(tt.handlerBody))
			})

			rr := httptest.NewRecorder()
			LoggingMiddleware(log)(nextHandler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.handlerBody, rr.Body.String())

			reqId := rr.Header().Get("X-Request-ID")
			assert.NotEmpty(t, reqId)
			assert.Equal(t, reqId, seenId)

			entries := logs.FilterMessage("request").All()
			if assert.Len(t, entries, 1) {
				fields := entries[0].ContextMap()
				assert.Equal(t, reqId, fields["request_id"])
				assert.EqualValues(t, tt.expectedStatus, fields["status"])
				assert.Equal(t, "5B", fields["response_size"])
			}
		})
	}
}
