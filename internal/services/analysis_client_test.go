package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-detector/internal/models"
)

func TestFetchReport_SendsIDAndContentType(t *testing.T) {
	var gotID, gotContentType, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotID = r.URL.Query().Get("id")
		gotContentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":{"email":"a@b.com","results":[{"question":"Q","answer":"A","verification":"Verified","results":[{"url":"https://x.test","score":0.5}]}]}}`))
	}))
	defer server.Close()

	report, err := NewAnalysisClient().FetchReport(context.Background(), server.URL+"/lookup?source=web", "sub 42")

	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "sub 42", gotID)
	assert.Equal(t, "application/json", gotContentType)

	require.NotNil(t, report)
	assert.Equal(t, "a@b.com", report.Email)
	require.Len(t, report.Results, 1)
	assert.Equal(t, models.LabelVerified, report.Results[0].Verification)
	assert.Equal(t, 0.5, report.Results[0].Results[0].Score)
}

func TestFetchReport_Responses(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		notFound   bool
	}{
		{name: "404 is a service error", status: http.StatusNotFound, body: `{"error":"missing"}`, wantStatus: http.StatusNotFound},
		{name: "500 is a service error", status: http.StatusInternalServerError, wantStatus: http.StatusInternalServerError},
		{name: "empty 200", status: http.StatusOK, body: "", notFound: true},
		{name: "object without result", status: http.StatusOK, body: `{}`, notFound: true},
		{name: "null result", status: http.StatusOK, body: `{"result":null}`, notFound: true},
		{name: "not json", status: http.StatusOK, body: `<html>oops</html>`, notFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			report, err := NewAnalysisClient().FetchReport(context.Background(), server.URL, "abc")

			require.Error(t, err)
			assert.Nil(t, report)

			if tt.notFound {
				var notFound *models.NotFoundError
				require.True(t, errors.As(err, &notFound), "got %T", err)
				assert.Equal(t, "abc", notFound.ID)
				return
			}

			var serviceErr *models.ServiceError
			require.True(t, errors.As(err, &serviceErr), "got %T", err)
			assert.Equal(t, tt.wantStatus, serviceErr.StatusCode)
		})
	}
}

func TestFetchReport_UnreachableIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	_, err := NewAnalysisClient().FetchReport(context.Background(), endpoint, "abc")

	var transportErr *models.TransportError
	require.True(t, errors.As(err, &transportErr), "got %T", err)
	assert.Equal(t, endpoint, transportErr.Endpoint)
}

func TestSubmitResumes_StatusHandling(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusCreated)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
	}))
	defer server.Close()

	client := NewAnalysisClient()
	payload := models.SubmissionPayload{Email: "a@b.com", Resumes: []string{"eA=="}}

	require.NoError(t, client.SubmitResumes(context.Background(), server.URL, payload))

	status.Store(http.StatusBadRequest)
	err := client.SubmitResumes(context.Background(), server.URL, payload)

	var serviceErr *models.ServiceError
	require.True(t, errors.As(err, &serviceErr))
	assert.Equal(t, http.StatusBadRequest, serviceErr.StatusCode)
	assert.Equal(t, "API error: 400", err.Error())
}

func TestSubmitResumes_CancelledContextSkipsRequest(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewAnalysisClient().SubmitResumes(ctx, server.URL, models.SubmissionPayload{Email: "a@b.com"})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), calls.Load())
}

func TestFetchEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[{"type":"ping"}]`))
	}))
	defer server.Close()

	client := NewAnalysisClient()

	assert.NoError(t, client.FetchEvents(context.Background(), server.URL+"/events"))

	var serviceErr *models.ServiceError
	err := client.FetchEvents(context.Background(), server.URL+"/broken")
	require.True(t, errors.As(err, &serviceErr))
	assert.Equal(t, http.StatusServiceUnavailable, serviceErr.StatusCode)
}
