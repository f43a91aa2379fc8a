package stats

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/coach/internal/config"
)

func testClient(endpoint string) *Client {
	return NewClient(config.StatsConfig{Endpoint: endpoint, Timeout: time.Second}, nil)
}

func TestClient_Fetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/alice", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":"success","easySolved":120,"totalEasy":800,"mediumSolved":80,"totalMedium":1600,"hardSolved":10,"totalHard":700,"ranking":54321,"streak":7}`)
	}))
	defer srv.Close()

	rec, err := testClient(srv.URL + "/").Fetch(context.Background(), "  alice ")
	require.NoError(t, err)
	assert.Equal(t, "alice", rec.Username)
	assert.Equal(t, 120, rec.EasySolved)
	assert.Equal(t, 1600, rec.TotalMedium)
	assert.Equal(t, 10, rec.HardSolved)
	assert.Equal(t, 54321, rec.Ranking)
	assert.Equal(t, 7, rec.Streak)
	assert.Equal(t, 210, rec.TotalSolved())
}

func TestClient_Fetch_EmptyUsername(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Fetch(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyUsername)
	assert.Zero(t, calls.Load())
}

func TestClient_Fetch_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"status":"error","message":"user does not exist"}`)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Fetch(context.Background(), "ghost")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Status)
	assert.Equal(t, "user does not exist", se.Message)
	assert.Contains(t, err.Error(), "404")
}

func TestClient_Fetch_ErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"error","message":"user does not exist"}`)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Fetch(context.Background(), "ghost")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Zero(t, se.Status)
	assert.Equal(t, "user does not exist", se.Message)
}

func TestClient_Fetch_ErrorPayloadWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"error"}`)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Fetch(context.Background(), "ghost")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "user not found", se.Message)
}

func TestClient_Fetch_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>oops</html>`)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Fetch(context.Background(), "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}

func TestClient_Fetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(config.StatsConfig{Endpoint: srv.URL, Timeout: 50 * time.Millisecond}, nil)
	_, err := c.Fetch(context.Background(), "alice")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_Fetch_Unavailable(t *testing.T) {
	_, err := testClient("http://127.0.0.1:1").Fetch(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_Fetch_EscapesUsername(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/a%2Fb", r.URL.RawPath)
		fmt.Fprint(w, `{"status":"success"}`)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Fetch(context.Background(), "a/b")
	require.NoError(t, err)
}

func TestStatusError_Error(t *testing.T) {
	assert.Equal(t, "stats api returned status 500", (&StatusError{Status: 500}).Error())
	assert.Equal(t, "stats api error: nope", (&StatusError{Message: "nope"}).Error())
	assert.Equal(t, "stats api returned status 404: nope", (&StatusError{Status: 404, Message: "nope"}).Error())
}
