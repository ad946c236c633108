package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docker/threadview/pkg/api"
)

func TestClient_GetThread(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/rooms/room-1/threads/thread-1", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"room_id": "room-1",
			"thread_id": "thread-1",
			"runs": {
				"run-a": {"run_id": "run-a", "created": "2025-06-01T10:00:00Z", "finished": "2025-06-01T10:01:00Z"},
				"run-b": {"run_id": "run-b", "created": "2025-06-01T10:05:00Z"}
			}
		}`))
	}))
	defer server.Close()

	c, err := New(server.URL, WithToken("secret"))
	require.NoError(t, err)

	thread, err := c.GetThread(context.Background(), "room-1", "thread-1")
	require.NoError(t, err)

	assert.Equal(t, "room-1", thread.RoomID)
	require.Len(t, thread.Runs, 2)
	assert.NotNil(t, thread.Runs["run-a"].Finished)
	assert.Nil(t, thread.Runs["run-b"].Finished)
}

func TestClient_GetThread_NullRuns(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"room_id": "room-1", "thread_id": "thread-1", "runs": null}`))
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)

	thread, err := c.GetThread(context.Background(), "room-1", "thread-1")
	require.NoError(t, err)
	assert.Empty(t, thread.Runs)
}

func TestClient_GetRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/rooms/room-1/threads/thread-1/runs/run-a", r.URL.Path)

		_, _ = w.Write([]byte(`{
			"run_id": "run-a",
			"run_input": {"messages": [{"id": "u1", "role": "user", "content": "hi"}]},
			"events": [
				{"type": "message-start", "messageId": "m1", "role": "assistant"},
				{"type": "message-content", "messageId": "m1", "delta": "hello"},
				{"type": "message-end", "messageId": "m1"}
			]
		}`))
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)

	run, err := c.GetRun(context.Background(), "room-1", "thread-1", "run-a")
	require.NoError(t, err)

	assert.Equal(t, "run-a", run.RunID)
	require.NotNil(t, run.RunInput)
	require.Len(t, run.RunInput.Messages, 1)
	require.NotNil(t, run.RunInput.Messages[0].Role)
	assert.Equal(t, "user", *run.RunInput.Messages[0].Role)
	assert.Len(t, run.Events, 3)
}

func TestClient_ValidatesIDs(t *testing.T) {
	c, err := New("http://localhost:9")
	require.NoError(t, err)

	_, err = c.GetThread(context.Background(), "", "thread-1")
	assert.Equal(t, api.ErrorKindValidation, api.KindOf(err))

	_, err = c.GetRun(context.Background(), "room-1", "thread-1", "")
	assert.Equal(t, api.ErrorKindValidation, api.KindOf(err))
}

func TestClient_ClassifiesStatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   api.ErrorKind
	}{
		{name: "not found", status: http.StatusNotFound, want: api.ErrorKindNotFound},
		{name: "unauthorized", status: http.StatusUnauthorized, want: api.ErrorKindAuth},
		{name: "forbidden", status: http.StatusForbidden, want: api.ErrorKindAuth},
		{name: "server error", status: http.StatusInternalServerError, want: api.ErrorKindServer},
		{name: "overloaded", status: http.StatusServiceUnavailable, want: api.ErrorKindServer},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(test.status)
				_, _ = w.Write([]byte(`{"error": "nope"}`))
			}))
			defer server.Close()

			c, err := New(server.URL)
			require.NoError(t, err)

			_, err = c.GetRun(context.Background(), "room-1", "thread-1", "run-a")
			require.Error(t, err)
			assert.Equal(t, test.want, api.KindOf(err))

			var apiErr *api.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, test.status, apiErr.Status)
			assert.Equal(t, "nope", apiErr.Message)
		})
	}
}

func TestClient_ConnectionFailureIsNetworkKind(t *testing.T) {
	// Reserved port, nothing listens there.
	c, err := New("http://127.0.0.1:1")
	require.NoError(t, err)

	_, err = c.GetThread(context.Background(), "room-1", "thread-1")
	assert.Equal(t, api.ErrorKindNetwork, api.KindOf(err))
}

func TestClient_UndecodablePayloadIsServerKind(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)

	_, err = c.GetThread(context.Background(), "room-1", "thread-1")
	assert.Equal(t, api.ErrorKindServer, api.KindOf(err))
}

func TestClient_CancellationIsCanceledKind(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err = c.GetThread(ctx, "room-1", "thread-1")
	assert.Equal(t, api.ErrorKindCanceled, api.KindOf(err))
}

func TestClient_TimeoutIsNetworkKind(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	c, err := New(server.URL, WithTimeout(20*time.Millisecond))
	require.NoError(t, err)

	_, err = c.GetThread(context.Background(), "room-1", "thread-1")
	assert.Equal(t, api.ErrorKindNetwork, api.KindOf(err))
}

func TestClient_InvalidBaseURL(t *testing.T) {
	_, err := New("://bad")
	assert.Error(t, err)
}
