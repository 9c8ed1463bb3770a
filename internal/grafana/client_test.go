package grafana

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{
		BaseURL: srv.URL,
		Token:   "test-token",
	})
	require.NoError(t, err)
	return client, srv
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))

	_, _, err := client.ListFolders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
}

func TestListFolders(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/folders", r.URL.Path)
		_, _ = w.Write([]byte(`[{"uid":"f1","title":"Dev Team"},{"uid":null,"title":"Ghost"}]`))
	}))

	folders, dropped, err := client.ListFolders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)
	require.Len(t, folders, 1)
	assert.Equal(t, "Dev Team", folders[0].Title)
}

func TestSearchDashboardsPath(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search", r.URL.Path)
		assert.Equal(t, "dash-db", r.URL.Query().Get("type"))
		_, _ = w.Write([]byte(`[{"uid":"d1","title":"Overview","folderUid":"f1"}]`))
	}))

	hits, dropped, err := client.SearchDashboards(context.Background())
	require.NoError(t, err)
	assert.Zero(t, dropped)
	require.Len(t, hits, 1)
	assert.Equal(t, "f1", hits[0].FolderUID)
}

func TestGetDashboardEscapesUID(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/dashboards/uid/abc-123", r.URL.Path)
		_, _ = w.Write([]byte(`{"dashboard":{"title":"Overview"}}`))
	}))

	body, err := client.GetDashboard(context.Background(), "abc-123")
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Overview"}`, string(body))
}

func TestNon2xxBecomesAPIError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"Permission denied"}`))
	}))

	_, _, err := client.ListDataSources(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "Permission denied", apiErr.Message)
}

func TestUnreachableHostBecomesConnectivityError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // deliberately closed before use

	client, err := New(Config{BaseURL: srv.URL, Timeout: time.Second})
	require.NoError(t, err)

	_, _, err = client.ListFolders(context.Background())

	var connErr *ConnectivityError
	assert.ErrorAs(t, err, &connErr)
}

func TestContextCancellationPropagates(t *testing.T) {
	block := make(chan struct{})
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, _, err := client.ListAlertRules(ctx)
	assert.Error(t, err)
}
