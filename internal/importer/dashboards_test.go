package importer

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dashboardAPIHandler(detailCalls *atomic.Int32) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/search", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"uid":"d1","title":"Cluster Overview","folderUid":"f1"},
			{"uid":"d2","title":"Loki Logs"}
		]`))
	})
	mux.HandleFunc("/api/dashboards/uid/", func(w http.ResponseWriter, r *http.Request) {
		if detailCalls != nil {
			detailCalls.Add(1)
		}
		uid := strings.TrimPrefix(r.URL.Path, "/api/dashboards/uid/")
		if uid == "d2" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Dashboard not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"dashboard":{"uid":"d1","title":"Cluster Overview","panels":[]}}`))
	})
	return mux
}

func TestDashboardsTwoPhaseFetch(t *testing.T) {
	var detailCalls atomic.Int32
	client := newAPIClient(t, dashboardAPIHandler(&detailCalls))

	candidates, dropped, err := Dashboards().Fetch(context.Background(), client)
	require.NoError(t, err)
	assert.Zero(t, dropped)
	assert.Len(t, candidates, 2)
	assert.Equal(t, int32(2), detailCalls.Load(), "every hit gets a detail fetch")
}

func TestDashboardsGenerateWritesBodyFiles(t *testing.T) {
	client := newAPIClient(t, dashboardAPIHandler(nil))

	opts, dir, _ := testOptions(t, ModeGenerate)
	res := RunType(context.Background(), client, Dashboards(), opts)

	// d2's detail fetch fails; the rest of the batch still projects
	assert.Equal(t, 2, res.Fetched)
	assert.Equal(t, 1, res.Projected)
	assert.Equal(t, 1, res.Failed)

	tf, err := os.ReadFile(filepath.Join(dir, "dashboards.tf"))
	require.NoError(t, err)
	assert.Contains(t, string(tf), `resource "grafana_dashboard" "imported_cluster_overview"`)
	assert.Contains(t, string(tf), `file("dashboards/imported_cluster_overview.json")`)

	blocks := parseResourceBlocks(t, filepath.Join(dir, "dashboards.tf"))
	assert.Equal(t, "f1", blocks["imported_cluster_overview"]["folder"])

	body, err := os.ReadFile(filepath.Join(dir, "dashboards", "imported_cluster_overview.json"))
	require.NoError(t, err)
	assert.Contains(t, string(body), `"title": "Cluster Overview"`)
}
