package importer

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataSourcesProjection(t *testing.T) {
	client := newAPIClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/datasources", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id":1,"uid":"ds1","name":"Prometheus","type":"prometheus","url":"http://prom:9090","isDefault":true},
			{"id":2,"name":"","type":"loki","url":"http://loki:3100"},
			{"id":3,"name":"Tempo","type":"tempo","url":"http://tempo:3200"}
		]`))
	}))

	opts, dir, _ := testOptions(t, ModeGenerate)
	res := RunType(context.Background(), client, DataSources(), opts)

	// the nameless record fails projection, the others continue
	assert.Equal(t, 3, res.Fetched)
	assert.Equal(t, 2, res.Projected)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Directives, 2)
	assert.Equal(t, "1", res.Directives[0].ID)
	assert.Equal(t, "3", res.Directives[1].ID)

	blocks := parseResourceBlocks(t, filepath.Join(dir, "datasources.tf"))
	require.Len(t, blocks, 2)
	assert.Equal(t, "prometheus", blocks["imported_prometheus"]["type"])
	assert.Equal(t, "http://prom:9090", blocks["imported_prometheus"]["url"])

	// secrets never appear in the projection
	for _, attrs := range blocks {
		assert.NotContains(t, attrs, "password")
		assert.NotContains(t, attrs, "basic_auth_password")
		assert.NotContains(t, attrs, "secure_json_data")
	}
}

func TestContactPointsProjection(t *testing.T) {
	client := newAPIClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/provisioning/contact-points", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"uid":"cp1","name":"On-call Slack","type":"slack"}
		]`))
	}))

	opts, _, out := testOptions(t, ModePreview)
	res := RunType(context.Background(), client, ContactPoints(), opts)

	assert.Equal(t, 1, res.Projected)
	assert.Contains(t, out.String(), `terraform import "grafana_contact_point.imported_on_call_slack" "cp1"`)
}
