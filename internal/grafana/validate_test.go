package grafana

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCollection(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantLen int
		wantErr any
	}{
		{
			name:    "valid array",
			raw:     `[{"uid":"a"},{"uid":"b"}]`,
			wantLen: 2,
		},
		{
			name:    "empty array",
			raw:     `[]`,
			wantLen: 0,
		},
		{
			name:    "not JSON",
			raw:     `<html>502 Bad Gateway</html>`,
			wantErr: &MalformedResponseError{},
		},
		{
			name:    "error envelope",
			raw:     `{"message":"Unauthorized"}`,
			wantErr: &APIError{},
		},
		{
			name:    "object without message",
			raw:     `{"folders":[]}`,
			wantErr: &ShapeError{},
		},
		{
			name:    "scalar",
			raw:     `42`,
			wantErr: &ShapeError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := decodeCollection([]byte(tt.raw))
			if tt.wantErr != nil {
				require.Error(t, err)
				switch tt.wantErr.(type) {
				case *MalformedResponseError:
					var target *MalformedResponseError
					assert.True(t, errors.As(err, &target))
				case *APIError:
					var target *APIError
					assert.True(t, errors.As(err, &target))
				case *ShapeError:
					var target *ShapeError
					assert.True(t, errors.As(err, &target))
				}
				return
			}
			require.NoError(t, err)
			assert.Len(t, items, tt.wantLen)
		})
	}
}

func TestDecodeCollectionSurfacesServerMessage(t *testing.T) {
	_, err := decodeCollection([]byte(`{"message":"invalid API key"}`))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid API key", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "invalid API key")
}

func TestDecodeFoldersIdentityFiltering(t *testing.T) {
	raw := `[
		{"uid":"f1","title":"Dev Team"},
		{"uid":null,"title":"Ghost"},
		{"title":"No UID"},
		{"uid":42,"title":"Numeric UID"},
		{"uid":"f2","title":"Dev Team"}
	]`

	folders, dropped, err := decodeFolders([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, 3, dropped)
	require.Len(t, folders, 2)
	assert.Equal(t, Folder{UID: "f1", Title: "Dev Team"}, folders[0])
	assert.Equal(t, Folder{UID: "f2", Title: "Dev Team"}, folders[1])
}

func TestDecodeDataSources(t *testing.T) {
	raw := `[
		{"id":1,"uid":"ds1","name":"Prometheus","type":"prometheus","url":"http://prom:9090","isDefault":true},
		{"id":0,"name":"broken"},
		{"id":7,"name":"Loki","type":"loki","url":"http://loki:3100"}
	]`

	sources, dropped, err := decodeDataSources([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, 1, dropped)
	require.Len(t, sources, 2)
	assert.Equal(t, int64(1), sources[0].ID)
	assert.True(t, sources[0].IsDefault)
	assert.Equal(t, "Loki", sources[1].Name)
}

func TestDecodeAlertRulesRequiresGroupKey(t *testing.T) {
	raw := `[
		{"uid":"r1","title":"High CPU","folderUID":"f1","ruleGroup":"system-alerts"},
		{"uid":"r2","title":"No folder","ruleGroup":"system-alerts"},
		{"uid":"r3","title":"No group","folderUID":"f1"}
	]`

	rules, dropped, err := decodeAlertRules([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, 2, dropped)
	require.Len(t, rules, 1)
	assert.Equal(t, "f1", rules[0].FolderUID)
	assert.Equal(t, "system-alerts", rules[0].RuleGroup)
}

func TestDecodeDashboard(t *testing.T) {
	t.Run("unwraps envelope", func(t *testing.T) {
		body, err := decodeDashboard([]byte(`{"dashboard":{"title":"Overview"},"meta":{"slug":"overview"}}`))
		require.NoError(t, err)
		assert.JSONEq(t, `{"title":"Overview"}`, string(body))
	})

	t.Run("error envelope", func(t *testing.T) {
		_, err := decodeDashboard([]byte(`{"message":"Dashboard not found"}`))
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Dashboard not found", apiErr.Message)
	})

	t.Run("missing dashboard field", func(t *testing.T) {
		_, err := decodeDashboard([]byte(`{"meta":{}}`))
		var shapeErr *ShapeError
		assert.ErrorAs(t, err, &shapeErr)
	})
}
