package importer

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertRuleGroupsCollapseToOneDirectivePerGroup(t *testing.T) {
	client := newAPIClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/provisioning/alert-rules", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"uid":"r1","title":"High CPU","folderUID":"f1","ruleGroup":"system-alerts"},
			{"uid":"r2","title":"High memory","folderUID":"f1","ruleGroup":"system-alerts"},
			{"uid":"r3","title":"Slow queries","folderUID":"f2","ruleGroup":"db-alerts"}
		]`))
	}))

	candidates, dropped, err := AlertRuleGroups().Fetch(context.Background(), client)
	require.NoError(t, err)
	assert.Zero(t, dropped)
	require.Len(t, candidates, 2, "rules sharing a group collapse into one candidate")

	// sorted by folder UID then group name
	assert.Equal(t, "f1:system-alerts", candidates[0].ID)
	assert.Equal(t, "f2:db-alerts", candidates[1].ID)
}

func TestAlertRuleGroupProjection(t *testing.T) {
	client := newAPIClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"uid":"r1","title":"High CPU","folderUID":"f1","ruleGroup":"system-alerts"}
		]`))
	}))

	opts, _, out := testOptions(t, ModePreview)
	res := RunType(context.Background(), client, AlertRuleGroups(), opts)

	assert.Equal(t, 1, res.Projected)
	require.Len(t, res.Directives, 1)
	assert.Equal(t, "grafana_rule_group.imported_f1_system_alerts", res.Directives[0].Address)
	assert.Equal(t, "f1:system-alerts", res.Directives[0].ID)
	assert.Contains(t, out.String(), `"f1:system-alerts"`)
}
