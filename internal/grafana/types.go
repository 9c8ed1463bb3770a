package grafana

import "encoding/json"

// Folder is a dashboard folder. Identity is the UID; the API can return
// placeholder records (the legacy "General" folder among them) without a
// usable UID, which the validator filters out.
type Folder struct {
	UID   string `json:"uid"`
	Title string `json:"title"`
}

// DataSource identity is the numeric ID; UID may be absent on older servers.
type DataSource struct {
	ID        int64  `json:"id"`
	UID       string `json:"uid,omitempty"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	URL       string `json:"url"`
	IsDefault bool   `json:"isDefault"`
}

// DashboardHit is the search-result form of a dashboard. The full body
// must be fetched separately by UID.
type DashboardHit struct {
	UID       string `json:"uid"`
	Title     string `json:"title"`
	FolderUID string `json:"folderUid,omitempty"`
}

// Dashboard is the full-record form: the raw dashboard JSON plus the
// identity fields echoed from the search hit.
type Dashboard struct {
	Hit  DashboardHit
	Body json.RawMessage
}

// ContactPoint is an alerting notification target.
type ContactPoint struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// AlertRule is an individual provisioned alert rule. Rules are imported
// as groups keyed by (FolderUID, RuleGroup), never individually.
type AlertRule struct {
	UID       string `json:"uid"`
	Title     string `json:"title"`
	FolderUID string `json:"folderUID"`
	RuleGroup string `json:"ruleGroup"`
}
