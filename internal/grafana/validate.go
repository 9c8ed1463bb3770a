package grafana

import (
	"encoding/json"
	"fmt"
)

// decodeCollection performs the three shape checks every listing endpoint
// shares, each short-circuiting:
//  1. the body parses as JSON at all
//  2. the body is not an error envelope ({"message": ...})
//  3. the top-level value is an array
//
// The elements are returned raw so each resource type can apply its own
// identity filtering without one bad record failing the whole batch.
func decodeCollection(raw []byte) ([]json.RawMessage, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	switch v := parsed.(type) {
	case map[string]any:
		if msg, ok := v["message"].(string); ok {
			return nil, &APIError{Message: msg}
		}
		return nil, &ShapeError{Want: "array", Got: "object"}
	case []any:
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, &MalformedResponseError{Err: err}
		}
		return items, nil
	default:
		return nil, &ShapeError{Want: "array", Got: fmt.Sprintf("%T", parsed)}
	}
}

// decodeFolders filters records whose uid is null, absent, or not a string.
// Dropped records are counted, never silently included: a folder without a
// usable identity would generate an unimportable declaration.
func decodeFolders(raw []byte) ([]Folder, int, error) {
	items, err := decodeCollection(raw)
	if err != nil {
		return nil, 0, err
	}

	folders := make([]Folder, 0, len(items))
	dropped := 0
	for _, item := range items {
		var rec struct {
			UID   any    `json:"uid"`
			Title string `json:"title"`
		}
		if err := json.Unmarshal(item, &rec); err != nil {
			dropped++
			continue
		}
		uid, ok := rec.UID.(string)
		if !ok || uid == "" {
			dropped++
			continue
		}
		folders = append(folders, Folder{UID: uid, Title: rec.Title})
	}
	return folders, dropped, nil
}

func decodeDataSources(raw []byte) ([]DataSource, int, error) {
	items, err := decodeCollection(raw)
	if err != nil {
		return nil, 0, err
	}

	sources := make([]DataSource, 0, len(items))
	dropped := 0
	for _, item := range items {
		var ds DataSource
		if err := json.Unmarshal(item, &ds); err != nil || ds.ID <= 0 {
			dropped++
			continue
		}
		sources = append(sources, ds)
	}
	return sources, dropped, nil
}

func decodeDashboardHits(raw []byte) ([]DashboardHit, int, error) {
	items, err := decodeCollection(raw)
	if err != nil {
		return nil, 0, err
	}

	hits := make([]DashboardHit, 0, len(items))
	dropped := 0
	for _, item := range items {
		var hit DashboardHit
		if err := json.Unmarshal(item, &hit); err != nil || hit.UID == "" {
			dropped++
			continue
		}
		hits = append(hits, hit)
	}
	return hits, dropped, nil
}

func decodeContactPoints(raw []byte) ([]ContactPoint, int, error) {
	items, err := decodeCollection(raw)
	if err != nil {
		return nil, 0, err
	}

	points := make([]ContactPoint, 0, len(items))
	dropped := 0
	for _, item := range items {
		var cp ContactPoint
		if err := json.Unmarshal(item, &cp); err != nil || cp.UID == "" {
			dropped++
			continue
		}
		points = append(points, cp)
	}
	return points, dropped, nil
}

// decodeAlertRules drops rules lacking either half of the group key; the
// group, not the rule, is the unit of import.
func decodeAlertRules(raw []byte) ([]AlertRule, int, error) {
	items, err := decodeCollection(raw)
	if err != nil {
		return nil, 0, err
	}

	rules := make([]AlertRule, 0, len(items))
	dropped := 0
	for _, item := range items {
		var rule AlertRule
		if err := json.Unmarshal(item, &rule); err != nil || rule.FolderUID == "" || rule.RuleGroup == "" {
			dropped++
			continue
		}
		rules = append(rules, rule)
	}
	return rules, dropped, nil
}

// decodeDashboard unwraps the {"dashboard": {...}} envelope of the
// full-record endpoint.
func decodeDashboard(raw []byte) (json.RawMessage, error) {
	var rec struct {
		Dashboard json.RawMessage `json:"dashboard"`
		Message   string          `json:"message"`
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}
	if rec.Message != "" && len(rec.Dashboard) == 0 {
		return nil, &APIError{Message: rec.Message}
	}
	if len(rec.Dashboard) == 0 || string(rec.Dashboard) == "null" {
		return nil, &ShapeError{Want: "object with dashboard field", Got: "object"}
	}
	return rec.Dashboard, nil
}
