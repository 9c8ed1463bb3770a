package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"golang.org/x/sync/errgroup"

	"github.com/grafops/grafimport/internal/grafana"
)

// dashboardDetailLimit caps concurrent full-record fetches so a large
// instance is not hit with one request per dashboard at once.
const dashboardDetailLimit = 4

const dashboardBodyDir = "dashboards"

type dashboardStrategy struct{}

// Dashboards imports dashboards. Identity is the UID. This is the one
// two-phase fetch: the search listing yields UIDs, then each full body is
// fetched separately and persisted as its own JSON file.
func Dashboards() Strategy {
	return dashboardStrategy{}
}

func (dashboardStrategy) Kind() Kind            { return KindDashboards }
func (dashboardStrategy) TerraformType() string { return "grafana_dashboard" }
func (dashboardStrategy) OutputFile() string    { return "dashboards.tf" }

func (dashboardStrategy) Fetch(ctx context.Context, client *grafana.Client) ([]Candidate, int, error) {
	hits, dropped, err := client.SearchDashboards(ctx)
	if err != nil {
		return nil, 0, err
	}

	// Fan out the detail fetches with a bounded group. Failures are held
	// per slot rather than cancelling the group: one unreadable dashboard
	// must not abort the rest of the batch.
	bodies := make([]json.RawMessage, len(hits))
	detailErrs := make([]error, len(hits))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(dashboardDetailLimit)
	for i, hit := range hits {
		g.Go(func() error {
			bodies[i], detailErrs[i] = client.GetDashboard(gctx, hit.UID)
			return nil
		})
	}
	_ = g.Wait()

	candidates := make([]Candidate, 0, len(hits))
	for i, hit := range hits {
		body := bodies[i]
		detailErr := detailErrs[i]
		candidates = append(candidates, Candidate{
			Label: hit.Title,
			ID:    hit.UID,
			Build: func(name string, block *hclwrite.Body) ([]Artifact, error) {
				if detailErr != nil {
					return nil, fmt.Errorf("fetching dashboard %s: %w", hit.UID, detailErr)
				}

				var indented bytes.Buffer
				if err := json.Indent(&indented, body, "", "  "); err != nil {
					return nil, fmt.Errorf("dashboard %s body is not valid JSON: %w", hit.UID, err)
				}
				indented.WriteByte('\n')

				bodyPath := path.Join(dashboardBodyDir, name+".json")
				setFileAttr(block, "config_json", bodyPath)
				if hit.FolderUID != "" {
					setStringAttr(block, "folder", hit.FolderUID)
				}
				setBoolAttr(block, "overwrite", true)

				return []Artifact{{Path: bodyPath, Data: indented.Bytes()}}, nil
			},
		})
	}
	return candidates, dropped, nil
}
