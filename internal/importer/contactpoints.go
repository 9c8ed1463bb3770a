package importer

import (
	"context"

	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/grafops/grafimport/internal/grafana"
)

type contactPointStrategy struct{}

// ContactPoints imports alerting contact points. Identity is the UID. The
// provisioning API does not expose notifier settings in a projectable form,
// so only the name is declared and the rest is left for manual completion.
func ContactPoints() Strategy {
	return contactPointStrategy{}
}

func (contactPointStrategy) Kind() Kind            { return KindContactPoints }
func (contactPointStrategy) TerraformType() string { return "grafana_contact_point" }
func (contactPointStrategy) OutputFile() string    { return "contact_points.tf" }

func (contactPointStrategy) Fetch(ctx context.Context, client *grafana.Client) ([]Candidate, int, error) {
	points, dropped, err := client.ListContactPoints(ctx)
	if err != nil {
		return nil, 0, err
	}

	candidates := make([]Candidate, 0, len(points))
	for _, cp := range points {
		candidates = append(candidates, Candidate{
			Label: cp.Name,
			ID:    cp.UID,
			Build: func(_ string, body *hclwrite.Body) ([]Artifact, error) {
				setStringAttr(body, "name", cp.Name)
				appendComment(body, "notifier settings ("+cp.Type+") must be completed manually after import")
				return nil, nil
			},
		})
	}
	return candidates, dropped, nil
}
