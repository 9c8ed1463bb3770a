package importer

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/grafops/grafimport/internal/grafana"
)

type dataSourceStrategy struct{}

// DataSources imports data source connections. Identity is the numeric ID.
// Credential fields are never projected.
func DataSources() Strategy {
	return dataSourceStrategy{}
}

func (dataSourceStrategy) Kind() Kind            { return KindDataSources }
func (dataSourceStrategy) TerraformType() string { return "grafana_data_source" }
func (dataSourceStrategy) OutputFile() string    { return "datasources.tf" }

func (dataSourceStrategy) Fetch(ctx context.Context, client *grafana.Client) ([]Candidate, int, error) {
	sources, dropped, err := client.ListDataSources(ctx)
	if err != nil {
		return nil, 0, err
	}

	candidates := make([]Candidate, 0, len(sources))
	for _, ds := range sources {
		candidates = append(candidates, Candidate{
			Label: ds.Name,
			ID:    strconv.FormatInt(ds.ID, 10),
			Build: func(_ string, body *hclwrite.Body) ([]Artifact, error) {
				if ds.Name == "" {
					return nil, fmt.Errorf("data source %d has no name", ds.ID)
				}
				appendComment(body, fmt.Sprintf("id = %d (reference only)", ds.ID))
				setStringAttr(body, "type", ds.Type)
				setStringAttr(body, "name", ds.Name)
				if ds.URL != "" {
					setStringAttr(body, "url", ds.URL)
				}
				setBoolAttr(body, "is_default", ds.IsDefault)
				appendComment(body, "credentials are not projected; configure them manually")
				return nil, nil
			},
		})
	}
	return candidates, dropped, nil
}
