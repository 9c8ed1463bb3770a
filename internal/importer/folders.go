package importer

import (
	"context"

	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/grafops/grafimport/internal/grafana"
)

type folderStrategy struct{}

// Folders imports dashboard folders. Identity is the folder UID.
func Folders() Strategy {
	return folderStrategy{}
}

func (folderStrategy) Kind() Kind            { return KindFolders }
func (folderStrategy) TerraformType() string { return "grafana_folder" }
func (folderStrategy) OutputFile() string    { return "folders.tf" }

func (folderStrategy) Fetch(ctx context.Context, client *grafana.Client) ([]Candidate, int, error) {
	folders, dropped, err := client.ListFolders(ctx)
	if err != nil {
		return nil, 0, err
	}

	candidates := make([]Candidate, 0, len(folders))
	for _, folder := range folders {
		candidates = append(candidates, Candidate{
			Label: folder.Title,
			ID:    folder.UID,
			Build: func(_ string, body *hclwrite.Body) ([]Artifact, error) {
				setStringAttr(body, "title", folder.Title)
				setStringAttr(body, "uid", folder.UID)
				return nil, nil
			},
		})
	}
	return candidates, dropped, nil
}
