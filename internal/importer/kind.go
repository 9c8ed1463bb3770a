package importer

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/grafops/grafimport/internal/grafana"
)

// Kind identifies one importable resource type.
type Kind string

const (
	KindFolders         Kind = "folders"
	KindDataSources     Kind = "datasources"
	KindDashboards      Kind = "dashboards"
	KindContactPoints   Kind = "contact-points"
	KindAlertRuleGroups Kind = "alert-rule-groups"
)

// AllKinds returns every kind in batch execution order. Folders come first
// because later kinds reference folder UIDs.
func AllKinds() []Kind {
	return []Kind{
		KindFolders,
		KindDataSources,
		KindDashboards,
		KindContactPoints,
		KindAlertRuleGroups,
	}
}

func ParseKind(s string) (Kind, error) {
	for _, k := range AllKinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown resource kind %q, must be one of %v", s, AllKinds())
}

// Mode selects the terminal behavior of a type importer.
type Mode string

const (
	// ModePreview prints import directives and writes nothing.
	ModePreview Mode = "preview"
	// ModeGenerate writes resource files but executes no directives.
	ModeGenerate Mode = "generate"
	// ModeBind writes resource files and executes every directive.
	ModeBind Mode = "bind"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModePreview, ModeGenerate, ModeBind:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode %q, must be one of [%s %s %s]",
			s, ModePreview, ModeGenerate, ModeBind)
	}
}

// Artifact is a side file produced by a projection, the per-dashboard JSON
// bodies among them. Path is relative to the output directory.
type Artifact struct {
	Path string
	Data []byte
}

// BuildFunc fills the declared attributes of one resource block. The name
// is the synthesized identifier, needed by projections that reference side
// files. An error drops only this record.
type BuildFunc func(name string, body *hclwrite.Body) ([]Artifact, error)

// Candidate is one live resource eligible for projection.
type Candidate struct {
	// Label feeds identifier synthesis.
	Label string
	// ID is the live identity placed in the import directive.
	ID string
	// Build renders the declared attribute subset.
	Build BuildFunc
}

// Strategy bundles the per-type fetch, projection, and identity scheme so
// the batch orchestrator can iterate a homogeneous list.
type Strategy interface {
	Kind() Kind
	// TerraformType is the provider resource type, e.g. grafana_folder.
	TerraformType() string
	// OutputFile is the per-type resource file, e.g. folders.tf.
	OutputFile() string
	// Fetch returns projection candidates plus the count of records dropped
	// for lacking a usable identity.
	Fetch(ctx context.Context, client *grafana.Client) ([]Candidate, int, error)
}
