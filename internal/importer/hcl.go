package importer

import (
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// newOutputFile starts a per-type resource file. The timestamp lives only
// in this header comment; block bodies stay time-independent so that
// re-running a projection over the same input is byte-identical below the
// header.
func newOutputFile(kind Kind, generatedAt time.Time) *hclwrite.File {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	appendComment(body, fmt.Sprintf("%s imported from Grafana", kind))
	appendComment(body, fmt.Sprintf("generated at %s", generatedAt.UTC().Format(time.RFC3339)))
	appendComment(body, "projection may be attribute-incomplete; run `terraform plan` to verify")
	body.AppendNewline()
	return f
}

func appendComment(body *hclwrite.Body, text string) {
	body.AppendUnstructuredTokens(hclwrite.Tokens{
		{
			Type:  hclsyntax.TokenComment,
			Bytes: []byte("# " + text + "\n"),
		},
	})
}

func setStringAttr(body *hclwrite.Body, name, value string) {
	body.SetAttributeValue(name, cty.StringVal(value))
}

func setBoolAttr(body *hclwrite.Body, name string, value bool) {
	body.SetAttributeValue(name, cty.BoolVal(value))
}

func setNumberAttr(body *hclwrite.Body, name string, value int64) {
	body.SetAttributeValue(name, cty.NumberIntVal(value))
}

// setFileAttr renders `name = file("<path>")`.
func setFileAttr(body *hclwrite.Body, name, path string) {
	body.SetAttributeRaw(name, hclwrite.TokensForFunctionCall(
		"file",
		hclwrite.TokensForValue(cty.StringVal(path)),
	))
}
