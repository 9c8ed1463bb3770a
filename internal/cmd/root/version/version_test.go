package version

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grafops/grafimport/internal/build"
)

func runVersionCmd(t *testing.T, info *build.Info, args ...string) string {
	t.Helper()
	cmd := NewVersionCmd()
	cmd.SetArgs(args)

	var out bytes.Buffer
	cmd.SetOut(&out)

	ctx := context.WithValue(context.Background(), build.InfoKey, info)
	require.NoError(t, cmd.ExecuteContext(ctx))
	return out.String()
}

func TestVersionCmd(t *testing.T) {
	info := &build.Info{Version: "1.2.3", Commit: "abc1234"}

	assert.Equal(t, "1.2.3\n", runVersionCmd(t, info))
	assert.Equal(t, "1.2.3 (abc1234)\n", runVersionCmd(t, info, "--show-commit"))
}

func TestVersionCmdWithoutBuildInfo(t *testing.T) {
	cmd := NewVersionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Equal(t, "dev\n", out.String())
}
