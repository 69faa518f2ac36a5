package command

import (
	"context"
	"testing"

	"github.com/rugwirobaker/logshape/internal/flag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunnerSeesFlagsAndArgs(t *testing.T) {
	var (
		gotName string
		gotArg  string
	)
	cmd := New("shape <file>", "short", "long", func(ctx context.Context) error {
		gotName = flag.GetString(ctx, "name")
		gotArg = flag.FirstArg(ctx)
		return nil
	})
	flag.Add(cmd, flag.String{Name: "name", Default: "log.csv"})

	cmd.SetArgs([]string{"--name", "out.csv", "app.log"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Equal(t, "out.csv", gotName)
	assert.Equal(t, "app.log", gotArg)
}

func TestNilRunnerLeavesRunEUnset(t *testing.T) {
	cmd := New("group", "short", "long", nil)

	assert.Nil(t, cmd.RunE)
}
