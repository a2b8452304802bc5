package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPipelineStatus(t *testing.T) {
	t.Run(`every stage is valid and has a display name`, func(t *testing.T) {
		all := append(append([]PipelineStatus{}, OrderedStages...), ExitStages...)
		for _, stage := range all {
			require.True(t, stage.IsValid(), string(stage))
			require.NotEqual(t, string(stage), stage.ToHuman(), string(stage))
		}
	})

	t.Run(`order follows the board columns`, func(t *testing.T) {
		require.Equal(t, 0, StageNewApplication.Order())
		for idx := 1; idx < len(OrderedStages); idx++ {
			require.Greater(t, OrderedStages[idx].Order(), OrderedStages[idx-1].Order())
		}
		require.Equal(t, -1, PipelineStatus("no-such-stage").Order())
	})

	t.Run(`exit and terminal stages`, func(t *testing.T) {
		require.True(t, StageRejected.IsExit())
		require.True(t, StageWithdrawn.IsTerminal())
		require.True(t, StageHired.IsTerminal())
		require.False(t, StageHired.IsExit())
		require.False(t, StageScreening.IsTerminal())
	})

	t.Run(`transitions allowed to any stage`, func(t *testing.T) {
		allowed := AllowedFrom(StageScreening)
		require.True(t, allowed[StageScreening])
		require.True(t, allowed[StageHired])
		require.True(t, allowed[StageRejected])
	})
}
