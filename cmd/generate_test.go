package cmd

import (
	"testing"

	"bg3-modsettings/feature/modsettings/synth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailuresErr(t *testing.T) {
	t.Run("Clean", func(t *testing.T) {
		assert.NoError(t, failuresErr(&synth.Result{Modules: 2}))
	})

	t.Run("MalformedDescriptor", func(t *testing.T) {
		result := &synth.Result{
			Modules: 1,
			Failures: []synth.Failure{
				{Mod: "Beta", Archive: "beta.pak", Error: "malformed mod descriptor"},
				{Mod: "Gamma", Archive: "gamma.pak", Error: "malformed mod descriptor"},
			},
		}

		err := failuresErr(result)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrIncompleteLoadOrder)
		assert.Contains(t, err.Error(), "2 archive(s)")
		assert.Contains(t, err.Error(), "Beta/beta.pak")
	})
}
