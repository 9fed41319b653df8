package parameters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams(t *testing.T) {
	params := NewFromConfigString("ab, max_depth=3,max_time=500ms,randomness=0.2,name=a=b,,verbose")
	assert.Equal(t, Params{"ab": "", "max_depth": "3", "max_time": "500ms", "randomness": "0.2",
		"name": "a=b", "verbose": ""}, params)

	ab, err := PopParamOr(params, "ab", false)
	require.NoError(t, err)
	assert.True(t, ab)

	depth, err := PopParamOr(params, "max_depth", 2)
	require.NoError(t, err)
	assert.Equal(t, 3, depth)

	maxTime, err := PopParamOr(params, "max_time", time.Duration(0))
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, maxTime)

	randomness, err := PopParamOr(params, "randomness", float32(0))
	require.NoError(t, err)
	assert.Equal(t, float32(0.2), randomness)

	name, err := GetParamOr(params, "name", "")
	require.NoError(t, err)
	assert.Equal(t, "a=b", name)

	missing, err := PopParamOr(params, "seed", 17)
	require.NoError(t, err)
	assert.Equal(t, 17, missing)

	err = CheckAllUsed(params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"name", "verbose"`)
	delete(params, "name")
	delete(params, "verbose")
	assert.NoError(t, CheckAllUsed(params))
	assert.Empty(t, NewFromConfigString(""))
}

func TestParamsErrors(t *testing.T) {
	params := NewFromConfigString("max_depth=x,max_time=3parsecs,ab=maybe,weight=heavy")
	_, err := GetParamOr(params, "max_depth", 1)
	assert.Error(t, err)
	_, err = GetParamOr(params, "max_time", time.Second)
	assert.Error(t, err)
	_, err = GetParamOr(params, "ab", false)
	assert.Error(t, err)
	_, err = PopParamOr(params, "weight", 1.0)
	assert.Error(t, err)
	assert.Contains(t, params, "weight", "failed parameters are not popped")
}
