package imports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/poet/errors"
)

func TestWildcardPolicy_Meets(t *testing.T) {
	three, err := WildcardThreshold(3)
	require.NoError(t, err)

	tests := []struct {
		name   string
		policy WildcardPolicy
		count  int
		want   bool
	}{
		{"disabled never", WildcardDisabled, 100, false},
		{"always with one", WildcardAlways, 1, true},
		{"always with none", WildcardAlways, 0, false},
		{"threshold reached", three, 3, true},
		{"threshold exceeded", three, 4, true},
		{"threshold missed", three, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.Meets(tt.count))
		})
	}
}

func TestWildcardThreshold_RejectsNonPositive(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := WildcardThreshold(n)
		require.Error(t, err)
		assert.True(t, errors.IsConfigurationError(err))
		assert.NotEmpty(t, errors.GetAllHints(err))
	}
}

func TestParseWildcardPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "disabled", false},
		{"disabled", "disabled", false},
		{"Always", "always", false},
		{"5", "5", false},
		{"0", "always", false},
		{"-1", "disabled", false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := ParseWildcardPolicy(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsConfigurationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.String())
		})
	}
}

func TestWildcardPolicy_ThresholdRoundTrip(t *testing.T) {
	assert.Equal(t, -1, WildcardDisabled.Threshold())
	assert.Equal(t, 0, WildcardAlways.Threshold())
	p, err := WildcardThreshold(7)
	require.NoError(t, err)
	assert.Equal(t, 7, p.Threshold())
}
