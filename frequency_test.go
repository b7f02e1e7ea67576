package huffcodec

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestCountFrequencies(t *testing.T) {
	ft, err := CountFrequencies(bytes.NewReader([]byte("abracadabra")))
	require.NoError(t, err)
	require.Equal(t, CountBytes([]byte("abracadabra")), ft)

	require.Equal(t, uint64(5), ft['a'])
	require.Equal(t, uint64(2), ft['b'])
	require.Equal(t, uint64(2), ft['r'])
	require.Equal(t, uint64(1), ft['c'])
	require.Equal(t, uint64(1), ft['d'])
	require.Equal(t, uint64(11), ft.Total())
	require.Equal(t, 5, ft.Distinct())
	require.Equal(t, []Symbol{'a', 'b', 'c', 'd', 'r'}, ft.Symbols())
}

func TestCountFrequencies_Empty(t *testing.T) {
	ft, err := CountFrequencies(bytes.NewReader(nil))
	require.NoError(t, err)
	require.Equal(t, uint64(0), ft.Total())
	require.Equal(t, 0, ft.Distinct())
	require.Empty(t, ft.Symbols())
}

func TestCountFrequencies_Error(t *testing.T) {
	boom := errors.New("boom")
	_, err := CountFrequencies(failingReader{boom})
	require.Equal(t, boom, errors.Cause(err))
}
