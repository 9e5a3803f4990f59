package target

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	cases := []struct {
		in   string
		want Target
	}{
		{"linux/x64", Target{Linux, X64}},
		{"windows/x86", Target{Windows, X86}},
		{"macos/arm64", Target{MacOS, ARM64}},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		require.NoError(t, err)
		require.Equal(t, c.want, got)
		require.Equal(t, c.in, got.String())
	}
}

func TestParseCurrent(t *testing.T) {
	got, err := Parse("current")
	require.NoError(t, err)
	require.True(t, got.Valid())
	require.Equal(t, Current(), got)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse("bogus")
	require.Error(t, err)

	_, err = Parse("linux/risc5")
	require.Error(t, err)
}

func TestArchSizes(t *testing.T) {
	require.Equal(t, 8, Target{Linux, X64}.PointerSize())
	require.Equal(t, 4, Target{Linux, X86}.PointerSize())
	require.Equal(t, LittleEndian, Target{Linux, X64}.Endianness())
}
