package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackNames(t *testing.T) {
	names, err := TrackNames()
	require.NoError(t, err)
	assert.Contains(t, names, "sandbox.tmx")
}

func TestLoadTrack(t *testing.T) {
	track := MustLoadTrack("sandbox.tmx")
	assert.NotEmpty(t, track.Spawns)

	_, err := LoadTrack("missing.tmx")
	assert.Error(t, err)
}
