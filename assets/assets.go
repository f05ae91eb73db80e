// Package assets embeds the bundled tracks.
package assets

import (
	"embed"
	"fmt"
	"path"
	"sort"

	"github.com/automoto/rallycore/shared/trackdata"
)

//go:embed tracks/*.tmx
var Tracks embed.FS

// TrackNames lists the bundled tracks, sorted.
func TrackNames() ([]string, error) {
	entries, err := Tracks.ReadDir("tracks")
	if err != nil {
		return nil, fmt.Errorf("reading tracks: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && path.Ext(entry.Name()) == ".tmx" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// LoadTrack parses a bundled track by file name.
func LoadTrack(name string) (*trackdata.Track, error) {
	return trackdata.Load(Tracks, path.Join("tracks", name))
}

// MustLoadTrack is LoadTrack for tracks known to be bundled.
func MustLoadTrack(name string) *trackdata.Track {
	t, err := LoadTrack(name)
	if err != nil {
		panic(err)
	}
	return t
}
