package components

import "github.com/yohamta/donburi"

type SettingsData struct {
	ShowBoxes bool
	Paused    bool
}

var Settings = donburi.NewComponentType[SettingsData]()
