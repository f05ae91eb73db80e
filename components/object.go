package components

import (
	"github.com/automoto/rallycore/collision"
	"github.com/yohamta/donburi"
)

type ObjectData struct {
	*collision.Object
}

var Object = donburi.NewComponentType[ObjectData]()
