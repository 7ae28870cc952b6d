package component

type RigTag struct{}

var RigTagComponent = NewComponent[RigTag]()

type HUDTag struct{}

var HUDTagComponent = NewComponent[HUDTag]()
