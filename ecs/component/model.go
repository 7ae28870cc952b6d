package component

// ModelState tracks the idol model's reachability probe.
type ModelState int

const (
	ModelPending ModelState = iota
	ModelReady
	ModelUnreachable
)

func (s ModelState) String() string {
	switch s {
	case ModelReady:
		return "ready"
	case ModelUnreachable:
		return "unreachable"
	default:
		return "pending"
	}
}

// Model is the idol standing on the dais.
type Model struct {
	URL    string
	State  ModelState
	Height float64
	Lift   float64
}

var ModelComponent = NewComponent[Model]()
