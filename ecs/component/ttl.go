package component

// Status is the HUD line. Frames counts down each update; the text is
// cleared when it reaches zero.
type Status struct {
	Text   string
	Frames int
}

var StatusComponent = NewComponent[Status]()
