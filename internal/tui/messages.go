package tui

// opDoneMsg reports the end of a fetch cycle started by the model.
type opDoneMsg struct {
	op  string
	err error
}
