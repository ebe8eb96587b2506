package component

// SelectedTag marks the panel most recently flown to.
type SelectedTag struct{}

var SelectedTagComponent = NewComponent[SelectedTag]()
