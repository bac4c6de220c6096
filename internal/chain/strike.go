package chain

const (
	// StrikeCenter is the middle of the strike index range the quote site
	// accepts for its min/max strike form fields.
	StrikeCenter = 24
	MinWidth     = 5
	MaxWidth     = 23
)

// Window is the inclusive strike bound pair sent with a chain request.
type Window struct {
	Min int
	Max int
}

// NewWindow returns the window spanning width strikes either side of
// StrikeCenter.
func NewWindow(width int) (Window, error) {
	if width < MinWidth || width > MaxWidth {
		return Window{}, &RangeError{Width: width, Min: MinWidth, Max: MaxWidth}
	}
	return Window{Min: StrikeCenter - width, Max: StrikeCenter + width}, nil
}
