package widget

// DragState is the state of the drag gesture.
type DragState int

const (
	// DragIdle means no primary button press is in progress.
	DragIdle DragState = iota
	// DragDragging means a press was recorded and motion moves the window.
	DragDragging
)

// String returns the state name.
func (s DragState) String() string {
	switch s {
	case DragIdle:
		return "idle"
	case DragDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// DragTracker records the pointer offset captured on press and turns
// subsequent motion into window displacement.
//
// Coordinates are relative to the window origin. Because the window is
// moved by each displacement, the pointer returns to the same relative
// position, so every motion is measured against the original press.
type DragTracker struct {
	state  DragState
	startX int
	startY int
}

// Press records the pointer position and enters DragDragging.
func (d *DragTracker) Press(x, y int) {
	d.state = DragDragging
	d.startX = x
	d.startY = y
}

// Release clears the recorded position and returns to DragIdle.
func (d *DragTracker) Release() {
	d.state = DragIdle
	d.startX = 0
	d.startY = 0
}

// Motion returns the displacement of the pointer since Press.
// ok is false when no drag is in progress; motion outside a
// press/release pair is ignored.
func (d *DragTracker) Motion(x, y int) (dx, dy int, ok bool) {
	if d.state != DragDragging {
		return 0, 0, false
	}
	return x - d.startX, y - d.startY, true
}

// State returns the current drag state.
func (d *DragTracker) State() DragState {
	return d.state
}

// Start returns the recorded press position; ok is false when idle.
func (d *DragTracker) Start() (x, y int, ok bool) {
	if d.state != DragDragging {
		return 0, 0, false
	}
	return d.startX, d.startY, true
}
