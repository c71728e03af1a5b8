package ebitenpointer

import (
	"encoding/json"
	"fmt"
)

// gestureStep is one entry of a gesture script. Coordinates are screen
// pixels; Frames is the length of a drag or a wait.
type gestureStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// gestureActions maps a script action to the injection it performs. "wait"
// is handled by the runner itself.
var gestureActions = map[string]func(*Surface, gestureStep){
	"click":       func(s *Surface, st gestureStep) { s.InjectClick(st.X, st.Y) },
	"doubleclick": func(s *Surface, st gestureStep) { s.InjectDoubleClick(st.X, st.Y) },
	"press":       func(s *Surface, st gestureStep) { s.InjectPress(st.X, st.Y) },
	"move":        func(s *Surface, st gestureStep) { s.InjectMove(st.X, st.Y) },
	"release":     func(s *Surface, st gestureStep) { s.InjectRelease(st.X, st.Y) },
	"drag": func(s *Surface, st gestureStep) {
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	},
}

// Runner replays a scripted gesture sequence, one action per frame, so a
// game's click and drag handlers can be exercised without a real mouse.
// Waits are counted in frames; pair them with the click delay to separate
// two clicks from a double click:
//
//	{"steps": [
//	  {"action": "click", "x": 10, "y": 10},
//	  {"action": "wait", "frames": 30},
//	  {"action": "drag", "fromX": 0, "fromY": 0, "toX": 50, "toY": 0, "frames": 6}
//	]}
type Runner struct {
	steps []gestureStep
	next  int
	idle  int // frames left in the current wait
	done  bool
}

// LoadScript decodes a gesture script. Every action is validated up front so
// a typo fails here rather than halfway through a replay.
func LoadScript(data []byte) (*Runner, error) {
	var doc struct {
		Steps []gestureStep `json:"steps"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("gesture script: %w", err)
	}
	if len(doc.Steps) == 0 {
		return nil, fmt.Errorf("gesture script: no steps")
	}
	for i, st := range doc.Steps {
		if _, ok := gestureActions[st.Action]; !ok && st.Action != "wait" {
			return nil, fmt.Errorf("gesture script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Runner{steps: doc.Steps}, nil
}

// Done reports whether the script has been replayed and the surface has
// consumed all of the pointer samples it queued.
func (r *Runner) Done() bool {
	return r.done
}

// step runs at the start of each Surface.Step. A step's samples must be
// consumed by the surface before the next step is issued.
func (r *Runner) step(s *Surface) {
	switch {
	case r.done, len(s.injectQueue) > 0:
		return
	case r.idle > 0:
		r.idle--
		return
	case r.next == len(r.steps):
		r.done = true
		return
	}

	st := r.steps[r.next]
	r.next++
	if inject, ok := gestureActions[st.Action]; ok {
		inject(s, st)
	} else if st.Frames > 0 {
		r.idle = st.Frames - 1
	}

	r.done = r.next == len(r.steps) && r.idle == 0 && len(s.injectQueue) == 0
}
