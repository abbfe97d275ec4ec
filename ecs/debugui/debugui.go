// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// It renders inspection panels for entities, systems, and scheduler timing through
// ECS components and a frame-cadence overlay system.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/loom/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// RegisterOverlay wires the ImGui overlay into a scheduler: it ensures the
// input-state singleton exists and registers a frame-cadence system that
// defers every ImguiItem's render function to run after the frame pass.
// ImguiItem must already be registered with the scheduler's component
// registry (see RegisterDebugUIComponents).
func RegisterOverlay(sched *ecs.Scheduler) (*ecs.System, error) {
	input := ecs.NewSingleton[ImguiInputState](sched.Storage())

	return sched.Register("imgui-overlay", func(cols ...*ecs.Column) {
		state := input.Get()
		state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
		state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

		for _, item := range ecs.All[ImguiItem](cols[0]) {
			sched.Commands().Defer(item.Render)
		}
	}, ecs.ComponentIDOf[ImguiItem]())
}
