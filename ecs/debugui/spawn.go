package debugui

import "github.com/plus3/loom/ecs"

// RegisterDebugUIComponents registers the overlay's component types.
func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) ecs.ComponentID {
	return ecs.RegisterComponent[ImguiItem](registry)
}

// SpawnDebugUI creates one entity per inspection panel, each carrying an
// ImguiItem that renders it against the scheduler.
func SpawnDebugUI(sched *ecs.Scheduler) {
	browser := NewEntityBrowserPanel(100)
	inspector := NewSystemInspectorPanel()
	perf := NewPerformanceStatsPanel(120)
	timer := NewFrameTimer()

	ecs.Set(sched.AddEntity(), ImguiItem{Render: func() { browser.Render(sched) }})
	ecs.Set(sched.AddEntity(), ImguiItem{Render: func() { inspector.Render(sched) }})
	ecs.Set(sched.AddEntity(), ImguiItem{Render: func() { perf.Render(sched, timer.GetDeltaTime()) }})
}
