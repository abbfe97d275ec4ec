package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/loom/ecs"
)

func NewPerformanceStatsPanel(historyFrames int) *PerformanceStatsPanel {
	return &PerformanceStatsPanel{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		frameIndex:    0,
	}
}

func (ps *PerformanceStatsPanel) Render(sched *ecs.Scheduler, deltaTime float32) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames

	stats := sched.Storage().CollectStats()
	schedStats := sched.Stats()

	imgui.Text(fmt.Sprintf("Total Entities: %d", schedStats.EntityCount))
	imgui.Text(fmt.Sprintf("Component Types: %d", stats.ComponentTypeCount))
	imgui.Text(fmt.Sprintf("Total Components: %d", stats.TotalComponents))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))
	imgui.Text(fmt.Sprintf("Cadence Groups: %d", schedStats.GroupCount))

	avgFrameTime, fps := frameAverages(ps.frameHistory)
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, fps))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if imgui.TreeNodeStr("Component Type Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ComponentStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("ID")
			imgui.TableSetupColumn("Component")
			imgui.TableSetupColumn("Count")
			imgui.TableHeadersRow()

			for _, typ := range stats.Breakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", typ.ID))
				imgui.TableNextColumn()
				imgui.Text(typ.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", typ.Count))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// frameAverages returns the mean of the sampled frame times in milliseconds
// and the frame rate it implies. Both are 0 until samples arrive, so the
// panel never shows an infinite FPS while the history warms up.
func frameAverages(history []float32) (avgMs, fps float32) {
	if len(history) == 0 {
		return 0, 0
	}
	for _, ft := range history {
		avgMs += ft
	}
	avgMs /= float32(len(history))
	if avgMs > 0 {
		fps = 1000.0 / avgMs
	}
	return avgMs, fps
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
