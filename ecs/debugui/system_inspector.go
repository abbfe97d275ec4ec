package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/loom/ecs"
)

func NewSystemInspectorPanel() *SystemInspectorPanel {
	return &SystemInspectorPanel{
		showFrameSystems: true,
		showRateSystems:  true,
	}
}

func (si *SystemInspectorPanel) Render(sched *ecs.Scheduler) {
	if !imgui.BeginV("System Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Checkbox("Frame systems", &si.showFrameSystems)
	imgui.SameLine()
	imgui.Checkbox("Rate systems", &si.showRateSystems)
	imgui.Separator()

	stats := sched.Stats()
	imgui.Text(fmt.Sprintf("Systems: %d  Groups: %d  Entities: %d  Executions: %d",
		stats.SystemCount, stats.GroupCount, stats.EntityCount, stats.TotalExecutions))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("SystemTable", 6, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Cadence")
		imgui.TableSetupColumn("Query")
		imgui.TableSetupColumn("Tracked")
		imgui.TableSetupColumn("Runs")
		imgui.TableSetupColumn("Avg")
		imgui.TableHeadersRow()

		for _, sys := range stats.Systems {
			if sys.Rate == 0 && !si.showFrameSystems {
				continue
			}
			if sys.Rate != 0 && !si.showRateSystems {
				continue
			}

			imgui.TableNextRow()

			imgui.TableNextColumn()
			imgui.Text(sys.Name)

			imgui.TableNextColumn()
			if sys.Rate == 0 {
				imgui.Text("frame")
			} else {
				imgui.Text(fmt.Sprintf("%d/s", sys.Rate))
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(sys.Components, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", sys.Tracked))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))

			imgui.TableNextColumn()
			imgui.Text(sys.AvgDuration.String())
		}

		imgui.EndTable()
	}

	imgui.End()
}
