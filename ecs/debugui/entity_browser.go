package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/loom/ecs"
)

func NewEntityBrowserPanel(maxEntitiesPerPage int) *EntityBrowserPanel {
	return &EntityBrowserPanel{
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowserPanel) Render(sched *ecs.Scheduler) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
	}

	entities := eb.filteredEntities(sched)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		startIdx := eb.currentPage * eb.maxEntitiesPerPage
		endIdx := startIdx + eb.maxEntitiesPerPage
		if endIdx > len(entities) {
			endIdx = len(entities)
		}
		if startIdx > endIdx {
			startIdx = endIdx
		}

		for _, entity := range entities[startIdx:endIdx] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selectedEntityId == entity.ID()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID()), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = entity.ID()
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(componentNames(entity), ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(entity.Components())))
		}

		imgui.EndTable()
	}

	if len(entities) > eb.maxEntitiesPerPage {
		totalPages := (len(entities) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(entities)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(entities)))
	}

	eb.renderSelected(sched)

	imgui.End()
}

// renderSelected shows the component values of the selected entity.
func (eb *EntityBrowserPanel) renderSelected(sched *ecs.Scheduler) {
	if eb.selectedEntityId == 0 {
		return
	}
	entity, ok := sched.Entity(eb.selectedEntityId)
	if !ok {
		return
	}

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Entity %d", entity.ID()))

	for _, id := range entity.Components() {
		if imgui.TreeNodeStr(ecs.ComponentName(id)) {
			imgui.Text(fmt.Sprintf("%+v", entity.Value(id)))
			imgui.TreePop()
		}
	}
}

func (eb *EntityBrowserPanel) filteredEntities(sched *ecs.Scheduler) []*ecs.Entity {
	all := sched.Entities()
	if eb.filterText == "" {
		return all
	}

	needle := strings.ToLower(eb.filterText)
	filtered := make([]*ecs.Entity, 0, len(all))
	for _, entity := range all {
		if strings.Contains(fmt.Sprintf("%d", entity.ID()), needle) {
			filtered = append(filtered, entity)
			continue
		}
		for _, name := range componentNames(entity) {
			if strings.Contains(strings.ToLower(name), needle) {
				filtered = append(filtered, entity)
				break
			}
		}
	}
	return filtered
}

func componentNames(entity *ecs.Entity) []string {
	ids := entity.Components()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = ecs.ComponentName(id)
	}
	return names
}
