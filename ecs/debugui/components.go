package debugui

import (
	"github.com/plus3/loom/ecs"
)

type EntityBrowserPanel struct {
	selectedEntityId   ecs.EntityID
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
}

type SystemInspectorPanel struct {
	showFrameSystems bool
	showRateSystems  bool
}

type PerformanceStatsPanel struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}
