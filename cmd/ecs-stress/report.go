package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/loom/ecs"
)

type Report struct {
	// Configuration
	Duration   time.Duration
	Entities   int
	FrameRate  int
	RateGroups int

	// Results
	TotalFrames    int64
	TotalTime      time.Duration
	FrameTime      Stats
	SchedulerStats *ecs.SchedulerStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# ECS Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Initial Entities:** {{.Entities}}
- **Frame Rate Target:** {{.FrameRate}}/s
- **Cadence Groups:** {{.RateGroups}}

## Performance Results
- **Total Frames:** {{.TotalFrames}}
- **Total Test Time:** {{.TotalTime}}
- **Frame Time:**
  - **Avg:** {{.FrameTime.Avg}}
  - **Min:** {{.FrameTime.Min}}
  - **Max:** {{.FrameTime.Max}}

## Systems
{{range .SchedulerStats.Systems -}}
- **{{.Name}}** ({{if .Rate}}{{.Rate}}/s{{else}}frame{{end}}): {{.ExecutionCount}} runs, {{.Tracked}} tracked, avg {{.AvgDuration}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
