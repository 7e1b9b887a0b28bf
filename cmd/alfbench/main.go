// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// alfbench measures alfq throughput under configurable producer/consumer
// mixes.
//
// Scenarios come from a YAML file (-config) or from flags for a single
// ad-hoc run. Results are printed per scenario and optionally appended as
// JSON to a report file:
//
//	alfbench -producers 8 -consumers 8 -batch 16 -duration 5s
//	alfbench -config scenarios.yaml -out results.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Result holds the outcome of one scenario.
type Result struct {
	Scenario      string  `json:"scenario"`
	Producers     int     `json:"producers"`
	Consumers     int     `json:"consumers"`
	Capacity      int     `json:"capacity"`
	Batch         int     `json:"batch"`
	WrapCheck     bool    `json:"wrap_check"`
	Produced      int64   `json:"produced"`
	Consumed      int64   `json:"consumed"`
	Duration      string  `json:"duration"`
	ActualElapsed string  `json:"actual_elapsed"`
	Throughput    float64 `json:"throughput_msgs_sec"`
	Timestamp     int64   `json:"timestamp"`
	GoVersion     string  `json:"go_version"`
}

// SystemInfo holds basic host details for the report.
type SystemInfo struct {
	NumCPU      int     `json:"num_cpu"`
	CPUModel    string  `json:"cpu_model,omitempty"`
	CPUSpeedMHz float64 `json:"cpu_speed_mhz,omitempty"`
	GOARCH      string  `json:"go_arch"`
	TotalMemory uint64  `json:"total_memory_bytes,omitempty"`
}

// Report is one complete alfbench session.
type Report struct {
	SessionTime string     `json:"session_time"`
	SystemInfo  SystemInfo `json:"system_info"`
	Results     []Result   `json:"results"`
}

func main() {
	var (
		configPath = flag.String("config", "", "YAML scenario file; overrides the single-run flags")
		outPath    = flag.String("out", "", "append the session report to this JSON file")
		producers  = flag.Int("producers", 4, "producer goroutines (single run)")
		consumers  = flag.Int("consumers", 4, "consumer goroutines (single run)")
		capacity   = flag.Int("capacity", 4096, "queue capacity, rounds up to a power of two (single run)")
		batch      = flag.Int("batch", 16, "elements per bulk call (single run)")
		wrapCheck  = flag.Bool("wrapcheck", false, "use the wrap-check transfer strategy (single run)")
		duration   = flag.Duration("duration", 5*time.Second, "time per scenario (single run)")
	)
	flag.Parse()

	scenarios, err := resolveScenarios(*configPath, Scenario{
		Name:      "adhoc",
		Producers: *producers,
		Consumers: *consumers,
		Capacity:  *capacity,
		Batch:     *batch,
		WrapCheck: *wrapCheck,
		Duration:  duration.String(),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "alfbench:", err)
		os.Exit(1)
	}

	report := Report{
		SessionTime: time.Now().Format(time.RFC3339),
		SystemInfo:  gatherSystemInfo(),
	}

	bar := progressbar.Default(int64(len(scenarios)), "scenarios")
	for _, sc := range scenarios {
		runtime.GC()
		produced, consumed, elapsed, err := runScenario(sc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "alfbench: scenario %q: %v\n", sc.Name, err)
			os.Exit(1)
		}
		throughput := float64(consumed) / elapsed.Seconds()

		fmt.Printf("%s: producers=%d consumers=%d batch=%d => produced=%d consumed=%d throughput=%.0f msg/s took=%v\n",
			sc.Name, sc.Producers, sc.Consumers, sc.Batch, produced, consumed, throughput, elapsed)
		if produced != consumed {
			fmt.Fprintf(os.Stderr, "alfbench: scenario %q: lost elements: produced %d, consumed %d\n",
				sc.Name, produced, consumed)
			os.Exit(1)
		}

		report.Results = append(report.Results, Result{
			Scenario:      sc.Name,
			Producers:     sc.Producers,
			Consumers:     sc.Consumers,
			Capacity:      sc.Capacity,
			Batch:         sc.Batch,
			WrapCheck:     sc.WrapCheck,
			Produced:      produced,
			Consumed:      consumed,
			Duration:      sc.Duration,
			ActualElapsed: elapsed.String(),
			Throughput:    throughput,
			Timestamp:     time.Now().Unix(),
			GoVersion:     runtime.Version(),
		})
		bar.Add(1)
	}

	if *outPath != "" {
		if err := appendReport(*outPath, report); err != nil {
			fmt.Fprintln(os.Stderr, "alfbench:", err)
			os.Exit(1)
		}
		fmt.Printf("wrote results to %s\n", *outPath)
	}
}

// resolveScenarios loads the config file when given, otherwise returns
// the single ad-hoc scenario built from flags.
func resolveScenarios(configPath string, adhoc Scenario) ([]Scenario, error) {
	if configPath == "" {
		if err := adhoc.normalize(0); err != nil {
			return nil, err
		}
		return []Scenario{adhoc}, nil
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return cfg.Scenarios, nil
}

// appendReport merges the session into an existing report file, if any.
func appendReport(path string, report Report) error {
	var previous []Report
	if data, err := os.ReadFile(path); err == nil && len(data) > 0 {
		json.Unmarshal(data, &previous)
	}
	updated := append(previous, report)
	data, err := json.MarshalIndent(updated, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// gatherSystemInfo collects basic CPU and memory details.
func gatherSystemInfo() SystemInfo {
	info := SystemInfo{
		NumCPU: runtime.NumCPU(),
		GOARCH: runtime.GOARCH,
	}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		info.CPUModel = infos[0].ModelName
		info.CPUSpeedMHz = infos[0].Mhz
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.TotalMemory = vm.Total
	}
	return info
}
