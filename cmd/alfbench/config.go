// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Scenario describes one timed producer/consumer run.
type Scenario struct {
	Name      string `yaml:"name"`
	Producers int    `yaml:"producers"`
	Consumers int    `yaml:"consumers"`
	Capacity  int    `yaml:"capacity"`
	Batch     int    `yaml:"batch"`
	WrapCheck bool   `yaml:"wrap_check"`
	// Duration is a Go duration string, e.g. "5s".
	Duration string `yaml:"duration"`

	duration time.Duration
}

// Config is a YAML scenario file.
//
// Example:
//
//	scenarios:
//	  - name: balanced
//	    producers: 4
//	    consumers: 4
//	    capacity: 4096
//	    batch: 16
//	    duration: 5s
//	  - name: contended-wrapcheck
//	    producers: 32
//	    consumers: 2
//	    capacity: 64
//	    batch: 4
//	    wrap_check: true
type Config struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// loadConfig reads and validates a scenario file, filling in defaults for
// omitted fields.
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if len(cfg.Scenarios) == 0 {
		return nil, fmt.Errorf("config %s: no scenarios", path)
	}

	for i := range cfg.Scenarios {
		if err := cfg.Scenarios[i].normalize(i); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}
	return &cfg, nil
}

func (s *Scenario) normalize(index int) error {
	if s.Name == "" {
		s.Name = fmt.Sprintf("scenario-%d", index)
	}
	if s.Producers <= 0 {
		s.Producers = 1
	}
	if s.Consumers <= 0 {
		s.Consumers = 1
	}
	if s.Capacity <= 0 {
		s.Capacity = 4096
	}
	if s.Batch <= 0 {
		s.Batch = 16
	}
	if s.Batch >= s.Capacity {
		// The rounded ring holds capacity-1 at best; a bigger batch can
		// never be accepted and producers would retry forever.
		return fmt.Errorf("scenario %q: batch %d must be smaller than capacity %d",
			s.Name, s.Batch, s.Capacity)
	}
	if s.Duration == "" {
		s.Duration = "5s"
	}
	d, err := time.ParseDuration(s.Duration)
	if err != nil {
		return fmt.Errorf("scenario %q: bad duration %q: %w", s.Name, s.Duration, err)
	}
	if d <= 0 {
		return fmt.Errorf("scenario %q: duration must be positive", s.Name)
	}
	s.duration = d
	return nil
}
