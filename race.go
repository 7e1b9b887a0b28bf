// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package alfq

// RaceEnabled is true when the race detector is active.
// Used by tests to skip concurrent scenarios: the ring's slots are plain
// memory ordered by cross-variable acquire/release publication, which the
// detector cannot follow and reports as false positives.
const RaceEnabled = true
