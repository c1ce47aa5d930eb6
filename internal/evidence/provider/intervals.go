package provider

import "time"

// Per-provider minimum inter-request intervals (spec.md §4.3: "default 1s;
// the academic-paper and filing providers may require 3s").
const (
	oneSecondInterval   = 1 * time.Second
	threeSecondInterval = 3 * time.Second
)
