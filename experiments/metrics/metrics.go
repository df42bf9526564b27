// Package metrics records self-play experiment results to CSV.
package metrics

import "time"

// GameRecord is one completed game in an experiment.
type GameRecord struct {
	ID            int
	Seed          uint64
	Lineup        string
	Steps         int
	Turns         int
	MayorScore    float64
	IndustryScore float64
	UrbanistScore float64
	MayorHitMine  bool
	CityComplete  bool
	Duration      time.Duration
}
