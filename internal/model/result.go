package model

import (
	"math"
	"time"
)

// DefaultHistoryLimit is how many recent results are shown when no limit is given.
const DefaultHistoryLimit = 30

// ResultRecord is the immutable summary of one completed quiz session.
type ResultRecord struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id,omitempty"`
	Mode      Mode      `json:"mode"`
	Correct   int       `json:"correct"`
	Total     int       `json:"total"`
	Percent   float64   `json:"percent"`
	PlayedAt  time.Time `json:"played_at"`
}

// ResultSummary aggregates a set of results.
type ResultSummary struct {
	Count          int     `json:"count"`
	AveragePercent float64 `json:"average_percent"`
}

// Percent returns correct/total as a percentage rounded to one decimal place.
// A zero total yields 0.
func Percent(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round1(float64(correct) / float64(total) * 100)
}

// Summarize computes the count and the average percentage of the given results.
func Summarize(results []ResultRecord) ResultSummary {
	if len(results) == 0 {
		return ResultSummary{}
	}
	var sum float64
	for _, r := range results {
		sum += r.Percent
	}
	return ResultSummary{
		Count:          len(results),
		AveragePercent: round1(sum / float64(len(results))),
	}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
