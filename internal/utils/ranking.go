package utils

import (
	"time"
)

// HotnessUnit is the age unit hotness divides by. Posts younger than one unit
// are treated as exactly one unit old.
const HotnessUnit = time.Hour

// HotnessSQL computes the same value as Hotness inside the post listing query.
// It expects the posts table aliased as p and votes as v.
const HotnessSQL = "(COALESCE(SUM(v.value), 0)::float8 / GREATEST(EXTRACT(EPOCH FROM (NOW() - p.created_at))::float8 / 3600.0, 1.0))"

// Hotness = net vote score / age in hours, with the age clamped to at least one hour.
func Hotness(score int64, createdAt, now time.Time) float64 {
	age := float64(now.Sub(createdAt)) / float64(HotnessUnit)
	if age < 1 {
		age = 1
	}
	return float64(score) / age
}
