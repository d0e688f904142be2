// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

package recommend

import "github.com/tomtom215/campusevents/internal/models"

// Distribution tallies attended events by category. Categories with no
// attended events are absent from the map.
func Distribution(attended []models.Event) map[models.Category]int {
	dist := make(map[models.Category]int)
	for i := range attended {
		dist[attended[i].Category]++
	}
	return dist
}

// Underrepresented returns, in the order of all, every category that is
// missing from dist or whose count is strictly below the mean count over
// all categories. An empty category set yields nil.
func Underrepresented(dist map[models.Category]int, all []models.Category) []models.Category {
	if len(all) == 0 {
		return nil
	}

	total := 0
	for _, n := range dist {
		total += n
	}
	average := float64(total) / float64(len(all))

	var out []models.Category
	for _, c := range all {
		n, ok := dist[c]
		if !ok || float64(n) < average {
			out = append(out, c)
		}
	}
	return out
}

// Categories returns the distinct categories of events in first-seen order.
func Categories(events []models.Event) []models.Category {
	seen := make(map[models.Category]struct{}, len(events))
	var out []models.Category
	for i := range events {
		c := events[i].Category
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
