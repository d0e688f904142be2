// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

// Package recommend suggests upcoming campus events that balance a
// student's attendance across categories without clashing with events the
// student has already committed to.
//
// # Pipeline
//
// Engine.Recommend runs a fixed pipeline over the catalog:
//
//  1. collect the events the user has attended
//  2. tally them per category and find underrepresented categories,
//     measured against every category present in the catalog
//  3. drop events dated before today (date-only comparison)
//  4. drop events already committed to
//  5. drop events that overlap a committed event (see package schedule)
//  6. order underrepresented categories first, then by ascending date
//  7. keep the first MaxResults events
//
// A category is underrepresented when it has no attended events at all, or
// when its count is strictly below the mean taken over all known categories.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	res, err := engine.Recommend(ctx, recommend.Request{
//	    Catalog:   events,
//	    Profile:   profile,
//	    Committed: rsvps,
//	})
//	fmt.Println(res.Reason)
//
// # Thread Safety
//
// The engine holds no per-request state and is safe for concurrent use.
// Results are recomputed on every call; nothing is cached.
package recommend
