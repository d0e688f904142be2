// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

/*
Package services adapts campus events components to the suture.Service
interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

HTTPServerService turns the blocking ListenAndServe of an *http.Server into a
context-driven Serve that drains connections through Shutdown.
WebSocketHubService runs the notification hub's event loop and reports the
number of clients still connected when it stops.

Components that already implement Serve and String, such as the Badger
garbage collector in internal/store and the token revoker in internal/auth,
are added to the tree directly.
*/
package services
