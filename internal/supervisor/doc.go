// Campus Events - Campus Event Discovery and Check-in Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusevents

/*
Package supervisor runs the long-lived services of the campus events server
under a suture v4 supervisor tree.

	RootSupervisor ("campusevents")
	├── DataSupervisor ("data-layer")
	│   ├── store-gc (Badger value log GC, persistent store only)
	│   ├── revocation-cleanup
	│   └── audit-writer (AUDIT_ENABLED)
	├── MessagingSupervisor ("messaging-layer")
	│   └── websocket-hub
	└── APISupervisor ("api-layer")
	    └── http-server

Each layer counts failures independently, so a hub crash restarts the hub
without dropping in-flight check-in requests. Supervisor events (service
start, panic, backoff) are logged through sutureslog into the zerolog
pipeline via logging.NewSlogLogger.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    HTTPShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, supervisor.Children{
	    StoreGC:     badgerKV,
	    Revocations: revoker,
	    Audit:       auditLogger,
	    Hub:         hub,
	    HTTP:        server,
	})
	err = tree.Serve(ctx)

Optional children (StoreGC, Audit) are skipped when nil; the tree wraps the
hub and HTTP server in the adapters from the services subpackage.
*/
package supervisor
