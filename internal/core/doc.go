// Package core wires the wifilog application together.
//
// [App] owns the daily log store, the sampler and the optional HTTP query
// server for the lifetime of one process. [LoadConfig] resolves the
// effective configuration from defaults, the INI file, the environment and
// command-line overrides. [RunInfo] records the running daemon so other
// invocations can find it.
//
// # Lifecycle
//
//  1. [New] opens the store and builds the detector, sampler and server
//  2. [App.Run] starts sampling and serving and blocks until its context ends
//  3. On return the server is shut down, the sampler drained and the store closed
package core
