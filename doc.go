// Package forcegraph implements a real-time force-directed graph
// visualization backend: it ingests a cross-linked document corpus,
// derives a weighted undirected graph from reference counts, runs a
// parallel force-directed 3D physics simulation over it, and streams
// position/velocity updates to connected clients over a channel
// upgrade endpoint.
//
// # Architecture Overview
//
//   - model: the Node/Edge/Graph data model, deterministic graph
//     construction from metadata, and the pagination view
//   - wire: the 26-byte little-endian binary record codec used for
//     both outbound physics frames and inbound client edits
//   - kernels: the force-directed physics step (repulsion, spring
//     attraction, semi-implicit Euler integration, boundary damping)
//   - device: the worker-pool backend that parallelizes one physics
//     tick across node ranges, with a serial fallback
//   - registry: the shared-state holder with independently lockable
//     graph, string-id index, and parameter block
//   - session: one streaming connection's lifecycle, heartbeat,
//     control-message handling, and per-tick frame production
//   - transport: the channel-upgrade HTTP handler and session
//     supervisor
//   - ingest: markdown corpus loading and metadata persistence
//   - config: YAML settings loading and validation
//   - metrics: Prometheus counters and gauges
//   - cmd: command-line tools (forcegraphd, forcegraphctl)
//
// # Basic Usage
//
//	forcegraphd -config ./forcegraph.yaml
//
// A client connects to /wss, exchanges the connection_established and
// loading control messages, sends requestInitialData, and then
// receives a binary physics frame on every tick in which at least one
// node has moved past the deadband, until it disconnects.
package forcegraph
