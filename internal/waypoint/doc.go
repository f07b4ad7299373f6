// Package waypoint owns the named navigation targets: an in-memory store
// shared by the HTTP management surface and the simulator's read-only
// resolver.
//
// Ownership boundary:
//   - Store is the single writer-locked home of the id -> point map
//   - Server exposes the store over gin (list/get/upsert/delete plus
//     health, ready and metrics)
//   - navigation code consumes the store only through Resolve
package waypoint
