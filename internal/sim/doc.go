// Package sim owns the simulated robot record.
//
// Ownership boundary:
// - the single shared battery/pose/task/peripheral state
// - time-driven advancement (battery drain, pose integration)
// - navigation lifecycle transitions
//
// Sim does not touch the network; sessions and the background ticker
// call into it under one RWMutex.
package sim
