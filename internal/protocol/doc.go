// Package protocol owns the RBK wire contract and operation catalog.
//
// Ownership boundary:
// - frame header primitives (frame subpackage)
// - operation number -> category -> port routing
// - typed request/response payload shapes and ret_code semantics
package protocol
