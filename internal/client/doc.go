// Package client dials a robot's category ports and correlates concurrent
// requests over each connection by flow number.
//
// Ownership boundary:
//   - one lazily-dialed connection per category; redial happens on the next
//     call after a failure, never automatically
//   - flow numbers allocated per connection modulo the 512 window; a wrap
//     onto a still-pending number is refused as busy
//   - one read pump per connection resolves pending callers strictly by
//     flow number; late replies after a caller timed out are dropped
//   - connection failure releases every pending caller on that connection;
//     Close releases everything and makes further calls fail fast
//
// Typed call methods decode into protocol payload types and surface
// non-zero ret_code values as *protocol.StatusError.
package client
