// Package mock serves the RBK wire protocol over the six category ports,
// backed by one shared robot simulator.
//
// Ownership boundary:
//   - one TCP listener per category port, each with an independent accept
//     loop; a category that fails to bind never disturbs the others
//   - one session goroutine per accepted connection, exclusive owner of
//     that connection
//   - request dispatch by API number against a shared handler table; every
//     port answers every API, unregistered numbers get ret_code 40000
//   - framing failures tear down the offending session only; payload
//     failures answer with an error body and keep the session open
//
// Robot state itself belongs to the sim package; handlers only translate
// between wire payloads and simulator calls.
package mock
