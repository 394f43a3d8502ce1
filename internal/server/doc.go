// Package server implements the toolcrib checkout API.
//
// Owns:
//   - HTTP routing, handlers, and request/response contracts
//   - Caller identity extraction and the access policy predicates
//   - The checkout status state machine and availability enforcement
//   - Storage (Store implementations: in-memory and embedded SQLite)
//
// Does not own:
//   - How identity was established (headers are trusted verbatim)
//   - Sweeping overdue due dates (status changes are request-driven)
//
// Invariants:
//   - At most one active-or-overdue checkout exists per asset
//   - Status changes go through CanTransition, on create and update alike
//   - Record ids are stable and never reused or shifted by deletes
//   - Every precondition is checked before any mutation; the Service
//     mutex spans whole operations so check-then-act cannot race
package server
