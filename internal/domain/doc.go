// Package domain contains the core entities of the application: flashcard
// definitions, per-user review profiles, and user accounts. Domain types
// validate themselves but carry no persistence or scheduling logic; the
// leitner subpackage owns the scheduling rules and the store packages own
// persistence.
package domain
