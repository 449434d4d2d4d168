// Package services is the data access layer of simkeeper: validated CRUD
// over Sims and their Metadata, with cascading delete and a repair pass
// for interrupted multi-step writes.
//
// Every operation returns a Result. Validation and not-found outcomes are
// ordinary results; storage failures are logged and reported with a
// generic message. No operation panics across the package boundary.
//
// Records live in storage cells:
//
//	sim-<id>       one Sim
//	metadata-<id>  all Metadata of Sim <id>, as one list
//	sim-ids        ordered Sim ids
//
// Metadata changes rewrite the whole list of an entity, so two writers
// changing the same entity concurrently race and the last write wins.
package services
