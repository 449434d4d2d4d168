// Package models defines the Sim and Metadata records, their size limits
// and the pure validation and normalization helpers shared by every code
// path that creates or changes them.
//
// Lengths are counted in Unicode code points, and truncation never splits
// a multi-byte character.
package models
