package common

// Backing store key layout. Every record lives under its own key so that a
// Sim and each Sim's metadata collection can be read and written
// independently.
const (
	SimKeyPrefix      = "sim-"
	MetadataKeyPrefix = "metadata-"
	SimIDsKey         = "sim-ids"
)
