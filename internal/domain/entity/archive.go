package entity

import "time"

// Record is a raw document copied out of a collection before it is purged.
type Record = map[string]interface{}

// ArchiveSnapshot groups purged records by collection name.
type ArchiveSnapshot map[string][]Record

// Count returns the number of records held for a collection.
func (s ArchiveSnapshot) Count(collection string) int {
	return len(s[collection])
}

// Total returns the number of records across all collections.
func (s ArchiveSnapshot) Total() int {
	n := 0
	for _, records := range s {
		n += len(records)
	}
	return n
}

// ArchivedUser is the frozen snapshot of a deleted user's data. It is written
// once when the deletion is approved and never mutated afterwards.
type ArchivedUser struct {
	ID           string          `bson:"_id" json:"id"`
	DeletedAt    time.Time       `bson:"deleted_at" json:"deleted_at"`
	ApprovedBy   string          `bson:"approved_by" json:"approved_by"`
	ArchivedData ArchiveSnapshot `bson:"archived_data" json:"archived_data"`
}
