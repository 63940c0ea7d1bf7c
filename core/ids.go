package core

import (
	"encoding/binary"
	"strconv"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique 64-bit identifier for index points.
//
// Ids are derived from shard content rather than wall-clock time, so
// concurrent ingestion cannot collide and redelivered artifacts upsert the
// same points instead of duplicating them.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b
// hashing. Identical content always produces the identical ID.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ShardID derives the index point id for one chunk of one artifact.
// The artifact name and chunk ordinal participate so identical text appearing
// in two artifacts (or twice in one) still yields distinct points.
func ShardID(artifactName string, ordinal int, information string) ID {
	return IDFromContent(artifactName + "#" + strconv.Itoa(ordinal) + "#" + information)
}
