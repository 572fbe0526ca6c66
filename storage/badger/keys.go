package badger

import (
	"encoding/binary"
)

// Key prefixes for different data types
const (
	reminderRecordPrefix   = "rem"
	reminderOrderPrefix    = "remord"
	reminderPositionPrefix = "rempos"
	reminderOrderSeq       = "remseq"
)

// makeReminderKey generates a key for a reminder record by ID.
// Format: prefix:id
func makeReminderKey(id string) []byte {
	return []byte(reminderRecordPrefix + ":" + id)
}

// makeReminderOrderKey generates a key for the insertion-order index.
// Format: prefix:position
func makeReminderOrderKey(pos uint64) []byte {
	prefix := reminderOrderPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], pos)
	return buf
}

// makeReminderPositionKey generates the back-pointer from a reminder ID to its
// position in the insertion-order index.
// Format: prefix:id
func makeReminderPositionKey(id string) []byte {
	return []byte(reminderPositionPrefix + ":" + id)
}

// reminderOrderIndexPrefix is the iteration prefix of the insertion-order index.
func reminderOrderIndexPrefix() []byte {
	return []byte(reminderOrderPrefix + ":")
}
