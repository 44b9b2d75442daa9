package badger

import "encoding/binary"

// Key layout.
const (
	entryPrefix = "rc:"
	usageKey    = "meta:usage"
)

func makeEntryKey(key string) []byte {
	return []byte(entryPrefix + key)
}

func encodeUint64(v uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf
}

func decodeUint64(b []byte) uint64 {
	if len(b) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}
