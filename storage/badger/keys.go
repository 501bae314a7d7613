package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/querygen/core"
)

// Key prefixes for different data types
const (
	queryRecordPrefix     = "qryrec"
	queryRecordDatePrefix = "qryrecd"
	runRecordPrefix       = "runrec"
	runRecordDatePrefix   = "runrecd"
	runRecordIDSeq        = "runrecseq"
)

// makeQueryRecordKey generates a key for a query record by ID.
func makeQueryRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", queryRecordPrefix, id))
}

// makeQueryDateKey generates a composite key for the query date index.
// Format: prefix:timestamp:id
func makeQueryDateKey(timestamp time.Time, id core.ID) []byte {
	return makeDateKey(queryRecordDatePrefix, timestamp, id)
}

// makePartialQueryDateKey generates a partial key for query date range
// scans. Format: prefix:timestamp
func makePartialQueryDateKey(timestamp time.Time) []byte {
	return makePartialDateKey(queryRecordDatePrefix, timestamp)
}

// makeRunRecordKey generates a key for a run record by ID.
func makeRunRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", runRecordPrefix, id))
}

// makeRunDateKey generates a composite key for the run date index.
// Format: prefix:timestamp:id
func makeRunDateKey(timestamp time.Time, id core.ID) []byte {
	return makeDateKey(runRecordDatePrefix, timestamp, id)
}

// makePartialRunDateKey generates a partial key for run date range scans.
// Format: prefix:timestamp
func makePartialRunDateKey(timestamp time.Time) []byte {
	return makePartialDateKey(runRecordDatePrefix, timestamp)
}

// makeDateKey builds prefix:timestamp:id with the timestamp and ID in
// BigEndian order so lexicographic sort matches chronological order.
func makeDateKey(prefix string, timestamp time.Time, id core.ID) []byte {
	prefixBytes := []byte(prefix + ":")
	buf := make([]byte, len(prefixBytes)+16)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialDateKey builds prefix:timestamp for range scans.
func makePartialDateKey(prefix string, timestamp time.Time) []byte {
	prefixBytes := []byte(prefix + ":")
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}
