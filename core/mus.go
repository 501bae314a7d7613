package core

import (
	"time"

	mus "github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Serializers for the persisted record types. Composed by hand on mus-go
// primitives; the wire layout is the field order of each struct.

// IDMUS serializes IDs as varint-encoded uint64.
var IDMUS = idMUS{}

type idMUS struct{}

var _ mus.Serializer[ID] = IDMUS

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

// timeMUS serializes times as varint-encoded microseconds since the Unix
// epoch, matching the resolution of the storage date indexes.
var timeMUS = timeSer{}

type timeSer struct{}

var _ mus.Serializer[time.Time] = timeMUS

func (timeSer) Marshal(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func (timeSer) Unmarshal(bs []byte) (time.Time, int, error) {
	v, n, err := varint.Int64.Unmarshal(bs)
	return time.UnixMicro(v).UTC(), n, err
}

func (timeSer) Size(t time.Time) int {
	return varint.Int64.Size(t.UnixMicro())
}

func (timeSer) Skip(bs []byte) (int, error) {
	return varint.Int64.Skip(bs)
}

// durationMUS serializes durations as varint-encoded nanoseconds.
var durationMUS = durationSer{}

type durationSer struct{}

var _ mus.Serializer[time.Duration] = durationMUS

func (durationSer) Marshal(d time.Duration, bs []byte) int {
	return varint.Int64.Marshal(int64(d), bs)
}

func (durationSer) Unmarshal(bs []byte) (time.Duration, int, error) {
	v, n, err := varint.Int64.Unmarshal(bs)
	return time.Duration(v), n, err
}

func (durationSer) Size(d time.Duration) int {
	return varint.Int64.Size(int64(d))
}

func (durationSer) Skip(bs []byte) (int, error) {
	return varint.Int64.Skip(bs)
}

// KeywordItemMUS serializes a KeywordItem.
var KeywordItemMUS = keywordItemMUS{}

type keywordItemMUS struct{}

var _ mus.Serializer[KeywordItem] = KeywordItemMUS

func (keywordItemMUS) Marshal(k KeywordItem, bs []byte) (n int) {
	n = ord.String.Marshal(k.Keyword, bs)
	n += varint.Float64.Marshal(k.Frequency, bs[n:])
	n += ord.String.Marshal(k.Category, bs[n:])
	return n
}

func (keywordItemMUS) Unmarshal(bs []byte) (k KeywordItem, n int, err error) {
	k.Keyword, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return k, n, err
	}
	var n1 int
	k.Frequency, n1, err = varint.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return k, n, err
	}
	k.Category, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return k, n, err
}

func (keywordItemMUS) Size(k KeywordItem) int {
	return ord.String.Size(k.Keyword) +
		varint.Float64.Size(k.Frequency) +
		ord.String.Size(k.Category)
}

func (keywordItemMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return n, err
	}
	var n1 int
	n1, err = varint.Float64.Skip(bs[n:])
	n += n1
	if err != nil {
		return n, err
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return n, err
}

// KeywordListMUS serializes a keyword slice.
var KeywordListMUS = ord.NewSliceSer[KeywordItem](KeywordItemMUS)

// MetricsResultMUS serializes a MetricsResult.
var MetricsResultMUS = metricsResultMUS{}

type metricsResultMUS struct{}

var _ mus.Serializer[MetricsResult] = MetricsResultMUS

func (metricsResultMUS) Marshal(m MetricsResult, bs []byte) (n int) {
	n = varint.Float64.Marshal(m.Precision, bs)
	n += varint.Float64.Marshal(m.Recall, bs[n:])
	n += varint.Float64.Marshal(m.F1Score, bs[n:])
	n += varint.Float64.Marshal(m.RankCorrelation, bs[n:])
	return n
}

func (metricsResultMUS) Unmarshal(bs []byte) (m MetricsResult, n int, err error) {
	fields := []*float64{&m.Precision, &m.Recall, &m.F1Score, &m.RankCorrelation}
	for _, field := range fields {
		var n1 int
		*field, n1, err = varint.Float64.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return m, n, err
		}
	}
	return m, n, nil
}

func (metricsResultMUS) Size(m MetricsResult) int {
	return varint.Float64.Size(m.Precision) +
		varint.Float64.Size(m.Recall) +
		varint.Float64.Size(m.F1Score) +
		varint.Float64.Size(m.RankCorrelation)
}

func (metricsResultMUS) Skip(bs []byte) (n int, err error) {
	for range 4 {
		var n1 int
		n1, err = varint.Float64.Skip(bs[n:])
		n += n1
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// QueryRecordMUS serializes a QueryRecord.
var QueryRecordMUS = queryRecordMUS{}

type queryRecordMUS struct{}

var _ mus.Serializer[QueryRecord] = QueryRecordMUS

func (queryRecordMUS) Marshal(r QueryRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(r.Id, bs)
	n += ord.String.Marshal(r.Query, bs[n:])
	n += KeywordListMUS.Marshal(r.Keywords, bs[n:])
	n += timeMUS.Marshal(r.CreatedAt, bs[n:])
	return n
}

func (queryRecordMUS) Unmarshal(bs []byte) (r QueryRecord, n int, err error) {
	r.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return r, n, err
	}
	var n1 int
	r.Query, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return r, n, err
	}
	r.Keywords, n1, err = KeywordListMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return r, n, err
	}
	r.CreatedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return r, n, err
}

func (queryRecordMUS) Size(r QueryRecord) int {
	return IDMUS.Size(r.Id) +
		ord.String.Size(r.Query) +
		KeywordListMUS.Size(r.Keywords) +
		timeMUS.Size(r.CreatedAt)
}

func (queryRecordMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return n, err
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return n, err
	}
	n1, err = KeywordListMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return n, err
	}
	n1, err = timeMUS.Skip(bs[n:])
	n += n1
	return n, err
}

// RunRecordMUS serializes a RunRecord.
var RunRecordMUS = runRecordMUS{}

type runRecordMUS struct{}

var _ mus.Serializer[RunRecord] = RunRecordMUS

func (runRecordMUS) Marshal(r RunRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(r.Id, bs)
	n += ord.String.Marshal(r.Dataset, bs[n:])
	n += varint.Int.Marshal(r.ItemCount, bs[n:])
	n += ord.Bool.Marshal(r.UsedAI, bs[n:])
	n += MetricsResultMUS.Marshal(r.Overall, bs[n:])
	n += MetricsResultMUS.Marshal(r.Baseline, bs[n:])
	n += durationMUS.Marshal(r.Elapsed, bs[n:])
	n += timeMUS.Marshal(r.CreatedAt, bs[n:])
	return n
}

func (runRecordMUS) Unmarshal(bs []byte) (r RunRecord, n int, err error) {
	r.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return r, n, err
	}
	var n1 int
	r.Dataset, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return r, n, err
	}
	r.ItemCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return r, n, err
	}
	r.UsedAI, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return r, n, err
	}
	r.Overall, n1, err = MetricsResultMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return r, n, err
	}
	r.Baseline, n1, err = MetricsResultMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return r, n, err
	}
	r.Elapsed, n1, err = durationMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return r, n, err
	}
	r.CreatedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return r, n, err
}

func (runRecordMUS) Size(r RunRecord) int {
	return IDMUS.Size(r.Id) +
		ord.String.Size(r.Dataset) +
		varint.Int.Size(r.ItemCount) +
		ord.Bool.Size(r.UsedAI) +
		MetricsResultMUS.Size(r.Overall) +
		MetricsResultMUS.Size(r.Baseline) +
		durationMUS.Size(r.Elapsed) +
		timeMUS.Size(r.CreatedAt)
}

func (runRecordMUS) Skip(bs []byte) (n int, err error) {
	skips := []func([]byte) (int, error){
		IDMUS.Skip, ord.String.Skip, varint.Int.Skip, ord.Bool.Skip,
		MetricsResultMUS.Skip, MetricsResultMUS.Skip,
		durationMUS.Skip, timeMUS.Skip,
	}
	for _, skip := range skips {
		var n1 int
		n1, err = skip(bs[n:])
		n += n1
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
