// Package codec serialises result sets for the durable cache tiers.
//
// Records are stored in a compact JSON form with single-letter keys
// (t: title, l: link, s: summary, i: thumbnail, c: labels) so that
// a durable entry stays small. An absent thumbnail is stored as "".
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/feedsearch/internal/core/domain"
)

// compactRecord is the persisted shape of a domain.DisplayRecord.
type compactRecord struct {
	T string   `json:"t"`
	L string   `json:"l"`
	S string   `json:"s"`
	I string   `json:"i"`
	C []string `json:"c"`
}

// Marshal encodes a result set. A nil set encodes as an empty array.
func Marshal(rs domain.ResultSet) ([]byte, error) {
	out := make([]compactRecord, len(rs))
	for i := range rs {
		labels := rs[i].Labels
		if labels == nil {
			labels = []string{}
		}
		out[i] = compactRecord{
			T: rs[i].Title,
			L: rs[i].Link,
			S: rs[i].Summary,
			I: rs[i].Thumbnail,
			C: labels,
		}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encoding result set: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a result set written by Marshal.
func Unmarshal(data []byte) (domain.ResultSet, error) {
	var in []compactRecord
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("decoding result set: %w", err)
	}
	rs := make(domain.ResultSet, len(in))
	for i := range in {
		labels := in[i].C
		if labels == nil {
			labels = []string{}
		}
		rs[i] = domain.DisplayRecord{
			Title:     in[i].T,
			Link:      in[i].L,
			Summary:   in[i].S,
			Thumbnail: in[i].I,
			Labels:    labels,
		}
	}
	return rs, nil
}
