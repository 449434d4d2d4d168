package models

import "unicode/utf8"

// MetadataStats summarises one entity's metadata collection.
type MetadataStats struct {
	Count              int     `json:"count"`
	HasContent         int     `json:"hasContent"`
	IsEmpty            int     `json:"isEmpty"`
	TotalKeyLength     int     `json:"totalKeyLength"`
	TotalValueLength   int     `json:"totalValueLength"`
	AverageKeyLength   float64 `json:"averageKeyLength"`
	AverageValueLength float64 `json:"averageValueLength"`
}

// ComputeMetadataStats counts entries with and without content and the
// key/value lengths in characters. Averages are 0 for an empty list.
func ComputeMetadataStats(items []Metadata) MetadataStats {
	var st MetadataStats
	st.Count = len(items)

	for _, md := range items {
		if HasMetadataContent(md) {
			st.HasContent++
		}
		st.TotalKeyLength += utf8.RuneCountInString(md.Key)
		st.TotalValueLength += utf8.RuneCountInString(md.Value)
	}
	st.IsEmpty = st.Count - st.HasContent

	if st.Count > 0 {
		st.AverageKeyLength = float64(st.TotalKeyLength) / float64(st.Count)
		st.AverageValueLength = float64(st.TotalValueLength) / float64(st.Count)
	}
	return st
}
