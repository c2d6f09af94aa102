package rag

// Segment is a bounded-length slice of extracted document text, the unit
// of indexing.
type Segment struct {
	Text  string
	Index int
}

// DefaultMaxSegmentLength bounds a segment to 1000 runes.
const DefaultMaxSegmentLength = 1000

// SegmentText splits text into contiguous rune slices of at most maxLen.
// The last segment may be shorter. Concatenating the segments in order
// reconstructs text exactly: no overlap, no loss, no trimming.
func SegmentText(text string, maxLen int) []Segment {
	if maxLen <= 0 {
		maxLen = DefaultMaxSegmentLength
	}
	if text == "" {
		return nil
	}

	runes := []rune(text)
	segments := make([]Segment, 0, (len(runes)+maxLen-1)/maxLen)

	for start, idx := 0, 0; start < len(runes); start, idx = start+maxLen, idx+1 {
		end := start + maxLen
		if end > len(runes) {
			end = len(runes)
		}
		segments = append(segments, Segment{
			Text:  string(runes[start:end]),
			Index: idx,
		})
	}

	return segments
}
