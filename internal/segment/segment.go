// Package segment converts a source's raw intake — an audio transcript
// blob, a text buffer, or inline text — into the uniform segment sequence
// the claim extractor consumes (spec.md §4.1).
package segment

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/obelus-labs/veritas-core/internal/model"
)

// charsPerSecond is the nominal reading rate used to assign monotone
// timestamps to pseudo-segments. The absolute values carry no meaning;
// only their ordering matters to the claim extractor.
const charsPerSecond = 20.0

// longParagraphChars is the length above which a paragraph is further
// split at sentence ends.
const longParagraphChars = 200

var (
	paragraphBoundaryRe = regexp.MustCompile(`\n\s*\n+`)
	pseudoSentenceRe    = regexp.MustCompile(`(?:[.!?])\s+`)
)

// transcriptWord is one word entry in an audio-transcript JSON blob.
type transcriptWord struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// transcriptSegment is one segment entry in an audio-transcript JSON blob.
type transcriptSegment struct {
	Start float64           `json:"start"`
	End   float64           `json:"end"`
	Text  string            `json:"text"`
	Words []transcriptWord  `json:"words,omitempty"`
}

// transcriptBlob is the on-disk shape of an audio-transcript JSON file.
type transcriptBlob struct {
	Segments []transcriptSegment `json:"segments"`
}

// FromTranscript parses an already-timestamped audio-transcript JSON blob
// into the Store's segment sequence. Segments keep their given order and
// timestamps; text is trimmed and segments with empty text are dropped.
// Timestamp ordering is not checked here.
func FromTranscript(raw []byte) ([]model.Segment, error) {
	var blob transcriptBlob
	if err := json.Unmarshal(raw, &blob); err != nil {
		return nil, eris.Wrap(err, "segment: parse transcript blob")
	}

	segments := make([]model.Segment, 0, len(blob.Segments))
	for _, s := range blob.Segments {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		segments = append(segments, model.Segment{
			Start: s.Start,
			End:   s.End,
			Text:  text,
		})
	}
	if len(segments) == 0 {
		return nil, eris.New("segment: transcript blob contained no usable segments")
	}
	return segments, nil
}

// FromText produces pseudo-segments from a plain-text buffer: split on
// paragraph boundaries first, then at sentence ends within any paragraph
// longer than longParagraphChars. Monotone timestamps are assigned at
// charsPerSecond (spec.md §4.1).
func FromText(text string) ([]model.Segment, error) {
	paragraphs := paragraphBoundaryRe.Split(strings.TrimSpace(text), -1)

	var chunks []string
	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if len(p) <= longParagraphChars {
			chunks = append(chunks, p)
			continue
		}
		for _, sentence := range pseudoSentenceRe.Split(p, -1) {
			sentence = strings.TrimSpace(sentence)
			if sentence != "" {
				chunks = append(chunks, sentence)
			}
		}
	}

	if len(chunks) == 0 {
		return nil, eris.New("segment: text buffer contained no usable content")
	}

	segments := make([]model.Segment, 0, len(chunks))
	cursor := 0.0
	for _, chunk := range chunks {
		dur := float64(len(chunk)) / charsPerSecond
		segments = append(segments, model.Segment{
			Start: cursor,
			End:   cursor + dur,
			Text:  chunk,
		})
		cursor += dur
	}
	return segments, nil
}
