package model

import "time"

// SourceType identifies how a source was ingested.
type SourceType string

const (
	SourceTypeAudio  SourceType = "audio"
	SourceTypeText   SourceType = "text"
	SourceTypePDF    SourceType = "pdf"
	SourceTypeURL    SourceType = "url"
	SourceTypeFiling SourceType = "filing"
)

// Source is an ingested document: a transcript, article, PDF, or filing.
// Immutable after creation.
type Source struct {
	ID             string     `json:"id"`
	URL            string     `json:"url,omitempty"`
	Title          string     `json:"title,omitempty"`
	Channel        string     `json:"channel,omitempty"`
	UploadDate     *time.Time `json:"upload_date,omitempty"`
	SourceType     SourceType `json:"source_type"`
	DurationSecs   float64    `json:"duration_seconds,omitempty"`
	LocalAudioPath string     `json:"local_audio_path,omitempty"`
	TranscriptPath string     `json:"transcript_path,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Segment is one ordered span of text within a source's timeline.
// Invariant: Start <= End; segments are non-decreasing in Start within a source.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// SegmentFile is the on-disk shape of a source's persisted segment blob.
type SegmentFile struct {
	Segments []Segment `json:"segments"`
}
