// Package claim implements the deterministic, rule-based claim extractor:
// a sliding-window sentence stitcher, heuristic filters, and classifiers
// that turn a source's segment sequence into self-contained, checkable
// claims with explainability signals (spec.md §4.2).
package claim

import (
	"sort"
	"strings"
	"time"

	"github.com/obelus-labs/veritas-core/internal/model"
	"github.com/obelus-labs/veritas-core/internal/textnorm"
)

// centerLongWordThreshold is the word count at or above which a center segment
// requires 3 shared tokens (instead of 2) to anchor a candidate sentence
// (spec.md §4.2 step 3).
const centerLongWordThreshold = 12

// minFragmentChars discards sentence fragments shorter than this after
// splitting a window (spec.md §4.2 step 2).
const minFragmentChars = 10

// minClaimWords and minClaimChars are the survival filters of step 5.
const (
	minClaimWords = 7
	minClaimChars = 40
	maxClaimChars = 240
)

// dedupSimilarityThreshold is the approximate-match ratio above which a
// candidate is considered a duplicate of a previously accepted claim
// within the same source (spec.md §4.2 step 7).
const dedupSimilarityThreshold = 0.85

// SourceMeta carries the optional source title/channel used as a category
// tiebreaker (spec.md §4.2.1).
type SourceMeta struct {
	Title   string
	Channel string
}

func (m SourceMeta) text() string {
	return strings.TrimSpace(m.Title + " " + m.Channel)
}

// window is a concatenation of 2-4 adjacent segments anchored at a center
// index, carrying the time span the concatenation covers.
type window struct {
	text       string
	start, end float64
	centerText string
}

// buildWindows constructs one window per segment index, per spec.md §4.2
// step 1: concatenate segments[i-1 .. i+2] clipped to the sequence.
func buildWindows(segments []model.Segment) []window {
	windows := make([]window, len(segments))
	for i := range segments {
		lo := i - 1
		if lo < 0 {
			lo = 0
		}
		hi := i + 2
		if hi > len(segments)-1 {
			hi = len(segments) - 1
		}

		var b strings.Builder
		for j := lo; j <= hi; j++ {
			if j > lo {
				b.WriteString(" ")
			}
			b.WriteString(segments[j].Text)
		}

		windows[i] = window{
			text:       b.String(),
			start:      segments[lo].Start,
			end:        segments[hi].End,
			centerText: segments[i].Text,
		}
	}
	return windows
}

// splitSentences splits window text at sentence boundaries and discards
// fragments shorter than minFragmentChars (spec.md §4.2 step 2).
func splitSentences(text string) []string {
	parts := sentenceBoundaryRe.Split(text, -1)
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) >= minFragmentChars {
			out = append(out, p)
		}
	}
	return out
}

// anchored reports whether sentence shares enough tokens with the center
// segment's text to be considered anchored to the current time position
// (spec.md §4.2 step 3).
func anchored(sentence, centerText string) bool {
	centerWords := textnorm.Words(textnorm.Normalize(centerText))
	need := 2
	if len(centerWords) >= centerLongWordThreshold {
		need = 3
	}
	centerSet := make(map[string]struct{}, len(centerWords))
	for _, w := range centerWords {
		centerSet[w] = struct{}{}
	}

	shared := 0
	for _, w := range textnorm.Words(textnorm.Normalize(sentence)) {
		if _, ok := centerSet[w]; ok {
			shared++
			if shared >= need {
				return true
			}
		}
	}
	return false
}

func startsWithDanglingConjunction(text string) bool {
	words := strings.Fields(text)
	if len(words) == 0 {
		return false
	}
	first := strings.ToLower(strings.Trim(words[0], ".,;:!?\"'"))
	return danglingConjunctions[first]
}

func hasSignal(text string) bool {
	if digitRe.MatchString(text) {
		return true
	}
	if dateTokenRe.MatchString(text) {
		return true
	}
	if properNounPhraseRe.MatchString(text) {
		return true
	}
	for _, w := range textnorm.Words(textnorm.Normalize(text)) {
		if assertionVerbs[w] {
			return true
		}
	}
	return false
}

func hasSubjectAnchor(text string) bool {
	words := strings.Fields(text)
	if len(words) == 0 {
		return false
	}
	for _, w := range textnorm.Words(textnorm.Normalize(text)) {
		if subjectPronouns[w] {
			return true
		}
	}
	for _, w := range words {
		trimmed := strings.Trim(w, ".,;:!?\"'")
		if trimmed == "" {
			continue
		}
		if textnorm.IsCapitalized(trimmed) {
			return true
		}
	}
	return digitRe.MatchString(text)
}

func boilerplateHits(text string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, phrase := range boilerplatePhrases {
		if strings.Contains(lower, phrase) {
			count++
		}
	}
	return count
}

// survives applies every step-5 filter. Returns false (reject) on the
// first filter that fails.
func survives(text string) bool {
	trimmed := strings.TrimSpace(text)
	words := strings.Fields(trimmed)
	if len(words) < minClaimWords {
		return false
	}
	if len(trimmed) < minClaimChars {
		return false
	}
	if startsWithDanglingConjunction(trimmed) {
		return false
	}
	if !hasSignal(trimmed) {
		return false
	}
	if !hasSubjectAnchor(trimmed) {
		return false
	}
	if boilerplateHits(trimmed) >= 2 {
		return false
	}
	return true
}

// truncate clips text longer than maxClaimChars at the last whitespace and
// appends an ellipsis (spec.md §4.2, final paragraph).
func truncate(text string) string {
	if len(text) <= maxClaimChars {
		return text
	}
	cut := text[:maxClaimChars]
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}

// confidenceLanguage classifies hedged vs definitive phrasing, tie -> unknown.
func confidenceLanguage(text string) model.ConfidenceLanguage {
	hasHedge, hasDefinitive := false, false
	for _, w := range textnorm.Words(textnorm.Normalize(text)) {
		if hedgeWords[w] {
			hasHedge = true
		}
		if definitiveWords[w] {
			hasDefinitive = true
		}
	}
	switch {
	case hasHedge && hasDefinitive:
		return model.ConfidenceUnknown
	case hasHedge:
		return model.ConfidenceHedged
	case hasDefinitive:
		return model.ConfidenceDefinitive
	default:
		return model.ConfidenceUnknown
	}
}

// buildSignals assembles the pipe-delimited signals string recorded on a
// claim (spec.md §3).
func buildSignals(text string, conf model.ConfidenceLanguage, cat model.Category) string {
	var sigs []string
	if digitRe.MatchString(text) {
		sigs = append(sigs, "number")
	}
	if properNounPhraseRe.MatchString(text) {
		sigs = append(sigs, "named_entity")
	}
	if dateTokenRe.MatchString(text) {
		sigs = append(sigs, "date")
	}
	for _, w := range textnorm.Words(textnorm.Normalize(text)) {
		if assertionVerbs[w] {
			sigs = append(sigs, "assertion_verb")
			break
		}
	}
	sigs = append(sigs, "has_subject")
	sigs = append(sigs, "confidence:"+string(conf))
	sigs = append(sigs, "category:"+string(cat))
	return strings.Join(sigs, "|")
}

// candidate is an accepted sentence prior to within-source deduplication.
type candidate struct {
	text           string
	tsStart, tsEnd float64
}

// Extract runs the full pipeline (windowing, splitting, anchoring,
// filtering, classification, hashing, dedup) over a source's segment
// sequence and returns the deduplicated claims, ordered by ts_start
// (spec.md §5 ordering guarantee).
func Extract(sourceID string, segments []model.Segment, meta SourceMeta, now time.Time) []model.Claim {
	if len(segments) == 0 {
		return nil
	}

	var candidates []candidate
	for _, win := range buildWindows(segments) {
		sentences := splitSentences(win.text)
		var accepted []string
		for _, s := range sentences {
			if anchored(s, win.centerText) && survives(s) {
				accepted = append(accepted, s)
			}
		}
		if len(accepted) == 0 {
			continue
		}

		// Evenly slice the window's duration across accepted sentences
		// (spec.md §4.2 step 4).
		duration := win.end - win.start
		if duration < 0 {
			duration = 0
		}
		slice := duration / float64(len(accepted))
		for i, s := range accepted {
			candidates = append(candidates, candidate{
				text:    truncate(s),
				tsStart: win.start + slice*float64(i),
				tsEnd:   win.start + slice*float64(i+1),
			})
		}
	}

	metaText := meta.text()
	seenHashes := make(map[string]bool)
	var acceptedTexts []string
	var claims []model.Claim

	for _, c := range candidates {
		hash := textnorm.HashLocal(sourceID, c.text)
		if seenHashes[hash] {
			continue
		}

		isDup := false
		for _, prev := range acceptedTexts {
			if textnorm.SimilarityRatio(c.text, prev) >= dedupSimilarityThreshold {
				isDup = true
				break
			}
		}
		if isDup {
			continue
		}

		seenHashes[hash] = true
		acceptedTexts = append(acceptedTexts, c.text)

		cat := Categorize(c.text, metaText)
		conf := confidenceLanguage(c.text)

		claims = append(claims, model.Claim{
			ID:                model.NewID(),
			SourceID:          sourceID,
			Text:              c.text,
			TsStart:           c.tsStart,
			TsEnd:             c.tsEnd,
			ConfidenceLang:    conf,
			Category:          cat,
			ClaimHash:         hash,
			ClaimHashGlobal:   textnorm.HashGlobal(c.text),
			Signals:           buildSignals(c.text, conf, cat),
			Status:            model.StatusUnknown,
			StatusAuto:        model.AutoStatusUnknown,
			ExtractionVersion: model.CurrentExtractionVersion(),
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}

	sort.SliceStable(claims, func(i, j int) bool {
		return claims[i].TsStart < claims[j].TsStart
	})
	return claims
}
