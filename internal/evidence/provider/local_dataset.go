package provider

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/obelus-labs/veritas-core/internal/fetcher"
	"github.com/obelus-labs/veritas-core/internal/textnorm"
)

// largeFileRows is the row count above which the stricter pre-filter for
// large files applies (spec.md §4.3 item 1: "For large files (> 500 rows)").
const largeFileRows = 500

var largeFileNumberRe = regexp.MustCompile(`\b\d{3,}\b`)

// datasetFile is one indexed CSV/XLSX file under the local dataset directory.
type datasetFile struct {
	path    string
	name    string
	header  []string
	rows    [][]string
	index   string // lowercased concatenation of all cell text, for the pre-filter
}

// LocalDataset scans user-supplied CSV/XLSX files under a data directory,
// building a case-folded text index per file (spec.md §4.3 item 1).
type LocalDataset struct {
	dir string

	mu    sync.Mutex
	files []*datasetFile
	built bool
}

// NewLocalDataset constructs the local dataset provider rooted at dir.
func NewLocalDataset(dir string) *LocalDataset {
	return &LocalDataset{dir: dir}
}

func (p *LocalDataset) Name() string         { return "local_dataset" }
func (p *LocalDataset) EvidenceType() string { return "dataset" }

func (p *LocalDataset) ensureLoaded() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.built {
		return
	}
	p.built = true
	if p.dir == "" {
		return
	}

	_ = filepath.WalkDir(p.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		switch ext {
		case ".csv":
			if f, ok := loadCSVFile(path); ok {
				p.files = append(p.files, f)
			}
		case ".xlsx":
			if f, ok := loadXLSXFile(path); ok {
				p.files = append(p.files, f)
			}
		}
		return nil
	})
}

func loadCSVFile(path string) (*datasetFile, bool) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer fh.Close() //nolint:errcheck

	rowCh, errCh := fetcher.StreamCSV(context.Background(), fh, fetcher.CSVOptions{TrimSpace: true})
	var rows [][]string
	for row := range rowCh {
		rows = append(rows, row)
	}
	if err := <-errCh; err != nil || len(rows) == 0 {
		return nil, false
	}
	return buildDatasetFile(path, rows), true
}

func loadXLSXFile(path string) (*datasetFile, bool) {
	rows, err := fetcher.ReadXLSX(path, fetcher.XLSXOptions{})
	if err != nil || len(rows) == 0 {
		return nil, false
	}
	return buildDatasetFile(path, rows), true
}

func buildDatasetFile(path string, rows [][]string) *datasetFile {
	var b strings.Builder
	for _, row := range rows {
		for _, cell := range row {
			b.WriteString(strings.ToLower(cell))
			b.WriteByte(' ')
		}
	}
	return &datasetFile{
		path:   path,
		name:   filepath.Base(path),
		header: rows[0],
		rows:   rows[1:],
		index:  b.String(),
	}
}

func (p *LocalDataset) Search(ctx context.Context, claimText string, maxResults int, pctx Context) []Result {
	p.ensureLoaded()

	claimTokens := textnorm.Words(textnorm.Normalize(claimText))
	claimNumbers := largeFileNumberRe.FindAllString(claimText, -1)
	sigWords := significantWords(claimTokens)

	type scored struct {
		file  *datasetFile
		row   []string
		score float64
	}
	var candidates []scored

	for _, f := range p.files {
		if !passesPreFilter(f, claimNumbers, sigWords) {
			continue
		}
		minDigits := 0
		minTerms := 0
		if len(f.rows) > largeFileRows {
			minDigits = 3
			minTerms = 3
		}

		for _, row := range f.rows {
			score, numberHits, termHits := scoreRow(row, claimNumbers, sigWords, f.name)
			if minDigits > 0 && numberHits == 0 && termHits < minTerms {
				continue
			}
			if score <= 0 {
				continue
			}
			candidates = append(candidates, scored{file: f, row: row, score: score})
		}
	}

	if len(candidates) == 0 {
		return nil
	}

	// selection sort by descending score, keeping the top maxResults; rows
	// with equal scores do not keep their scan order.
	best := make([]scored, 0, len(candidates))
	best = append(best, candidates...)
	for i := 0; i < len(best); i++ {
		for j := i + 1; j < len(best); j++ {
			if best[j].score > best[i].score {
				best[i], best[j] = best[j], best[i]
			}
		}
	}
	if len(best) > maxResults {
		best = best[:maxResults]
	}

	out := make([]Result, 0, len(best))
	for _, c := range best {
		out = append(out, Result{
			URL:          "file://" + c.file.path,
			Title:        c.file.name,
			SourceName:   "local_dataset",
			EvidenceType: p.EvidenceType(),
			Snippet:      rowSnippet(c.file.header, c.row),
		})
	}
	return out
}

func passesPreFilter(f *datasetFile, numbers []string, sigWords []string) bool {
	for _, n := range numbers {
		if strings.Contains(f.index, n) {
			return true
		}
	}
	hits := 0
	for _, w := range sigWords {
		if strings.Contains(f.index, w) {
			hits++
			if hits >= 2 {
				return true
			}
		}
	}
	return false
}

func scoreRow(row []string, numbers, sigWords []string, filename string) (score float64, numberHits, termHits int) {
	rowText := strings.ToLower(strings.Join(row, " "))
	for _, n := range numbers {
		if strings.Contains(rowText, n) {
			numberHits++
			score += 20
		}
	}
	for _, w := range sigWords {
		if strings.Contains(rowText, w) {
			termHits++
			if strings.Contains(w, " ") {
				score += 15
			} else {
				score += 3
			}
		}
	}
	baseName := strings.ToLower(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	for _, w := range sigWords {
		if strings.Contains(baseName, w) {
			score += 5
		}
	}
	return score, numberHits, termHits
}

func significantWords(tokens []string) []string {
	var out []string
	for _, t := range tokens {
		if len(t) >= 3 && !stopwords[t] {
			out = append(out, t)
		}
	}
	return out
}

func rowSnippet(header, row []string) string {
	var b strings.Builder
	for i, cell := range row {
		if cell == "" {
			continue
		}
		if i < len(header) && header[i] != "" {
			b.WriteString(header[i])
			b.WriteString("=")
		}
		b.WriteString(cell)
		b.WriteString("; ")
	}
	return strings.TrimSpace(b.String())
}
