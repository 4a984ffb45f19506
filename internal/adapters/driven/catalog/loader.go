package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/dart-cli/internal/core/domain"
	"github.com/custodia-labs/dart-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dart-cli/internal/logger"
)

// Data file names inside the data directory.
const (
	MappingFile    = "QLVIM_mapping.json"
	TextFile       = "QLVIM_text.json"
	LightCodesFile = "modcodes-light.json"
	HeavyCodesFile = "modcodes-heavy.json"
)

// DataFiles lists every file the loader reads.
var DataFiles = []string{MappingFile, TextFile, LightCodesFile, HeavyCodesFile}

// Ensure Loader implements the interface.
var _ driven.CatalogLoader = (*Loader)(nil)

// Loader reads a catalog from a data directory.
type Loader struct {
	dir string
}

// NewLoader creates a loader for the given data directory.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Dir returns the data directory.
func (l *Loader) Dir() string {
	return l.dir
}

// DefaultDataDir returns ~/.dart/data.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".dart", "data"), nil
}

// Load reads all data files and builds a fresh catalog.
// A missing or malformed mapping fails the load; everything else degrades.
func (l *Loader) Load(ctx context.Context) (*domain.Catalog, error) {
	logger.Section("Catalog Load")
	logger.Debug("Data dir: %s", l.dir)

	entries, err := l.loadMapping()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pages, err := l.loadPages()
	if err != nil {
		logger.Warn("Manual text not loaded: %v", err)
		pages = nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	light := l.loadCodes(LightCodesFile)
	heavy := l.loadCodes(HeavyCodesFile)

	catalog := &domain.Catalog{
		Entries: entries,
		Pages:   pages,
		Codes:   domain.ModCodeTables{Light: light, Heavy: heavy},
	}
	logger.Info("Catalog loaded: %d rows, %d pages, %d light codes, %d heavy codes",
		len(entries), len(pages), len(light), len(heavy))
	return catalog, nil
}

func (l *Loader) loadMapping() ([]domain.StructuredEntry, error) {
	data, err := os.ReadFile(filepath.Join(l.dir, MappingFile))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", MappingFile, err)
	}
	rows, err := decodeRecords(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MappingFile, err)
	}

	entries := make([]domain.StructuredEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.NewStructuredEntry(
			row.text("phrase"),
			row.text("section"),
			row.text("clause"),
			row.text("category"),
			row.page(),
		))
	}
	return entries, nil
}

func (l *Loader) loadPages() ([]domain.ManualPage, error) {
	data, err := os.ReadFile(filepath.Join(l.dir, TextFile))
	if err != nil {
		return nil, err
	}
	rows, err := decodeRecords(data)
	if err != nil {
		return nil, err
	}

	pages := make([]domain.ManualPage, 0, len(rows))
	for _, row := range rows {
		pages = append(pages, domain.ManualPage{
			Page:    row.page(),
			Text:    row.raw("text"),
			Title:   row.text("title"),
			Heading: row.text("heading"),
			Section: row.text("section"),
		})
	}
	domain.SortPages(pages)
	return pages, nil
}

type codeFile struct {
	Codes []struct {
		Code  any `json:"code"`
		Title any `json:"title"`
	} `json:"codes"`
}

func (l *Loader) loadCodes(name string) map[string]string {
	codes := make(map[string]string)
	data, err := os.ReadFile(filepath.Join(l.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("%s not found, no codes loaded", name)
		} else {
			logger.Warn("Failed to read %s: %v", name, err)
		}
		return codes
	}

	var file codeFile
	if err := json.Unmarshal(data, &file); err != nil {
		logger.Warn("Failed to parse %s: %v", name, err)
		return codes
	}
	for _, c := range file.Codes {
		code := domain.NormaliseCode(NormaliseText(stringify(c.Code)))
		if code == "" {
			continue
		}
		codes[code] = strings.TrimSpace(NormaliseText(stringify(c.Title)))
	}
	return codes
}

// record is one JSON object with keys matched case-insensitively.
type record map[string]any

func decodeRecords(data []byte) ([]record, error) {
	var rows []any
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: not a JSON array: %v", domain.ErrCatalogMalformed, err)
	}
	out := make([]record, 0, len(rows))
	for _, r := range rows {
		obj, ok := r.(map[string]any)
		if !ok {
			obj = map[string]any{}
		}
		out = append(out, record(obj))
	}
	return out, nil
}

// lookup prefers the lowercase key, then the capitalised one.
func (r record) lookup(key string) (any, bool) {
	if v, ok := r[key]; ok && v != nil {
		return v, true
	}
	title := strings.ToUpper(key[:1]) + key[1:]
	if v, ok := r[title]; ok && v != nil {
		return v, true
	}
	return nil, false
}

// raw returns the normalised field without trimming.
func (r record) raw(key string) string {
	v, _ := r.lookup(key)
	return NormaliseText(stringify(v))
}

// text returns the normalised, trimmed field.
func (r record) text(key string) string {
	return strings.TrimSpace(r.raw(key))
}

// page parses the page field. Leading digits win, anything else is page 1.
func (r record) page() int {
	v, ok := r.lookup("page")
	if !ok {
		return 1
	}
	var n int
	switch p := v.(type) {
	case float64:
		n = int(p)
	case string:
		n = leadingInt(strings.TrimSpace(p))
	}
	if n <= 0 {
		return 1
	}
	return n
}

func leadingInt(s string) int {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		b, err := json.Marshal(s)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// NormaliseText applies NFKC and drops control characters other than
// newline and tab.
func NormaliseText(text string) string {
	text = norm.NFKC.String(text)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
}
