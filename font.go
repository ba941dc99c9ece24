package spotled

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// ─── Font Deposu ────────────────────────────────────────────────────────────────
//
// Fontlar iki düz metin formatından okunur. Biçim dosya uzantısından seçilir:
//
//	.yaff  "0x41:" veya "u+0041:" başlığı, ardından "." / "@" satırları
//	.draw  "41:" başlığı (ilk satır aynı satırda olabilir), ardından "-" / "#" satırları
//
// Her glif, eşit uzunlukta "." (sönük) ve "1" (yanan) satırlarından oluşur.

// Font, karakterden glif satırlarına değişmez bir eşlemedir.
type Font struct {
	name   string
	glyphs map[rune][]string
}

// NewFont, glif tablosunun kopyasından bir Font oluşturur.
//
//	font := spotled.NewFont("mini", map[rune][]string{
//	    'A': {".1.", "1.1", "111", "1.1"},
//	})
func NewFont(name string, glyphs map[rune][]string) *Font {
	f := &Font{name: name, glyphs: make(map[rune][]string, len(glyphs))}
	for r, rows := range glyphs {
		f.glyphs[r] = slices.Clone(rows)
	}
	return f
}

// Name, fontun adını döner (dosyadan okunduysa dosya adı).
func (f *Font) Name() string { return f.name }

// Len, fonttaki glif sayısını döner.
func (f *Font) Len() int { return len(f.glyphs) }

// Runes, fonttaki karakterleri sıralı döner.
func (f *Font) Runes() []rune {
	runes := make([]rune, 0, len(f.glyphs))
	for r := range f.glyphs {
		runes = append(runes, r)
	}
	slices.Sort(runes)
	return runes
}

// Glyph, r karakterinin satırlarının kopyasını döner. Yedek zincir uygulanmaz.
func (f *Font) Glyph(r rune) ([]string, bool) {
	rows, ok := f.glyphs[r]
	if !ok {
		return nil, false
	}
	return slices.Clone(rows), true
}

// Lookup, r için glifi yedek zinciriyle bulur:
// tam eşleşme, U+FFFD, NUL, boşluk. Hiçbiri yoksa ErrGlyphNotFound döner.
func (f *Font) Lookup(r rune) ([]string, error) {
	rows, err := f.lookup(r)
	if err != nil {
		return nil, err
	}
	return slices.Clone(rows), nil
}

// lookup, Lookup'ın kopyalamayan halidir. Dönen dilim değiştirilmemelidir.
func (f *Font) lookup(r rune) ([]string, error) {
	for _, c := range [...]rune{r, '\ufffd', 0, ' '} {
		if rows, ok := f.glyphs[c]; ok {
			return rows, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (U+%04X) %s fontunda yok", ErrGlyphNotFound, r, r, f.name)
}

// ─── Font Okuma ─────────────────────────────────────────────────────────────────

// LoadFontFile, font dosyasını uzantısına göre okur.
//
//	font, err := spotled.LoadFontFile("fonts/4x6.yaff")
func LoadFontFile(path string) (*Font, error) {
	// Uzantı, dosya açılmadan önce doğrulanır.
	if _, err := fontParser(path); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("font dosyası açılamadı: %w", err)
	}
	defer file.Close()

	return ParseFont(filepath.Base(path), file)
}

// ParseFont, r'den okunan fontu name'in uzantısına göre çözümler.
func ParseFont(name string, r io.Reader) (*Font, error) {
	parse, err := fontParser(name)
	if err != nil {
		return nil, err
	}
	glyphs, err := parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s okunamadı: %w", name, err)
	}
	return &Font{name: name, glyphs: glyphs}, nil
}

func fontParser(name string) (func(io.Reader) (map[rune][]string, error), error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaff":
		return parseYAFF, nil
	case ".draw":
		return parseDraw, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFontFormat, name)
	}
}

// ParseYAFF, .yaff formatındaki fontu okur.
func ParseYAFF(name string, r io.Reader) (*Font, error) {
	glyphs, err := parseYAFF(r)
	if err != nil {
		return nil, err
	}
	return &Font{name: name, glyphs: glyphs}, nil
}

// ParseDraw, .draw formatındaki fontu okur.
func ParseDraw(name string, r io.Reader) (*Font, error) {
	glyphs, err := parseDraw(r)
	if err != nil {
		return nil, err
	}
	return &Font{name: name, glyphs: glyphs}, nil
}

// glyphCollector, başlıklar arasında biriken satırları gliflere atar.
type glyphCollector struct {
	glyphs  map[rune][]string
	current rune
	open    bool
	rows    []string
}

func (c *glyphCollector) start(r rune) {
	c.flush()
	c.current, c.open, c.rows = r, true, nil
}

func (c *glyphCollector) row(s string) {
	if c.open {
		c.rows = append(c.rows, s)
	}
}

func (c *glyphCollector) flush() {
	if c.open {
		c.glyphs[c.current] = c.rows
	}
}

func parseYAFF(r io.Reader) (map[rune][]string, error) {
	c := &glyphCollector{glyphs: make(map[rune][]string)}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, "#"):
			continue
		case strings.HasSuffix(line, ":") && (strings.HasPrefix(line, "0x") || strings.HasPrefix(line, "u+")):
			cp, err := parseCodepoint(line[2 : len(line)-1])
			if err != nil {
				return nil, fmt.Errorf("satır %d: %w", lineNo, err)
			}
			c.start(cp)
		case strings.ContainsAny(line, ".@") && !strings.Contains(line, ":"):
			c.row(normalizeRow(line, '@'))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	c.flush()
	return c.glyphs, nil
}

func parseDraw(r io.Reader) (map[rune][]string, error) {
	c := &glyphCollector{glyphs: make(map[rune][]string)}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		switch {
		case len(line) > 2 && line[2] == ':':
			cp, err := parseCodepoint(line[:2])
			if err != nil {
				return nil, fmt.Errorf("satır %d: %w", lineNo, err)
			}
			c.start(cp)
			if inline := strings.TrimSpace(line[3:]); inline != "" {
				c.row(normalizeRow(inline, '#'))
			}
		case strings.ContainsAny(line, "-#"):
			c.row(normalizeRow(line, '#'))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	c.flush()
	return c.glyphs, nil
}

func parseCodepoint(hex string) (rune, error) {
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("geçersiz kod noktası %q: %w", hex, err)
	}
	return rune(v), nil
}

// normalizeRow, set karakterini PixelOn'a, diğer her şeyi PixelOff'a çevirir.
func normalizeRow(line string, set byte) string {
	b := make([]byte, len(line))
	for i := 0; i < len(line); i++ {
		if line[i] == set {
			b[i] = PixelOn
		} else {
			b[i] = PixelOff
		}
	}
	return string(b)
}
