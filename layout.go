package spotled

import (
	"fmt"
	"strings"
)

// ─── Metin Yerleşimi ────────────────────────────────────────────────────────────
//
// Metin iki yolla gösterilebilir:
//
//   - Karakter modu: glifler FontRecord ile cihaza yüklenir, metin TextRecord
//     olarak gönderilir. Glifler CreateFontCharacters ile hazırlanır.
//   - Animasyon modu: metin satırlara bölünür (Reflow), piksel satırlarına
//     çizilir ve karelere paketlenir (LinesToFrames).
//
// Glif satırları hiçbir adımda yerinde değiştirilmez; dolgu her zaman yeni
// bir dilim üretir.

// glyphWidth, glifin en uzun satırının uzunluğudur.
func glyphWidth(rows []string) int {
	w := 0
	for _, row := range rows {
		w = max(w, len(row))
	}
	return w
}

// padGlyph, glifi height satıra ve width sütuna tamamlanmış yeni bir dilim
// olarak döner. Eksik satırlar üste ve alta eşit bölünür, tek kalan satır
// alta eklenir.
func padGlyph(rows []string, height, width int) []string {
	blank := strings.Repeat(string(PixelOff), width)
	diff := max(height-len(rows), 0)
	top := diff / 2

	out := make([]string, 0, len(rows)+diff)
	for i := 0; i < top; i++ {
		out = append(out, blank)
	}
	for _, row := range rows {
		if len(row) < width {
			row += blank[:width-len(row)]
		}
		out = append(out, row)
	}
	for i := 0; i < diff-top; i++ {
		out = append(out, blank)
	}
	return out
}

// CreateFontCharacters, text'in her karakteri için karakter modunda
// kullanılacak glif kaydını üretir. Glifler en az minHeight satıra
// tamamlanır, genişlikleri yüksekliklerinden küçük olamaz.
//
//	glyphs, err := spotled.CreateFontCharacters("Merhaba", font, 12)
//	err = dev.SendData(spotled.FontRecord{Glyphs: glyphs})
func CreateFontCharacters(text string, font *Font, minHeight int) ([]FontCharacterRecord, error) {
	var out []FontCharacterRecord
	for _, c := range text {
		if c > 0xFFFF {
			return nil, fmt.Errorf("%w: %q U+FFFF üzerinde", ErrLimitExceeded, c)
		}
		rows, err := font.lookup(c)
		if err != nil {
			return nil, err
		}

		height := max(len(rows), minHeight)
		width := max(glyphWidth(rows), height)
		bitmap := GenBitmap(padGlyph(rows, height, width), width)
		if len(bitmap) > 0xFF {
			return nil, fmt.Errorf("%w: %q glifi %d byte", ErrLimitExceeded, c, len(bitmap))
		}

		out = append(out, FontCharacterRecord{
			Width:  uint16(width),
			Height: uint16(height),
			Char:   c,
			Bitmap: bitmap,
		})
	}
	return out, nil
}

// textWidth, s'nin piksel genişliğidir.
func textWidth(s string, font *Font) (int, error) {
	w := 0
	for _, c := range s {
		rows, err := font.lookup(c)
		if err != nil {
			return 0, err
		}
		w += glyphWidth(rows)
	}
	return w, nil
}

// Reflow, metni width piksel genişliğindeki satırlara sözcük sınırlarından
// böler. Açık satır sonları korunur; tek başına width'i aşan sözcükler
// karakter karakter bölünür.
//
//	lines, err := spotled.Reflow("Drink Pepsi", font, 48)
//	// lines = ["Drink Pepsi"]
func Reflow(text string, font *Font, width int) ([]string, error) {
	var wrapped []string
	for _, line := range splitLines(text) {
		var (
			current   strings.Builder
			remaining = width
		)
		for i, word := range strings.Split(line, " ") {
			orig := word
			if i != 0 {
				word = " " + word
			}

			w, err := textWidth(word, font)
			if err != nil {
				return nil, err
			}

			switch {
			case remaining-w >= 0:
				remaining -= w
				current.WriteString(word)

			case w > width:
				// Sözcük tek başına sığmıyor, karakter karakter böl.
				for _, c := range word {
					cw, err := textWidth(string(c), font)
					if err != nil {
						return nil, err
					}
					if remaining-cw >= 0 {
						remaining -= cw
						current.WriteRune(c)
						continue
					}
					wrapped = append(wrapped, current.String())
					current.Reset()
					current.WriteRune(c)
					remaining = width - cw
				}

			default:
				wrapped = append(wrapped, current.String())
				current.Reset()
				ow, err := textWidth(orig, font)
				if err != nil {
					return nil, err
				}
				current.WriteString(orig)
				remaining = width - ow
			}
		}
		wrapped = append(wrapped, current.String())
	}
	return wrapped, nil
}

// splitLines, metni "\r" karakterlerini atarak satırlara ayırır.
func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r", ""), "\n")
}

// padRowToWidth, satırı hizalamaya göre width uzunluğuna tamamlar.
// Ortalamada fazla kalan sütun sağa eklenir.
func padRowToWidth(row string, width int, align Align) string {
	remaining := width - len(row)
	if remaining <= 0 {
		return row
	}
	pad := func(n int) string { return strings.Repeat(string(PixelOff), n) }
	switch align {
	case AlignLeft:
		return row + pad(remaining)
	case AlignRight:
		return pad(remaining) + row
	default:
		return pad(remaining/2) + row + pad(remaining-remaining/2)
	}
}

// rasterizeLine, bir metin satırını lineHeight piksel satırına çizer.
// width'i aşan kısımlar ayrı satırlar olarak bölünür; son parça hizalanır.
func rasterizeLine(line string, font *Font, align Align, width, lineHeight int) ([][]string, error) {
	rows := make([]strings.Builder, lineHeight)
	for _, c := range line {
		glyph, err := font.lookup(c)
		if err != nil {
			return nil, err
		}
		if len(glyph) > lineHeight {
			return nil, fmt.Errorf("%w: %q %d satır, satır yüksekliği %d",
				ErrLineHeightExceeded, c, len(glyph), lineHeight)
		}
		for i, row := range padGlyph(glyph, lineHeight, glyphWidth(glyph)) {
			rows[i].WriteString(row)
		}
	}

	raster := make([]string, lineHeight)
	for i := range rows {
		raster[i] = rows[i].String()
	}

	var out [][]string
	for lineHeight > 0 && len(raster[0]) > width {
		head := make([]string, lineHeight)
		for i := range raster {
			head[i], raster[i] = raster[i][:width], raster[i][width:]
		}
		out = append(out, head)
	}
	for i := range raster {
		raster[i] = padRowToWidth(raster[i], width, align)
	}
	return append(out, raster), nil
}

// LinesToFrames, metin satırlarını width genişliğinde ve
// linesPerFrame*lineHeight yüksekliğinde karelere çizer. Her kare "." / "1"
// satırlarından oluşur ve GenBitmap ile kodlanabilir. Son kare boş
// satırlarla tamamlanır.
//
//	frames, err := spotled.LinesToFrames(lines, font, spotled.AlignCenter, 48, 2, 6)
func LinesToFrames(lines []string, font *Font, align Align, width, linesPerFrame, lineHeight int) ([][]string, error) {
	if linesPerFrame < 1 || lineHeight < 1 || width < 1 {
		return nil, fmt.Errorf("geçersiz kare boyutu: genişlik %d, kare başına satır %d, satır yüksekliği %d",
			width, linesPerFrame, lineHeight)
	}

	var rasters [][]string
	for _, line := range lines {
		r, err := rasterizeLine(line, font, align, width, lineHeight)
		if err != nil {
			return nil, err
		}
		rasters = append(rasters, r...)
	}

	var frames [][]string
	for start := 0; start < len(rasters); start += linesPerFrame {
		end := min(start+linesPerFrame, len(rasters))
		frame := make([]string, 0, linesPerFrame*lineHeight)
		for _, r := range rasters[start:end] {
			frame = append(frame, r...)
		}
		blank := strings.Repeat(string(PixelOff), width)
		for len(frame) < linesPerFrame*lineHeight {
			frame = append(frame, blank)
		}
		frames = append(frames, frame)
	}
	return frames, nil
}

// encodeFrames, çizilmiş kareleri FrameRecord'a dönüştürür.
func encodeFrames(frames [][]string, width, height int) []FrameRecord {
	out := make([]FrameRecord, 0, len(frames))
	for _, f := range frames {
		out = append(out, NewFrame(width, height, GenBitmap(f, width)))
	}
	return out
}
