package spotled

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockFont, her karakteri width x height boyutunda, sol sütunu yanan bir glif
// olarak tanımlar. Boşluk tamamen sönüktür.
func blockFont(width, height int, runes string) *Font {
	glyphs := map[rune][]string{}
	for _, r := range runes {
		rows := make([]string, height)
		for i := range rows {
			rows[i] = "1" + strings.Repeat(".", width-1)
		}
		glyphs[r] = rows
	}
	blank := make([]string, height)
	for i := range blank {
		blank[i] = strings.Repeat(".", width)
	}
	glyphs[' '] = blank
	return NewFont("block", glyphs)
}

func smallFont() *Font {
	return NewFont("small", map[rune][]string{
		'a': {"11", "1.", "11"},
		'A': {".1.", "1.1", "111", "1.1"},
		't': {"1", "1", "1", "1", "1"},
		' ': {"..", "..", ".."},
	})
}

func TestPadGlyph(t *testing.T) {
	t.Run("çift fark eşit bölünür", func(t *testing.T) {
		assert.Equal(t, []string{".", "1", "."}, padGlyph([]string{"1"}, 3, 1))
	})
	t.Run("tek fazla satır alta", func(t *testing.T) {
		assert.Equal(t, []string{".", "1", ".", "."}, padGlyph([]string{"1"}, 4, 1))
	})
	t.Run("satırlar genişliğe tamamlanır", func(t *testing.T) {
		assert.Equal(t, []string{"1..", "11."}, padGlyph([]string{"1", "11"}, 2, 3))
	})
	t.Run("kaynak değişmez", func(t *testing.T) {
		src := []string{"1"}
		_ = padGlyph(src, 5, 4)
		assert.Equal(t, []string{"1"}, src)
	})
}

func TestCreateFontCharacters(t *testing.T) {
	glyphs, err := CreateFontCharacters("A", smallFont(), 6)
	require.NoError(t, err)
	require.Len(t, glyphs, 1)

	g := glyphs[0]
	assert.Equal(t, 'A', g.Char)
	assert.Equal(t, uint16(6), g.Height)
	assert.Equal(t, uint16(6), g.Width)
	assert.Equal(t, []byte{0x00, 0x40, 0xA0, 0xE0, 0xA0, 0x00}, g.Bitmap)
}

func TestCreateFontCharactersKeepsWideGlyphs(t *testing.T) {
	font := NewFont("wide", map[rune][]string{'W': {"1.......1", "1.......1"}})
	glyphs, err := CreateFontCharacters("W", font, 2)
	require.NoError(t, err)
	assert.Equal(t, uint16(9), glyphs[0].Width)
	assert.Equal(t, uint16(2), glyphs[0].Height)
	assert.Len(t, glyphs[0].Bitmap, 4)
}

func TestCreateFontCharactersUsesFallback(t *testing.T) {
	font := NewFont("t", map[rune][]string{'\ufffd': {"111"}})
	glyphs, err := CreateFontCharacters("xy", font, 3)
	require.NoError(t, err)
	require.Len(t, glyphs, 2)
	assert.Equal(t, 'x', glyphs[0].Char)
	assert.Equal(t, 'y', glyphs[1].Char)
}

func TestCreateFontCharactersErrors(t *testing.T) {
	_, err := CreateFontCharacters("x", NewFont("t", map[rune][]string{'A': {"1"}}), 12)
	assert.ErrorIs(t, err, ErrGlyphNotFound)

	_, err = CreateFontCharacters("😀", smallFont(), 12)
	assert.ErrorIs(t, err, ErrLimitExceeded)
}

func TestReflowSingleLine(t *testing.T) {
	font := blockFont(4, 6, "DrinkPepsi")
	lines, err := Reflow("Drink Pepsi", font, 48)
	require.NoError(t, err)
	assert.Equal(t, []string{"Drink Pepsi"}, lines)
}

func TestReflowWraps(t *testing.T) {
	font := blockFont(4, 6, "abcdef")
	lines, err := Reflow("ab cd ef", font, 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"ab cd", "ef"}, lines)
}

func TestReflowHardSplitsLongWord(t *testing.T) {
	font := blockFont(4, 6, "abcdefgh")
	lines, err := Reflow("abcdefgh", font, 12)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc", "def", "gh"}, lines)
}

func TestReflowKeepsExplicitBreaks(t *testing.T) {
	font := blockFont(4, 6, "abcd")
	lines, err := Reflow("ab\r\ncd\n", font, 48)
	require.NoError(t, err)
	assert.Equal(t, []string{"ab", "cd", ""}, lines)
}

func TestReflowIdempotent(t *testing.T) {
	font := blockFont(4, 6, "abcdefghij")
	first, err := Reflow("abc de fghij ab cd e", font, 24)
	require.NoError(t, err)
	for _, l := range first {
		w, err := textWidth(l, font)
		require.NoError(t, err)
		require.LessOrEqual(t, w, 24)
	}

	second, err := Reflow(strings.Join(first, "\n"), font, 24)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestReflowGlyphNotFound(t *testing.T) {
	_, err := Reflow("x", NewFont("t", map[rune][]string{'a': {"1"}}), 48)
	assert.ErrorIs(t, err, ErrGlyphNotFound)
}

func TestPadRowToWidth(t *testing.T) {
	assert.Equal(t, "11......", padRowToWidth("11", 8, AlignLeft))
	assert.Equal(t, "......11", padRowToWidth("11", 8, AlignRight))
	assert.Equal(t, "...11...", padRowToWidth("11", 8, AlignCenter))
	assert.Equal(t, "..11...", padRowToWidth("11", 7, AlignCenter))
	assert.Equal(t, "1111", padRowToWidth("1111", 3, AlignCenter))
}

func TestLinesToFramesPacking(t *testing.T) {
	frames, err := LinesToFrames([]string{"a", "a", "a"}, smallFont(), AlignLeft, 8, 2, 3)
	require.NoError(t, err)
	require.Len(t, frames, 2)

	assert.Equal(t, []string{
		"11......", "1.......", "11......",
		"11......", "1.......", "11......",
	}, frames[0])
	assert.Equal(t, []string{
		"11......", "1.......", "11......",
		"........", "........", "........",
	}, frames[1])
}

func TestLinesToFramesCount(t *testing.T) {
	font := smallFont()
	for n := 1; n <= 7; n++ {
		for k := 1; k <= 3; k++ {
			lines := make([]string, n)
			for i := range lines {
				lines[i] = "a"
			}
			frames, err := LinesToFrames(lines, font, AlignCenter, 8, k, 3)
			require.NoError(t, err)
			assert.Len(t, frames, (n+k-1)/k, "n=%d k=%d", n, k)
			for _, f := range frames {
				assert.Len(t, f, k*3)
			}
		}
	}
}

func TestLinesToFramesPadsLineHeight(t *testing.T) {
	frames, err := LinesToFrames([]string{"a"}, smallFont(), AlignLeft, 4, 1, 4)
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, []string{"11..", "1...", "11..", "...."}, frames[0])
}

func TestLinesToFramesSplitsOverflow(t *testing.T) {
	frames, err := LinesToFrames([]string{"aaaaa"}, smallFont(), AlignLeft, 4, 1, 3)
	require.NoError(t, err)
	require.Len(t, frames, 3)
	assert.Equal(t, []string{"1111", "1.1.", "1111"}, frames[0])
	assert.Equal(t, []string{"1111", "1.1.", "1111"}, frames[1])
	assert.Equal(t, []string{"11..", "1...", "11.."}, frames[2])
}

func TestLinesToFramesErrors(t *testing.T) {
	_, err := LinesToFrames([]string{"t"}, smallFont(), AlignLeft, 8, 1, 3)
	assert.ErrorIs(t, err, ErrLineHeightExceeded)

	_, err = LinesToFrames([]string{"a"}, smallFont(), AlignLeft, 8, 0, 3)
	assert.Error(t, err)
}

func TestLinesToFramesEmptyLine(t *testing.T) {
	frames, err := LinesToFrames([]string{""}, smallFont(), AlignCenter, 4, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"....", "...."}}, frames)
}
