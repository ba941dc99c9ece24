package spotled

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// receivedContent, son alınan zarfın içindeki kaydı döner.
func receivedContent(t *testing.T, ft *fakeTransport) []byte {
	t.Helper()
	b := ft.lastReceived()
	require.GreaterOrEqual(t, len(b), sendDataHeaderLength)
	return b[sendDataHeaderLength:]
}

func TestSetBrightnessClamps(t *testing.T) {
	ft := newFakeTransport()
	dev := newTestDevice(t, ft)

	require.NoError(t, dev.SetBrightness(150))
	assert.Equal(t, BrightnessRecord{Value: 100}.Encode(), receivedContent(t, ft))

	require.NoError(t, dev.SetBrightness(-3))
	assert.Equal(t, BrightnessRecord{Value: 0}.Encode(), receivedContent(t, ft))
}

func TestSetScreenMode(t *testing.T) {
	ft := newFakeTransport()
	dev := newTestDevice(t, ft)

	require.NoError(t, dev.SetScreenMode(ScreenUpsideDown))
	assert.Equal(t, ScreenModeRecord{Mode: ScreenUpsideDown}.Encode(), receivedContent(t, ft))

	assert.ErrorIs(t, dev.SetScreenMode(ScreenMode(9)), ErrLimitExceeded)
}

func TestClear(t *testing.T) {
	ft := newFakeTransport()
	dev := newTestDevice(t, ft)

	require.NoError(t, dev.Clear())

	want := AnimationRecord{
		Frames: []FrameRecord{NewFrame(48, 12, make([]byte, 72))},
		Effect: EffectNone,
	}
	assert.Equal(t, want.Encode(), receivedContent(t, ft))
}

func TestSetTextLines(t *testing.T) {
	ft := newFakeTransport()
	dev := newTestDevice(t, ft)
	font := blockFont(4, 6, "DrinkPepsi")

	cfg := DefaultTextLinesConfig()
	require.NoError(t, dev.SetTextLines("Drink Pepsi", font, cfg))

	frames, err := LinesToFrames([]string{"Drink Pepsi"}, font, AlignCenter, 48, 2, 6)
	require.NoError(t, err)
	want := AnimationRecord{
		Frames:    encodeFrames(frames, 48, 12),
		FrameTime: 2000,
		Speed:     20,
		Effect:    EffectNone,
	}
	assert.Equal(t, want.Encode(), receivedContent(t, ft))
}

func TestSetTextLinesFrameLimit(t *testing.T) {
	ft := newFakeTransport()
	dev := newTestDevice(t, ft)
	font := blockFont(4, 6, "a")

	cfg := DefaultTextLinesConfig()
	cfg.FrameLimit = 2
	err := dev.SetTextLines(strings.Repeat("a\n", 6), font, cfg)
	require.ErrorIs(t, err, ErrLimitExceeded)
	assert.Empty(t, ft.starts)
}

func TestSetTextLinesLineHeightExceeded(t *testing.T) {
	ft := newFakeTransport()
	dev := newTestDevice(t, ft)

	err := dev.SetTextLines("a", blockFont(4, 8, "a"), DefaultTextLinesConfig())
	require.ErrorIs(t, err, ErrLineHeightExceeded)
	assert.Empty(t, ft.starts)
}

func TestSetText(t *testing.T) {
	ft := newFakeTransport()
	dev := newTestDevice(t, ft)
	font := blockFont(6, 12, "Hello")

	require.NoError(t, dev.SetText("Hello Hello", font, DefaultTextConfig()))

	// 11 karakter x 6 piksel = 66 piksel, 48 piksellik iki kareye bölünür.
	frames, err := LinesToFrames([]string{"Hello Hello"}, font, AlignLeft, 48, 1, 12)
	require.NoError(t, err)
	require.Len(t, frames, 2)
	want := AnimationRecord{
		Frames:    encodeFrames(frames, 48, 12),
		FrameTime: 2000,
		Speed:     0,
		Effect:    EffectScrollLeft,
	}
	assert.Equal(t, want.Encode(), receivedContent(t, ft))
}

func TestSetTextByChars(t *testing.T) {
	ft := newFakeTransport()
	dev := newTestDevice(t, ft)
	font := blockFont(5, 10, "Hi")

	require.NoError(t, dev.SetTextByChars("Hi", font, DefaultTextCharsConfig()))

	require.Len(t, ft.received, 2)
	glyphs, err := CreateFontCharacters("Hi", font, 12)
	require.NoError(t, err)
	assert.Equal(t, FontRecord{Glyphs: glyphs}.Encode(), ft.received[0][sendDataHeaderLength:])
	assert.Equal(t, TextRecord{Text: "Hi", Effect: EffectScrollLeft}.Encode(), ft.received[1][sendDataHeaderLength:])
}

func TestSetTextByCharsLimit(t *testing.T) {
	ft := newFakeTransport()
	dev := newTestDevice(t, ft)

	err := dev.SetTextByChars(strings.Repeat("a", MaxChars+1), blockFont(4, 6, "a"), DefaultTextCharsConfig())
	require.ErrorIs(t, err, ErrLimitExceeded)
	assert.Empty(t, ft.starts)
}

func TestSendAnimationValidation(t *testing.T) {
	ft := newFakeTransport()
	dev := newTestDevice(t, ft)

	assert.ErrorIs(t, dev.SendAnimation(AnimationRecord{}), ErrLimitExceeded)
	assert.ErrorIs(t, dev.SendAnimation(testAnimation(MaxFrames+1)), ErrLimitExceeded)

	bad := AnimationRecord{Frames: []FrameRecord{NewFrame(48, 12, make([]byte, 10))}}
	assert.Error(t, dev.SendAnimation(bad))
	assert.Empty(t, ft.starts)

	require.NoError(t, dev.SendAnimation(testAnimation(1)))
	assert.Len(t, ft.starts, 1)
}

func TestSetNumberBar(t *testing.T) {
	ft := newFakeTransport()
	dev := newTestDevice(t, ft)

	require.NoError(t, dev.SetNumberBar([]int{-1, 5, 40}))
	assert.Equal(t, NumberBarRecord{Values: []uint16{0, 5, 12}}.Encode(), receivedContent(t, ft))

	assert.ErrorIs(t, dev.SetNumberBar(make([]int, NumberBarCount+1)), ErrLimitExceeded)
	assert.ErrorIs(t, dev.SetNumberBar(nil), ErrLimitExceeded)
}

func TestDisplaySizeOption(t *testing.T) {
	ft := newFakeTransport()
	dev := newTestDevice(t, ft, WithDisplaySize(16, 8), WithWriteRate(1000, 6))

	start := time.Now()
	require.NoError(t, dev.Clear())
	assert.Less(t, time.Since(start), time.Second)

	want := AnimationRecord{Frames: []FrameRecord{NewFrame(16, 8, make([]byte, 16))}}
	assert.Equal(t, want.Encode(), receivedContent(t, ft))
}

func TestSetTextLinesFrameDurationLimit(t *testing.T) {
	ft := newFakeTransport()
	dev := newTestDevice(t, ft)

	cfg := DefaultTextLinesConfig()
	cfg.FrameDuration = 70 * time.Second
	err := dev.SetTextLines("a", blockFont(4, 6, "a"), cfg)
	require.ErrorIs(t, err, ErrLimitExceeded)
	assert.Empty(t, ft.starts)

	cfg.FrameDuration = 65535 * time.Millisecond
	require.NoError(t, dev.SetTextLines("a", blockFont(4, 6, "a"), cfg))
	assert.Len(t, ft.starts, 1)
}
