package spotled

import (
	"fmt"
	"math"
	"time"
)

// ─── Ekran Ayarları ─────────────────────────────────────────────────────────────

// SetBrightness, ekran parlaklığını ayarlar.
// value: 0 (en düşük) ile 100 (en yüksek) arası; aralık dışı değerler kırpılır.
//
//	err := dev.SetBrightness(80)
func (d *Device) SetBrightness(value int) error {
	value = min(max(value, 0), 100)
	return d.SendData(BrightnessRecord{Value: uint8(value)})
}

// SetScreenMode, ekranı çevirir veya aynalar.
//
//	err := dev.SetScreenMode(spotled.ScreenUpsideDown)
func (d *Device) SetScreenMode(mode ScreenMode) error {
	if mode > ScreenMirrorUpsideDown {
		return fmt.Errorf("%w: ekran modu %d", ErrLimitExceeded, mode)
	}
	return d.SendData(ScreenModeRecord{Mode: mode})
}

// ─── Metin Komutları ────────────────────────────────────────────────────────────

// TextCharsConfig, SetTextByChars ayarlarıdır.
type TextCharsConfig struct {
	Effect    Effect        // Varsayılan: EffectScrollLeft
	Speed     uint8         // Efekt hızı
	MinHeight int           // Gliflerin en az yüksekliği (varsayılan: 12)
	CharLimit int           // En fazla karakter (varsayılan: MaxChars)
	Colors    []ColorRecord // Karakter renkleri, boşsa beyaz
}

// DefaultTextCharsConfig, karakter modu için varsayılan ayarları döner.
func DefaultTextCharsConfig() TextCharsConfig {
	return TextCharsConfig{
		Effect:    EffectScrollLeft,
		MinHeight: DefaultHeight,
		CharLimit: MaxChars,
	}
}

// SetTextByChars, metni karakter modunda gönderir: önce glifler FontRecord
// olarak yüklenir, ardından metin TextRecord olarak gönderilir. Cihaz metni
// kendisi yerleştirir. Animasyon moduna göre daha yavaş ve sınırlıdır.
//
//	font, _ := spotled.LoadFontFile("fonts/6x12.yaff")
//	err := dev.SetTextByChars("Merhaba", font, spotled.DefaultTextCharsConfig())
func (d *Device) SetTextByChars(text string, font *Font, cfg TextCharsConfig) error {
	if cfg.CharLimit <= 0 {
		cfg.CharLimit = MaxChars
	}
	if n := len([]rune(text)); n > cfg.CharLimit {
		return fmt.Errorf("%w: metin %d karakter, sınır %d", ErrLimitExceeded, n, cfg.CharLimit)
	}

	glyphs, err := CreateFontCharacters(text, font, cfg.MinHeight)
	if err != nil {
		return err
	}

	if err := d.SendData(FontRecord{Glyphs: glyphs}); err != nil {
		return fmt.Errorf("glifler gönderilemedi: %w", err)
	}
	return d.SendData(TextRecord{
		Text:   text,
		Colors: cfg.Colors,
		Speed:  cfg.Speed,
		Effect: cfg.Effect,
	})
}

// TextLinesConfig, SetTextLines ayarlarıdır.
type TextLinesConfig struct {
	Align         Align         // Satır hizalaması (varsayılan: AlignCenter)
	FrameDuration time.Duration // Efekt yokken kare süresi (varsayılan: 2s)
	Width         int           // Kare genişliği (varsayılan: ekran genişliği)
	LinesPerFrame int           // Kare başına satır (varsayılan: 2)
	LineHeight    int           // Satır yüksekliği piksel (varsayılan: 6)
	Effect        Effect        // Varsayılan: EffectNone
	Speed         uint8         // Efekt hızı (varsayılan: 20)
	Reflow        bool          // Sözcük kaydırma (varsayılan: true)
	FrameLimit    int           // En fazla kare (varsayılan: MaxFrames)
}

// DefaultTextLinesConfig, 4x6 font ile iki satırlık gösterim için varsayılan
// ayarları döner.
func DefaultTextLinesConfig() TextLinesConfig {
	return TextLinesConfig{
		Align:         AlignCenter,
		FrameDuration: 2 * time.Second,
		Width:         DefaultWidth,
		LinesPerFrame: 2,
		LineHeight:    6,
		Effect:        EffectNone,
		Speed:         20,
		Reflow:        true,
		FrameLimit:    MaxFrames,
	}
}

// SetTextLines, çok satırlı metni animasyon olarak gönderir. Satırlar
// karelere paketlenir; 48x12 ekrana 6 piksellik iki satır sığar.
//
//	cfg := spotled.DefaultTextLinesConfig()
//	err := dev.SetTextLines("Merhaba\nDünya", font, cfg)
func (d *Device) SetTextLines(text string, font *Font, cfg TextLinesConfig) error {
	anim, err := d.textAnimation(text, font, cfg)
	if err != nil {
		return err
	}
	return d.SendData(anim)
}

// textAnimation, metni cihaz I/O'su yapmadan animasyona dönüştürür.
func (d *Device) textAnimation(text string, font *Font, cfg TextLinesConfig) (AnimationRecord, error) {
	if cfg.Width <= 0 {
		cfg.Width = d.opts.width
	}
	if cfg.FrameLimit <= 0 {
		cfg.FrameLimit = MaxFrames
	}
	frameTime := cfg.FrameDuration.Milliseconds()
	if frameTime < 0 || frameTime > math.MaxUint16 {
		return AnimationRecord{}, fmt.Errorf("%w: kare süresi %s, sınır %dms",
			ErrLimitExceeded, cfg.FrameDuration, math.MaxUint16)
	}

	var (
		lines []string
		err   error
	)
	if cfg.Reflow {
		lines, err = Reflow(text, font, cfg.Width)
		if err != nil {
			return AnimationRecord{}, err
		}
	} else {
		lines = splitLines(text)
	}

	frames, err := LinesToFrames(lines, font, cfg.Align, cfg.Width, cfg.LinesPerFrame, cfg.LineHeight)
	if err != nil {
		return AnimationRecord{}, err
	}
	if len(frames) > cfg.FrameLimit {
		return AnimationRecord{}, fmt.Errorf("%w: %d kare, sınır %d", ErrLimitExceeded, len(frames), cfg.FrameLimit)
	}

	return AnimationRecord{
		Frames:    encodeFrames(frames, cfg.Width, cfg.LinesPerFrame*cfg.LineHeight),
		FrameTime: uint16(frameTime),
		Speed:     cfg.Speed,
		Effect:    cfg.Effect,
	}, nil
}

// TextConfig, SetText ayarlarıdır.
type TextConfig struct {
	Effect    Effect // Varsayılan: EffectScrollLeft
	Speed     uint8
	MinHeight int // Satır yüksekliği (varsayılan: ekran yüksekliği)
}

// DefaultTextConfig, tek satır kayan metin için varsayılan ayarları döner.
func DefaultTextConfig() TextConfig {
	return TextConfig{Effect: EffectScrollLeft, MinHeight: DefaultHeight}
}

// SetText, tek satırlık kayan metni animasyon olarak gönderir.
// Metin kaydırılmaz; ekrandan taşan kısım sonraki karelere bölünür.
//
//	err := dev.SetText("Drink Pepsi", font, spotled.DefaultTextConfig())
func (d *Device) SetText(text string, font *Font, cfg TextConfig) error {
	if cfg.MinHeight <= 0 {
		cfg.MinHeight = d.opts.height
	}

	lines := DefaultTextLinesConfig()
	lines.Align = AlignLeft
	lines.Width = d.opts.width
	lines.LinesPerFrame = 1
	lines.LineHeight = cfg.MinHeight
	lines.Effect = cfg.Effect
	lines.Speed = cfg.Speed
	lines.Reflow = false
	return d.SetTextLines(text, font, lines)
}

// ─── Animasyon Komutları ────────────────────────────────────────────────────────

// Clear, ekranı tek bir boş kare göndererek temizler.
//
//	err := dev.Clear()
func (d *Device) Clear() error {
	w, h := d.opts.width, d.opts.height
	return d.SendData(AnimationRecord{
		Frames: []FrameRecord{NewFrame(w, h, BlankBitmap(w, h))},
		Effect: EffectNone,
	})
}

// SendAnimation, hazır bir animasyonu gönderir. Kare sayısı 1 ile MaxFrames
// arasında olmalıdır.
//
//	frame := spotled.NewFrame(48, 12, spotled.GenBitmap(rows, 48))
//	err := dev.SendAnimation(spotled.AnimationRecord{
//	    Frames:    []spotled.FrameRecord{frame},
//	    FrameTime: 130,
//	    Speed:     9,
//	})
func (d *Device) SendAnimation(anim AnimationRecord) error {
	if n := len(anim.Frames); n == 0 || n > MaxFrames {
		return fmt.Errorf("%w: %d kare, izin verilen 1-%d", ErrLimitExceeded, n, MaxFrames)
	}
	for i, f := range anim.Frames {
		if want := bitmapRowBytes(int(f.Width)) * int(f.Height) * int(max(f.Depth, 1)); len(f.Bitmap) != want {
			return fmt.Errorf("kare %d: bitmap %d byte, beklenen %d", i, len(f.Bitmap), want)
		}
	}
	return d.SendData(anim)
}

// ─── Çubuk Grafik ───────────────────────────────────────────────────────────────

const (
	// NumberBarCount, spektrum gösteriminde kullanılan çubuk sayısıdır.
	NumberBarCount = 16

	// NumberBarMax, bir çubuğun alabileceği en yüksek değerdir.
	NumberBarMax = 12
)

// SetNumberBar, en fazla NumberBarCount değeri 0-NumberBarMax aralığında
// çubuk grafik olarak gösterir. Müzik spektrumu göstermek için tasarlanmıştır.
//
//	err := dev.SetNumberBar([]int{1, 3, 7, 12, 9, 4, 2, 0, 1, 3, 7, 12, 9, 4, 2, 0})
func (d *Device) SetNumberBar(values []int) error {
	if len(values) == 0 || len(values) > NumberBarCount {
		return fmt.Errorf("%w: %d değer, izin verilen 1-%d", ErrLimitExceeded, len(values), NumberBarCount)
	}
	rec := NumberBarRecord{Values: make([]uint16, len(values))}
	for i, v := range values {
		rec.Values[i] = uint16(min(max(v, 0), NumberBarMax))
	}
	return d.SendData(rec)
}
