package spotled

import (
	"fmt"
)

// ─── Kayıt Oluşturma ────────────────────────────────────────────────────────────
//
// Her kayıt kendi uzunluğunu, tipini ve checksum'ını taşır:
//
//	[4B] uzunluk  = kaydın toplam byte sayısı (kendisi ve checksum dahil)
//	[2B] tip      = RecordType
//	[NB] alanlar  = tipe özel
//	[1B] checksum = Checksum(önceki tüm byte'lar)
//
// Bileşik kayıtlar (Animation, Text, Font) kısa bir başlık kaydıyla başlar;
// başlığın uzunluğu yalnızca kendisini kapsar. Alt kayıtlar başlığın
// ardından tam halleriyle arka arkaya eklenir.

// Record, kendini binary kayda dönüştürebilen her türlü yüktür.
type Record interface {
	// Encode, kaydın tam binary halini döner.
	Encode() []byte
}

// newRecord, uzunluk ve tip alanlarını yazılmış bir ByteWriter döner.
// bodyLen, tip ile checksum arasındaki alanların byte sayısıdır.
func newRecord(t RecordType, bodyLen int) *ByteWriter {
	w := &ByteWriter{}
	w.WriteUint32(uint32(4 + 2 + bodyLen + 1))
	w.WriteUint16(uint16(t))
	return w
}

// BrightnessRecord, ekran parlaklığını 0-100 arasında ayarlar.
type BrightnessRecord struct {
	Value uint8
}

func (r BrightnessRecord) Encode() []byte {
	w := newRecord(RecordBrightness, 1)
	w.WriteUint8(r.Value)
	w.WriteChecksum()
	return w.Bytes()
}

// ScreenModeRecord, ekranın çevrilme/aynalama modunu ayarlar.
type ScreenModeRecord struct {
	Mode ScreenMode
}

func (r ScreenModeRecord) Encode() []byte {
	w := newRecord(RecordScreenMode, 1)
	w.WriteUint8(uint8(r.Mode))
	w.WriteChecksum()
	return w.Bytes()
}

// TimeRecord, efekt yokken her karenin milisaniye cinsinden gösterim süresidir.
type TimeRecord struct {
	Millis uint16
}

func (r TimeRecord) Encode() []byte {
	w := newRecord(RecordTime, 3)
	w.WriteUint8(0)
	w.WriteUint16(r.Millis)
	w.WriteChecksum()
	return w.Bytes()
}

// SpeedRecord, efekt varken oynatma hızıdır.
type SpeedRecord struct {
	Speed uint8
}

func (r SpeedRecord) Encode() []byte {
	w := newRecord(RecordSpeed, 1)
	w.WriteUint8(r.Speed)
	w.WriteChecksum()
	return w.Bytes()
}

// EffectRecord, metin/animasyon geçiş efektidir.
type EffectRecord struct {
	Effect Effect
}

func (r EffectRecord) Encode() []byte {
	w := newRecord(RecordEffect, 1)
	w.WriteUint8(uint8(r.Effect))
	w.WriteChecksum()
	return w.Bytes()
}

// ColorRecord, metin karakterinin RGB rengidir.
type ColorRecord struct {
	R, G, B uint8
}

// White, metinlerin varsayılan rengidir.
var White = ColorRecord{R: 255, G: 255, B: 255}

func (r ColorRecord) Encode() []byte {
	w := newRecord(RecordColor, 3)
	w.WriteUint8(r.R)
	w.WriteUint8(r.G)
	w.WriteUint8(r.B)
	w.WriteChecksum()
	return w.Bytes()
}

// CharacterRecord, tek bir unicode karakterdir. Yalnızca U+FFFF'e kadar
// olan kod noktaları taşınabilir.
type CharacterRecord struct {
	Char rune
}

func (r CharacterRecord) Encode() []byte {
	w := newRecord(RecordCharacter, 2)
	w.WriteUint16(uint16(r.Char))
	w.WriteChecksum()
	return w.Bytes()
}

// FrameRecord, ekranda gösterilecek tek bir sabit görüntüdür.
// Bitmap GenBitmap ile üretilebilir.
type FrameRecord struct {
	Width  uint16
	Height uint16
	Depth  uint8 // Renk derinliği, tek renkli ekranlarda 1
	Bitmap []byte
}

// NewFrame, 1 bit renk derinliğinde bir kare oluşturur.
func NewFrame(width, height int, bitmap []byte) FrameRecord {
	return FrameRecord{
		Width:  uint16(width),
		Height: uint16(height),
		Depth:  1,
		Bitmap: bitmap,
	}
}

func (r FrameRecord) Encode() []byte {
	w := newRecord(RecordFrame, 5+len(r.Bitmap))
	w.WriteUint16(r.Width)
	w.WriteUint16(r.Height)
	w.WriteUint8(r.Depth)
	w.WriteBytes(r.Bitmap)
	w.WriteChecksum()
	return w.Bytes()
}

// FontCharacterRecord (glif), karakter modunda gösterilebilmesi için cihaza
// önceden gönderilmesi gereken tek bir karakter bitmap'idir.
type FontCharacterRecord struct {
	Width  uint16
	Height uint16
	Char   rune
	Bitmap []byte
}

func (r FontCharacterRecord) Encode() []byte {
	w := newRecord(RecordFontCharacter, 8+len(r.Bitmap))
	w.WriteUint8(1)
	w.WriteUint16(r.Width)
	w.WriteUint16(r.Height)
	w.WriteUint16(uint16(r.Char))
	w.WriteUint8(uint8(len(r.Bitmap)))
	w.WriteBytes(r.Bitmap)
	w.WriteChecksum()
	return w.Bytes()
}

// FontRecord, karakter glif listesini taşır.
type FontRecord struct {
	Glyphs []FontCharacterRecord
}

func (r FontRecord) Encode() []byte {
	w := newRecord(RecordFont, 2)
	w.WriteUint16(uint16(len(r.Glyphs)))
	w.WriteChecksum()
	for _, g := range r.Glyphs {
		w.WriteBytes(g.Encode())
	}
	return w.Bytes()
}

// AnimationRecord, en fazla MaxFrames kareden oluşan bir animasyondur.
// FrameTime yalnızca efekt kullanılmadığında geçerlidir.
type AnimationRecord struct {
	Frames    []FrameRecord
	FrameTime uint16 // ms
	Speed     uint8
	Effect    Effect
}

func (r AnimationRecord) Encode() []byte {
	w := newRecord(RecordAnimation, 2)
	w.WriteUint16(uint16(len(r.Frames)))
	w.WriteChecksum()
	for _, f := range r.Frames {
		w.WriteBytes(f.Encode())
	}
	w.WriteBytes(TimeRecord{Millis: r.FrameTime}.Encode())
	w.WriteBytes(SpeedRecord{Speed: r.Speed}.Encode())
	w.WriteBytes(EffectRecord{Effect: r.Effect}.Encode())
	return w.Bytes()
}

// TextRecord, karakter listesini renkleri, hızı ve efektiyle taşır.
// Karakterlerin glifleri daha önce FontRecord ile gönderilmiş olmalıdır.
// Colors boşsa tüm karakterler beyaz gösterilir.
type TextRecord struct {
	Text   string
	Colors []ColorRecord
	Speed  uint8
	Effect Effect
}

func (r TextRecord) Encode() []byte {
	chars := []rune(r.Text)

	w := newRecord(RecordText, 3)
	w.WriteUint16(uint16(len(chars)))
	w.WriteUint8(1)
	w.WriteChecksum()
	for i, c := range chars {
		color := White
		if i < len(r.Colors) {
			color = r.Colors[i]
		}
		w.WriteBytes(color.Encode())
		w.WriteBytes(CharacterRecord{Char: c}.Encode())
	}
	w.WriteBytes(SpeedRecord{Speed: r.Speed}.Encode())
	w.WriteBytes(TimeRecord{Millis: 0}.Encode())
	w.WriteBytes(EffectRecord{Effect: r.Effect}.Encode())
	return w.Bytes()
}

// NumberBarRecord, 0-12 arası değerleri çubuk grafik olarak gösterir.
// Müzik spektrumu göstermek için 16 değer kullanılır.
type NumberBarRecord struct {
	Values []uint16
}

func (r NumberBarRecord) Encode() []byte {
	w := newRecord(RecordNumberBar, 2+2*len(r.Values))
	w.WriteUint16(uint16(len(r.Values)))
	for _, v := range r.Values {
		w.WriteUint16(v)
	}
	w.WriteChecksum()
	return w.Bytes()
}

// ─── Komut Zarfları ─────────────────────────────────────────────────────────────

// SendDataCommand, serileştirilmiş herhangi bir kaydı cihaza veri olarak
// gönderen zarftır. Checksum yalnızca zarf başlığını kapsar.
//
// Paket Formatı (toplam 15 + N byte):
//
//	[4B] başlık uzunluğu = 15
//	[2B] komut tipi      = 32772
//	[4B] veri seri no
//	[4B] içerik uzunluğu = N
//	[1B] checksum
//	[NB] içerik
type SendDataCommand struct {
	Serial  uint32
	Content []byte
}

// CommandType, zarfın Start/Finish komutlarında bildirilen komut tipidir.
func (c SendDataCommand) CommandType() uint16 {
	return sendDataCommandType
}

func (c SendDataCommand) Encode() []byte {
	w := &ByteWriter{}
	w.WriteUint32(sendDataHeaderLength)
	w.WriteUint16(sendDataCommandType)
	w.WriteUint32(c.Serial)
	w.WriteUint32(uint32(len(c.Content)))
	w.WriteChecksum()
	w.WriteBytes(c.Content)
	return w.Bytes()
}

// controlCommand, veri gönderimini başlatan veya bitiren kontrol komutudur.
// Checksum taşımaz.
//
// Paket Formatı (toplam 10 byte):
//
//	[1B] uzunluk = 10
//	[1B] tür     = 1 (başlat) / 3 (bitir)
//	[2B] komut seri no
//	[2B] komut tipi
//	[4B] yük uzunluğu
type controlCommand struct {
	kind        controlKind
	serial      uint16
	commandType uint16
	length      uint32
}

func (c controlCommand) Encode() []byte {
	w := &ByteWriter{}
	w.WriteUint8(controlCommandLength)
	w.WriteUint8(uint8(c.kind))
	w.WriteUint16(c.serial)
	w.WriteUint16(c.commandType)
	w.WriteUint32(c.length)
	return w.Bytes()
}

func startCommand(serial, commandType uint16, length int) controlCommand {
	return controlCommand{kind: controlStart, serial: serial, commandType: commandType, length: uint32(length)}
}

func finishCommand(serial, commandType uint16, length int) controlCommand {
	return controlCommand{kind: controlFinish, serial: serial, commandType: commandType, length: uint32(length)}
}

// ─── Kayıt Başlığı Çözümleme ────────────────────────────────────────────────────

// recordOverhead, uzunluk, tip ve checksum alanlarının toplam boyutudur.
const recordOverhead = 4 + 2 + 1

// RecordHeader, bir kaydın başlık bilgileridir.
type RecordHeader struct {
	Length        uint32     // Kaydın toplam uzunluğu
	Type          RecordType // Kayıt tipi
	ContentLength int        // Tip ile checksum arasındaki alanların uzunluğu
}

// DecodeRecordHeader, data'nın başındaki kaydın başlığını çözümler.
// data en az Length byte içermelidir.
func DecodeRecordHeader(data []byte) (RecordHeader, error) {
	r := NewByteReader(data)
	h := RecordHeader{
		Length: r.ReadUint32(),
		Type:   RecordType(r.ReadUint16()),
	}
	if err := r.Err(); err != nil {
		return RecordHeader{}, err
	}
	if h.Length < recordOverhead {
		return RecordHeader{}, fmt.Errorf("%w: geçersiz kayıt uzunluğu %d", ErrShortRead, h.Length)
	}
	if uint64(h.Length) > uint64(len(data)) {
		return RecordHeader{}, fmt.Errorf("%w: kayıt %d byte, veri %d byte", ErrShortRead, h.Length, len(data))
	}
	h.ContentLength = int(h.Length) - recordOverhead
	return h, nil
}

// SplitRecords, arka arkaya eklenmiş kayıtları tek tek ayırır.
// Bileşik kayıtların başlığı ve alt kayıtları ayrı öğeler olarak döner.
func SplitRecords(data []byte) ([][]byte, error) {
	var out [][]byte
	for len(data) > 0 {
		h, err := DecodeRecordHeader(data)
		if err != nil {
			return nil, err
		}
		out = append(out, data[:h.Length])
		data = data[h.Length:]
	}
	return out, nil
}
