package spotled

import (
	"encoding/binary"
	"fmt"
)

// ─── Bayt Yazıcı ────────────────────────────────────────────────────────────────
//
// Bu dosya, SPOTLED binary protokolü için düşük seviyeli kodlama araçlarını
// içerir. Tüm tamsayılar big-endian byte sıralamasıyla yazılır ve okunur.
//
// Kayıt Genel Formatı:
//   [4 byte] Toplam kayıt uzunluğu (BE, kendisi ve checksum dahil)
//   [2 byte] Kayıt tipi (BE)
//   [N byte] Tipe özel alanlar
//   [1 byte] Checksum

// ByteWriter, kayıtları sıralı olarak oluşturmak için kullanılan yazıcıdır.
// Sıfır değeri kullanıma hazırdır; checksum başlangıcı 0. byte'tır.
type ByteWriter struct {
	buf           []byte
	checksumStart int
}

// WriteUint8, tek bir byte yazar.
func (w *ByteWriter) WriteUint8(v uint8) {
	w.buf = append(w.buf, v)
}

// WriteUint16, 2 byte'lık big-endian tamsayı yazar.
func (w *ByteWriter) WriteUint16(v uint16) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
}

// WriteUint32, 4 byte'lık big-endian tamsayı yazar.
func (w *ByteWriter) WriteUint32(v uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

// WriteBytes, ham byte dizisini olduğu gibi ekler.
func (w *ByteWriter) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// StartChecksum, checksum hesaplamasının başlayacağı konumu işaretler.
func (w *ByteWriter) StartChecksum() {
	w.checksumStart = len(w.buf)
}

// WriteChecksum, işaretlenen konumdan itibaren yazılan byte'ların
// checksum'ını hesaplayıp ekler.
func (w *ByteWriter) WriteChecksum() {
	w.buf = append(w.buf, Checksum(w.buf[w.checksumStart:]))
}

// Len, şu ana kadar yazılan byte sayısını döner.
func (w *ByteWriter) Len() int {
	return len(w.buf)
}

// Bytes, yazılan verinin kopyasını döner.
func (w *ByteWriter) Bytes() []byte {
	out := make([]byte, len(w.buf))
	copy(out, w.buf)
	return out
}

// Checksum, SPOTLED checksum algoritmasını uygular.
//
// Byte'lar sınırsız bir toplamda biriktirilir. Toplam 255 veya altındaysa
// checksum toplamın kendisidir; 255'i aşarsa toplamın ikiye tümleyen
// negatifinin düşük byte'ıdır. Cihaz bu asimetrik davranışı bekler, tek tip
// bir mod 256 toplamına çevrilmemelidir.
func Checksum(data []byte) byte {
	sum := 0
	for _, b := range data {
		sum += int(b)
	}
	if sum > 255 {
		sum = -sum
	}
	return byte(sum)
}

// ─── Bayt Okuyucu ───────────────────────────────────────────────────────────────

// ByteReader, binary veriyi sıralı olarak okur.
//
// Verinin sonunu aşan ilk okuma hatayı kaydeder; sonraki tüm okumalar sıfır
// döner. Hata Err ile alınır.
type ByteReader struct {
	data []byte
	pos  int
	err  error
}

// NewByteReader, verilen veri üzerinde yeni bir okuyucu oluşturur.
func NewByteReader(data []byte) *ByteReader {
	return &ByteReader{data: data}
}

func (r *ByteReader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.pos+n > len(r.data) {
		r.err = fmt.Errorf("%w: konum %d, istenen %d, kalan %d", ErrShortRead, r.pos, n, len(r.data)-r.pos)
		return nil
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

// ReadUint8, tek bir byte okur.
func (r *ByteReader) ReadUint8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// ReadUint16, 2 byte'lık big-endian tamsayı okur.
func (r *ByteReader) ReadUint16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

// ReadUint32, 4 byte'lık big-endian tamsayı okur.
func (r *ByteReader) ReadUint32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

// ReadBytes, n byte'lık bir dilimin kopyasını okur.
func (r *ByteReader) ReadBytes(n int) []byte {
	b := r.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// Remaining, okunmamış byte sayısını döner.
func (r *ByteReader) Remaining() int {
	return len(r.data) - r.pos
}

// Err, ilk okuma hatasını döner.
func (r *ByteReader) Err() error {
	return r.err
}
