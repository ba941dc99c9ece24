package spotled

// ─── Bitmap Dönüşümü ────────────────────────────────────────────────────────────
//
// Kareler ve glifler satır sıralı, MSB önce paketlenmiş 1 bit/piksel
// bitmap'ler kullanır. Her satır byte sınırına tamamlanır:
//
//	len(bitmap) = ceil(width/8) * height

const (
	// PixelOn, metin bitmap'lerinde yanan pikseli gösterir.
	PixelOn = '1'

	// PixelOff, metin bitmap'lerinde sönük pikseli gösterir.
	PixelOff = '.'
)

// GenBitmap, "." ve "1" karakterlerinden oluşan metin satırlarını ham
// bitmap'e dönüştürür. minRowBits, her satırın en az kaç piksel
// genişliğinde kodlanacağını belirler ve 8'in katına yuvarlanır.
//
//	bitmap := spotled.GenBitmap([]string{
//	    "1111.",
//	    ".1..1",
//	}, 16) // 2 satır x 2 byte
func GenBitmap(rows []string, minRowBits int) []byte {
	if rem := minRowBits % 8; rem != 0 {
		minRowBits += 8 - rem
	}

	var data []byte
	for _, row := range rows {
		bits := len(row)
		if bits < minRowBits {
			bits = minRowBits
		} else if rem := bits % 8; rem != 0 {
			bits += 8 - rem
		}

		for i := 0; i < bits; i += 8 {
			var b byte
			for j := 0; j < 8; j++ {
				if i+j < len(row) && row[i+j] == PixelOn {
					b |= 0x80 >> j
				}
			}
			data = append(data, b)
		}
	}
	return data
}

// BlankBitmap, tamamen sönük bir width x height bitmap döner.
func BlankBitmap(width, height int) []byte {
	return make([]byte, bitmapRowBytes(width)*height)
}

// bitmapRowBytes, bir satırın kaç byte'a paketlendiğini döner.
func bitmapRowBytes(width int) int {
	return (width + 7) / 8
}
