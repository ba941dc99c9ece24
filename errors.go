package spotled

import (
	"errors"
	"fmt"
)

var (
	// ErrShortRead, verinin sonunu aşan okumada döner.
	ErrShortRead = errors.New("spotled: veri beklenenden kısa")

	// ErrMalformedResponse, yanıt içeriğinin uzunluğu tipinin sabit boyutuyla
	// uyuşmadığında döner. Yalnızca mevcut denemeyi bozar.
	ErrMalformedResponse = errors.New("spotled: bozuk yanıt")

	// ErrUnexpectedResponse, seri numarası veya komut tipi bekleyen istekle
	// eşleşmediğinde döner. Zaman aşımı gibi ele alınır.
	ErrUnexpectedResponse = errors.New("spotled: beklenmeyen yanıt")

	// ErrDeviceRejected, cihaz başlatma isteğine sıfırdan farklı hata kodu
	// döndürdüğünde döner.
	ErrDeviceRejected = errors.New("spotled: cihaz isteği reddetti")

	// ErrTransferTimeout, deneme bütçesi tükendiğinde çağırana döner.
	ErrTransferTimeout = errors.New("spotled: aktarım zaman aşımı")

	// ErrConnectionTimeout, transport bağlantısı yoklama sınırı içinde
	// kurulamadığında döner. Yeniden deneme bütçesinden bağımsızdır.
	ErrConnectionTimeout = errors.New("spotled: bluetooth bağlantısı zaman aşımı")

	// ErrNotConnected, Connect çağrılmadan veri gönderilmeye çalışıldığında döner.
	ErrNotConnected = errors.New("spotled: cihaz bağlı değil, önce Connect() çağırın")

	// ErrGlyphNotFound, karakter yedek zincir dahil fontta bulunamadığında döner.
	ErrGlyphNotFound = errors.New("spotled: glif bulunamadı")

	// ErrLineHeightExceeded, glif yüksekliği satır yüksekliğini aştığında döner.
	ErrLineHeightExceeded = errors.New("spotled: karakter yüksekliği satır yüksekliğini aşıyor")

	// ErrLimitExceeded, metin uzunluğu veya kare sayısı cihaz sınırını
	// aştığında döner.
	ErrLimitExceeded = errors.New("spotled: cihaz sınırı aşıldı")

	// ErrUnknownFontFormat, font dosyası uzantısı tanınmadığında döner.
	ErrUnknownFontFormat = errors.New("spotled: bilinmeyen font formatı")
)

// Stage, aktarımın hangi aşamada başarısız olduğunu belirtir.
type Stage string

const (
	StageConnect Stage = "connect"
	StageStart   Stage = "start"
	StageStream  Stage = "stream"
	StageFinish  Stage = "finish"
)

// TransferError, bir veri aktarımının başarısızlığını aşama ve deneme
// bilgisiyle birlikte taşır.
//
//	var te *spotled.TransferError
//	if errors.As(err, &te) {
//	    fmt.Println(te.Stage, te.Attempt)
//	}
type TransferError struct {
	Stage   Stage // Son başarısız aşama
	Attempt int   // Başarısız olan denemenin sırası (1'den başlar)
	Err     error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("spotled: %s aşaması başarısız (deneme %d): %v", e.Stage, e.Attempt, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}
