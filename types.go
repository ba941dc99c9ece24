package spotled

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ─── Protokol Sabitleri ─────────────────────────────────────────────────────────

const (
	// DefaultTimeout, tek bir cihaz yanıtı için varsayılan bekleme süresidir.
	DefaultTimeout = 200 * time.Millisecond

	// DefaultAttempts, ilk denemeden sonra yapılacak yeniden deneme sayısıdır.
	DefaultAttempts = 5

	// DefaultConnectPolls, bağlantı kurulurken yapılacak en fazla yoklama sayısıdır.
	DefaultConnectPolls = 50

	// DefaultConnectPollInterval, bağlantı yoklamaları arasındaki süredir.
	// 50 x 100ms ≈ 5 saniye.
	DefaultConnectPollInterval = 100 * time.Millisecond

	// DefaultWidth ve DefaultHeight, 48x12 SPOTLED ekranın piksel boyutlarıdır.
	DefaultWidth  = 48
	DefaultHeight = 12

	// MaxFrames, bir animasyonda cihazın kabul ettiği en fazla kare sayısıdır.
	MaxFrames = 20

	// MaxChars, karakter modunda gönderilebilecek en fazla karakter sayısıdır.
	MaxChars = 72

	// ChunkSize, veri karakteristiğine tek yazmada gönderilen byte sayısıdır.
	ChunkSize = 20

	// ChunkWindow, ContinueSending yanıtı beklenmeden önce gönderilen
	// parça sayısıdır.
	ChunkWindow = 6

	// sendDataCommandType, SendDataCommand zarfının sabit komut tipidir.
	sendDataCommandType uint16 = 32772

	// sendDataHeaderLength, SendDataCommand başlığının checksum dahil uzunluğudur.
	// Format: [4B 15][2B komut tipi][4B seri no][4B içerik uzunluğu][1B checksum]
	sendDataHeaderLength = 15

	// controlCommandLength, Start/Finish kontrol komutlarının uzunluğudur.
	controlCommandLength = 10

	// notifyConfigHandle, bildirimleri açmak için yazılan GATT handle'ıdır.
	notifyConfigHandle uint16 = 0x0f
)

// enableNotifications, notifyConfigHandle'a yazılan bildirim açma verisidir.
var enableNotifications = []byte{0x00, 0x00, 0x00, 0x01}

// ─── GATT Tanımlayıcıları ───────────────────────────────────────────────────────

var (
	// ServiceUUID, SPOTLED veri servisinin UUID'sidir.
	ServiceUUID = uuid.MustParse("0000ff20-0000-1000-8000-00805f9b34fb")

	// CommandCharacteristicUUID, kontrol komutlarının yazıldığı ve yanıtların
	// bildirim olarak geldiği karakteristiktir.
	CommandCharacteristicUUID = uuid.MustParse("0000ff21-0000-1000-8000-00805f9b34fb")

	// DataCharacteristicUUID, veri parçalarının yazıldığı karakteristiktir.
	DataCharacteristicUUID = uuid.MustParse("0000ff22-0000-1000-8000-00805f9b34fb")
)

// ─── Kayıt Tipleri ──────────────────────────────────────────────────────────────

// RecordType, her kaydın 5. ve 6. byte'larında taşınan tip kodudur.
type RecordType uint16

const (
	RecordColor         RecordType = 2
	RecordCharacter     RecordType = 3
	RecordText          RecordType = 4
	RecordFont          RecordType = 5
	RecordTime          RecordType = 7
	RecordEffect        RecordType = 8
	RecordSpeed         RecordType = 9
	RecordNumberBar     RecordType = 10
	RecordAnimation     RecordType = 11
	RecordFontCharacter RecordType = 13
	RecordBrightness    RecordType = 14
	RecordScreenMode    RecordType = 15
	RecordFrame         RecordType = 96
)

// String, RecordType'ın okunabilir adını döner.
func (t RecordType) String() string {
	switch t {
	case RecordColor:
		return "Color"
	case RecordCharacter:
		return "Character"
	case RecordText:
		return "Text"
	case RecordFont:
		return "Font"
	case RecordTime:
		return "Time"
	case RecordEffect:
		return "Effect"
	case RecordSpeed:
		return "Speed"
	case RecordNumberBar:
		return "NumberBar"
	case RecordAnimation:
		return "Animation"
	case RecordFontCharacter:
		return "FontCharacter"
	case RecordBrightness:
		return "Brightness"
	case RecordScreenMode:
		return "ScreenMode"
	case RecordFrame:
		return "Frame"
	default:
		return fmt.Sprintf("RecordType(%d)", uint16(t))
	}
}

// controlKind, kontrol komutlarının ikinci byte'ıdır.
type controlKind uint8

const (
	controlStart  controlKind = 1
	controlFinish controlKind = 3
)

// ─── Efektler ───────────────────────────────────────────────────────────────────

// Effect, animasyon ve metinlerin geçiş efektini belirtir.
type Effect uint8

const (
	EffectNone        Effect = 0 // Efekt yok, kareler Time süresince gösterilir
	EffectScrollUp    Effect = 1 // Yukarı kaydırma
	EffectScrollDown  Effect = 2 // Aşağı kaydırma
	EffectScrollLeft  Effect = 3 // Sola kaydırma
	EffectScrollRight Effect = 4 // Sağa kaydırma
	EffectStack       Effect = 5 // Yığma
	EffectExpand      Effect = 6 // Genişleme
	EffectLaser       Effect = 7 // Lazer
)

// String, Effect'in okunabilir adını döner.
func (e Effect) String() string {
	names := map[Effect]string{
		EffectNone:        "None",
		EffectScrollUp:    "ScrollUp",
		EffectScrollDown:  "ScrollDown",
		EffectScrollLeft:  "ScrollLeft",
		EffectScrollRight: "ScrollRight",
		EffectStack:       "Stack",
		EffectExpand:      "Expand",
		EffectLaser:       "Laser",
	}
	if name, ok := names[e]; ok {
		return name
	}
	return fmt.Sprintf("Effect(%d)", uint8(e))
}

// ScreenMode, ekranın çevrilme/aynalama modudur.
type ScreenMode uint8

const (
	ScreenNormal           ScreenMode = 0
	ScreenUpsideDown       ScreenMode = 1
	ScreenMirror           ScreenMode = 2
	ScreenMirrorUpsideDown ScreenMode = 3
)

// Align, satırın kare genişliğine göre yatay hizalamasıdır.
type Align int

const (
	AlignLeft   Align = iota // Sola hizalı, boşluk sağa eklenir
	AlignCenter              // Ortalı, fazla boşluk sağa eklenir
	AlignRight               // Sağa hizalı, boşluk sola eklenir
)

// TransferProgress, veri aktarımı ilerleme bilgisini taşır.
type TransferProgress struct {
	TransferID string  // SendData çağrısına özel kimlik
	Attempt    int     // Deneme sırası (1'den başlar)
	TotalBytes int     // Zarf dahil yük boyutu
	SentBytes  int     // Cihazın onayladığı konum
	Percent    float64 // İlerleme yüzdesi (0-100)
}

// ─── Seçenek Yapıları ───────────────────────────────────────────────────────────

// DeviceOption, Device yapılandırma seçeneklerini tanımlar.
// Functional Options pattern kullanılır.
type DeviceOption func(*deviceOptions)

type deviceOptions struct {
	timeout             time.Duration
	attempts            int
	connectPolls        int
	connectPollInterval time.Duration
	width               int
	height              int
	writeLimit          rate.Limit
	writeBurst          int
	logger              *zap.Logger
	metrics             *Metrics
	onProgress          func(TransferProgress)
}

func defaultDeviceOptions() deviceOptions {
	return deviceOptions{
		timeout:             DefaultTimeout,
		attempts:            DefaultAttempts,
		connectPolls:        DefaultConnectPolls,
		connectPollInterval: DefaultConnectPollInterval,
		width:               DefaultWidth,
		height:              DefaultHeight,
		writeLimit:          rate.Inf,
		writeBurst:          ChunkWindow,
		logger:              zap.NewNop(),
	}
}

// WithTimeout, her cihaz yanıtı için bekleme süresini ayarlar.
//
//	dev := spotled.NewDevice(transport,
//	    spotled.WithTimeout(500*time.Millisecond),
//	)
func WithTimeout(d time.Duration) DeviceOption {
	return func(o *deviceOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithAttempts, ilk denemeden sonra yapılacak yeniden deneme sayısını ayarlar.
// 0 verilirse yalnızca tek deneme yapılır.
func WithAttempts(n int) DeviceOption {
	return func(o *deviceOptions) {
		if n >= 0 {
			o.attempts = n
		}
	}
}

// WithConnectPolling, bağlantı beklenirken yapılacak yoklama sayısını ve
// aralığını ayarlar.
func WithConnectPolling(polls int, interval time.Duration) DeviceOption {
	return func(o *deviceOptions) {
		if polls > 0 {
			o.connectPolls = polls
		}
		if interval > 0 {
			o.connectPollInterval = interval
		}
	}
}

// WithDisplaySize, Clear ve metin varsayılanlarında kullanılan ekran
// boyutunu ayarlar.
func WithDisplaySize(width, height int) DeviceOption {
	return func(o *deviceOptions) {
		if width > 0 && height > 0 {
			o.width = width
			o.height = height
		}
	}
}

// WithWriteRate, veri parçalarının saniyede en fazla kaç kez yazılacağını
// sınırlar. Yanıtsız yazmaları kaçıran radyolar için kullanılır.
// perSecond <= 0 sınırı kaldırır.
func WithWriteRate(perSecond float64, burst int) DeviceOption {
	return func(o *deviceOptions) {
		if perSecond <= 0 {
			o.writeLimit = rate.Inf
			return
		}
		o.writeLimit = rate.Limit(perSecond)
		if burst > 0 {
			o.writeBurst = burst
		}
	}
}

// WithLogger, yapılandırılmış zap logger ayarlar.
// Varsayılan olarak loglama devre dışıdır.
func WithLogger(l *zap.Logger) DeviceOption {
	return func(o *deviceOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics, aktarım metriklerinin kaydedileceği Metrics nesnesini ayarlar.
func WithMetrics(m *Metrics) DeviceOption {
	return func(o *deviceOptions) {
		o.metrics = m
	}
}

// WithProgressCallback, her onaylanan pencereden sonra çağrılan ilerleme
// callback'ini ayarlar. Callback ayrı bir goroutine'de, sırayla çağrılır;
// SendData tüm olaylar teslim edilmeden dönmez. Callback içinden Device
// metotları çağrılabilir, aktarım kilidi bırakılana kadar beklerler.
func WithProgressCallback(fn func(TransferProgress)) DeviceOption {
	return func(o *deviceOptions) {
		o.onProgress = fn
	}
}
