package spotled

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Device, bir SPOTLED ekranıyla BLE bağlantısını yöneten ana yapıdır.
// Thread-safe olarak tasarlanmıştır: aynı anda yalnızca bir aktarım
// yürütülür, diğer çağrılar sırasını bekler.
//
// Kullanım:
//
//	dev := spotled.NewDevice(transport)
//	if err := dev.Connect(); err != nil {
//	    log.Fatal(err)
//	}
//	defer dev.Close()
//
//	err := dev.SetBrightness(50)
type Device struct {
	// transport, dış BLE GATT istemcisidir.
	transport Transport

	// opts, cihaz yapılandırma seçenekleridir.
	opts deviceOptions

	log     *zap.Logger
	limiter *rate.Limiter

	// mu, aktarımları sıraya koyar. Seri numaraları yalnızca mu altında değişir.
	mu sync.Mutex

	connected     bool
	dataHandle    uint16
	dataSerial    uint32
	commandSerial uint16

	// respMu, bildirim goroutine'i ile paylaşılan alanları korur.
	respMu    sync.Mutex
	cmdHandle uint16
	pending   chan []byte
	state     TransferState
}

// NewDevice, yeni bir Device nesnesi oluşturur.
// Bağlantı henüz kurulmaz; Connect() çağrılmalıdır.
//
//	// Seçeneklerle
//	dev := spotled.NewDevice(transport,
//	    spotled.WithTimeout(300*time.Millisecond),
//	    spotled.WithAttempts(3),
//	    spotled.WithLogger(logger),
//	)
func NewDevice(transport Transport, options ...DeviceOption) *Device {
	opts := defaultDeviceOptions()
	for _, opt := range options {
		opt(&opts)
	}

	return &Device{
		transport: transport,
		opts:      opts,
		log:       opts.logger.Named("spotled"),
		limiter:   rate.NewLimiter(opts.writeLimit, opts.writeBurst),
	}
}

// Connect, cihaza bağlanır, bildirimleri açar ve GATT handle'larını bulur.
//
// Aşamalar:
//  1. Transport bağlı değilse bağlantı istenir ve yoklanır
//  2. Bildirim açma verisi yazılır
//  3. Komut ve veri karakteristiklerinin handle'ları bulunur
//  4. Bildirim callback'i kaydedilir
func (d *Device) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ensureConnection(); err != nil {
		return &TransferError{Stage: StageConnect, Attempt: 1, Err: err}
	}

	if err := d.transport.Write(notifyConfigHandle, enableNotifications); err != nil {
		return fmt.Errorf("bildirimler açılamadı: %w", err)
	}

	cmdHandle, dataHandle, err := discoverHandles(d.transport)
	if err != nil {
		return err
	}

	d.respMu.Lock()
	d.cmdHandle = cmdHandle
	d.respMu.Unlock()
	d.dataHandle = dataHandle
	d.transport.SetNotificationHandler(d.onNotification)
	d.connected = true

	d.log.Info("cihaza bağlanıldı",
		zap.Uint16("cmd_handle", cmdHandle),
		zap.Uint16("data_handle", dataHandle))
	return nil
}

// Close, BLE bağlantısını kapatır. Close sonrası Connect ile yeniden
// bağlanılabilir.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.connected = false
	d.clearPending(nil)
	return d.transport.Disconnect()
}

// IsConnected, Connect başarıyla tamamlanmışsa ve transport bağlıysa true döner.
func (d *Device) IsConnected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connected && d.transport.IsConnected()
}

// State, aktarım durum makinesinin mevcut durumunu döner.
func (d *Device) State() TransferState {
	d.respMu.Lock()
	defer d.respMu.Unlock()
	return d.state
}

// ─── Bağlantı ───────────────────────────────────────────────────────────────────

// ensureConnection, transport bağlı değilse bağlantı ister ve
// connectPolls x connectPollInterval süresince yoklar.
func (d *Device) ensureConnection() error {
	if d.transport.IsConnected() {
		return nil
	}

	d.log.Debug("bluetooth bağlantısı kuruluyor")
	if err := d.transport.Connect(); err != nil {
		// Bağlantı zaten kuruluyorsa Connect hata dönebilir; kararı yoklama verir.
		d.log.Debug("connect isteği hata döndü", zap.Error(err))
	}

	for i := 0; i < d.opts.connectPolls; i++ {
		if d.transport.IsConnected() {
			return nil
		}
		time.Sleep(d.opts.connectPollInterval)
	}
	return fmt.Errorf("%w: %d yoklama x %s", ErrConnectionTimeout, d.opts.connectPolls, d.opts.connectPollInterval)
}

// ─── Yanıt Bekleme ──────────────────────────────────────────────────────────────

// onNotification, transport'un bildirim callback'idir. Bekleyen bir istek
// varsa ona teslim eder ve yuvayı boşaltır; yoksa bildirimi düşürür.
func (d *Device) onNotification(handle uint16, data []byte) {
	d.respMu.Lock()
	defer d.respMu.Unlock()

	if handle != d.cmdHandle {
		return
	}
	if d.pending == nil {
		d.log.Debug("bekleyen istek yokken yanıt geldi", zap.Binary("data", data))
		return
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	d.pending <- buf
	d.pending = nil
}

// expect, bir sonraki yanıt için tek kullanımlık kanal kurar.
// Tetikleyen yazmadan önce çağrılmalıdır.
func (d *Device) expect() <-chan []byte {
	ch := make(chan []byte, 1)
	d.respMu.Lock()
	d.pending = ch
	d.respMu.Unlock()
	return ch
}

// clearPending, yuva hâlâ ch'yi tutuyorsa boşaltır. ch nil ise koşulsuz boşaltır.
func (d *Device) clearPending(ch <-chan []byte) {
	d.respMu.Lock()
	defer d.respMu.Unlock()
	if ch == nil || d.pending == ch {
		d.pending = nil
	}
}

// await, ch üzerinden yanıtı en fazla timeout süresince bekler ve çözümler.
func (d *Device) await(ch <-chan []byte) (Response, error) {
	timer := time.NewTimer(d.opts.timeout)
	defer timer.Stop()

	select {
	case data := <-ch:
		return ParseResponse(data)
	case <-timer.C:
		d.clearPending(ch)
		return nil, fmt.Errorf("%w: %s içinde yanıt gelmedi", ErrTransferTimeout, d.opts.timeout)
	}
}

func (d *Device) setState(s TransferState) {
	d.respMu.Lock()
	d.state = s
	d.respMu.Unlock()
}

// ─── Seri Numaraları ────────────────────────────────────────────────────────────

func (d *Device) nextDataSerial() uint32 {
	d.dataSerial++
	return d.dataSerial
}

func (d *Device) nextCommandSerial() uint16 {
	d.commandSerial++
	return d.commandSerial
}
