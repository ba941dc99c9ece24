package spotled

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ─── Veri Aktarımı ──────────────────────────────────────────────────────────────
//
// Her kayıt SendDataCommand zarfına konup 3 aşamada gönderilir:
//
//  1. Start (kontrol komutu, tür 1): komut seri no, komut tipi ve yük uzunluğu
//     Cihaz SendingDataResponse ile onaylar (hata kodu 0 olmalı)
//  2. Akış: yük, veri karakteristiğine 20 byte'lık parçalar halinde yazılır.
//     Her 6 parçada bir ContinueSendingResponse beklenir ve akış cihazın
//     bildirdiği ContinueFrom konumundan sürer (geri veya ileri olabilir)
//  3. Finish (kontrol komutu, tür 3): aynı alanlarla, cihaz onaylar
//
// Herhangi bir aşama başarısız olursa bağlantı kapatılır ve tüm sıra yeni
// seri numaralarıyla baştan denenir.

// TransferState, aktarım durum makinesinin durumudur.
type TransferState int

const (
	StateIdle TransferState = iota
	StateAwaitingStartAck
	StateStreaming
	StateAwaitingFinishAck
	StateRetrying
)

func (s TransferState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateAwaitingStartAck:
		return "AwaitingStartAck"
	case StateStreaming:
		return "Streaming"
	case StateAwaitingFinishAck:
		return "AwaitingFinishAck"
	case StateRetrying:
		return "Retrying"
	default:
		return fmt.Sprintf("TransferState(%d)", int(s))
	}
}

// SendData, kaydı cihaza gönderir. Deneme bütçesi tükenirse ErrTransferTimeout
// saran bir *TransferError, bağlantı kurulamazsa ErrConnectionTimeout döner.
//
//	err := dev.SendData(spotled.BrightnessRecord{Value: 80})
func (d *Device) SendData(rec Record) error {
	// İlerleme kuyruğu d.mu bırakıldıktan sonra kapanır; callback Device
	// metotlarını çağırabilir.
	var progress *progressQueue
	if d.opts.onProgress != nil {
		progress = newProgressQueue(d.opts.onProgress)
		defer progress.close()
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return ErrNotConnected
	}
	return d.sendData(rec.Encode(), progress)
}

// sendData, içeriği yeniden deneme politikasıyla gönderir. d.mu tutulmalıdır.
func (d *Device) sendData(content []byte, progress *progressQueue) error {
	transferID := uuid.NewString()
	log := d.log.With(zap.String("transfer_id", transferID))
	started := time.Now()
	defer d.setState(StateIdle)

	var (
		lastErr   error
		lastStage Stage
	)
	for i := 0; i <= d.opts.attempts; i++ {
		attempt := i + 1
		if i > 0 {
			// Bağlantıyı kapat, sonraki deneme ensureConnection ile yeniden kurar.
			if err := d.transport.Disconnect(); err != nil {
				log.Debug("bağlantı kapatılamadı", zap.Error(err))
			}
		}

		if err := d.ensureConnection(); err != nil {
			d.opts.metrics.transferDone(false, started)
			log.Error("bağlantı kurulamadı", zap.Int("attempt", attempt), zap.Error(err))
			return &TransferError{Stage: StageConnect, Attempt: attempt, Err: err}
		}

		d.opts.metrics.attemptStarted()
		stage, err := d.attempt(transferID, attempt, content, progress)
		if err == nil {
			d.opts.metrics.transferDone(true, started)
			log.Debug("aktarım tamamlandı",
				zap.Int("attempt", attempt),
				zap.Int("bytes", len(content)),
				zap.Duration("elapsed", time.Since(started)))
			return nil
		}

		lastErr, lastStage = err, stage
		d.opts.metrics.attemptFailed(stage)
		d.setState(StateRetrying)
		log.Warn("aktarım denemesi başarısız",
			zap.Int("attempt", attempt),
			zap.String("stage", string(stage)),
			zap.Error(err))
	}

	d.opts.metrics.transferDone(false, started)
	return &TransferError{
		Stage:   lastStage,
		Attempt: d.opts.attempts + 1,
		Err:     fmt.Errorf("%w: %d deneme tükendi: %w", ErrTransferTimeout, d.opts.attempts+1, lastErr),
	}
}

// attempt, tek bir Start/Akış/Finish sırasını yürütür. Hata durumunda
// başarısız aşamayı da döner.
func (d *Device) attempt(transferID string, attempt int, content []byte, progress *progressQueue) (Stage, error) {
	cmd := SendDataCommand{Serial: d.nextDataSerial(), Content: content}
	serial := d.nextCommandSerial()
	cmdType := cmd.CommandType()
	payload := cmd.Encode()
	d.log.Debug("aktarım denemesi başlıyor",
		zap.String("transfer_id", transferID),
		zap.Int("attempt", attempt),
		zap.Uint32("data_serial", cmd.Serial),
		zap.Uint16("serial", serial),
		zap.Uint16("command_type", cmdType),
		zap.Int("offset", 0))

	// Aşama 1: Start
	d.setState(StateAwaitingStartAck)
	resp, err := d.command(startCommand(serial, cmdType, len(payload)))
	if err != nil {
		return StageStart, err
	}
	if err := checkAck(resp, serial, cmdType, true); err != nil {
		return StageStart, err
	}

	// Aşama 2: Akış
	d.setState(StateStreaming)
	if err := d.stream(transferID, attempt, payload, serial, cmdType, progress); err != nil {
		return StageStream, err
	}

	// Aşama 3: Finish
	d.setState(StateAwaitingFinishAck)
	resp, err = d.command(finishCommand(serial, cmdType, len(payload)))
	if err != nil {
		return StageFinish, err
	}
	if err := checkAck(resp, serial, cmdType, false); err != nil {
		return StageFinish, err
	}
	if ack := resp.(*SendingDataResponse); ack.ErrorCode != 0 {
		d.log.Debug("finish onayı hata kodu taşıyor", zap.Uint8("error_code", ack.ErrorCode))
	}
	return "", nil
}

// command, kontrol komutunu komut karakteristiğine yazar ve yanıtını bekler.
func (d *Device) command(c controlCommand) (Response, error) {
	d.respMu.Lock()
	handle := d.cmdHandle
	d.respMu.Unlock()

	ch := d.expect()
	if err := d.transport.Write(handle, c.Encode()); err != nil {
		d.clearPending(ch)
		return nil, fmt.Errorf("kontrol komutu yazılamadı: %w", err)
	}
	return d.await(ch)
}

// stream, yükü ChunkSize'lık parçalar halinde yazar. Her ChunkWindow parçadan
// sonra cihazın ContinueFrom konumuna atlar.
func (d *Device) stream(transferID string, attempt int, payload []byte, serial, cmdType uint16, progress *progressQueue) error {
	var (
		seek int
		sent int
		ch   <-chan []byte
	)
	for seek < len(payload) {
		if sent == 0 {
			ch = d.expect()
		}

		end := min(seek+ChunkSize, len(payload))
		if err := d.limiter.Wait(context.Background()); err != nil {
			d.clearPending(ch)
			return fmt.Errorf("yazma sınırlayıcı: %w", err)
		}
		if err := d.transport.Write(d.dataHandle, payload[seek:end]); err != nil {
			d.clearPending(ch)
			return fmt.Errorf("veri parçası yazılamadı (konum %d): %w", seek, err)
		}
		d.opts.metrics.wrote(end - seek)
		sent++
		seek += ChunkSize

		if sent < ChunkWindow {
			continue
		}
		sent = 0

		resp, err := d.await(ch)
		if err != nil {
			return err
		}
		cont, ok := resp.(*ContinueSendingResponse)
		if !ok {
			return fmt.Errorf("%w: ContinueSending yerine tip %d", ErrUnexpectedResponse, resp.ResponseType())
		}
		if cont.Serial != serial || cont.CommandType != cmdType {
			return fmt.Errorf("%w: ContinueSending seri %d/tip %d, beklenen %d/%d",
				ErrUnexpectedResponse, cont.Serial, cont.CommandType, serial, cmdType)
		}

		next := int(min(uint64(cont.ContinueFrom), uint64(len(payload))))
		if next < seek {
			d.opts.metrics.rewound()
			d.log.Debug("cihaz geri sarma istedi",
				zap.String("transfer_id", transferID),
				zap.Int("from", seek),
				zap.Int("to", next))
		}
		seek = next
		progress.push(newTransferProgress(transferID, attempt, seek, len(payload)))
	}

	// Son pencere dolmadıysa bekleyen yuva kullanılmadı.
	if sent > 0 {
		d.clearPending(ch)
	}
	return nil
}

// checkAck, Start/Finish onayının bekleyen istekle eşleştiğini doğrular.
// rejectErrorCode true ise sıfırdan farklı hata kodu ErrDeviceRejected döner.
func checkAck(resp Response, serial, cmdType uint16, rejectErrorCode bool) error {
	ack, ok := resp.(*SendingDataResponse)
	if !ok {
		return fmt.Errorf("%w: SendingData yerine tip %d", ErrUnexpectedResponse, resp.ResponseType())
	}
	if ack.Serial != serial || ack.CommandType != cmdType {
		return fmt.Errorf("%w: SendingData seri %d/tip %d, beklenen %d/%d",
			ErrUnexpectedResponse, ack.Serial, ack.CommandType, serial, cmdType)
	}
	if rejectErrorCode && ack.ErrorCode != 0 {
		return fmt.Errorf("%w: hata kodu %d", ErrDeviceRejected, ack.ErrorCode)
	}
	return nil
}

func newTransferProgress(transferID string, attempt, sent, total int) TransferProgress {
	percent := 100.0
	if total > 0 {
		percent = float64(sent) / float64(total) * 100
	}
	return TransferProgress{
		TransferID: transferID,
		Attempt:    attempt,
		TotalBytes: total,
		SentBytes:  sent,
		Percent:    percent,
	}
}

// ─── İlerleme Kuyruğu ───────────────────────────────────────────────────────────

// progressQueue, ilerleme olaylarını ayrı bir goroutine'de sırayla
// callback'e teslim eder. Kuyruk sınırsızdır; push hiçbir zaman bloklamaz.
type progressQueue struct {
	fn func(TransferProgress)

	mu     sync.Mutex
	events []TransferProgress
	closed bool

	wake chan struct{}
	done chan struct{}
}

func newProgressQueue(fn func(TransferProgress)) *progressQueue {
	q := &progressQueue{
		fn:   fn,
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go q.run()
	return q
}

// push, olayı kuyruğa ekler. nil kuyrukta bir şey yapmaz.
func (q *progressQueue) push(p TransferProgress) {
	if q == nil {
		return
	}
	q.mu.Lock()
	q.events = append(q.events, p)
	q.mu.Unlock()
	q.signal()
}

// close, kalan olaylar teslim edilene kadar bekler.
func (q *progressQueue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.signal()
	<-q.done
}

func (q *progressQueue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *progressQueue) run() {
	defer close(q.done)
	for {
		<-q.wake
		q.mu.Lock()
		events, closed := q.events, q.closed
		q.events = nil
		q.mu.Unlock()

		for _, p := range events {
			q.fn(p)
		}
		if closed {
			return
		}
	}
}

// IsTimeout, err'in deneme bütçesinin tükenmesinden veya bağlantı zaman
// aşımından kaynaklanıp kaynaklanmadığını döner.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTransferTimeout) || errors.Is(err, ErrConnectionTimeout)
}
