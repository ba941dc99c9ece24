package spotled

import (
	"encoding/binary"
	"errors"
	"sync"

	"github.com/google/uuid"
)

const (
	fakeCmdHandle  uint16 = 0x11
	fakeDataHandle uint16 = 0x14
)

// encodeResponse, cihazın bildirim çerçevesini üretir.
func encodeResponse(typ uint8, content []byte) []byte {
	out := []byte{0, 0, 0, uint8(len(content) + 2), typ}
	return append(out, content...)
}

func sendingDataAck(serial uint16, code uint8, cmdType uint16) []byte {
	c := binary.BigEndian.AppendUint16(nil, serial)
	c = append(c, code)
	c = binary.BigEndian.AppendUint16(c, cmdType)
	return encodeResponse(responseSendingData, c)
}

func continueSending(serial, cmdType uint16, from uint32) []byte {
	c := binary.BigEndian.AppendUint16(nil, serial)
	c = binary.BigEndian.AppendUint16(c, cmdType)
	c = binary.BigEndian.AppendUint32(c, from)
	return encodeResponse(responseContinueSending, c)
}

type startCmd struct {
	serial  uint16
	cmdType uint16
	length  uint32
}

// fakeTransport, SPOTLED cihazını taklit eden bir Transport'tur.
// Start/Continue/Finish yanıtlarını senkron olarak üretir.
type fakeTransport struct {
	mu sync.Mutex

	connected    bool
	neverConnect bool // Connect çağrıları bağlantı kurmaz
	noReconnect  bool // ilk Disconnect'ten sonra bağlantı kurulmaz
	connects     int
	disconnects  int

	handler func(uint16, []byte)

	// Davranış
	silent         bool                       // hiçbir yanıt verme
	dropContinue   map[int]bool               // n. Continue yanıtını düşür (1'den başlar)
	continueFrom   func(n, cursor int) uint32 // Continue konumunu değiştir
	startErrorCode uint8
	badStartSerial map[int]bool // n. Start onayında yanlış seri no gönder
	malformedStart map[int]bool // n. Start onayını 4 byte içerikle gönder
	dropFinish     map[int]bool // n. Finish onayını düşür

	// Kayıtlar
	starts     []startCmd
	finishes   int
	chunks     [][]byte
	continues  int
	notifyInit [][]byte
	received   [][]byte

	// Aktarım durumu
	buf    []byte
	cursor int
	window int
	active startCmd
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{connected: true}
}

func (f *fakeTransport) FindHandle(service, characteristic uuid.UUID) (uint16, error) {
	if service != ServiceUUID {
		return 0, errors.New("servis yok")
	}
	switch characteristic {
	case CommandCharacteristicUUID:
		return fakeCmdHandle, nil
	case DataCharacteristicUUID:
		return fakeDataHandle, nil
	}
	return 0, errors.New("karakteristik yok")
}

func (f *fakeTransport) IsConnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *fakeTransport) Connect() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connects++
	if f.neverConnect || (f.noReconnect && f.disconnects > 0) {
		return errors.New("bağlanılamadı")
	}
	f.connected = true
	return nil
}

func (f *fakeTransport) Disconnect() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disconnects++
	f.connected = false
	return nil
}

func (f *fakeTransport) SetNotificationHandler(fn func(uint16, []byte)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handler = fn
}

func (f *fakeTransport) Write(handle uint16, data []byte) error {
	f.mu.Lock()
	data = append([]byte(nil), data...)
	var resp []byte
	switch handle {
	case notifyConfigHandle:
		f.notifyInit = append(f.notifyInit, data)
	case fakeCmdHandle:
		resp = f.onCommand(data)
	case fakeDataHandle:
		resp = f.onData(data)
	}
	handler := f.handler
	if f.silent {
		resp = nil
	}
	f.mu.Unlock()

	if resp != nil && handler != nil {
		handler(fakeCmdHandle, resp)
	}
	return nil
}

func (f *fakeTransport) onCommand(data []byte) []byte {
	if len(data) != controlCommandLength {
		return nil
	}
	cmd := startCmd{
		serial:  binary.BigEndian.Uint16(data[2:4]),
		cmdType: binary.BigEndian.Uint16(data[4:6]),
		length:  binary.BigEndian.Uint32(data[6:10]),
	}
	switch controlKind(data[1]) {
	case controlStart:
		f.starts = append(f.starts, cmd)
		f.active, f.buf, f.cursor, f.window = cmd, nil, 0, 0
		if f.malformedStart[len(f.starts)] {
			return encodeResponse(responseSendingData, []byte{0, byte(cmd.serial), 0, 0x80})
		}
		serial := cmd.serial
		if f.badStartSerial[len(f.starts)] {
			serial++
		}
		return sendingDataAck(serial, f.startErrorCode, cmd.cmdType)
	case controlFinish:
		f.finishes++
		f.received = append(f.received, append([]byte(nil), f.buf...))
		if f.dropFinish[f.finishes] {
			return nil
		}
		return sendingDataAck(cmd.serial, 0, cmd.cmdType)
	}
	return nil
}

func (f *fakeTransport) onData(chunk []byte) []byte {
	f.chunks = append(f.chunks, chunk)
	f.buf = append(f.buf[:f.cursor], chunk...)
	f.cursor += len(chunk)
	f.window++
	if f.window < ChunkWindow {
		return nil
	}
	f.window = 0
	f.continues++

	from := uint32(f.cursor)
	if f.continueFrom != nil {
		from = f.continueFrom(f.continues, f.cursor)
	}
	f.cursor = min(int(from), len(f.buf))
	if f.dropContinue[f.continues] {
		return nil
	}
	return continueSending(f.active.serial, f.active.cmdType, from)
}

func (f *fakeTransport) lastReceived() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.received) == 0 {
		return nil
	}
	return f.received[len(f.received)-1]
}
