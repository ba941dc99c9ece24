package spotled

import (
	"fmt"
)

// ─── Yanıt Çözümleme ────────────────────────────────────────────────────────────
//
// Cihaz yanıtları komut karakteristiğinden bildirim olarak gelir:
//
//	[3B] bağlantı katmanı çerçevesi (yorumlanmaz)
//	[1B] uzunluk = içerik + 2
//	[1B] yanıt tipi
//	[NB] içerik (uzunluk - 2 byte)
//
// Gelen verinin checksum'ı doğrulanmaz.

const (
	// responseLinkHeaderLength, yanıtların başındaki yorumlanmayan byte sayısıdır.
	responseLinkHeaderLength = 3

	responseSendingData     uint8 = 2
	responseContinueSending uint8 = 255

	sendingDataContentLength     = 5
	continueSendingContentLength = 8
)

// Response, ParseResponse'un döndüğü yanıt türlerini temsil eder:
// *SendingDataResponse, *ContinueSendingResponse veya *GenericResponse.
type Response interface {
	// ResponseType, yanıtın tip byte'ını döner.
	ResponseType() uint8

	isResponse()
}

// SendingDataResponse, Start ve Finish kontrol komutlarına cihazın
// verdiği onaydır.
type SendingDataResponse struct {
	Serial      uint16
	ErrorCode   uint8
	CommandType uint16
}

func (*SendingDataResponse) ResponseType() uint8 { return responseSendingData }
func (*SendingDataResponse) isResponse()         {}

// ContinueSendingResponse, cihazın son pencereyi işlediğini ve ContinueFrom
// konumundan itibaren veri beklediğini bildirir. ContinueFrom cihaz
// tarafından belirlenir; geriye veya ileriye atlayabilir.
type ContinueSendingResponse struct {
	Serial       uint16
	CommandType  uint16
	ContinueFrom uint32
}

func (*ContinueSendingResponse) ResponseType() uint8 { return responseContinueSending }
func (*ContinueSendingResponse) isResponse()         {}

// GenericResponse, tanınmayan tipteki yanıtların ham içeriğini taşır.
type GenericResponse struct {
	Type    uint8
	Content []byte
}

func (r *GenericResponse) ResponseType() uint8 { return r.Type }
func (*GenericResponse) isResponse()           {}

// ParseResponse, ham bildirim verisini tipli bir yanıta dönüştürür.
func ParseResponse(data []byte) (Response, error) {
	r := NewByteReader(data)
	r.ReadBytes(responseLinkHeaderLength)
	length := int(r.ReadUint8())
	respType := r.ReadUint8()
	content := r.ReadBytes(length - 2)
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	switch respType {
	case responseSendingData:
		resp, err := parseSendingDataResponse(content)
		if err != nil {
			return nil, err
		}
		return resp, nil
	case responseContinueSending:
		resp, err := parseContinueSendingResponse(content)
		if err != nil {
			return nil, err
		}
		return resp, nil
	default:
		return &GenericResponse{Type: respType, Content: content}, nil
	}
}

func parseSendingDataResponse(content []byte) (*SendingDataResponse, error) {
	if len(content) != sendingDataContentLength {
		return nil, fmt.Errorf("%w: SendingData içeriği %d byte, beklenen %d",
			ErrMalformedResponse, len(content), sendingDataContentLength)
	}
	r := NewByteReader(content)
	return &SendingDataResponse{
		Serial:      r.ReadUint16(),
		ErrorCode:   r.ReadUint8(),
		CommandType: r.ReadUint16(),
	}, nil
}

func parseContinueSendingResponse(content []byte) (*ContinueSendingResponse, error) {
	if len(content) != continueSendingContentLength {
		return nil, fmt.Errorf("%w: ContinueSending içeriği %d byte, beklenen %d",
			ErrMalformedResponse, len(content), continueSendingContentLength)
	}
	r := NewByteReader(content)
	return &ContinueSendingResponse{
		Serial:       r.ReadUint16(),
		CommandType:  r.ReadUint16(),
		ContinueFrom: r.ReadUint32(),
	}, nil
}
