package spotled

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSendingDataResponse(t *testing.T) {
	resp, err := ParseResponse(sendingDataAck(0x0102, 0, 32772))
	require.NoError(t, err)

	ack, ok := resp.(*SendingDataResponse)
	require.True(t, ok)
	assert.Equal(t, &SendingDataResponse{Serial: 0x0102, ErrorCode: 0, CommandType: 32772}, ack)
	assert.Equal(t, uint8(2), ack.ResponseType())
}

func TestParseContinueSendingResponse(t *testing.T) {
	resp, err := ParseResponse(continueSending(5, 32772, 120))
	require.NoError(t, err)

	cont, ok := resp.(*ContinueSendingResponse)
	require.True(t, ok)
	assert.Equal(t, uint16(5), cont.Serial)
	assert.Equal(t, uint16(32772), cont.CommandType)
	assert.Equal(t, uint32(120), cont.ContinueFrom)
}

func TestParseGenericResponse(t *testing.T) {
	resp, err := ParseResponse(encodeResponse(0x42, []byte{9, 8, 7}))
	require.NoError(t, err)

	g, ok := resp.(*GenericResponse)
	require.True(t, ok)
	assert.Equal(t, uint8(0x42), g.ResponseType())
	assert.Equal(t, []byte{9, 8, 7}, g.Content)
}

func TestParseResponseIgnoresLinkHeader(t *testing.T) {
	data := sendingDataAck(1, 0, 32772)
	data[0], data[1], data[2] = 0xAA, 0xBB, 0xCC
	_, err := ParseResponse(data)
	assert.NoError(t, err)
}

func TestParseResponseMalformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"boş", nil},
		{"yalnızca bağlantı başlığı", []byte{0, 0, 0}},
		{"kısa içerik", []byte{0, 0, 0, 7, 2, 0, 1}},
		{"SendingData 4 byte", encodeResponse(responseSendingData, []byte{0, 1, 0, 0x80})},
		{"SendingData 6 byte", encodeResponse(responseSendingData, []byte{0, 1, 0, 0x80, 4, 0})},
		{"ContinueSending 7 byte", encodeResponse(responseContinueSending, make([]byte, 7))},
		{"uzunluk 2'den küçük", []byte{0, 0, 0, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := ParseResponse(tt.data)
			assert.ErrorIs(t, err, ErrMalformedResponse)
			assert.Nil(t, resp)
		})
	}
}
