package spotled

import (
	"fmt"

	"github.com/google/uuid"
)

// Transport, SPOTLED cihazına BLE GATT erişimi sağlayan dış bileşendir.
// Servis keşfi, bağlantı yönetimi ve bildirim teslimi bu paketin dışında
// gerçekleştirilir; Device yalnızca bu arayüzü çağırır.
type Transport interface {
	// FindHandle, servis ve karakteristik UUID'sine karşılık gelen
	// değer handle'ını döner.
	FindHandle(service, characteristic uuid.UUID) (uint16, error)

	// IsConnected, bağlantının aktif olup olmadığını döner.
	IsConnected() bool

	// Connect, bağlantı kurulmasını ister. Bağlantı eşzamansız kurulabilir;
	// Device, IsConnected ile yoklar.
	Connect() error

	// Disconnect, bağlantıyı kapatır.
	Disconnect() error

	// Write, handle'a yanıt beklemeden yazar.
	Write(handle uint16, data []byte) error

	// SetNotificationHandler, cihazın gönderdiği her bildirim için çağrılacak
	// fonksiyonu ayarlar. fn, transport'un kendi goroutine'inde çağrılabilir.
	SetNotificationHandler(fn func(handle uint16, data []byte))
}

// discoverHandles, komut ve veri karakteristiklerinin handle'larını bulur.
func discoverHandles(t Transport) (cmdHandle, dataHandle uint16, err error) {
	cmdHandle, err = t.FindHandle(ServiceUUID, CommandCharacteristicUUID)
	if err != nil {
		return 0, 0, fmt.Errorf("komut karakteristiği bulunamadı (%s): %w", CommandCharacteristicUUID, err)
	}
	dataHandle, err = t.FindHandle(ServiceUUID, DataCharacteristicUUID)
	if err != nil {
		return 0, 0, fmt.Errorf("veri karakteristiği bulunamadı (%s): %w", DataCharacteristicUUID, err)
	}
	return cmdHandle, dataHandle, nil
}
