// Package spotled provides a Go library for driving SPOTLED Bluetooth LED
// matrix displays (48x12 monochrome badges and signs sold under the SPOTLED
// name) over Bluetooth Low Energy.
//
// # Overview
//
// The display accepts typed binary records (brightness, screen mode,
// animations, glyph tables and text) which are wrapped in a data envelope and
// streamed over a GATT characteristic. This library encodes those records,
// runs the device's windowed transfer handshake with retries, and renders text
// into frames or glyphs from bitmap fonts.
//
// The BLE stack itself is not part of this package. Callers supply a
// Transport that can discover GATT handles, connect, write without response
// and deliver notifications.
//
// # Protocol Architecture
//
//   - Every record is [4B length BE][2B type BE][fields][1B checksum]
//   - Records are sent inside a SendDataCommand envelope (command type 32772)
//   - A 10-byte Start control command announces the envelope length
//   - The envelope is written in 20-byte chunks; after every 6 chunks the
//     device replies with the offset it wants to continue from
//   - A Finish control command closes the transfer
//   - Any timeout or mismatched reply restarts the transfer with new serials
//
// # Quick Start
//
//	dev := spotled.NewDevice(transport)
//	if err := dev.Connect(); err != nil {
//	    log.Fatal(err)
//	}
//	defer dev.Close()
//
//	font, err := spotled.LoadFontFile("fonts/4x6.yaff")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = dev.SetTextLines("Hello\nWorld", font, spotled.DefaultTextLinesConfig())
//
// # Supported Features
//
//   - Brightness and screen mode (flip, mirror)
//   - Multi-line text rendered into animation frames, with word wrap and alignment
//   - Single-line scrolling text
//   - Character mode text with uploaded glyphs and per-character colors
//   - Raw animations of up to 20 frames with effects
//   - Number bar (spectrum) display
//   - .yaff and .draw bitmap fonts
//   - Structured logging (zap), Prometheus metrics and file/env configuration
//
// # Thread Safety
//
// The Device struct is thread-safe. Transfers are serialized by a mutex, so
// only one request is in flight per connection.
package spotled
