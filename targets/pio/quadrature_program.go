//go:build rp2040

package pio

import rp2pio "github.com/tinygo-org/pio/rp2-pio"

// Quadrature decoder program. The state machine samples A/B, jumps through a
// 16-entry table indexed by (previous AB << 2 | current AB) and keeps the
// signed count in Y, pushing it to the RX FIFO on every loop without blocking.
// It must be loaded at offset 0 because MOV PC, ISR jumps to the table by
// absolute address.
const (
	quadratureOrigin = 0

	addrDecrement = 14
	addrUpdate    = 15
	addrIncrement = 21
	addrIncCont   = 23
)

func buildQuadratureProgram() []uint16 {
	update := rp2pio.EncodeJmp(addrUpdate, rp2pio.JmpAlways)
	inc := rp2pio.EncodeJmp(addrIncrement, rp2pio.JmpAlways)
	dec := rp2pio.EncodeJmp(addrDecrement, rp2pio.JmpAlways)
	return []uint16{
		// previous 00
		update, // 0: read 00
		dec,    // 1: read 01
		inc,    // 2: read 10
		update, // 3: read 11
		// previous 01
		inc,    // 4: read 00
		update, // 5: read 01
		update, // 6: read 10
		dec,    // 7: read 11
		// previous 10
		dec,    // 8: read 00
		update, // 9: read 01
		update, // 10: read 10
		inc,    // 11: read 11
		// previous 11; the last two entries are the decrement and update
		// routines themselves
		update, // 12: read 00
		inc,    // 13: read 01
		rp2pio.EncodeJmp(addrUpdate, rp2pio.JmpYNZeroDec), // 14: decrement: jmp y--, update
		// .wrap_target
		rp2pio.EncodeMov(rp2pio.SrcDestISR, rp2pio.SrcDestY),   // 15: update: mov isr, y
		rp2pio.EncodePush(false, false),                        // 16: push noblock
		rp2pio.EncodeOut(rp2pio.SrcDestISR, 2),                 // 17: out isr, 2
		rp2pio.EncodeIn(rp2pio.SrcDestPins, 2),                 // 18: in pins, 2
		rp2pio.EncodeMov(rp2pio.SrcDestOSR, rp2pio.SrcDestISR), // 19: mov osr, isr
		rp2pio.EncodeMov(rp2pio.SrcDestPC, rp2pio.SrcDestISR),  // 20: mov pc, isr
		rp2pio.EncodeMovNot(rp2pio.SrcDestY, rp2pio.SrcDestY),  // 21: increment: mov y, ~y
		rp2pio.EncodeJmp(addrIncCont, rp2pio.JmpYNZeroDec),     // 22: jmp y--, inc_cont
		rp2pio.EncodeMovNot(rp2pio.SrcDestY, rp2pio.SrcDestY),  // 23: inc_cont: mov y, ~y
		// .wrap
	}
}
