package input

import (
	"encoding/binary"
	"log"
	"os"
	"syscall"
)

// evKey is EV_KEY from linux/input-event-codes.h. Key events are the
// only type we forward; everything else on the device is noise here.
const evKey = 0x01

type rawEvent struct {
	Time  syscall.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// Event is a single press or release. Unlike terminal key polling this
// carries real release edges, which is what hold notes need.
type Event struct {
	Pressed  bool
	Released bool
	Code     uint16
}

// Read streams key events from an evdev device into events until the
// device read fails.
func Read(device string, events chan *Event) error {
	file, err := os.Open(device)
	if nil != err {
		return err
	}
	go func() {
		defer file.Close()

		var ev rawEvent
		for {
			if err := binary.Read(file, binary.LittleEndian, &ev); nil != err {
				log.Println("unable to read input device:", err)
				return
			}
			if ev.Type != evKey {
				continue
			}
			events <- &Event{
				Pressed:  ev.Value == 1,
				Released: ev.Value == 0,
				Code:     ev.Code,
			}
		}
	}()
	return nil
}

// Lane maps an evdev key code to a lane index using the home-row block
// KEY_A..KEY_L (30..38), or -1 when the code is not bound.
func Lane(code uint16, lanes int) int {
	const keyA = 30
	if code < keyA || code >= keyA+9 {
		return -1
	}
	i := int(code - keyA)
	if i >= lanes {
		return -1
	}
	return i
}
