package wire

import (
	"encoding/binary"
)

// Batch holds a decoded ZREV v1 event sequence and the flags carried in its
// header (currently unused by any defined flag bit, reserved for future use).
type Batch struct {
	Flags  uint32
	Events []Event
}

// fixedRecordSize returns the fixed wire size of one event record, its
// 1-byte kind tag included (records carry no padding), or -1 for a
// variable-length kind (paste, composition), whose size is carried inline
// in the record.
func fixedRecordSize(k Kind) int {
	switch k {
	case KindKey:
		return 1 + 8 + 4 + 1 + 1 // kind + timeMs + keyCode + mods + action
	case KindText:
		return 1 + 8 + 4 // kind + timeMs + codepoint
	case KindResize:
		return 1 + 8 + 4 + 4 // kind + timeMs + cols + rows
	case KindMouse:
		return 1 + 8 + 4 + 4 + 1 + 1 + 1 + 4 + 4 // kind+timeMs+x+y+mouseKind+mods+buttons+wheelX+wheelY
	case KindFocus:
		return 1 + 8 + 1 // kind + timeMs + gained
	default:
		return -1
	}
}

// Encode serializes a batch to a ZREV v1 buffer: 24-byte header followed by
// the event stream, each record prefixed by its 1-byte kind tag.
func Encode(b Batch) []byte {
	var body []byte
	for _, e := range b.Events {
		body = append(body, encodeEvent(e)...)
	}

	out := make([]byte, HeaderSize+len(body))
	binary.LittleEndian.PutUint32(out[0:], Magic)
	binary.LittleEndian.PutUint32(out[4:], Version)
	binary.LittleEndian.PutUint32(out[8:], uint32(HeaderSize+len(body)))
	binary.LittleEndian.PutUint32(out[12:], uint32(len(b.Events)))
	binary.LittleEndian.PutUint32(out[16:], b.Flags)
	binary.LittleEndian.PutUint32(out[20:], 0) // reserved
	copy(out[HeaderSize:], body)
	return out
}

func encodeEvent(e Event) []byte {
	switch e.Kind {
	case KindKey:
		buf := make([]byte, fixedRecordSize(KindKey))
		buf[0] = byte(KindKey)
		binary.LittleEndian.PutUint64(buf[1:], e.TimeMs)
		binary.LittleEndian.PutUint32(buf[9:], e.KeyCode)
		buf[13] = byte(e.Mods)
		buf[14] = byte(e.Action)
		return buf
	case KindText:
		buf := make([]byte, fixedRecordSize(KindText))
		buf[0] = byte(KindText)
		binary.LittleEndian.PutUint64(buf[1:], e.TimeMs)
		binary.LittleEndian.PutUint32(buf[9:], uint32(e.Codepoint))
		return buf
	case KindResize:
		buf := make([]byte, fixedRecordSize(KindResize))
		buf[0] = byte(KindResize)
		binary.LittleEndian.PutUint64(buf[1:], e.TimeMs)
		binary.LittleEndian.PutUint32(buf[9:], e.Cols)
		binary.LittleEndian.PutUint32(buf[13:], e.Rows)
		return buf
	case KindMouse:
		buf := make([]byte, fixedRecordSize(KindMouse))
		buf[0] = byte(KindMouse)
		binary.LittleEndian.PutUint64(buf[1:], e.TimeMs)
		binary.LittleEndian.PutUint32(buf[9:], uint32(e.X))
		binary.LittleEndian.PutUint32(buf[13:], uint32(e.Y))
		buf[17] = byte(e.MouseKind)
		buf[18] = byte(e.Mods)
		buf[19] = byte(e.Buttons)
		binary.LittleEndian.PutUint32(buf[20:], uint32(e.WheelX))
		binary.LittleEndian.PutUint32(buf[24:], uint32(e.WheelY))
		return buf
	case KindFocus:
		buf := make([]byte, fixedRecordSize(KindFocus))
		buf[0] = byte(KindFocus)
		binary.LittleEndian.PutUint64(buf[1:], e.TimeMs)
		if e.Gained {
			buf[9] = 1
		}
		return buf
	case KindPaste, KindComposition:
		head := make([]byte, 1+8+4)
		head[0] = byte(e.Kind)
		binary.LittleEndian.PutUint64(head[1:], e.TimeMs)
		binary.LittleEndian.PutUint32(head[9:], uint32(len(e.Bytes)))
		return append(head, e.Bytes...)
	default:
		return nil
	}
}

// Decode parses a ZREV v1 buffer into a Batch. Returns a wire-validation
// error if the magic, version, or declared size don't match the buffer.
func Decode(buf []byte) (Batch, error) {
	if len(buf) < HeaderSize {
		return Batch{}, invalid("buffer shorter than header size")
	}
	magic := binary.LittleEndian.Uint32(buf[0:])
	version := binary.LittleEndian.Uint32(buf[4:])
	totalSize := binary.LittleEndian.Uint32(buf[8:])
	eventCount := binary.LittleEndian.Uint32(buf[12:])
	flags := binary.LittleEndian.Uint32(buf[16:])

	if magic != Magic {
		return Batch{}, invalid("bad magic")
	}
	if version != Version {
		return Batch{}, invalid("unsupported version")
	}
	if int(totalSize) != len(buf) {
		return Batch{}, invalid("totalSize does not match buffer length")
	}

	events := make([]Event, 0, eventCount)
	off := HeaderSize
	for i := uint32(0); i < eventCount; i++ {
		if off >= len(buf) {
			return Batch{}, invalid("event stream truncated")
		}
		ev, n, err := decodeEvent(buf[off:])
		if err != nil {
			return Batch{}, err
		}
		events = append(events, ev)
		off += n
	}
	return Batch{Flags: flags, Events: events}, nil
}

func decodeEvent(buf []byte) (Event, int, error) {
	if len(buf) < 1 {
		return Event{}, 0, invalid("empty record")
	}
	k := Kind(buf[0])
	switch k {
	case KindKey:
		n := fixedRecordSize(k)
		if len(buf) < n {
			return Event{}, 0, invalid("truncated key record")
		}
		return Event{
			Kind:    k,
			TimeMs:  binary.LittleEndian.Uint64(buf[1:]),
			KeyCode: binary.LittleEndian.Uint32(buf[9:]),
			Mods:    Mods(buf[13]),
			Action:  KeyAction(buf[14]),
		}, n, nil
	case KindText:
		n := fixedRecordSize(k)
		if len(buf) < n {
			return Event{}, 0, invalid("truncated text record")
		}
		return Event{
			Kind:      k,
			TimeMs:    binary.LittleEndian.Uint64(buf[1:]),
			Codepoint: rune(binary.LittleEndian.Uint32(buf[9:])),
		}, n, nil
	case KindResize:
		n := fixedRecordSize(k)
		if len(buf) < n {
			return Event{}, 0, invalid("truncated resize record")
		}
		return Event{
			Kind:   k,
			TimeMs: binary.LittleEndian.Uint64(buf[1:]),
			Cols:   binary.LittleEndian.Uint32(buf[9:]),
			Rows:   binary.LittleEndian.Uint32(buf[13:]),
		}, n, nil
	case KindMouse:
		n := fixedRecordSize(k)
		if len(buf) < n {
			return Event{}, 0, invalid("truncated mouse record")
		}
		return Event{
			Kind:      k,
			TimeMs:    binary.LittleEndian.Uint64(buf[1:]),
			X:         int32(binary.LittleEndian.Uint32(buf[9:])),
			Y:         int32(binary.LittleEndian.Uint32(buf[13:])),
			MouseKind: MouseKind(buf[17]),
			Mods:      Mods(buf[18]),
			Buttons:   Buttons(buf[19]),
			WheelX:    int32(binary.LittleEndian.Uint32(buf[20:])),
			WheelY:    int32(binary.LittleEndian.Uint32(buf[24:])),
		}, n, nil
	case KindFocus:
		n := fixedRecordSize(k)
		if len(buf) < n {
			return Event{}, 0, invalid("truncated focus record")
		}
		return Event{
			Kind:   k,
			TimeMs: binary.LittleEndian.Uint64(buf[1:]),
			Gained: buf[9] != 0,
		}, n, nil
	case KindPaste, KindComposition:
		if len(buf) < 1+8+4 {
			return Event{}, 0, invalid("truncated variable-length record header")
		}
		timeMs := binary.LittleEndian.Uint64(buf[1:])
		byteLen := binary.LittleEndian.Uint32(buf[9:])
		n := 1 + 8 + 4 + int(byteLen)
		if len(buf) < n {
			return Event{}, 0, invalid("truncated variable-length record body")
		}
		data := make([]byte, byteLen)
		copy(data, buf[13:n])
		return Event{Kind: k, TimeMs: timeMs, Bytes: data}, n, nil
	default:
		return Event{}, 0, invalid("unknown event kind")
	}
}
