package drawlist

import "encoding/binary"

// Builder accumulates commands plus interned string/blob resources and emits
// an aligned buffer on Build. A Builder is reused across frames: Reset zeros
// every byte of its backing buffers rather than just truncating their
// length, so two frames with identical operations produce byte-identical
// output even when the same Builder object is reused (leftover high bytes
// from a longer previous frame would otherwise leak into the padding).
type Builder struct {
	cmds []byte

	stringSpans []Span
	stringBytes []byte
	nextStringID uint32

	blobSpans []Span
	blobBytes []byte
	nextBlobID uint32
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{nextStringID: 1, nextBlobID: 1}
}

// Reset clears a Builder for reuse, zeroing its backing buffers so stale
// bytes never leak into a later frame's padding.
func (b *Builder) Reset() {
	for i := range b.cmds {
		b.cmds[i] = 0
	}
	for i := range b.stringBytes {
		b.stringBytes[i] = 0
	}
	for i := range b.blobBytes {
		b.blobBytes[i] = 0
	}
	b.cmds = b.cmds[:0]
	b.stringSpans = b.stringSpans[:0]
	b.stringBytes = b.stringBytes[:0]
	b.blobSpans = b.blobSpans[:0]
	b.blobBytes = b.blobBytes[:0]
	b.nextStringID = 1
	b.nextBlobID = 1
}

func (b *Builder) emit(op Opcode, flags uint16, payload []byte) {
	size := align4(8 + len(payload))
	buf := make([]byte, size)
	binary.LittleEndian.PutUint16(buf[0:], uint16(op))
	binary.LittleEndian.PutUint16(buf[2:], flags)
	binary.LittleEndian.PutUint32(buf[4:], uint32(size))
	copy(buf[8:], payload)
	b.cmds = append(b.cmds, buf...)
}

func i32le(v int32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(v))
	return buf
}

func u32le(v uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	return buf
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Clear appends a CLEAR command.
func (b *Builder) Clear() { b.emit(OpClear, 0, nil) }

// FillRect appends a FILL_RECT command; color is packed 0xRRGGBB.
func (b *Builder) FillRect(x, y, w, h int32, color uint32) {
	b.emit(OpFillRect, 0, concat(i32le(x), i32le(y), i32le(w), i32le(h), u32le(color)))
}

// DrawText appends a DRAW_TEXT command referencing a previously interned string id.
func (b *Builder) DrawText(x, y int32, stringID, byteOff, byteLen uint32) {
	b.emit(OpDrawText, 0, concat(i32le(x), i32le(y), u32le(stringID), u32le(byteOff), u32le(byteLen)))
}

// PushClip appends a PUSH_CLIP command.
func (b *Builder) PushClip(x, y, w, h int32) {
	b.emit(OpPushClip, 0, concat(i32le(x), i32le(y), i32le(w), i32le(h)))
}

// PopClip appends a POP_CLIP command.
func (b *Builder) PopClip() { b.emit(OpPopClip, 0, nil) }

// DrawTextRun appends a DRAW_TEXT_RUN command referencing an interned blob id.
func (b *Builder) DrawTextRun(x, y int32, blobID uint32) {
	b.emit(OpDrawTextRun, 0, concat(i32le(x), i32le(y), u32le(blobID)))
}

// SetCursor appends a SET_CURSOR command.
func (b *Builder) SetCursor(x, y int32, visible bool, shape uint32) {
	v := uint32(0)
	if visible {
		v = 1
	}
	b.emit(OpSetCursor, 0, concat(i32le(x), i32le(y), u32le(v), u32le(shape)))
}

// DrawCanvas appends a DRAW_CANVAS command referencing an interned blob id
// holding the canvas's raw cell/pixel content.
func (b *Builder) DrawCanvas(x, y, w, h int32, blobID uint32) {
	b.emit(OpDrawCanvas, 0, concat(i32le(x), i32le(y), i32le(w), i32le(h), u32le(blobID)))
}

// DrawImage appends a DRAW_IMAGE command referencing an interned blob id.
func (b *Builder) DrawImage(x, y, w, h int32, blobID uint32) {
	b.emit(OpDrawImage, 0, concat(i32le(x), i32le(y), i32le(w), i32le(h), u32le(blobID)))
}

// BlitRect appends a BLIT_RECT command copying one rect of the frame to another.
func (b *Builder) BlitRect(srcX, srcY, srcW, srcH, dstX, dstY int32) {
	b.emit(OpBlitRect, 0, concat(i32le(srcX), i32le(srcY), i32le(srcW), i32le(srcH), i32le(dstX), i32le(dstY)))
}

// InternString interns s, returning a stable id valid until FreeString is
// called with it. Emits a DEF_STRING command and records the string in the
// trailing string span table.
func (b *Builder) InternString(s string) uint32 {
	id := b.nextStringID
	b.nextStringID++

	raw := []byte(s)
	padded := align4(len(raw))
	buf := make([]byte, padded)
	copy(buf, raw) // trailing padding bytes are zero by construction

	b.stringSpans = append(b.stringSpans, Span{Offset: uint32(len(b.stringBytes)), Length: uint32(len(raw))})
	b.stringBytes = append(b.stringBytes, buf...)

	payload := concat(u32le(id), u32le(uint32(len(raw))), buf)
	b.emit(OpDefString, 0, payload)
	return id
}

// FreeString emits a FREE_STRING command for id.
func (b *Builder) FreeString(id uint32) {
	b.emit(OpFreeString, 0, u32le(id))
}

// InternBlob interns raw bytes, returning a stable id valid until FreeBlob
// is called with it.
func (b *Builder) InternBlob(raw []byte) uint32 {
	id := b.nextBlobID
	b.nextBlobID++

	padded := align4(len(raw))
	buf := make([]byte, padded)
	copy(buf, raw)

	b.blobSpans = append(b.blobSpans, Span{Offset: uint32(len(b.blobBytes)), Length: uint32(len(raw))})
	b.blobBytes = append(b.blobBytes, buf...)

	payload := concat(u32le(id), u32le(uint32(len(raw))), buf)
	b.emit(OpDefBlob, 0, payload)
	return id
}

// FreeBlob emits a FREE_BLOB command for id.
func (b *Builder) FreeBlob(id uint32) {
	b.emit(OpFreeBlob, 0, u32le(id))
}

// Build emits the final aligned buffer: header, command stream, string span
// table, string bytes, blob span table, blob bytes.
func (b *Builder) Build() []byte {
	cmdBytes := align4(len(b.cmds))
	cmds := make([]byte, cmdBytes)
	copy(cmds, b.cmds)

	stringSpanTable := make([]byte, len(b.stringSpans)*8)
	for i, s := range b.stringSpans {
		binary.LittleEndian.PutUint32(stringSpanTable[i*8:], s.Offset)
		binary.LittleEndian.PutUint32(stringSpanTable[i*8+4:], s.Length)
	}
	stringBytesLen := align4(len(b.stringBytes))
	stringBytes := make([]byte, stringBytesLen)
	copy(stringBytes, b.stringBytes)

	blobSpanTable := make([]byte, len(b.blobSpans)*8)
	for i, s := range b.blobSpans {
		binary.LittleEndian.PutUint32(blobSpanTable[i*8:], s.Offset)
		binary.LittleEndian.PutUint32(blobSpanTable[i*8+4:], s.Length)
	}
	blobBytesLen := align4(len(b.blobBytes))
	blobBytes := make([]byte, blobBytesLen)
	copy(blobBytes, b.blobBytes)

	cmdOffset := HeaderSize
	stringsSpanOffset := cmdOffset + cmdBytes
	stringsBytesOffset := stringsSpanOffset + len(stringSpanTable)
	blobsSpanOffset := stringsBytesOffset + stringBytesLen
	blobsBytesOffset := blobsSpanOffset + len(blobSpanTable)
	totalSize := blobsBytesOffset + blobBytesLen

	out := make([]byte, totalSize)
	putU32(out, offMagic, Magic)
	putU32(out, offVersion, Version)
	putU32(out, offHeaderSize, HeaderSize)
	putU32(out, offTotalSize, uint32(totalSize))
	putU32(out, offCmdOffset, uint32(cmdOffset))
	putU32(out, offCmdBytes, uint32(cmdBytes))
	putU32(out, offCmdCount, uint32(b.countCommands()))
	putU32(out, offStringsSpanOffset, uint32(stringsSpanOffset))
	putU32(out, offStringsCount, uint32(len(b.stringSpans)))
	putU32(out, offStringsBytesOffset, uint32(stringsBytesOffset))
	putU32(out, offStringsBytesLen, uint32(stringBytesLen))
	putU32(out, offBlobsSpanOffset, uint32(blobsSpanOffset))
	putU32(out, offBlobsCount, uint32(len(b.blobSpans)))
	putU32(out, offBlobsBytesOffset, uint32(blobsBytesOffset))
	putU32(out, offBlobsBytesLen, uint32(blobBytesLen))

	copy(out[cmdOffset:], cmds)
	copy(out[stringsSpanOffset:], stringSpanTable)
	copy(out[stringsBytesOffset:], stringBytes)
	copy(out[blobsSpanOffset:], blobSpanTable)
	copy(out[blobsBytesOffset:], blobBytes)
	return out
}

func (b *Builder) countCommands() int {
	count := 0
	for off := 0; off < len(b.cmds); {
		size := int(binary.LittleEndian.Uint32(b.cmds[off+4:]))
		off += size
		count++
	}
	return count
}
