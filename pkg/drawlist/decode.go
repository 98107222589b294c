package drawlist

// Decode parses a built drawlist buffer into its commands and resource
// sections. Unknown opcodes are retained as opaque Commands (per the
// contract that consumers, not the decoder, skip what they don't recognize).
func Decode(buf []byte) (*Drawlist, error) {
	if len(buf) < HeaderSize {
		return nil, invalid("buffer shorter than header size")
	}
	if getU32(buf, offMagic) != Magic {
		return nil, invalid("bad magic")
	}
	if int(getU32(buf, offHeaderSize)) != HeaderSize {
		return nil, invalid("unexpected header size")
	}
	totalSize := int(getU32(buf, offTotalSize))
	if totalSize != len(buf) {
		return nil, invalid("totalSize does not match buffer length")
	}
	if totalSize%4 != 0 {
		return nil, invalid("totalSize not 4-aligned")
	}

	cmdOffset := int(getU32(buf, offCmdOffset))
	cmdBytes := int(getU32(buf, offCmdBytes))
	cmdCount := int(getU32(buf, offCmdCount))
	if cmdOffset%4 != 0 || cmdBytes%4 != 0 {
		return nil, invalid("command section not 4-aligned")
	}
	if cmdOffset+cmdBytes > len(buf) {
		return nil, invalid("command section out of bounds")
	}

	commands, err := decodeCommands(buf[cmdOffset:cmdOffset+cmdBytes], cmdCount)
	if err != nil {
		return nil, err
	}

	stringsSpanOffset := int(getU32(buf, offStringsSpanOffset))
	stringsCount := int(getU32(buf, offStringsCount))
	stringsBytesOffset := int(getU32(buf, offStringsBytesOffset))
	stringsBytesLen := int(getU32(buf, offStringsBytesLen))

	stringSpans, err := decodeSpans(buf, stringsSpanOffset, stringsCount)
	if err != nil {
		return nil, err
	}
	stringBytes, err := sliceSection(buf, stringsBytesOffset, stringsBytesLen)
	if err != nil {
		return nil, err
	}

	blobsSpanOffset := int(getU32(buf, offBlobsSpanOffset))
	blobsCount := int(getU32(buf, offBlobsCount))
	blobsBytesOffset := int(getU32(buf, offBlobsBytesOffset))
	blobsBytesLen := int(getU32(buf, offBlobsBytesLen))

	blobSpans, err := decodeSpans(buf, blobsSpanOffset, blobsCount)
	if err != nil {
		return nil, err
	}
	blobBytes, err := sliceSection(buf, blobsBytesOffset, blobsBytesLen)
	if err != nil {
		return nil, err
	}

	return &Drawlist{
		Commands:    commands,
		StringSpans: stringSpans,
		StringBytes: stringBytes,
		BlobSpans:   blobSpans,
		BlobBytes:   blobBytes,
	}, nil
}

func decodeCommands(buf []byte, count int) ([]Command, error) {
	cmds := make([]Command, 0, count)
	off := 0
	for off < len(buf) {
		if off+8 > len(buf) {
			return nil, invalid("truncated command header")
		}
		opcode := Opcode(getU16(buf, off))
		flags := getU16(buf, off+2)
		size := int(getU32(buf, off+4))
		if size < 8 || size%4 != 0 {
			return nil, invalid("command size must be >= 8 and 4-aligned")
		}
		if off+size > len(buf) {
			return nil, invalid("command payload out of bounds")
		}
		payload := make([]byte, size-8)
		copy(payload, buf[off+8:off+size])
		cmds = append(cmds, Command{Opcode: opcode, Flags: flags, Payload: payload})
		off += size
	}
	if len(cmds) != count {
		return nil, invalid("cmdCount does not match decoded command count")
	}
	return cmds, nil
}

func decodeSpans(buf []byte, offset, count int) ([]Span, error) {
	if count == 0 {
		return nil, nil
	}
	need := offset + count*8
	if offset < 0 || need > len(buf) {
		return nil, invalid("span table out of bounds")
	}
	spans := make([]Span, count)
	for i := 0; i < count; i++ {
		spans[i] = Span{
			Offset: getU32(buf, offset+i*8),
			Length: getU32(buf, offset+i*8+4),
		}
	}
	return spans, nil
}

func sliceSection(buf []byte, offset, length int) ([]byte, error) {
	if length == 0 {
		return nil, nil
	}
	if offset < 0 || offset+length > len(buf) {
		return nil, invalid("resource byte section out of bounds")
	}
	out := make([]byte, length)
	copy(out, buf[offset:offset+length])
	return out, nil
}

func getU16(buf []byte, off int) uint16 {
	return uint16(buf[off]) | uint16(buf[off+1])<<8
}
