package drawlist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextcore/tuicore/pkg/drawlist"
)

func TestBuild_RoundTripsCommandsAndResources(t *testing.T) {
	b := drawlist.NewBuilder()
	b.Clear()
	sid := b.InternString("hello")
	b.DrawText(1, 2, sid, 0, 5)
	bid := b.InternBlob([]byte{1, 2, 3})
	b.DrawTextRun(3, 4, bid)
	b.FillRect(0, 0, 10, 10, 0x00FF00)
	b.FreeString(sid)

	buf := b.Build()
	assert.Equal(t, 0, len(buf)%4, "total buffer size must be 4-aligned")

	dl, err := drawlist.Decode(buf)
	require.NoError(t, err)

	require.Len(t, dl.Commands, 7)
	assert.Equal(t, drawlist.OpClear, dl.Commands[0].Opcode)
	assert.Equal(t, drawlist.OpDefString, dl.Commands[1].Opcode)
	assert.Equal(t, drawlist.OpDrawText, dl.Commands[2].Opcode)
	assert.Equal(t, drawlist.OpDefBlob, dl.Commands[3].Opcode)
	assert.Equal(t, drawlist.OpDrawTextRun, dl.Commands[4].Opcode)
	assert.Equal(t, drawlist.OpFillRect, dl.Commands[5].Opcode)
	assert.Equal(t, drawlist.OpFreeString, dl.Commands[6].Opcode)

	for i, cmd := range dl.Commands {
		assert.Equal(t, 0, (8+len(cmd.Payload))%4, "command %d size must be 4-aligned", i)
	}

	require.Len(t, dl.StringSpans, 1)
	assert.Equal(t, "hello", string(dl.StringBytes[dl.StringSpans[0].Offset:dl.StringSpans[0].Offset+dl.StringSpans[0].Length]))

	require.Len(t, dl.BlobSpans, 1)
	assert.Equal(t, []byte{1, 2, 3}, dl.BlobBytes[dl.BlobSpans[0].Offset:dl.BlobSpans[0].Offset+dl.BlobSpans[0].Length])
}

func TestBuild_PadsStringToFourByteBoundaryWithZeros(t *testing.T) {
	b := drawlist.NewBuilder()
	b.InternString("abc") // 3 bytes, pads to 4

	buf := b.Build()
	dl, err := drawlist.Decode(buf)
	require.NoError(t, err)

	// The DEF_STRING payload is id(4) + byteLen(4) + padded raw bytes.
	defCmd := dl.Commands[0]
	require.Equal(t, drawlist.OpDefString, defCmd.Opcode)
	raw := defCmd.Payload[8:]
	assert.Len(t, raw, 4)
	assert.Equal(t, byte(0), raw[3], "padding byte must be zero")
}

func TestBuilder_ResetZeroesBuffersAcrossReuse(t *testing.T) {
	b := drawlist.NewBuilder()
	b.InternString("a much longer string than the next frame will use")
	first := b.Build()
	require.True(t, len(first) > drawlist.HeaderSize)

	b.Reset()
	b.InternString("x")
	second := b.Build()

	dl, err := drawlist.Decode(second)
	require.NoError(t, err)
	require.Len(t, dl.StringSpans, 1)
	assert.Equal(t, "x", string(dl.StringBytes[dl.StringSpans[0].Offset:dl.StringSpans[0].Offset+dl.StringSpans[0].Length]))
	// Padding byte after the single-byte string must be zero, not leftover
	// from the prior, longer frame's buffer.
	assert.Equal(t, byte(0), dl.StringBytes[1])
	assert.Equal(t, byte(0), dl.StringBytes[2])
	assert.Equal(t, byte(0), dl.StringBytes[3])
}

func TestDecode_RejectsBadMagic(t *testing.T) {
	b := drawlist.NewBuilder()
	b.Clear()
	buf := b.Build()
	buf[0] ^= 0xFF

	_, err := drawlist.Decode(buf)
	require.Error(t, err)
}

func TestDecode_SkipsUnknownOpcodeAsOpaqueCommand(t *testing.T) {
	b := drawlist.NewBuilder()
	b.Clear()
	buf := b.Build()

	// Rewrite the lone command's opcode to a value outside the known set;
	// the decoder must still surface it as an opaque Command rather than erroring.
	cmdOffset := drawlist.HeaderSize
	buf[cmdOffset] = 0xEE
	buf[cmdOffset+1] = 0xEE

	dl, err := drawlist.Decode(buf)
	require.NoError(t, err)
	require.Len(t, dl.Commands, 1)
	assert.Equal(t, drawlist.Opcode(0xEEEE), dl.Commands[0].Opcode)
}
