package wire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextcore/tuicore/pkg/wire"
)

func TestEncodeDecode_RoundTripsAllKinds(t *testing.T) {
	batch := wire.Batch{
		Events: []wire.Event{
			{Kind: wire.KindResize, TimeMs: 1, Cols: 80, Rows: 24},
			{Kind: wire.KindKey, TimeMs: 2, KeyCode: 'g', Mods: wire.ModCtrl, Action: wire.KeyDown},
			{Kind: wire.KindText, TimeMs: 3, Codepoint: 'g'},
			{Kind: wire.KindMouse, TimeMs: 4, X: 10, Y: 5, MouseKind: wire.MousePress, Buttons: wire.ButtonLeft, WheelX: 0, WheelY: 0},
			{Kind: wire.KindFocus, TimeMs: 5, Gained: true},
			{Kind: wire.KindPaste, TimeMs: 6, Bytes: []byte("hello")},
			{Kind: wire.KindComposition, TimeMs: 7, Bytes: []byte("あ")},
		},
	}

	buf := wire.Encode(batch)
	assert.Equal(t, int(buf[8]) > 0, true) // sanity: totalSize byte not zero

	decoded, err := wire.Decode(buf)
	require.NoError(t, err)
	require.Len(t, decoded.Events, len(batch.Events))

	for i, want := range batch.Events {
		got := decoded.Events[i]
		assert.Equal(t, want.Kind, got.Kind, "event %d kind", i)
		assert.Equal(t, want.TimeMs, got.TimeMs, "event %d timeMs", i)
	}

	assert.Equal(t, uint32(80), decoded.Events[0].Cols)
	assert.Equal(t, uint32(24), decoded.Events[0].Rows)
	assert.Equal(t, uint32('g'), decoded.Events[1].KeyCode)
	assert.Equal(t, wire.ModCtrl, decoded.Events[1].Mods)
	assert.Equal(t, rune('g'), decoded.Events[2].Codepoint)
	assert.Equal(t, int32(10), decoded.Events[3].X)
	assert.Equal(t, wire.ButtonLeft, decoded.Events[3].Buttons)
	assert.True(t, decoded.Events[4].Gained)
	assert.Equal(t, []byte("hello"), decoded.Events[5].Bytes)
	assert.Equal(t, []byte("あ"), decoded.Events[6].Bytes)
}

func TestDecode_RejectsBadMagic(t *testing.T) {
	buf := wire.Encode(wire.Batch{Events: []wire.Event{{Kind: wire.KindResize, Cols: 1, Rows: 1}}})
	buf[0] ^= 0xFF

	_, err := wire.Decode(buf)
	require.Error(t, err)
}

func TestDecode_RejectsTruncatedBuffer(t *testing.T) {
	buf := wire.Encode(wire.Batch{Events: []wire.Event{{Kind: wire.KindResize, Cols: 1, Rows: 1}}})

	_, err := wire.Decode(buf[:len(buf)-2])
	require.Error(t, err)
}

func TestDecode_RejectsWrongVersion(t *testing.T) {
	buf := wire.Encode(wire.Batch{Events: []wire.Event{{Kind: wire.KindResize, Cols: 1, Rows: 1}}})
	buf[4] = 99

	_, err := wire.Decode(buf)
	require.Error(t, err)
}

func TestEncode_EmptyBatchHasHeaderOnlySize(t *testing.T) {
	buf := wire.Encode(wire.Batch{})
	assert.Len(t, buf, wire.HeaderSize)

	decoded, err := wire.Decode(buf)
	require.NoError(t, err)
	assert.Empty(t, decoded.Events)
}
