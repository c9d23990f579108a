package audio

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPCMHeaderLayout(t *testing.T) {
	t.Parallel()

	pcm := make([]byte, 480) // 10ms of 24kHz mono 16-bit samples
	for i := range pcm {
		pcm[i] = byte(i)
	}

	wav, err := WrapPCM(pcm, DefaultSampleRate, DefaultChannels, DefaultBitsPerSample)
	require.NoError(t, err)
	require.Len(t, wav, 44+len(pcm))

	assert.Equal(t, "RIFF", string(wav[0:4]))
	assert.Equal(t, uint32(36+len(pcm)), binary.LittleEndian.Uint32(wav[4:8]))
	assert.Equal(t, "WAVE", string(wav[8:12]))

	assert.Equal(t, "fmt ", string(wav[12:16]))
	assert.Equal(t, uint32(16), binary.LittleEndian.Uint32(wav[16:20]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[20:22]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[22:24]))
	assert.Equal(t, uint32(24000), binary.LittleEndian.Uint32(wav[24:28]))
	assert.Equal(t, uint32(48000), binary.LittleEndian.Uint32(wav[28:32])) // 24000*1*16/8
	assert.Equal(t, uint16(2), binary.LittleEndian.Uint16(wav[32:34]))
	assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(wav[34:36]))

	assert.Equal(t, "data", string(wav[36:40]))
	assert.Equal(t, uint32(len(pcm)), binary.LittleEndian.Uint32(wav[40:44]))
	assert.Equal(t, pcm, wav[44:])
}

func TestWrapPCMStereoRates(t *testing.T) {
	t.Parallel()

	wav, err := WrapPCM([]byte{0, 0, 0, 0}, 44100, 2, 16)
	require.NoError(t, err)

	assert.Equal(t, uint16(2), binary.LittleEndian.Uint16(wav[22:24]))
	assert.Equal(t, uint32(44100), binary.LittleEndian.Uint32(wav[24:28]))
	assert.Equal(t, uint32(176400), binary.LittleEndian.Uint32(wav[28:32])) // 44100*2*16/8
	assert.Equal(t, uint16(4), binary.LittleEndian.Uint16(wav[32:34]))
}

func TestWrapPCMRejectsEmptyPayload(t *testing.T) {
	t.Parallel()

	_, err := WrapPCM(nil, DefaultSampleRate, DefaultChannels, DefaultBitsPerSample)
	assert.ErrorIs(t, err, ErrEmptyAudio)
}
