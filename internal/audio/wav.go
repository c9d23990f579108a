// Package audio caches synthesized speech. Clips are content addressed by
// the exact text they pronounce, stored once in the blob store as WAV files
// and served by URL forever after.
package audio

import (
	"encoding/binary"
	"errors"
)

// PCM format of the speech provider's output.
const (
	DefaultSampleRate    = 24000
	DefaultChannels      = 1
	DefaultBitsPerSample = 16
)

// ErrEmptyAudio is returned when there are no PCM samples to wrap.
var ErrEmptyAudio = errors.New("audio payload is empty")

// wavHeaderSize is the fixed size of a canonical PCM WAV header.
const wavHeaderSize = 44

// WrapPCM prepends a canonical 44-byte RIFF/WAVE header to raw 16-bit
// little-endian PCM samples, producing a playable WAV file.
func WrapPCM(pcm []byte, sampleRate, channels, bitsPerSample int) ([]byte, error) {
	if len(pcm) == 0 {
		return nil, ErrEmptyAudio
	}

	byteRate := sampleRate * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8

	out := make([]byte, wavHeaderSize+len(pcm))
	h := out[:wavHeaderSize]

	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], uint32(36+len(pcm)))
	copy(h[8:12], "WAVE")

	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(h[20:22], 1)  // audio format: PCM
	binary.LittleEndian.PutUint16(h[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(h[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(h[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(h[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(h[34:36], uint16(bitsPerSample))

	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], uint32(len(pcm)))

	copy(out[wavHeaderSize:], pcm)
	return out, nil
}
