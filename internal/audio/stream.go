package audio

import (
	"encoding/binary"
	"io"
	"math"
)

// Source fills buf with interleaved stereo samples. It runs on the audio
// device goroutine and must not block or allocate.
type Source func(buf []float32)

// Stream adapts a Source to the little-endian float32 byte stream the
// output device reads. Samples are clamped to [-1, 1].
type Stream struct {
	src      Source
	stopChan <-chan struct{}
	samples  []float32
	bytes    []byte
	pos      int
}

// NewStream returns a stream that asks src for frames stereo frames at a
// time until stop is closed.
func NewStream(src Source, frames int, stop <-chan struct{}) *Stream {
	frames = max(frames, 1)

	return &Stream{
		src:      src,
		stopChan: stop,
		samples:  make([]float32, 2*frames),
		bytes:    make([]byte, 8*frames),
		pos:      8 * frames,
	}
}

// Read implements io.Reader. It returns io.EOF once stopped and drained.
func (s *Stream) Read(buf []byte) (int, error) {
	total := 0

	for total < len(buf) {
		if s.pos >= len(s.bytes) {
			select {
			case <-s.stopChan:
				if total == 0 {
					return 0, io.EOF
				}
				return total, nil
			default:
			}

			s.fill()
		}

		n := copy(buf[total:], s.bytes[s.pos:])
		s.pos += n
		total += n
	}

	return total, nil
}

func (s *Stream) fill() {
	s.src(s.samples)

	for i, v := range s.samples {
		v = float32(math.Max(-1, math.Min(1, float64(v))))
		binary.LittleEndian.PutUint32(s.bytes[4*i:], math.Float32bits(v))
	}

	s.pos = 0
}
