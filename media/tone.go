package media

import (
	"encoding/binary"
	"math"
	"time"
)

// TonePCM renders a sine tone with a short linear fade in and out as 16-bit
// little-endian stereo PCM, the layout ebiten's audio players take.
func TonePCM(sampleRate int, freq float64, dur time.Duration, volume float64) []byte {
	n := int(float64(sampleRate) * dur.Seconds())
	if n <= 0 || sampleRate <= 0 {
		return nil
	}
	fade := max(1, min(n/4, sampleRate/100))

	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		env := 1.0
		if i < fade {
			env = float64(i) / float64(fade)
		} else if n-1-i < fade {
			env = float64(n-1-i) / float64(fade)
		}
		v := math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)) * env * volume
		s := int16(max(-1, min(1, v)) * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(s))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(s))
	}
	return buf
}
