package audio

import "math"

const (
	toneSampleRate = 44100
	toneFrequency  = 880.0 // Hz
	beepDuration   = 0.4   // seconds of tone
	restDuration   = 0.25  // seconds of silence after the tone
)

// builtinTone synthesizes the default alarm cue: a short sine beep followed
// by silence, sized so looped playback rings roughly twice a second less a
// beat. Generating PCM here avoids bundling an audio asset with the binary.
func builtinTone() *Clip {
	beepSamples := int(toneSampleRate * beepDuration)
	restSamples := int(toneSampleRate * restDuration)

	data := make([]byte, (beepSamples+restSamples)*2)
	for i := 0; i < beepSamples; i++ {
		// Fade the edges to avoid clicks at loop boundaries
		envelope := 1.0
		fade := toneSampleRate / 100
		if i < fade {
			envelope = float64(i) / float64(fade)
		} else if i > beepSamples-fade {
			envelope = float64(beepSamples-i) / float64(fade)
		}

		sample := math.Sin(2 * math.Pi * toneFrequency * float64(i) / toneSampleRate)
		value := int16(sample * envelope * 0.6 * math.MaxInt16)

		data[2*i] = byte(value)
		data[2*i+1] = byte(value >> 8)
	}

	return &Clip{
		format: wavFormat{SampleRate: toneSampleRate, Channels: 1, BitDepth: 16},
		data:   data,
	}
}
