// Package audio plays alarm cues through the system audio device.
package audio

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Global audio context singleton
var (
	globalAudioCtx     *oto.Context
	globalAudioCtxOnce sync.Once
	audioCtxReady      bool
)

// Clip is a decoded audio cue ready for playback
type Clip struct {
	format wavFormat
	data   []byte
}

// Service loads and plays alarm cues. Loaded clips are cached by path.
type Service struct {
	mu    sync.Mutex
	clips map[string]*Clip
}

func NewService() *Service {
	return &Service{clips: make(map[string]*Clip)}
}

// Load returns the clip for the given file path. An empty ref yields the
// built-in tone, so no sound file needs to ship with the binary.
func (s *Service) Load(ref string) (*Clip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if clip, ok := s.clips[ref]; ok {
		return clip, nil
	}

	var clip *Clip
	if ref == "" {
		clip = builtinTone()
	} else {
		wavData, err := os.ReadFile(ref)
		if err != nil {
			return nil, fmt.Errorf("failed to read sound file: %w", err)
		}
		format, audioData, err := parseWAV(wavData)
		if err != nil {
			return nil, fmt.Errorf("failed to parse sound file %s: %w", ref, err)
		}
		clip = &Clip{format: *format, data: audioData}
	}

	s.clips[ref] = clip
	return clip, nil
}

// Play starts playback of the cue at ref and returns a stop function.
// With loop set, the cue repeats until stopped.
func (s *Service) Play(ref string, loop bool) (func(), error) {
	clip, err := s.Load(ref)
	if err != nil {
		return nil, err
	}

	initAudioContext(&clip.format)
	if !audioCtxReady || globalAudioCtx == nil {
		return nil, fmt.Errorf("audio context not ready")
	}

	p := &playback{stopChan: make(chan struct{})}
	go p.run(clip.data, loop)

	return p.stop, nil
}

// initAudioContext initializes the global audio context once
func initAudioContext(format *wavFormat) {
	globalAudioCtxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   format.SampleRate,
			ChannelCount: format.Channels,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			log.Printf("Failed to initialize audio context: %v", err)
			return
		}

		// Wait for the hardware audio devices to be ready
		<-readyChan

		globalAudioCtx = ctx
		audioCtxReady = true
	})
}

// playback is one running cue with cancellation support
type playback struct {
	stopChan chan struct{}
	player   *oto.Player
	stopped  bool
	mu       sync.Mutex
}

func (p *playback) run(audioData []byte, loop bool) {
	for {
		// Create a new player for each loop iteration
		p.player = globalAudioCtx.NewPlayer(bytes.NewReader(audioData))
		p.player.Play()

		// Wait for the sound to finish playing or a stop signal
		for p.player.IsPlaying() {
			select {
			case <-p.stopChan:
				p.player.Pause()
				p.player.Close()
				return
			case <-time.After(10 * time.Millisecond):
				// Continue checking
			}
		}

		if err := p.player.Close(); err != nil {
			log.Printf("Failed to close audio player: %v", err)
		}

		if !loop {
			return
		}

		// Check if stop was requested between loops
		select {
		case <-p.stopChan:
			return
		default:
		}
	}
}

func (p *playback) stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.stopped {
		p.stopped = true
		close(p.stopChan)

		if p.player != nil {
			p.player.Pause()
		}
	}
}
