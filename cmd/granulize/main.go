// SPDX-License-Identifier: EPL-2.0

// Command granulize runs a grain cloud over an audio file or a test tone and
// writes the result to a WAV file or plays it live.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ik5/audgrain"
	"github.com/ik5/audgrain/audio"
	"github.com/ik5/audgrain/granular"
	"github.com/ik5/audgrain/internal/player"
	"github.com/ik5/audgrain/internal/preset"
	"github.com/ik5/audgrain/internal/transport"
)

var (
	inPath     = flag.String("in", "", "Source audio file (wav, aiff, mp3, ogg); empty uses a test tone")
	toneHz     = flag.Float64("tone", 220, "Test tone frequency in Hz when -in is empty")
	outPath    = flag.String("out", "", "Render to this WAV file; - writes 16-bit WAV to stdout")
	bitDepth   = flag.Int("bits", 16, "WAV bit depth: 16, 24 or 32")
	seconds    = flag.Float64("seconds", 5, "Length to render or play")
	presetPath = flag.String("preset", "", "JSON preset file")
	watch      = flag.Bool("watch", false, "Reload -preset on change while playing")
	play       = flag.Bool("play", false, "Play through the default audio device")
	rate       = flag.Int("rate", 48000, "Resample the source to this rate in Hz")
	mono       = flag.Bool("mono", false, "Fold the source to mono before granulating")
	channels   = flag.Int("channels", granular.DefaultChannels, "Output channels")
	maxGrains  = flag.Int("max-grains", granular.DefaultMaxGrains, "Grain arena capacity")
	latency    = flag.Duration("latency", 50*time.Millisecond, "Playback buffer length")
	formats    = flag.Bool("formats", false, "List the supported input formats and exit")
)

func main() {
	flag.Parse()

	if *formats {
		fmt.Println(strings.Join(audgrain.DefaultRegistry().Formats(), "\n"))
		return
	}

	if *outPath == "" && !*play {
		log.Fatal("nothing to do: pass -out, -play or both")
	}

	buf, err := loadSource()
	if err != nil {
		log.Fatalf("loading source: %v", err)
	}
	log.Printf("source: %d frames, %d channels at %v Hz (%v)",
		buf.Len(), buf.Channels(), buf.SampleRate(), buf.Duration())

	p := preset.Default()
	if *presetPath != "" {
		if p, err = preset.Read(*presetPath); err != nil {
			log.Fatalf("%v", err)
		}
	}

	cloud := granular.NewCloud(
		granular.WithChannels(*channels),
		granular.WithMaxGrains(*maxGrains),
	)
	ctl := cloud.Controller()

	if err := ctl.SetAudioSource(buf); err != nil {
		log.Fatalf("setting source: %v", err)
	}
	if err := p.Apply(ctl, buf.Len()); err != nil {
		log.Fatalf("%v", err)
	}

	frames := int(math.Round(*seconds * buf.SampleRate()))

	if *outPath != "" {
		if err := renderFile(cloud, frames); err != nil {
			log.Fatalf("rendering %s: %v", *outPath, err)
		}
		log.Printf("wrote %d frames to %s", frames, *outPath)
	}

	if *play {
		if err := playLive(cloud, ctl, buf); err != nil {
			log.Fatalf("playing: %v", err)
		}
	}
}

func loadSource() (*audio.Buffer, error) {
	if *inPath != "" {
		opts := []audgrain.LoadOption{audgrain.WithSampleRate(*rate)}
		if *mono {
			opts = append(opts, audgrain.WithMono())
		}
		return audgrain.LoadFile(*inPath, opts...)
	}

	tone, err := audio.NewTone(audio.Sine{}, *toneHz, float64(*rate))
	if err != nil {
		return nil, err
	}
	// two seconds gives the cloud room to scatter
	return audio.NewToneBuffer(tone, 1, 2*(*rate))
}

func renderFile(cloud *granular.Cloud, frames int) error {
	if *outPath == "-" {
		return audgrain.RenderWAV16(os.Stdout, cloud, frames)
	}

	f, err := os.Create(*outPath)
	if err != nil {
		return err
	}

	if err := audgrain.RenderWAV(f, cloud, frames, *bitDepth); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

func playLive(cloud *granular.Cloud, ctl *granular.Controller, buf *audio.Buffer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m transport.Machine
	stream := player.NewStream(cloud, &m, 4096)

	out, err := player.Open(stream, int(math.Round(buf.SampleRate())), *latency)
	if err != nil {
		return err
	}

	if *watch && *presetPath != "" {
		go func() {
			blocking := ctl.WithContext(ctx)
			err := preset.Watch(ctx, *presetPath,
				func(p preset.Preset) {
					if err := p.Apply(blocking, buf.Len()); err != nil {
						log.Printf("applying preset: %v", err)
						return
					}
					log.Printf("preset reloaded")
				},
				func(err error) { log.Printf("watching preset: %v", err) },
			)
			if err != nil {
				log.Printf("%v", err)
			}
		}()
	}

	m.Play()
	log.Printf("playing for %v, interrupt to stop", time.Duration(*seconds*float64(time.Second)))

	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(*seconds * float64(time.Second))):
	}

	m.Stop()
	waitStopped(&m, time.Second)

	return out.Close()
}

// waitStopped waits for the audio callback to see the stop and reset the cloud.
func waitStopped(m *transport.Machine, limit time.Duration) {
	deadline := time.Now().Add(limit)
	for m.State() != transport.Stopped && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
}
