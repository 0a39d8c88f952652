// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/audgrain/audio"
)

func TestWriteWAV16_Header(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteWAV16(&buf, 44100, 2, []int16{1, 2, 3, 4}); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	data := buf.Bytes()
	if len(data) != headerSize+8 {
		t.Fatalf("file size = %d, want %d", len(data), headerSize+8)
	}

	checks := []struct {
		name string
		got  uint32
		want uint32
	}{
		{"riff size", binary.LittleEndian.Uint32(data[4:8]), 36 + 8},
		{"format", uint32(binary.LittleEndian.Uint16(data[20:22])), 1},
		{"channels", uint32(binary.LittleEndian.Uint16(data[22:24])), 2},
		{"sample rate", binary.LittleEndian.Uint32(data[24:28]), 44100},
		{"byte rate", binary.LittleEndian.Uint32(data[28:32]), 44100 * 4},
		{"block align", uint32(binary.LittleEndian.Uint16(data[32:34])), 4},
		{"bits", uint32(binary.LittleEndian.Uint16(data[34:36])), 16},
		{"data size", binary.LittleEndian.Uint32(data[40:44]), 8},
	}

	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}

	for i, marker := range map[int]string{0: "RIFF", 8: "WAVE", 12: "fmt ", 36: "data"} {
		if got := string(data[i : i+4]); got != marker {
			t.Errorf("marker at %d = %q, want %q", i, got, marker)
		}
	}
}

func TestWriteWAV16_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteWAV16(&buf, 8000, 1, nil); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	if buf.Len() != headerSize {
		t.Errorf("file size = %d, want %d", buf.Len(), headerSize)
	}
}

func TestWriteWAV16_InvalidChannels(t *testing.T) {
	t.Parallel()

	if err := WriteWAV16(&bytes.Buffer{}, 8000, 0, nil); !errors.Is(err, ErrInvalidChannels) {
		t.Errorf("WriteWAV16() error = %v, want ErrInvalidChannels", err)
	}
}

func TestWriteWAV16_LargeInput(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 20000)
	for i := range samples {
		samples[i] = int16(i - 10000)
	}

	var buf bytes.Buffer
	if err := WriteWAV16(&buf, 8000, 1, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	data := buf.Bytes()[headerSize:]
	for _, i := range []int{0, 8191, 8192, 19999} {
		if got := int16(binary.LittleEndian.Uint16(data[2*i:])); got != samples[i] {
			t.Errorf("sample %d = %d, want %d", i, got, samples[i])
		}
	}
}

func TestWriter_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, depth := range []int{16, 24, 32} {
		path := filepath.Join(t.TempDir(), "out.wav")

		f, err := os.Create(path)
		if err != nil {
			t.Fatal(err)
		}

		w, err := NewWriter(f, 16000, 2, depth)
		if err != nil {
			t.Fatalf("NewWriter(%d) error = %v", depth, err)
		}

		in := []float32{0, 0.5, -0.5, 0.25, 1, -1, 2, -2}
		if err := w.Write(in[:4]); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		if err := w.Write(in[4:]); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		_ = f.Close()

		f, err = os.Open(path)
		if err != nil {
			t.Fatal(err)
		}

		src, err := Decoder{}.Decode(f)
		if err != nil {
			t.Fatalf("%d bit: Decode() error = %v", depth, err)
		}

		if src.SampleRate() != 16000 || src.Channels() != 2 {
			t.Errorf("%d bit: got %d Hz %d channels", depth, src.SampleRate(), src.Channels())
		}

		got := readAll(t, src)
		_ = f.Close()

		if len(got) != len(in) {
			t.Fatalf("%d bit: decoded %d samples, want %d", depth, len(got), len(in))
		}

		for i, x := range in {
			want := max(min(x, 1), -1)
			if math.Abs(float64(got[i]-want)) > 1e-4 {
				t.Errorf("%d bit: sample %d = %v, want %v", depth, i, got[i], want)
			}
		}
	}
}

func TestNewWriter_Validation(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := NewWriter(f, 8000, 0, 16); !errors.Is(err, ErrInvalidChannels) {
		t.Errorf("0 channels: error = %v, want ErrInvalidChannels", err)
	}

	for _, depth := range []int{8, 12} {
		if _, err := NewWriter(f, 8000, 1, depth); !errors.Is(err, ErrUnsupportedBitDepth) {
			t.Errorf("%d bit: error = %v, want ErrUnsupportedBitDepth", depth, err)
		}
	}

	w, _ := NewWriter(f, 8000, 2, 16)
	if err := w.Write(make([]float32, 3)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("odd write: error = %v, want ErrInvalidDstSize", err)
	}
}

func BenchmarkWriteWAV16(b *testing.B) {
	samples := make([]int16, 48000)
	var buf bytes.Buffer

	b.ReportAllocs()

	for b.Loop() {
		buf.Reset()
		_ = WriteWAV16(&buf, 48000, 1, samples)
	}
}
