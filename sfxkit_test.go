// SPDX-License-Identifier: EPL-2.0

package sfxkit

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/sfxkit/decode"
	"github.com/ik5/sfxkit/formats/wav"
	"github.com/ik5/sfxkit/internal/audiotest"
	"github.com/ik5/sfxkit/mixer"
	"github.com/ik5/sfxkit/transform"
)

// writeSound stores a constant mono tone as a WAV file.
func writeSound(t *testing.T, dir, name string, rate, frames int) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := wav.WriteFile(path, audiotest.Constant(rate, 1, frames, 0.25)); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestExportWAV(t *testing.T) {
	t.Parallel()

	path := writeSound(t, t.TempDir(), "click.wav", 8000, 800)
	p := transform.Params{Volume: 100, Pitch: 0, Speed: 100, Duration: 50}

	var out bytes.Buffer
	if err := ExportWAV(context.Background(), path, p, &out); err != nil {
		t.Fatalf("ExportWAV() error = %v", err)
	}

	info, err := wav.Validate(out.Bytes())
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if info.Frames != 400 || info.SampleRate != 8000 || info.Channels != 1 {
		t.Errorf("exported %+v, want 400 mono frames at 8000 Hz", info)
	}
}

func TestExportWAV_Failures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeSound(t, dir, "click.wav", 8000, 800)

	tests := []struct {
		name    string
		locator string
		params  transform.Params
		wantErr error
	}{
		{"missing file", filepath.Join(dir, "nope.wav"), transform.DefaultParams(), decode.ErrUnreachable},
		{"invalid params", path, transform.Params{Volume: 100, Speed: 10, Duration: 100}, transform.ErrInvalidParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			err := ExportWAV(context.Background(), tt.locator, tt.params, &out)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ExportWAV() error = %v, want %v", err, tt.wantErr)
			}
			if out.Len() != 0 {
				t.Errorf("failed export wrote %d bytes", out.Len())
			}
		})
	}
}

func TestMixWAV(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	click := writeSound(t, dir, "click.wav", 44100, 4410)
	swipe := writeSound(t, dir, "swipe.wav", 22050, 2205)

	var out bytes.Buffer
	err := MixWAV(context.Background(), []mixer.Spec{
		{ID: "click", Locator: click, Volume: 100},
		{ID: "swipe", Locator: swipe, Volume: 60, Delay: 0.5},
	}, &out)
	if err != nil {
		t.Fatalf("MixWAV() error = %v", err)
	}

	info, err := wav.Validate(out.Bytes())
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if info.Channels != 2 || info.SampleRate != mixer.DefaultSampleRate {
		t.Errorf("mix format = %d Hz %d ch", info.SampleRate, info.Channels)
	}
	// 0.5s delay, swipe resampled to 44.1 kHz, 2s tail
	if want := 22050 + 4410 + 88200; info.Frames < want-2 || info.Frames > want {
		t.Errorf("mix has %d frames, want about %d", info.Frames, want)
	}
}

func TestMixWAV_FailingLayer(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	click := writeSound(t, dir, "click.wav", 8000, 800)

	var out bytes.Buffer
	err := MixWAV(context.Background(), []mixer.Spec{
		{ID: "click", Locator: click, Volume: 100},
		{ID: "gone", Locator: filepath.Join(dir, "gone.wav"), Volume: 100},
	}, &out)

	var merr *mixer.MixError
	if !errors.As(err, &merr) || merr.ID != "gone" {
		t.Fatalf("MixWAV() error = %v, want MixError for gone", err)
	}
	if out.Len() != 0 {
		t.Errorf("failed mix wrote %d bytes", out.Len())
	}
	if _, err := os.Stat(click); err != nil {
		t.Errorf("source file disturbed: %v", err)
	}
}
