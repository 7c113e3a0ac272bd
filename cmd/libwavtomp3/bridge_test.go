// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/wavtomp3/formats/wav"
)

func TestConvertWavToMp3(t *testing.T) {
	dir := t.TempDir()

	var buf bytes.Buffer
	if err := wav.WriteWAV16(&buf, 22050, 2, make([]int16, 22050)); err != nil {
		t.Fatal(err)
	}
	in := filepath.Join(dir, "in.wav")
	if err := os.WriteFile(in, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		input  string
		output string
		want   int
	}{
		{"plain paths", in, filepath.Join(dir, "a.mp3"), 0},
		{"file scheme", "file://" + in, "file://" + filepath.Join(dir, "b.mp3"), 0},
		{"missing input", filepath.Join(dir, "none.wav"), filepath.Join(dir, "c.mp3"), -1},
		{"empty input", "", filepath.Join(dir, "d.mp3"), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := convertWavToMp3(tt.input, tt.output, -1, -1); got != tt.want {
				t.Errorf("convertWavToMp3() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConvertAudioToMp3(t *testing.T) {
	dir := t.TempDir()

	in := filepath.Join(dir, "in.pcm")
	if err := os.WriteFile(in, make([]byte, 8820), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := convertAudioToMp3(in, filepath.Join(dir, "out.mp3"), "pcm", 64, 9); got != 0 {
		t.Errorf("convertAudioToMp3() = %d, want 0", got)
	}
	if got := convertAudioToMp3(in, filepath.Join(dir, "missing", "out.mp3"), "", -1, -1); got != -1 {
		t.Errorf("convertAudioToMp3() = %d, want -1", got)
	}
}
