// SPDX-License-Identifier: EPL-2.0

package wavtomp3

// Report summarises a finished conversion. Sizes are -1 when the file could
// not be stat'ed.
type Report struct {
	Format     string `json:"format"`
	InputPath  string `json:"input_path"`
	OutputPath string `json:"output_path"`

	SampleRate    int `json:"sample_rate"`
	Channels      int `json:"channels"`
	BitsPerSample int `json:"bits_per_sample"`

	InputSize    int64 `json:"input_size"`
	OutputSize   int64 `json:"output_size"`
	BytesWritten int64 `json:"bytes_written"`
	// Frames is the number of MP3 frames encoded, 0 for WAV output.
	Frames int `json:"mp3_frames,omitempty"`
	// CompressionRatio is OutputSize/InputSize, 0 when either is unknown.
	CompressionRatio float64 `json:"compression_ratio"`
}

func (r *Report) computeRatio() {
	if r.InputSize > 0 && r.OutputSize >= 0 {
		r.CompressionRatio = float64(r.OutputSize) / float64(r.InputSize)
	}
}
