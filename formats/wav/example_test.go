// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/sfxkit/audio"
	"github.com/ik5/sfxkit/formats/wav"
)

// Example_decoding demonstrates decoding a WAV file.
func Example_decoding() {
	wavData := new(bytes.Buffer)
	_ = wav.WriteWAV16(wavData, 16000, 1, []int16{100, 200, 300, 400, 500})

	source, err := wav.Decoder{}.Decode(wavData)
	if err != nil {
		fmt.Printf("Decode error: %v\n", err)
		return
	}

	fmt.Printf("Sample rate: %d Hz\n", source.SampleRate())
	fmt.Printf("Channels: %d\n", source.Channels())

	buf := make([]float32, 10)
	n, err := source.ReadSamples(buf)
	if err != nil && err != io.EOF {
		fmt.Printf("Read error: %v\n", err)
		return
	}

	fmt.Printf("Read %d samples\n", n)
	// Output:
	// Sample rate: 16000 Hz
	// Channels: 1
	// Read 5 samples
}

// Example_encode exports a float buffer as 16-bit PCM.
func Example_encode() {
	buf := audio.NewBuffer(8000, 2, 1000)
	for f := range 1000 {
		buf.Data[0][f] = 0.5
		buf.Data[1][f] = -0.5
	}

	data, err := wav.EncodeBytes(buf)
	if err != nil {
		fmt.Printf("Encode error: %v\n", err)
		return
	}

	info, err := wav.Validate(data)
	if err != nil {
		fmt.Printf("Invalid file: %v\n", err)
		return
	}

	fmt.Printf("Wrote %d bytes\n", len(data))
	fmt.Printf("Channels: %d, frames: %d, bits: %d\n", info.Channels, info.Frames, info.BitsPerSample)
	fmt.Printf("Duration: %v\n", info.Duration())
	// Output:
	// Wrote 4044 bytes
	// Channels: 2, frames: 1000, bits: 16
	// Duration: 125ms
}

// Example_roundTrip shows encoding and then decoding.
func Example_roundTrip() {
	original := []int16{-1000, -500, 0, 500, 1000}

	wavData := new(bytes.Buffer)
	if err := wav.WriteWAV16(wavData, 8000, 1, original); err != nil {
		fmt.Printf("Encode error: %v\n", err)
		return
	}

	source, err := wav.Decoder{}.Decode(wavData)
	if err != nil {
		fmt.Printf("Decode error: %v\n", err)
		return
	}

	decoded, _ := audio.ReadAll(source)

	recovered := wav.Quantize(decoded)
	fmt.Printf("Original:  %v\n", original)
	fmt.Printf("Recovered: %v\n", recovered)
	// Output:
	// Original:  [-1000 -500 0 500 1000]
	// Recovered: [-1000 -500 0 500 1000]
}

// Example_errorNotWAV shows handling of invalid WAV files.
func Example_errorNotWAV() {
	_, err := wav.Decoder{}.Decode(bytes.NewReader([]byte("This is not a WAV file")))
	if errors.Is(err, wav.ErrNotWavFile) {
		fmt.Println("Error: not a WAV file")
	}
	// Output:
	// Error: not a WAV file
}
