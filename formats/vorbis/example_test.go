// SPDX-License-Identifier: EPL-2.0

package vorbis_test

import (
	"fmt"
	"strings"

	"github.com/ik5/sfxkit/formats/vorbis"
)

// ExampleDecoder_Decode_errorHandling shows error handling for invalid Ogg Vorbis files.
func ExampleDecoder_Decode_errorHandling() {
	_, err := vorbis.Decoder{}.Decode(strings.NewReader(""))
	if err != nil {
		fmt.Println("not an ogg vorbis stream")
		return
	}

	fmt.Println("decoded")
	// Output:
	// not an ogg vorbis stream
}
