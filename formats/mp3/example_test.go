// SPDX-License-Identifier: EPL-2.0

package mp3_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ik5/audxfade/formats/mp3"
	"github.com/ik5/audxfade/stream"
)

func ExampleDecoder_Decode() {
	f, err := os.Open("input.mp3")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	src, err := mp3.Decoder{}.Decode(f)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%d Hz, %d channels\n", src.SampleRate(), src.Channels())
}

// Network streams are decoded through a blocking stream reader.
func ExampleDecoder_Decode_stream() {
	ctx := context.Background()

	h, err := stream.Open(ctx, "http://radio.example.com/live.mp3", stream.Options{})
	if err != nil {
		log.Fatal(err)
	}
	defer h.Close()

	src, err := mp3.Decoder{}.Decode(stream.Blocking(ctx, h))
	if err != nil {
		log.Fatal(err)
	}

	buf := make([]float32, 4096)
	for {
		n, err := src.ReadSamples(buf)
		if err != nil {
			break
		}
		_ = buf[:n]

		if title, ok := h.Metadata("track-name"); ok {
			fmt.Println("now playing:", title)
		}
	}
}
