// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"

	"github.com/ik5/audxfade/audio"
	"github.com/ik5/audxfade/internal/audiotest"
)

// Example_channelMixer shows a mono source played on a stereo output.
func Example_channelMixer() {
	mono := audiotest.Constant(44100, 1, 4, 0.5)

	stereo, err := audio.NewChannelMixer(mono, 2)
	if err != nil {
		fmt.Println(err)
		return
	}

	buf := make([]float32, 8)
	n, _ := stereo.ReadSamples(buf)

	fmt.Println(stereo.Channels(), n, buf[:n])
	// Output:
	// 2 8 [0.5 0.5 0.5 0.5 0.5 0.5 0.5 0.5]
}

// Example_resampler shows conforming a source to the output rate.
func Example_resampler() {
	src := audiotest.Sine(22050, 2, 22050, 440)
	r := audio.NewResampler(src, 44100)

	fmt.Printf("%d Hz, %d channels\n", r.SampleRate(), r.Channels())
	// Output:
	// 44100 Hz, 2 channels
}

// Example_effect shows the calling convention of an Effect across two
// tracks.
func Example_effect() {
	var fx audio.Effect = passthrough{}

	fx.Start(2, 44100)
	out := fx.Process([]float32{0.1, 0.1})
	tail, status := fx.Finish(nil)
	fmt.Println(len(out), len(tail), status)

	fx.Start(2, 44100)
	_, status = fx.Finish(nil)
	fmt.Println(status)
	// Output:
	// 2 0 done
	// done
}

type passthrough struct{}

func (passthrough) Start(int, int)                 {}
func (passthrough) Process(in []float32) []float32 { return in }
func (passthrough) Flush()                         {}
func (passthrough) Cleanup()                       {}
func (passthrough) Finish(in []float32) ([]float32, audio.FinishStatus) {
	return in, audio.FinishDone
}
