// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMixer maps a source to a different channel count.
//
// With fewer output channels, output channel c is the average of every input
// channel i where i%out == c, so stereo to mono averages L and R. With more
// output channels, output channel c repeats input channel c%in, so mono to
// stereo duplicates.
type ChannelMixer struct {
	src Source
	out int
	tmp []float32
}

func NewChannelMixer(src Source, channels int) (*ChannelMixer, error) {
	if channels <= 0 || src.Channels() <= 0 {
		return nil, ErrInvalidChannels
	}

	return &ChannelMixer{
		src: src,
		out: channels,
	}, nil
}

// NewMonoMixer downmixes src to one channel.
func NewMonoMixer(src Source) *ChannelMixer {
	m, _ := NewChannelMixer(src, 1)
	return m
}

func (m *ChannelMixer) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMixer) Channels() int   { return m.out }
func (m *ChannelMixer) BufSize() int    { return m.src.BufSize() }

func (m *ChannelMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *ChannelMixer) ReadSamples(dst []float32) (int, error) {
	in := m.src.Channels()
	if in == m.out {
		return m.src.ReadSamples(dst)
	}

	if len(dst)%m.out != 0 {
		return 0, ErrInvalidDstSize
	}

	frames := len(dst) / m.out
	if frames == 0 {
		return 0, nil
	}

	need := frames * in
	if cap(m.tmp) < need {
		// grow with headroom, never shrink
		m.tmp = make([]float32, max(need, 8192))
	}
	m.tmp = m.tmp[:need]

	n, err := m.src.ReadSamples(m.tmp)
	got := n / in

	if in > m.out {
		m.fold(dst[:got*m.out], m.tmp[:got*in], in)
	} else {
		m.spread(dst[:got*m.out], m.tmp[:got*in], in)
	}

	return got * m.out, err
}

func (m *ChannelMixer) fold(dst, src []float32, in int) {
	if m.out == 1 && in == 2 {
		for f := range len(dst) {
			dst[f] = (src[2*f] + src[2*f+1]) * 0.5
		}
		return
	}

	// number of inputs folded into each output channel
	var weight [64]float32
	var w []float32
	if m.out <= len(weight) {
		w = weight[:m.out]
	} else {
		w = make([]float32, m.out)
	}
	for i := range in {
		w[i%m.out]++
	}

	for f := range len(dst) / m.out {
		o := dst[f*m.out : (f+1)*m.out]
		clear(o)
		for i, v := range src[f*in : (f+1)*in] {
			o[i%m.out] += v
		}
		for c := range o {
			o[c] /= w[c]
		}
	}
}

func (m *ChannelMixer) spread(dst, src []float32, in int) {
	for f := range len(dst) / m.out {
		frame := src[f*in : (f+1)*in]
		for c := range m.out {
			dst[f*m.out+c] = frame[c%in]
		}
	}
}
