// SPDX-License-Identifier: EPL-2.0

package audxfade

import "github.com/ik5/audxfade/utils"

// AppendPCM16 converts src to 16 bit PCM and appends it to dst, growing dst
// at most once.
func AppendPCM16(dst []int16, src []float32) []int16 {
	start := len(dst)

	if cap(dst)-start < len(src) {
		grown := make([]int16, start, start+max(len(src), cap(dst)))
		copy(grown, dst)
		dst = grown
	}

	dst = dst[:start+len(src)]
	for i, x := range src {
		dst[start+i] = utils.Float32ToInt16(x)
	}

	return dst
}
