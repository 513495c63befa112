// SPDX-License-Identifier: EPL-2.0

// Package crossfade implements an audio.Effect that overlaps the end of one
// track with the start of the next.
//
// The engine keeps the last Config.Length of every track. When the track
// ends the kept audio is faded out and carried over; the next track is faded
// in on top of it. Ramps are linear: sample i of a block of n spanning window
// fractions a..b is scaled by (a*(n-i) + b*i) / n.
//
//	fx := crossfade.New(crossfade.Config{Length: 5 * time.Second})
//
//	fx.Start(2, 44100)
//	play(fx.Process(chunk))
//	out, _ := fx.Finish(last) // FinishPending: tail carried over
//	play(out)
//
//	fx.Start(2, 44100)        // next track mixes into the tail
//	...
//	out, _ = fx.Finish(last)
//	play(out)
//	out, _ = fx.Finish(nil)   // FinishDone: end of playback
//	play(out)
//
// States move Off -> Prebuffer -> Running -> Between, and from Between either
// back to Prebuffer (next track) or through Stopping to Off.
//
// Audio is released in blocks of at least half a second so that the buffer
// is shifted rarely. Once the buffers have grown, Process does not allocate.
package crossfade
