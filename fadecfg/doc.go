// SPDX-License-Identifier: EPL-2.0

// Package fadecfg describes how a track transition should sound and resolves
// that description into concrete fade lengths, volumes and offsets.
//
// A FadeConfig is one persisted record: a fade type plus the parameters the
// type needs. A Config holds one record per transition event (automatic
// songchange, manual skip, album change, playback start, stop, end of
// playlist, seek and pause) together with the mixing buffer settings.
//
// Every resolver function is pure. Volumes are stored as given and clamped to
// 0..100 only when resolved:
//
//	cfg := fadecfg.Default()
//	tr := cfg.Resolve(fadecfg.EventXFade)
//	fmt.Println(tr.FadeOut, tr.FadeIn, tr.Offset) // 6000 6000 -6000
//
// Records are persisted as 18 comma separated integers in a fixed field
// order; see ParseTuple and FadeConfig.Tuple.
package fadecfg
