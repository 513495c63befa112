// SPDX-License-Identifier: EPL-2.0

package fadecfg

import "errors"

var (
	ErrTupleArity   = errors.New("fade tuple must have 18 fields")
	ErrTupleField   = errors.New("invalid fade tuple field")
	ErrUnknownEvent = errors.New("unknown fade event")
)
