// SPDX-License-Identifier: MPL-2.0

package menu

import "errors"

// ErrNoMenuFile is returned when no root menu document is configured and
// none exists on the XDG menu search path.
var ErrNoMenuFile = errors.New("no root menu file found")
