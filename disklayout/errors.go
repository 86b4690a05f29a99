// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package disklayout

import (
	"github.com/siderolabs/go-disklayout/partitioning/gpt"
	"github.com/siderolabs/go-disklayout/partitioning/mbr"
)

// Errors returned together with a partial layout.
var (
	ErrHeaderCorrupt     = gpt.ErrHeaderCorrupt
	ErrEntryArrayCorrupt = gpt.ErrEntryArrayCorrupt
	ErrCorruptChain      = mbr.ErrCorruptChain
)
