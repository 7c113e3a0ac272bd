// SPDX-License-Identifier: EPL-2.0

package wavtomp3

import "strings"

const fileScheme = "file://"

// StripFileScheme removes a single leading "file://" from path. Hosts that
// pass URIs instead of filesystem paths rely on this.
func StripFileScheme(path string) string {
	return strings.TrimPrefix(path, fileScheme)
}
