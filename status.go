// SPDX-License-Identifier: EPL-2.0

package wavtomp3

const (
	StatusOK     = 0
	StatusFailed = -1
)

// Status collapses err to the code returned across the C boundary: 0 on
// success, -1 for any failure. Details only reach the log.
func Status(err error) int {
	if err != nil {
		return StatusFailed
	}
	return StatusOK
}
