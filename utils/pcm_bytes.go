// SPDX-License-Identifier: EPL-2.0

package utils

import "encoding/binary"

// Int16sToBytes writes samples as little-endian PCM into dst and returns the
// filled slice. dst is grown when it is too small.
func Int16sToBytes(dst []byte, samples []int16) []byte {
	need := len(samples) * 2
	if cap(dst) < need {
		dst = make([]byte, need)
	}
	dst = dst[:need]
	for i, s := range samples {
		binary.LittleEndian.PutUint16(dst[2*i:], uint16(s))
	}
	return dst
}

// BytesToInt16s decodes little-endian PCM from src into dst and returns the
// number of samples written. A trailing odd byte is ignored.
func BytesToInt16s(dst []int16, src []byte) int {
	n := min(len(src)/2, len(dst))
	for i := range n {
		dst[i] = int16(binary.LittleEndian.Uint16(src[2*i:]))
	}
	return n
}
