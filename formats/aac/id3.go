// SPDX-License-Identifier: EPL-2.0

package aac

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

const (
	id3HeaderSize = 10
	id3FooterSize = 10
	id3FlagFooter = 0x10
)

// ID3Size returns the full length of the ID3v2 tag at the start of b, header
// and footer included, or 0 when b does not start with one.
func ID3Size(b []byte) int {
	if len(b) < id3HeaderSize || !bytes.Equal(b[:3], []byte("ID3")) {
		return 0
	}
	// version bytes are never 0xFF and the size is four 7-bit groups
	if b[3] == 0xFF || b[4] == 0xFF || (b[6]|b[7]|b[8]|b[9])&0x80 != 0 {
		return 0
	}

	size := int(b[6])<<21 | int(b[7])<<14 | int(b[8])<<7 | int(b[9])
	size += id3HeaderSize
	if b[5]&id3FlagFooter != 0 {
		size += id3FooterSize
	}
	return size
}

// skipID3 discards every ID3v2 tag at the head of br and returns the number
// of bytes dropped.
func skipID3(br *bufio.Reader) (int64, error) {
	var skipped int64
	for {
		head, err := br.Peek(id3HeaderSize)
		if err != nil && err != io.EOF {
			return skipped, fmt.Errorf("%w", err)
		}
		n := ID3Size(head)
		if n == 0 {
			return skipped, nil
		}

		d, err := br.Discard(n)
		skipped += int64(d)
		if err == io.EOF {
			return skipped, fmt.Errorf("%w: ID3 tag of %d bytes runs past the end", ErrInvalidADTS, n)
		}
		if err != nil {
			return skipped, fmt.Errorf("%w", err)
		}
	}
}
