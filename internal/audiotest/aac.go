// SPDX-License-Identifier: EPL-2.0

package audiotest

import "encoding/binary"

// SilentAACFrame is an AAC-LC raw data block for one mono channel with no
// spectral data: 1024 samples of silence.
var SilentAACFrame = []byte{0x01, 0x40, 0x20, 0x07}

// silentASC is the AudioSpecificConfig of LC, 44100 Hz, mono.
var silentASC = []byte{0x12, 0x08}

// AACFrameSamples is the number of samples per channel in one AAC-LC frame.
const AACFrameSamples = 1024

// ADTSFrame wraps payload in a 7-byte ADTS header: LC, 44100 Hz, mono, no
// CRC.
func ADTSFrame(payload []byte) []byte {
	l := 7 + len(payload)
	b := []byte{
		0xFF, 0xF1,
		1<<6 | 4<<2,
		byte(1<<6 | (l>>11)&3),
		byte(l >> 3),
		byte((l&7)<<5 | 0x1F),
		0xFC,
	}
	return append(b, payload...)
}

// SilentADTS returns frames silent ADTS frames, mono 44100 Hz.
func SilentADTS(frames int) []byte {
	var out []byte
	for range frames {
		out = append(out, ADTSFrame(SilentAACFrame)...)
	}
	return out
}

// SilentM4A returns a minimal M4A file holding frames silent AAC-LC frames,
// mono 44100 Hz, all in one chunk.
func SilentM4A(frames int) []byte {
	ftyp := box("ftyp", []byte("M4A "), u32(0), []byte("isomM4A "))

	sizes := make([]uint32, frames)
	var mdat []byte
	for i := range frames {
		sizes[i] = uint32(len(SilentAACFrame))
		mdat = append(mdat, SilentAACFrame...)
	}

	moov := func(chunkOffset uint32) []byte {
		stbl := box("stbl",
			fullBox("stsd", u32(1), mp4a()),
			fullBox("stts", u32(1, uint32(frames), AACFrameSamples)),
			fullBox("stsc", u32(1, 1, uint32(frames), 1)),
			fullBox("stsz", u32(0, uint32(frames)), u32(sizes...)),
			fullBox("stco", u32(1, chunkOffset)),
		)
		mdia := box("mdia",
			fullBox("mdhd", u32(0, 0, 44100, uint32(frames*AACFrameSamples)), u16(0x55C4, 0)),
			fullBox("hdlr", u32(0), []byte("soun"), u32(0, 0, 0), []byte("SoundHandler\x00")),
			box("minf", stbl),
		)
		return box("moov", box("trak", mdia))
	}

	// the offset field has a fixed width, so one sizing pass is enough
	offset := uint32(len(ftyp) + len(moov(0)) + 8)

	out := append(ftyp, moov(offset)...)
	return append(out, box("mdat", mdat)...)
}

func mp4a() []byte {
	dsi := append([]byte{0x05, byte(len(silentASC))}, silentASC...)
	dcd := append([]byte{0x04, byte(13 + len(dsi)), 0x40, 0x15, 0, 0, 0}, u32(64000, 64000)...)
	dcd = append(dcd, dsi...)
	sl := []byte{0x06, 0x01, 0x02}
	es := append([]byte{0x03, byte(3 + len(dcd) + len(sl)), 0x00, 0x01, 0x00}, dcd...)
	es = append(es, sl...)

	return box("mp4a",
		make([]byte, 6), u16(1), // reserved, data reference index
		u16(0), make([]byte, 6), // entry version, reserved
		u16(1, 16, 0, 0), // channels, sample size, pre-defined, reserved
		u32(44100<<16),
		fullBox("esds", es),
	)
}

func box(typ string, payload ...[]byte) []byte {
	size := 8
	for _, p := range payload {
		size += len(p)
	}
	b := make([]byte, 8, size)
	binary.BigEndian.PutUint32(b, uint32(size))
	copy(b[4:], typ)
	for _, p := range payload {
		b = append(b, p...)
	}
	return b
}

// fullBox prefixes payload with version 0 and zero flags.
func fullBox(typ string, payload ...[]byte) []byte {
	return box(typ, append([][]byte{{0, 0, 0, 0}}, payload...)...)
}

func u32(v ...uint32) []byte {
	b := make([]byte, 0, 4*len(v))
	for _, x := range v {
		b = binary.BigEndian.AppendUint32(b, x)
	}
	return b
}

func u16(v ...uint16) []byte {
	b := make([]byte, 0, 2*len(v))
	for _, x := range v {
		b = binary.BigEndian.AppendUint16(b, x)
	}
	return b
}
