// SPDX-License-Identifier: EPL-2.0

// Command libwavtomp3 is built with -buildmode=c-shared and exposes the
// conversions to C callers:
//
//	int WavToMp3_ConvertWavToMp3(char* input, char* output, int bitrate, int quality);
//	int WavToMp3_ConvertAudioToMp3(char* input, char* output, char* format, int bitrate, int quality);
//
// Both return 0 on success and -1 on any failure. Strings are copied; the
// caller keeps ownership. Paths may carry a file:// prefix. A bitrate or
// quality of -1 selects 128 kbps and quality 5.
package main

import "C"

//export WavToMp3_ConvertWavToMp3
func WavToMp3_ConvertWavToMp3(input, output *C.char, bitrate, quality C.int) C.int {
	return C.int(convertWavToMp3(C.GoString(input), C.GoString(output), int(bitrate), int(quality)))
}

//export WavToMp3_ConvertAudioToMp3
func WavToMp3_ConvertAudioToMp3(input, output, format *C.char, bitrate, quality C.int) C.int {
	return C.int(convertAudioToMp3(C.GoString(input), C.GoString(output), C.GoString(format), int(bitrate), int(quality)))
}

func main() {}
