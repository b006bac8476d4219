// Package carrier implements the steganographic codecs: how framed bytes are
// hidden in, and recovered from, a host file held in memory.
//
// Three codecs satisfy the Codec interface:
//
//   - Image: one payload bit per R, G or B channel LSB, pixels in row-major
//     order, alpha never touched. 8-bit RGB(A) carriers only.
//   - Audio: one payload bit per 16-bit PCM sample LSB, samples in stream
//     order with channels interleaved as stored.
//   - Document: framed bytes appended verbatim after the last end-of-file
//     marker (%%EOF for PDF). Readers stop at the marker, so the trailer is
//     invisible to normal consumption. This is a concealment convention of the
//     format, not a security boundary.
//
// Bits are written most-significant first. Codecs never mutate the carrier
// slice they are given; Embed returns a new encoding of the carrier. Every
// codec rejects a payload that does not fit before building any output.
//
// The codecs know nothing about each other or about encryption. Callers pick
// one with ForKind, usually after DetectKind on the carrier's file name.
package carrier
