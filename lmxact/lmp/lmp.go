/**
 * Licensed to the Apache Software Foundation (ASF) under one
 * or more contributor license agreements.  See the NOTICE file
 * distributed with this work for additional information
 * regarding copyright ownership.  The ASF licenses this file
 * to you under the Apache License, Version 2.0 (the
 * "License"); you may not use this file except in compliance
 * with the License.  You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package lmp implements the lower transport: the fixed 8-byte-header
// wrapper required around every application-layer command and response.
package lmp

import (
	"encoding/binary"

	"github.com/lummgr/lummgr/lmxact/lmxutil"
)

const LMP_HDR_SIZE = 8

// Header type field values.  The structured/binary distinction (0 vs 1) is
// declared by the sender but observed to be unreliable; only the ack value
// may be acted on.  See payload.go.
const (
	LMP_TYPE_STRUCTURED = 0
	LMP_TYPE_BINARY     = 1
	LMP_TYPE_ACK        = 2
)

// Command-id byte: whether the peer is expected to respond.
const (
	LMP_CMD_RSP    = 10
	LMP_CMD_NO_RSP = 11
)

// Fragment-control word for a single complete segment.  This engine never
// produces segmented frames.
const LMP_FRAG_SINGLE = 0x8000

type Hdr struct {
	Version      uint8 /* 2 bits; only 0 is supported */
	Segmented    bool
	AckRequested bool
	Protect      bool
	Type         uint8 /* 2 bits */
	Seq          uint8
	FragCtl      uint16
	TotalLen     uint16
	PayloadLen   uint8 /* always len(payload)+1 on the wire */
	CmdId        uint8
}

// EncodeFrame wraps an application payload in a version-0 unsegmented
// transport frame.  Output length is always LMP_HDR_SIZE+len(payload).
// Checksums, where a family requires them, are internal to the payload and
// were computed before wrapping; the transport adds none.
func EncodeFrame(payload []byte, seq uint8, expectRsp bool) []byte {
	cmdId := byte(LMP_CMD_NO_RSP)
	if expectRsp {
		cmdId = LMP_CMD_RSP
	}

	buf := make([]byte, 0, LMP_HDR_SIZE+len(payload))

	buf = append(buf, 0) /* version 0, unsegmented, type 0 */
	buf = append(buf, seq)

	u16b := make([]byte, 2)
	binary.BigEndian.PutUint16(u16b, LMP_FRAG_SINGLE)
	buf = append(buf, u16b...)

	binary.BigEndian.PutUint16(u16b, uint16(len(payload)))
	buf = append(buf, u16b...)

	buf = append(buf, byte(len(payload)+1))
	buf = append(buf, cmdId)
	buf = append(buf, payload...)

	return buf
}

// DecodeFrame parses and validates an inbound transport frame.
//
// A nil header with a nil error means the frame was an acknowledgment; the
// caller must drop it without further processing.  Otherwise the payload is
// returned unconditionally: the header's type field must never be used to
// choose a parsing strategy (use Classify instead).
func DecodeFrame(frame []byte) (*Hdr, []byte, error) {
	if len(frame) < LMP_HDR_SIZE {
		return nil, nil, lmxutil.FmtFrameTooShortError(
			"transport frame too short: have=%d want>=%d",
			len(frame), LMP_HDR_SIZE)
	}

	b0 := frame[0]

	hdr := &Hdr{
		Version:      (b0 & 0xc0) >> 6,
		Segmented:    b0&0x20 != 0,
		AckRequested: b0&0x10 != 0,
		Type:         (b0 & 0x0c) >> 2,
		Protect:      b0&0x02 != 0,
		Seq:          frame[1],
		FragCtl:      binary.BigEndian.Uint16(frame[2:4]),
		TotalLen:     binary.BigEndian.Uint16(frame[4:6]),
		PayloadLen:   frame[6],
		CmdId:        frame[7],
	}

	if hdr.Version != 0 {
		return nil, nil, lmxutil.FmtUnsupportedVersionError(
			"unsupported transport version: %d", hdr.Version)
	}
	if hdr.Segmented {
		return nil, nil, lmxutil.NewUnsupportedVersionError(
			"segmented transport frames are not supported")
	}

	if hdr.Type == LMP_TYPE_ACK {
		// Acknowledgment; filtered.
		return nil, nil, nil
	}

	return hdr, frame[LMP_HDR_SIZE:], nil
}
