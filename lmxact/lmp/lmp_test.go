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

package lmp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lummgr/lummgr/lmxact/lmxutil"
)

func TestEncodeFrame(t *testing.T) {
	frame := EncodeFrame([]byte{0x38, 0x02, 0x32}, 5, true)

	assert.Equal(t, []byte{
		0x00, 0x05, 0x80, 0x00, 0x00, 0x03, 0x04, 0x0a,
		0x38, 0x02, 0x32,
	}, frame)
}

func TestEncodeFrameNoRsp(t *testing.T) {
	frame := EncodeFrame(nil, 0xff, false)

	require.Len(t, frame, LMP_HDR_SIZE)
	assert.Equal(t, byte(0xff), frame[1])
	assert.Equal(t, byte(1), frame[6], "payload-length field is len+1")
	assert.Equal(t, byte(LMP_CMD_NO_RSP), frame[7])
}

func TestDecodeFrameRoundTrip(t *testing.T) {
	payload := []byte{0x81, 0x8a, 0x8b, 0x96}
	frame := EncodeFrame(payload, 17, true)

	hdr, got, err := DecodeFrame(frame)
	require.NoError(t, err)
	require.NotNil(t, hdr)

	assert.Equal(t, uint8(0), hdr.Version)
	assert.False(t, hdr.Segmented)
	assert.Equal(t, uint8(17), hdr.Seq)
	assert.Equal(t, uint16(LMP_FRAG_SINGLE), hdr.FragCtl)
	assert.Equal(t, uint16(len(payload)), hdr.TotalLen)
	assert.Equal(t, uint8(len(payload)+1), hdr.PayloadLen)
	assert.Equal(t, uint8(LMP_CMD_RSP), hdr.CmdId)
	assert.Equal(t, payload, got)
}

func TestDecodeFrameTooShort(t *testing.T) {
	_, _, err := DecodeFrame([]byte{0x00, 0x01, 0x80})
	require.Error(t, err)
	assert.True(t, lmxutil.IsFrameTooShort(err))
}

func TestDecodeFrameBadVersion(t *testing.T) {
	frame := EncodeFrame([]byte{0x01}, 0, false)
	frame[0] |= 0x40 /* version 1 */

	_, _, err := DecodeFrame(frame)
	require.Error(t, err)
	assert.True(t, lmxutil.IsUnsupportedVersion(err))
}

func TestDecodeFrameSegmented(t *testing.T) {
	frame := EncodeFrame([]byte{0x01}, 0, false)
	frame[0] |= 0x20

	_, _, err := DecodeFrame(frame)
	require.Error(t, err)
	assert.True(t, lmxutil.IsUnsupportedVersion(err))
}

// Frames whose type bits equal 2 are acknowledgments and must be filtered
// regardless of payload bytes.
func TestDecodeFrameAckFiltered(t *testing.T) {
	payloads := [][]byte{
		nil,
		{0x00},
		{0x81, 0x8a, 0x8b, 0x96},
		{0xde, 0xad, 0xbe, 0xef, 0xde, 0xad, 0xbe, 0xef},
	}

	for _, p := range payloads {
		frame := EncodeFrame(p, 9, false)
		frame[0] |= 0x08 /* type = 2 */

		hdr, payload, err := DecodeFrame(frame)
		require.NoError(t, err)
		assert.Nil(t, hdr)
		assert.Nil(t, payload)
	}
}

// Type values 0 and 1 must never affect the returned payload.
func TestDecodeFrameTypeIgnored(t *testing.T) {
	payload := []byte{0x7b, 0x22, 0x63, 0x22, 0x7d}

	for _, typ := range []byte{LMP_TYPE_STRUCTURED, LMP_TYPE_BINARY} {
		frame := EncodeFrame(payload, 0, false)
		frame[0] |= typ << 2

		hdr, got, err := DecodeFrame(frame)
		require.NoError(t, err)
		require.NotNil(t, hdr)
		assert.Equal(t, typ, hdr.Type)
		assert.Equal(t, payload, got)
	}
}
