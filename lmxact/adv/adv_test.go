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

package adv

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lummgr/lummgr/lmxact/lmdefs"
	"github.com/lummgr/lummgr/lmxact/lmxutil"
)

// buildBody assembles a 27-byte out-of-band-company payload.
func buildBody(status byte, ver byte, productId uint16) []byte {
	body := []byte{
		status, ver,
		0x11, 0x22, 0x33, 0x44, 0x55, 0x66,
		byte(productId >> 8), byte(productId),
		0x03, /* fw */
		0x07, /* ctlr */
		0x00, 0x00, 0x00, 0x00,
	}

	ext := []byte{
		0x23, 0x61, 0xff, 0x80, 0x00, 0x64, 0x50, 0x00, 0x00, 0x00, 0x00,
	}
	return append(body, ext...)
}

func TestDecodeOutOfBandLayout(t *testing.T) {
	rec, err := Decode(buildBody(0x53, 5, 0x0a1b))
	require.NoError(t, err)

	assert.Equal(t, uint8(0x53), rec.Status)
	assert.Equal(t, uint8(5), rec.ProtoVersion)
	assert.Equal(t, "11:22:33:44:55:66", rec.Addr.String())
	assert.Equal(t, uint16(0x0a1b), rec.ProductId)
	assert.Equal(t, uint8(0x03), rec.FwVersion)
	assert.Equal(t, uint8(0x07), rec.CtlrVersion)
	assert.Equal(t, uint16(0), rec.CompanyId)
	assert.Equal(t, lmdefs.TIER_MODERN, rec.Tier())
	require.Len(t, rec.ExtState, 11)
	assert.Equal(t, uint8(0x23), rec.ExtState[0])
}

func TestDecodeEmbeddedLayout(t *testing.T) {
	mfg := append([]byte{0x48, 0x54}, buildBody(0x33, 4, 0x0015)...)

	rec, err := Decode(mfg)
	require.NoError(t, err)

	assert.Equal(t, uint16(0x5448), rec.CompanyId)
	assert.Equal(t, uint16(0x0015), rec.ProductId)
	assert.Equal(t, lmdefs.TIER_LEGACY, rec.Tier())
}

// Both layouts normalize to an identical record apart from the company id.
func TestDecodeLayoutsAgree(t *testing.T) {
	body := buildBody(0x53, 6, 0x0a21)

	a, err := Decode(body)
	require.NoError(t, err)

	b, err := Decode(append([]byte{0x48, 0x54}, body...))
	require.NoError(t, err)

	b.CompanyId = 0
	assert.Equal(t, a, b)
}

func TestDecodeLegacyNoExtState(t *testing.T) {
	rec, err := Decode(buildBody(0x33, 4, 0x0015))
	require.NoError(t, err)

	assert.Nil(t, rec.ExtState)
	assert.False(t, rec.Modern())
}

func TestDecodeBadLength(t *testing.T) {
	for _, n := range []int{0, 1, 16, 26, 28, 30, 64} {
		_, err := Decode(bytes.Repeat([]byte{0x55}, n))
		require.Error(t, err, "len=%d", n)
		assert.True(t, lmxutil.IsPayloadDecode(err), "len=%d", n)
	}
}

// The record does not alias the scan buffer; a reused buffer must not
// mutate a previously decoded extended state block.
func TestDecodeCopiesExtState(t *testing.T) {
	mfg := buildBody(0x53, 5, 0x0a1b)

	rec, err := Decode(mfg)
	require.NoError(t, err)

	mfg[16] = 0xee
	assert.Equal(t, uint8(0x23), rec.ExtState[0])
}
