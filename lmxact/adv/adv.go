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

// Package adv decodes the vendor-defined manufacturer data these controllers
// broadcast before connection.  Two wire layouts are observed in the field:
// a 29-byte blob with the 2-byte company identifier embedded at the front,
// and a 27-byte payload whose company identifier arrives out-of-band.  Both
// normalize to the same Record.
package adv

import (
	"encoding/binary"
	"fmt"

	"github.com/lummgr/lummgr/lmxact/lmdefs"
	"github.com/lummgr/lummgr/lmxact/lmxutil"
)

const (
	// Body layout, after any embedded company identifier is stripped.
	bodyLen     = 27
	embeddedLen = bodyLen + 2

	extStateOff = 16
	extStateLen = 11
)

// Record is the normalized identity a device advertises.  It is ephemeral:
// built per scan event and superseded by every new advertisement for the
// same hardware address.
type Record struct {
	Status       uint8
	ProtoVersion uint8
	Addr         lmdefs.HwAddr
	ProductId    uint16
	FwVersion    uint8
	CtlrVersion  uint8

	// Present only when the embedded layout was received.
	CompanyId uint16

	// Extended state block; nil unless ProtoVersion >= 5.
	ExtState []byte
}

// Modern reports whether the device advertises the modern protocol tier.
func (r *Record) Modern() bool {
	return r.ProtoVersion >= lmdefs.MODERN_PROTO_VERSION
}

func (r *Record) Tier() lmdefs.ProtoTier {
	if r.Modern() {
		return lmdefs.TIER_MODERN
	}
	return lmdefs.TIER_LEGACY
}

func (r *Record) String() string {
	return fmt.Sprintf("addr=%s product=0x%04x status=0x%02x ver=%d fw=%d",
		r.Addr.String(), r.ProductId, r.Status, r.ProtoVersion, r.FwVersion)
}

// Decode parses raw manufacturer data in either observed layout.  The
// caller passes the bytes exactly as the scanner delivered them; no
// pre-normalization is required.
func Decode(mfg []byte) (*Record, error) {
	var body []byte
	var companyId uint16

	switch len(mfg) {
	case embeddedLen:
		// Company identifier embedded at the front, little-endian per the
		// usual manufacturer-data convention.
		companyId = binary.LittleEndian.Uint16(mfg[0:2])
		body = mfg[2:]
	case bodyLen:
		body = mfg
	default:
		return nil, lmxutil.FmtPayloadDecodeError(
			"unexpected manufacturer data length: have=%d want=%d or %d",
			len(mfg), bodyLen, embeddedLen)
	}

	r := &Record{
		Status:       body[0],
		ProtoVersion: body[1],
		ProductId:    binary.BigEndian.Uint16(body[8:10]),
		FwVersion:    body[10],
		CtlrVersion:  body[11],
		CompanyId:    companyId,
	}
	copy(r.Addr.Bytes[:], body[2:8])

	// The extended state block is only meaningful on the modern tier;
	// legacy devices pad these bytes with garbage.
	if r.Modern() {
		r.ExtState = make([]byte, extStateLen)
		copy(r.ExtState, body[extStateOff:extStateOff+extStateLen])
	}

	return r, nil
}
