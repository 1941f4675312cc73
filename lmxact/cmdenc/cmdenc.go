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

// Package cmdenc builds application-layer command frames.  One encoder per
// command family; every encoder clamps its inputs to the family's declared
// ranges before encoding and never rejects a value.  Where the family
// defines a checksum, the final byte is the sum-mod-256 of everything
// before it.
package cmdenc

import (
	"github.com/lummgr/lummgr/lmxact/family"
	"github.com/lummgr/lummgr/lmxact/lmdefs"
	"github.com/lummgr/lummgr/lmxact/lmxutil"
)

// Encoder builds the command frames one family understands.  Frames are
// application payloads; the caller wraps them in a transport frame before
// writing.
type Encoder interface {
	Power(on bool) ([]byte, error)
	Color(c lmdefs.RGB) ([]byte, error)
	Brightness(level int) ([]byte, error)
	Effect(id int, speed int, brightness int) ([]byte, error)
	DualEffect(id int, fg lmdefs.RGB, bg lmdefs.RGB, speed int,
		dir lmdefs.Direction) ([]byte, error)
	StateQuery() []byte
	SettingsQuery() []byte
}

type encoderCtor func(d *family.Descriptor) Encoder

func simpleEncoderCtor(d *family.Descriptor) Encoder   { return &simpleEncoder{d} }
func symphonyEncoderCtor(d *family.Descriptor) Encoder { return &symphonyEncoder{d} }
func addrAEncoderCtor(d *family.Descriptor) Encoder    { return &addrAEncoder{d} }
func addrBEncoderCtor(d *family.Descriptor) Encoder    { return &addrBEncoder{d} }

var encoderCtorMap = map[lmdefs.Family]encoderCtor{
	lmdefs.FAMILY_SIMPLE:   simpleEncoderCtor,
	lmdefs.FAMILY_SYMPHONY: symphonyEncoderCtor,
	lmdefs.FAMILY_ADDR_A:   addrAEncoderCtor,
	lmdefs.FAMILY_ADDR_B:   addrBEncoderCtor,
}

// Lookup retrieves the encoder for a descriptor's family.  Every operation
// for an UNKNOWN family fails here; the capability probe (StateQueryCmd) is
// the one exception and does not require an encoder.
func Lookup(d *family.Descriptor) (Encoder, error) {
	cb := encoderCtorMap[d.Family]
	if cb == nil {
		return nil, lmxutil.FmtUnknownFamilyError(
			"no command encoder for device family: %s", d.Family.String())
	}

	return cb(d), nil
}

// powerCmd is shared by every family; only the opcode differs between the
// legacy and modern protocol tiers.
func powerCmd(tier lmdefs.ProtoTier, on bool) []byte {
	pw := byte(lmdefs.POWER_OFF)
	if on {
		pw = lmdefs.POWER_ON
	}

	if tier == lmdefs.TIER_MODERN {
		return lmxutil.AppendChecksum(
			[]byte{lmdefs.OP_POWER_MODERN, pw, 0x00, 0x00})
	}
	return lmxutil.AppendChecksum(
		[]byte{lmdefs.OP_POWER_LEGACY, pw, 0x0f})
}

// StateQueryCmd builds the universal state query.  It is identical across
// families and conservative enough to double as the capability probe for
// unclassified devices.
func StateQueryCmd() []byte {
	return lmxutil.AppendChecksum(
		[]byte{lmdefs.OP_STATE_QUERY, 0x8a, 0x8b})
}

// SettingsQueryCmd requests the device's persisted configuration (LED
// count, segment layout), distinct from routine state polling.
func SettingsQueryCmd() []byte {
	return lmxutil.AppendChecksum(
		[]byte{lmdefs.OP_SETTINGS_QUERY, 0x02})
}

// InvertSpeed maps a 0-100 UI speed onto the inverted wire encoding used
// by the symphony and addressable-B families, where 1 is fastest and 31
// slowest.
func InvertSpeed(ui int) byte {
	ui = lmxutil.Clamp(0, 100, ui)
	return byte(lmxutil.Clamp(1, 31, 31-roundDiv(ui*30, 100)))
}

// DeinvertSpeed is the exact algebraic inverse of InvertSpeed on the wire
// domain: InvertSpeed(DeinvertSpeed(p)) == p for every p in 1..31.
func DeinvertSpeed(p byte) int {
	pi := lmxutil.Clamp(1, 31, int(p))
	return roundDiv((31-pi)*100, 30)
}

func roundDiv(num int, den int) int {
	return (num + den/2) / den
}

func dirByte(dir lmdefs.Direction) byte {
	if dir == lmdefs.DIR_REVERSE {
		return 1
	}
	return 0
}

func clampEffect(d *family.Descriptor, id int) byte {
	return byte(lmxutil.Clamp(int(d.EffectMin), int(d.EffectMax), id))
}
