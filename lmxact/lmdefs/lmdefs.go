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

package lmdefs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Devices reporting a protocol version at or above this threshold use the
// modern power/state command variants.
const MODERN_PROTO_VERSION = 5

// Shared command and response opcodes.  These are identical across families;
// everything else is family-specific (see cmdenc and statedec).
const (
	OP_POWER_LEGACY   = 0x71
	OP_POWER_MODERN   = 0x3B
	OP_STATE_QUERY    = 0x81
	OP_SETTINGS_QUERY = 0x10
	OP_SETTINGS_RSP   = 0x63
)

// Power byte values, shared by power commands and state responses.
const (
	POWER_ON  = 0x23
	POWER_OFF = 0x24
)

// Mode byte values in state responses.
const (
	MODE_BYTE_COLOR  = 0x61
	MODE_BYTE_WHITE  = 0x62
	MODE_BYTE_EFFECT = 0x25
	MODE_BYTE_DUAL   = 0x26
)

type Family int

const (
	FAMILY_UNKNOWN Family = iota
	FAMILY_SIMPLE
	FAMILY_SYMPHONY
	FAMILY_ADDR_A
	FAMILY_ADDR_B
)

var FamilyStringMap = map[Family]string{
	FAMILY_UNKNOWN:  "unknown",
	FAMILY_SIMPLE:   "simple",
	FAMILY_SYMPHONY: "symphony",
	FAMILY_ADDR_A:   "addressable-a",
	FAMILY_ADDR_B:   "addressable-b",
}

func FamilyToString(f Family) string {
	s := FamilyStringMap[f]
	if s == "" {
		return "???"
	}

	return s
}

func FamilyFromString(s string) (Family, error) {
	for f, name := range FamilyStringMap {
		if s == name {
			return f, nil
		}
	}

	return FAMILY_UNKNOWN, fmt.Errorf("Invalid Family string: %s", s)
}

func (f Family) String() string {
	return FamilyToString(f)
}

func (f Family) MarshalJSON() ([]byte, error) {
	return json.Marshal(FamilyToString(f))
}

func (f *Family) UnmarshalJSON(data []byte) error {
	var err error

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	*f, err = FamilyFromString(s)
	return err
}

// ProtoTier selects between the legacy and modern command variants.  It is
// derived from the advertised protocol version, independently of family.
type ProtoTier int

const (
	TIER_LEGACY ProtoTier = iota
	TIER_MODERN
)

var ProtoTierStringMap = map[ProtoTier]string{
	TIER_LEGACY: "legacy",
	TIER_MODERN: "modern",
}

func (t ProtoTier) String() string {
	s := ProtoTierStringMap[t]
	if s == "" {
		return "???"
	}

	return s
}

type Mode int

const (
	MODE_COLOR Mode = iota
	MODE_WHITE
	MODE_EFFECT
	MODE_DUAL_EFFECT
)

var ModeStringMap = map[Mode]string{
	MODE_COLOR:       "color",
	MODE_WHITE:       "white",
	MODE_EFFECT:      "effect",
	MODE_DUAL_EFFECT: "dual-color-effect",
}

func (m Mode) String() string {
	s := ModeStringMap[m]
	if s == "" {
		return "???"
	}

	return s
}

// Animation direction for dual-color static effects.
type Direction int

const (
	DIR_FORWARD Direction = iota
	DIR_REVERSE
)

func (d Direction) String() string {
	if d == DIR_REVERSE {
		return "reverse"
	}
	return "forward"
}

type RGB struct {
	R uint8
	G uint8
	B uint8
}

func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

type HwAddr struct {
	Bytes [6]byte
}

func ParseHwAddr(s string) (HwAddr, error) {
	ha := HwAddr{}

	toks := strings.Split(strings.ToLower(s), ":")
	if len(toks) != 6 {
		return ha, fmt.Errorf("invalid hardware addr string: %s", s)
	}

	for i, t := range toks {
		u64, err := strconv.ParseUint(t, 16, 8)
		if err != nil {
			return ha, err
		}
		ha.Bytes[i] = byte(u64)
	}

	return ha, nil
}

func (ha *HwAddr) String() string {
	var buf bytes.Buffer
	buf.Grow(len(ha.Bytes) * 3)

	for i, b := range ha.Bytes {
		if i != 0 {
			buf.WriteString(":")
		}
		fmt.Fprintf(&buf, "%02x", b)
	}

	return buf.String()
}

func (ha *HwAddr) MarshalJSON() ([]byte, error) {
	return json.Marshal(ha.String())
}

func (ha *HwAddr) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	var err error
	*ha, err = ParseHwAddr(s)
	if err != nil {
		return err
	}

	return nil
}
