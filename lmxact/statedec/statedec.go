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

// Package statedec parses raw state-response bytes into a normalized
// device-state record.  Field offsets do not align across families, so the
// per-family layout rows below carry them explicitly; de-inversion of
// effect speed reuses the exact inverse of the encoder formula.
package statedec

import (
	log "github.com/sirupsen/logrus"

	"github.com/lummgr/lummgr/lmxact/cmdenc"
	"github.com/lummgr/lummgr/lmxact/family"
	"github.com/lummgr/lummgr/lmxact/lmdefs"
	"github.com/lummgr/lummgr/lmxact/lmxutil"
)

// DeviceState is rebuilt wholesale from each successfully decoded state
// response; it is never partially merged across responses.
type DeviceState struct {
	On         bool
	Mode       lmdefs.Mode
	Color      lmdefs.RGB
	White      uint8
	Cct        uint8
	Effect     uint8
	Speed      int /* normalized 0-100, direction-neutral */
	Brightness int /* normalized 0-100 */

	// Populated only in dual-color-effect mode.
	Fg        lmdefs.RGB
	Bg        lmdefs.RGB
	Direction lmdefs.Direction
}

// DeviceSettings is the persisted configuration returned by a settings
// query, distinct from routine state polling.
type DeviceSettings struct {
	LedCount   uint16
	Segments   uint8
	IcModel    uint8
	ColorOrder uint8
}

// One row per family; offsets are -1 where the family's response lacks the
// field.
type layout struct {
	frameLen    int
	checksummed bool

	powerOff  int
	modeOff   int
	effectOff int
	brightOff int
	speedOff  int
	colorOff  int /* RGB triple */
	whiteOff  int
	cctOff    int
	bgOff     int /* background RGB triple */
	dirOff    int

	speedInverted bool
}

var layoutMap = map[lmdefs.Family]layout{
	lmdefs.FAMILY_SIMPLE: {
		frameLen:    14,
		checksummed: true,
		powerOff:    2,
		modeOff:     3,
		effectOff:   4,
		speedOff:    5,
		colorOff:    6,
		whiteOff:    9,
		cctOff:      10,
		brightOff:   -1,
		bgOff:       -1,
		dirOff:      -1,
	},
	lmdefs.FAMILY_SYMPHONY: {
		// Brightness immediately after the effect id; speed two bytes
		// later, inverted.
		frameLen:      12,
		checksummed:   true,
		powerOff:      1,
		modeOff:       2,
		effectOff:     3,
		brightOff:     4,
		speedOff:      6,
		colorOff:      7,
		whiteOff:      -1,
		cctOff:        -1,
		bgOff:         -1,
		dirOff:        10,
		speedInverted: true,
	},
	lmdefs.FAMILY_ADDR_A: {
		// Speed and brightness in the swapped relative positions, direct
		// encoding, and no checksum anywhere in this family.
		frameLen:  11,
		powerOff:  1,
		modeOff:   2,
		effectOff: 3,
		speedOff:  4,
		brightOff: 6,
		colorOff:  7,
		whiteOff:  -1,
		cctOff:    -1,
		bgOff:     -1,
		dirOff:    10,
	},
	lmdefs.FAMILY_ADDR_B: {
		frameLen:      14,
		checksummed:   true,
		powerOff:      1,
		modeOff:       2,
		effectOff:     3,
		brightOff:     4,
		speedOff:      5,
		colorOff:      6,
		whiteOff:      -1,
		cctOff:        -1,
		bgOff:         9,
		dirOff:        12,
		speedInverted: true,
	},
}

func decodeMode(b byte) lmdefs.Mode {
	switch b {
	case lmdefs.MODE_BYTE_COLOR:
		return lmdefs.MODE_COLOR
	case lmdefs.MODE_BYTE_WHITE:
		return lmdefs.MODE_WHITE
	case lmdefs.MODE_BYTE_EFFECT:
		return lmdefs.MODE_EFFECT
	case lmdefs.MODE_BYTE_DUAL:
		return lmdefs.MODE_DUAL_EFFECT
	}

	// Unrecognized mode byte; take the most conservative interpretation.
	log.Debugf("unrecognized mode byte: 0x%02x", b)
	return lmdefs.MODE_COLOR
}

// Decode parses one state response for the descriptor's family.  The
// trailing checksum, where the family defines one, is validated before any
// other interpretation.
func Decode(d *family.Descriptor, rsp []byte) (*DeviceState, error) {
	lay, ok := layoutMap[d.Family]
	if !ok {
		return nil, lmxutil.FmtUnknownFamilyError(
			"no state decoder for device family: %s", d.Family.String())
	}

	if len(rsp) < lay.frameLen {
		return nil, lmxutil.FmtFrameTooShortError(
			"state response too short: have=%d want>=%d family=%s",
			len(rsp), lay.frameLen, d.Family.String())
	}
	rsp = rsp[:lay.frameLen]

	if lay.checksummed {
		expected := lmxutil.Checksum(rsp[:len(rsp)-1])
		actual := rsp[len(rsp)-1]
		if expected != actual {
			return nil, lmxutil.FmtChecksumMismatchError(expected, actual)
		}
	}

	if rsp[0] != lmdefs.OP_STATE_QUERY {
		return nil, lmxutil.FmtPayloadDecodeError(
			"unexpected state response opcode: 0x%02x", rsp[0])
	}

	s := &DeviceState{
		On:     rsp[lay.powerOff] == lmdefs.POWER_ON,
		Mode:   decodeMode(rsp[lay.modeOff]),
		Effect: rsp[lay.effectOff],
	}

	if lay.colorOff >= 0 {
		s.Color = lmdefs.RGB{
			R: rsp[lay.colorOff],
			G: rsp[lay.colorOff+1],
			B: rsp[lay.colorOff+2],
		}
	}
	if lay.whiteOff >= 0 {
		s.White = rsp[lay.whiteOff]
	}
	if lay.cctOff >= 0 {
		s.Cct = rsp[lay.cctOff]
	}

	if lay.speedOff >= 0 {
		if lay.speedInverted {
			s.Speed = cmdenc.DeinvertSpeed(rsp[lay.speedOff])
		} else {
			s.Speed = lmxutil.Clamp(0, 100, int(rsp[lay.speedOff]))
		}
	}

	if lay.brightOff >= 0 {
		s.Brightness = lmxutil.Clamp(0, 100, int(rsp[lay.brightOff]))
	} else {
		s.Brightness = derivedBrightness(s)
	}

	if lay.dirOff >= 0 && rsp[lay.dirOff] != 0 {
		s.Direction = lmdefs.DIR_REVERSE
	}

	if s.Mode == lmdefs.MODE_DUAL_EFFECT {
		s.Fg = s.Color
		if lay.bgOff >= 0 {
			s.Bg = lmdefs.RGB{
				R: rsp[lay.bgOff],
				G: rsp[lay.bgOff+1],
				B: rsp[lay.bgOff+2],
			}
		}
	}

	return s, nil
}

// derivedBrightness approximates a 0-100 brightness for families whose
// responses carry no dedicated byte, scaling the active channel.
func derivedBrightness(s *DeviceState) int {
	switch s.Mode {
	case lmdefs.MODE_WHITE:
		return scale255(s.White)
	case lmdefs.MODE_COLOR:
		max := s.Color.R
		if s.Color.G > max {
			max = s.Color.G
		}
		if s.Color.B > max {
			max = s.Color.B
		}
		return scale255(max)
	}

	return 100
}

func scale255(b uint8) int {
	return (int(b)*100 + 127) / 255
}

const settingsRspLen = 7

// DecodeSettings parses a settings-query response.  The settings frame is
// checksummed on every family that answers it.
func DecodeSettings(rsp []byte) (*DeviceSettings, error) {
	if len(rsp) < settingsRspLen {
		return nil, lmxutil.FmtFrameTooShortError(
			"settings response too short: have=%d want>=%d",
			len(rsp), settingsRspLen)
	}
	rsp = rsp[:settingsRspLen]

	expected := lmxutil.Checksum(rsp[:len(rsp)-1])
	actual := rsp[len(rsp)-1]
	if expected != actual {
		return nil, lmxutil.FmtChecksumMismatchError(expected, actual)
	}

	if rsp[0] != lmdefs.OP_SETTINGS_RSP {
		return nil, lmxutil.FmtPayloadDecodeError(
			"unexpected settings response opcode: 0x%02x", rsp[0])
	}

	return &DeviceSettings{
		LedCount:   uint16(rsp[1])<<8 | uint16(rsp[2]),
		Segments:   rsp[3],
		IcModel:    rsp[4],
		ColorOrder: rsp[5],
	}, nil
}
