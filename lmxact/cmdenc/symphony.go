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

package cmdenc

import (
	"github.com/lummgr/lummgr/lmxact/family"
	"github.com/lummgr/lummgr/lmxact/lmdefs"
	"github.com/lummgr/lummgr/lmxact/lmxutil"
)

// symphonyEncoder serves the tiered addressable controllers.  All control
// frames are checksummed; effect speed is inverted (1 fastest, 31 slowest).
//
// Brightness 0 is an implicit power-off signal on this hardware, so the
// minimum is forced to 1 and brightness 0 is unreachable through these
// builders; power-off must go through Power.
type symphonyEncoder struct {
	d *family.Descriptor
}

func (e *symphonyEncoder) Power(on bool) ([]byte, error) {
	return powerCmd(e.d.Tier, on), nil
}

func (e *symphonyEncoder) Color(c lmdefs.RGB) ([]byte, error) {
	return lmxutil.AppendChecksum([]byte{0x41, c.R, c.G, c.B}), nil
}

func (e *symphonyEncoder) Brightness(level int) ([]byte, error) {
	return lmxutil.AppendChecksum([]byte{
		0x42,
		byte(lmxutil.Clamp(1, 100, level)),
		0x00,
		0x00,
	}), nil
}

func (e *symphonyEncoder) Effect(id int, speed int, brightness int) ([]byte, error) {
	return lmxutil.AppendChecksum([]byte{
		0x38,
		clampEffect(e.d, id),
		InvertSpeed(speed),
		byte(lmxutil.Clamp(1, 100, brightness)),
	}), nil
}

func (e *symphonyEncoder) DualEffect(id int, fg lmdefs.RGB, bg lmdefs.RGB,
	speed int, dir lmdefs.Direction) ([]byte, error) {

	// Dual-color static effects use direct speed, unlike the animated
	// effects above.
	return lmxutil.AppendChecksum([]byte{
		0x6a,
		clampEffect(e.d, id),
		fg.R, fg.G, fg.B,
		bg.R, bg.G, bg.B,
		byte(lmxutil.Clamp(0, 100, speed)),
		dirByte(dir),
		0x00, 0x00,
	}), nil
}

func (e *symphonyEncoder) StateQuery() []byte {
	return StateQueryCmd()
}

func (e *symphonyEncoder) SettingsQuery() []byte {
	return SettingsQueryCmd()
}
