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

// addrBEncoder serves the second addressable line.  Checksummed frames,
// inverted effect speed, forced brightness minimum of 1 (brightness 0 is
// the hardware's implicit power-off; use Power for that).
type addrBEncoder struct {
	d *family.Descriptor
}

func (e *addrBEncoder) Power(on bool) ([]byte, error) {
	return powerCmd(e.d.Tier, on), nil
}

// Color frames on this line carry a brightness slot; full brightness is
// requested and the separate Brightness builder scales afterward.
func (e *addrBEncoder) Color(c lmdefs.RGB) ([]byte, error) {
	return lmxutil.AppendChecksum([]byte{
		0x22,
		c.R, c.G, c.B,
		100,
		0x00, 0x00, 0x00,
	}), nil
}

func (e *addrBEncoder) Brightness(level int) ([]byte, error) {
	return lmxutil.AppendChecksum([]byte{
		0x23,
		byte(lmxutil.Clamp(1, 100, level)),
		0x00,
		0x00,
	}), nil
}

func (e *addrBEncoder) Effect(id int, speed int, brightness int) ([]byte, error) {
	return lmxutil.AppendChecksum([]byte{
		0x21,
		clampEffect(e.d, id),
		InvertSpeed(speed),
		byte(lmxutil.Clamp(1, 100, brightness)),
	}), nil
}

func (e *addrBEncoder) DualEffect(id int, fg lmdefs.RGB, bg lmdefs.RGB,
	speed int, dir lmdefs.Direction) ([]byte, error) {

	return lmxutil.AppendChecksum([]byte{
		0x24,
		clampEffect(e.d, id),
		fg.R, fg.G, fg.B,
		bg.R, bg.G, bg.B,
		byte(lmxutil.Clamp(0, 100, speed)),
		dirByte(dir),
		0x00, 0x00,
	}), nil
}

func (e *addrBEncoder) StateQuery() []byte {
	return StateQueryCmd()
}

func (e *addrBEncoder) SettingsQuery() []byte {
	return SettingsQueryCmd()
}
