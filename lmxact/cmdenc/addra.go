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

// addrAEncoder serves the first addressable line.  Control frames are
// fixed 4-byte, unchecksummed; speed is direct; brightness 0 is permitted
// and turns the output off.
type addrAEncoder struct {
	d *family.Descriptor
}

func (e *addrAEncoder) Power(on bool) ([]byte, error) {
	return powerCmd(e.d.Tier, on), nil
}

func (e *addrAEncoder) Color(c lmdefs.RGB) ([]byte, error) {
	return []byte{0x14, c.R, c.G, c.B}, nil
}

func (e *addrAEncoder) Brightness(level int) ([]byte, error) {
	return []byte{0x15, byte(lmxutil.Clamp(0, 100, level)), 0x00, 0x00}, nil
}

func (e *addrAEncoder) Effect(id int, speed int, brightness int) ([]byte, error) {
	return []byte{
		0x16,
		clampEffect(e.d, id),
		byte(lmxutil.Clamp(0, 100, speed)),
		byte(lmxutil.Clamp(0, 100, brightness)),
	}, nil
}

func (e *addrAEncoder) DualEffect(id int, fg lmdefs.RGB, bg lmdefs.RGB,
	speed int, dir lmdefs.Direction) ([]byte, error) {

	return nil, lmxutil.FmtNotSupportedError(
		"dual-color effects not supported by family: %s",
		e.d.Family.String())
}

func (e *addrAEncoder) StateQuery() []byte {
	return StateQueryCmd()
}

func (e *addrAEncoder) SettingsQuery() []byte {
	return SettingsQueryCmd()
}
