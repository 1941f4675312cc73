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

// simpleEncoder serves the non-addressable strip controllers.  Control
// frames carry no checksum; speed is direct 0-100; brightness 0 is a valid
// value (the hardware treats it as off).
type simpleEncoder struct {
	d *family.Descriptor
}

func (e *simpleEncoder) Power(on bool) ([]byte, error) {
	return powerCmd(e.d.Tier, on), nil
}

func (e *simpleEncoder) Color(c lmdefs.RGB) ([]byte, error) {
	return []byte{0x56, c.R, c.G, c.B}, nil
}

func (e *simpleEncoder) Brightness(level int) ([]byte, error) {
	return []byte{0x42, 0x01, byte(lmxutil.Clamp(0, 100, level))}, nil
}

func (e *simpleEncoder) Effect(id int, speed int, brightness int) ([]byte, error) {
	return []byte{
		0x38,
		clampEffect(e.d, id),
		byte(lmxutil.Clamp(0, 100, speed)),
	}, nil
}

func (e *simpleEncoder) DualEffect(id int, fg lmdefs.RGB, bg lmdefs.RGB,
	speed int, dir lmdefs.Direction) ([]byte, error) {

	return nil, lmxutil.FmtNotSupportedError(
		"dual-color effects not supported by family: %s",
		e.d.Family.String())
}

func (e *simpleEncoder) StateQuery() []byte {
	return StateQueryCmd()
}

func (e *simpleEncoder) SettingsQuery() []byte {
	return SettingsQueryCmd()
}
