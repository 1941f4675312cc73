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
	"encoding/hex"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"github.com/lummgr/lummgr/lmxact/lmxutil"
)

// Result of payload classification: either the payload verbatim, or the
// hex-decoded contents of a structured wrapper.
type Payload struct {
	Wrapped bool
	Data    []byte
}

// Classify determines whether a transport-decoded payload is raw binary or
// a structured key/value wrapper carrying a hex-encoded inner payload.
//
// Classification is content-driven; the header's type field is deliberately
// ignored because the structured/binary distinction it declares is
// unreliable in practice.  A structured wrapper can arrive in a frame whose
// header claims pure binary, and the fixed header skip can land mid-wrapper,
// so a second, lossier recovery pass scans the entire frame.  Every failure
// degrades to the raw-binary interpretation; this function never errors.
func Classify(frame []byte, payload []byte) Payload {
	if len(payload) == 0 {
		return Payload{Data: payload}
	}

	if payload[0] == '{' || payload[0] == '[' {
		if data, ok := unwrapStructured(payload); ok {
			return Payload{Wrapped: true, Data: data}
		}

		if data, ok := unwrapQuoted(frame); ok {
			return Payload{Wrapped: true, Data: data}
		}
	}

	return Payload{Data: payload}
}

// unwrapStructured attempts a full structural parse of the payload and
// extracts its hex-encoded "payload" field.
func unwrapStructured(payload []byte) ([]byte, bool) {
	if !utf8.Valid(payload) {
		return nil, false
	}

	m, err := lmxutil.DecodeJsonMap(payload)
	if err != nil {
		log.Debugf("structured payload parse failed: %s", err.Error())
		return nil, false
	}

	v, ok := m["payload"]
	if !ok {
		return nil, false
	}

	s, err := cast.ToStringE(v)
	if err != nil || s == "" || !isHexString(s) {
		return nil, false
	}

	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, false
	}

	return data, true
}

// unwrapQuoted is the recovery pass: treat the whole frame, header
// included, as text, and try the span between the final two quotation
// marks as a hex string.  This salvages wrappers that the thin header skip
// cut into.
func unwrapQuoted(frame []byte) ([]byte, bool) {
	s := string(frame)

	last := strings.LastIndexByte(s, '"')
	if last <= 0 {
		return nil, false
	}

	prev := strings.LastIndexByte(s[:last], '"')
	if prev < 0 {
		return nil, false
	}

	inner := s[prev+1 : last]
	if inner == "" || !isHexString(inner) {
		return nil, false
	}

	data, err := hex.DecodeString(inner)
	if err != nil {
		return nil, false
	}

	log.Debugf("recovered wrapped payload via quote scan; len=%d", len(data))

	return data, true
}

func isHexString(s string) bool {
	if len(s)%2 != 0 {
		return false
	}

	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}

	return true
}
