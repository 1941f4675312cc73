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
	"testing"

	"github.com/stretchr/testify/assert"
)

func classifyPayload(t *testing.T, payload []byte) Payload {
	t.Helper()
	return Classify(EncodeFrame(payload, 0, true), payload)
}

func TestClassifyWrapped(t *testing.T) {
	// {"code":0,"payload":"81"}
	payload := []byte{
		0x7b, 0x22, 0x63, 0x6f, 0x64, 0x65, 0x22, 0x3a, 0x30, 0x2c,
		0x22, 0x70, 0x61, 0x79, 0x6c, 0x6f, 0x61, 0x64, 0x22, 0x3a,
		0x22, 0x38, 0x31, 0x22, 0x7d,
	}

	p := classifyPayload(t, payload)
	assert.True(t, p.Wrapped)
	assert.Equal(t, []byte{0x81}, p.Data)
}

func TestClassifyWrappedLong(t *testing.T) {
	payload := []byte(`{"code":0,"payload":"818a8b96"}`)

	p := classifyPayload(t, payload)
	assert.True(t, p.Wrapped)
	assert.Equal(t, []byte{0x81, 0x8a, 0x8b, 0x96}, p.Data)
}

func TestClassifyBinary(t *testing.T) {
	payload := []byte{0x81, 0x23, 0x61, 0x00}

	p := classifyPayload(t, payload)
	assert.False(t, p.Wrapped)
	assert.Equal(t, payload, p.Data)
}

func TestClassifyEmpty(t *testing.T) {
	p := classifyPayload(t, []byte{})
	assert.False(t, p.Wrapped)
	assert.Empty(t, p.Data)
}

// A malformed wrapper falls back to scanning the whole frame for the final
// quoted hex span.
func TestClassifyQuoteRecovery(t *testing.T) {
	payload := []byte(`{truncated garbage "8136"`)

	p := classifyPayload(t, payload)
	assert.True(t, p.Wrapped)
	assert.Equal(t, []byte{0x81, 0x36}, p.Data)
}

// A structurally valid wrapper lacking a usable payload field degrades to
// binary when the quote scan finds no hex either.
func TestClassifyWrapperWithoutPayloadField(t *testing.T) {
	payload := []byte(`{"code":1}`)

	p := classifyPayload(t, payload)
	assert.False(t, p.Wrapped)
	assert.Equal(t, payload, p.Data)
}

// Non-hex payload field degrades to binary.
func TestClassifyWrapperBadHex(t *testing.T) {
	payload := []byte(`{"payload":"zz"}`)

	p := classifyPayload(t, payload)
	assert.False(t, p.Wrapped)
	assert.Equal(t, payload, p.Data)
}

// Invalid UTF-8 after a '{' first byte must not panic or error; it is raw
// binary unless the quote scan salvages something.
func TestClassifyBinaryBraceFirst(t *testing.T) {
	payload := []byte{0x7b, 0xff, 0xfe, 0x00}

	p := classifyPayload(t, payload)
	assert.False(t, p.Wrapped)
	assert.Equal(t, payload, p.Data)
}
