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

package sesn

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lummgr/lummgr/lmxact/family"
	"github.com/lummgr/lummgr/lmxact/lmdefs"
	"github.com/lummgr/lummgr/lmxact/lmp"
	"github.com/lummgr/lummgr/lmxact/lmxutil"
)

func shortTxOptions() TxOptions {
	return TxOptions{
		Timeout: time.Second,
		Tries:   1,
	}
}

func TestNewTxOptions(t *testing.T) {
	opt := NewTxOptions()

	assert.Equal(t, DfltTxOptions, opt)
	assert.Equal(t, 10*time.Second, opt.Timeout)
	assert.Equal(t, 1, opt.Tries)
}

// simpleStateRsp builds a valid checksummed state response in the
// simple-family layout.
func simpleStateRsp() []byte {
	return lmxutil.AppendChecksum([]byte{
		0x81, 0x04, 0x23, 0x61, 0x00, 0x00,
		0xff, 0x00, 0x00,
		0x00, 0x00, 0x03, 0x00,
	})
}

func symphonyStateRsp() []byte {
	return lmxutil.AppendChecksum([]byte{
		0x81, 0x23, 0x25, 0x02, 0x64, 0x00, 0x08, 0x10, 0x20, 0x30, 0x00,
	})
}

// newEchoSesn builds a session whose device answers every query with the
// given application payload.
func newEchoSesn(desc *family.Descriptor, rsp []byte) *Sesn {
	var s *Sesn
	s = NewSesn(desc, func(req []byte) error {
		go s.Rx(lmp.EncodeFrame(rsp, 0, false))
		return nil
	})
	return s
}

func TestTxQueryOnce(t *testing.T) {
	desc := family.ForFamily(lmdefs.FAMILY_SIMPLE, lmdefs.TIER_LEGACY)

	var captured []byte
	var s *Sesn
	s = NewSesn(desc, func(req []byte) error {
		captured = req
		go s.Rx(lmp.EncodeFrame(simpleStateRsp(), 0, false))
		return nil
	})

	p, err := s.TxQueryOnce([]byte{0x81, 0x8a, 0x8b, 0x96}, NewTxOptions())
	require.NoError(t, err)
	assert.Equal(t, simpleStateRsp(), p.Data)

	// The request went out as a single wrapped frame expecting a response.
	hdr, payload, err := lmp.DecodeFrame(captured)
	require.NoError(t, err)
	require.NotNil(t, hdr)
	assert.Equal(t, uint8(lmp.LMP_CMD_RSP), hdr.CmdId)
	assert.Equal(t, []byte{0x81, 0x8a, 0x8b, 0x96}, payload)
}

func TestTxQueryTimeout(t *testing.T) {
	desc := family.ForFamily(lmdefs.FAMILY_SIMPLE, lmdefs.TIER_LEGACY)

	txCount := 0
	s := NewSesn(desc, func(req []byte) error {
		txCount++
		return nil
	})

	opt := TxOptions{Timeout: 50 * time.Millisecond, Tries: 3}

	_, err := s.TxQueryOnce([]byte{0x81}, opt)
	require.Error(t, err)
	assert.True(t, lmxutil.IsRspTimeout(err))
	assert.Equal(t, 3, txCount, "timeouts are retried")
}

// Transmit failures surface immediately; they are not retried as timeouts
// are.
func TestTxQueryTxError(t *testing.T) {
	desc := family.ForFamily(lmdefs.FAMILY_SIMPLE, lmdefs.TIER_LEGACY)

	txCount := 0
	s := NewSesn(desc, func(req []byte) error {
		txCount++
		return errors.New("gatt write failed")
	})

	opt := TxOptions{Timeout: 50 * time.Millisecond, Tries: 3}

	_, err := s.TxQueryOnce([]byte{0x81}, opt)
	require.Error(t, err)
	assert.False(t, lmxutil.IsRspTimeout(err))
	assert.Equal(t, 1, txCount)
}

func TestTxCmdOnceNoRsp(t *testing.T) {
	desc := family.ForFamily(lmdefs.FAMILY_SIMPLE, lmdefs.TIER_LEGACY)

	var captured []byte
	s := NewSesn(desc, func(req []byte) error {
		captured = req
		return nil
	})

	require.NoError(t, s.SetPower(true))

	hdr, payload, err := lmp.DecodeFrame(captured)
	require.NoError(t, err)
	require.NotNil(t, hdr)
	assert.Equal(t, uint8(lmp.LMP_CMD_NO_RSP), hdr.CmdId)
	assert.Equal(t, []byte{0x71, 0x23, 0x0f, 0xa3}, payload)
}

func TestQueryState(t *testing.T) {
	desc := family.ForFamily(lmdefs.FAMILY_SYMPHONY, lmdefs.TIER_LEGACY)
	s := newEchoSesn(desc, symphonyStateRsp())

	st, err := s.QueryState(shortTxOptions())
	require.NoError(t, err)

	assert.True(t, st.On)
	assert.Equal(t, lmdefs.MODE_EFFECT, st.Mode)
	assert.Equal(t, uint8(2), st.Effect)
	assert.Equal(t, 100, st.Brightness)
}

func TestQuerySettings(t *testing.T) {
	desc := family.ForFamily(lmdefs.FAMILY_ADDR_B, lmdefs.TIER_LEGACY)
	s := newEchoSesn(desc, lmxutil.AppendChecksum([]byte{
		0x63, 0x00, 0x96, 0x02, 0x05, 0x01,
	}))

	set, err := s.QuerySettings(shortTxOptions())
	require.NoError(t, err)

	assert.Equal(t, uint16(150), set.LedCount)
	assert.Equal(t, uint8(2), set.Segments)
}

func TestProbeUpgrades(t *testing.T) {
	desc := family.ForFamily(lmdefs.FAMILY_UNKNOWN, lmdefs.TIER_LEGACY)
	s := newEchoSesn(desc, simpleStateRsp())

	upgraded, err := s.Probe(shortTxOptions())
	require.NoError(t, err)
	assert.True(t, upgraded)

	assert.Equal(t, lmdefs.FAMILY_SIMPLE, s.Descriptor().Family)
	assert.True(t, s.Descriptor().ViaHeuristic)
}

// A garbled probe response leaves the descriptor untouched.
func TestProbeNegative(t *testing.T) {
	bad := simpleStateRsp()
	bad[len(bad)-1]++

	desc := family.ForFamily(lmdefs.FAMILY_UNKNOWN, lmdefs.TIER_LEGACY)
	s := newEchoSesn(desc, bad)

	upgraded, err := s.Probe(shortTxOptions())
	require.NoError(t, err)
	assert.False(t, upgraded)
	assert.Equal(t, lmdefs.FAMILY_UNKNOWN, s.Descriptor().Family)
}

// A probe timeout is a negative result, not an error.
func TestProbeTimeout(t *testing.T) {
	desc := family.ForFamily(lmdefs.FAMILY_UNKNOWN, lmdefs.TIER_LEGACY)
	s := NewSesn(desc, func(req []byte) error {
		return nil
	})

	opt := TxOptions{Timeout: 50 * time.Millisecond, Tries: 1}

	upgraded, err := s.Probe(opt)
	require.NoError(t, err)
	assert.False(t, upgraded)
}

// Probing an already classified device is a no-op; nothing is transmitted.
func TestProbeClassified(t *testing.T) {
	desc := family.ForFamily(lmdefs.FAMILY_SYMPHONY, lmdefs.TIER_LEGACY)

	txCount := 0
	s := NewSesn(desc, func(req []byte) error {
		txCount++
		return nil
	})

	upgraded, err := s.Probe(shortTxOptions())
	require.NoError(t, err)
	assert.False(t, upgraded)
	assert.Zero(t, txCount)
}

// Acknowledgment frames arriving while a query is outstanding do not
// complete it.
func TestRxAckIgnored(t *testing.T) {
	desc := family.ForFamily(lmdefs.FAMILY_SIMPLE, lmdefs.TIER_LEGACY)

	var s *Sesn
	s = NewSesn(desc, func(req []byte) error {
		go func() {
			ack := lmp.EncodeFrame(nil, 0, false)
			ack[0] |= lmp.LMP_TYPE_ACK << 2
			s.Rx(ack)

			s.Rx(lmp.EncodeFrame(simpleStateRsp(), 0, false))
		}()
		return nil
	})

	p, err := s.TxQueryOnce([]byte{0x81}, shortTxOptions())
	require.NoError(t, err)
	assert.Equal(t, simpleStateRsp(), p.Data)
}

func TestSetCommandsUnknownFamily(t *testing.T) {
	desc := family.ForFamily(lmdefs.FAMILY_UNKNOWN, lmdefs.TIER_LEGACY)

	s := NewSesn(desc, func(req []byte) error {
		t.Fatal("unexpected transmit")
		return nil
	})

	err := s.SetColor(lmdefs.RGB{R: 1})
	require.Error(t, err)
	assert.True(t, lmxutil.IsUnknownFamily(err))
}
