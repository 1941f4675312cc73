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

// Package sesn ties the protocol engine to a caller-owned transport.  The
// caller supplies a transmit callback and feeds notifications into Rx; the
// session owns sequencing, framing, and the one-outstanding-query
// discipline for a single device.
package sesn

import (
	"encoding/hex"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/lummgr/lummgr/lmxact/cmdenc"
	"github.com/lummgr/lummgr/lmxact/family"
	"github.com/lummgr/lummgr/lmxact/lmdefs"
	"github.com/lummgr/lummgr/lmxact/lmp"
	"github.com/lummgr/lummgr/lmxact/lmxutil"
	"github.com/lummgr/lummgr/lmxact/statedec"
)

// TxFn writes one fully wrapped frame to the device.  The choice of
// characteristic/handle belongs to the collaborator, not this package.
type TxFn func(req []byte) error

var DfltTxOptions = TxOptions{
	Timeout: 10 * time.Second,
	Tries:   1,
}

type TxOptions struct {
	Timeout time.Duration
	Tries   int
}

func NewTxOptions() TxOptions {
	return DfltTxOptions
}

type Sesn struct {
	desc *family.Descriptor
	txCb TxFn
	d    *lmp.Dispatcher
}

func NewSesn(desc *family.Descriptor, txCb TxFn) *Sesn {
	return &Sesn{
		desc: desc,
		txCb: txCb,
		d:    lmp.NewDispatcher(),
	}
}

func (s *Sesn) Descriptor() *family.Descriptor {
	return s.desc
}

// Rx feeds one raw notification, exactly as delivered, into the session.
// Returns true if it completed an outstanding query.
func (s *Sesn) Rx(data []byte) bool {
	return s.d.Dispatch(data)
}

// TxCmdOnce transmits one application command with no response expected.
func (s *Sesn) TxCmdOnce(cmd []byte) error {
	frame := lmp.EncodeFrame(cmd, lmxutil.NextSeq(), false)

	log.Debugf("Tx command: %s", hex.Dump(frame))
	return s.txCb(frame)
}

// TxQueryOnce transmits one application command and blocks for its
// response.  At most one query may be outstanding per session.
func (s *Sesn) TxQueryOnce(cmd []byte, opt TxOptions) (lmp.Payload, error) {
	tries := opt.Tries
	if tries < 1 {
		tries = 1
	}

	var err error
	for i := 0; i < tries; i++ {
		var p lmp.Payload
		p, err = s.txRxOnce(cmd, opt.Timeout)
		if err == nil {
			return p, nil
		}
		if !lmxutil.IsRspTimeout(err) {
			return lmp.Payload{}, err
		}
	}

	return lmp.Payload{}, err
}

func (s *Sesn) txRxOnce(cmd []byte, tmo time.Duration) (lmp.Payload, error) {
	l, err := s.d.AddListener()
	if err != nil {
		return lmp.Payload{}, err
	}
	defer s.d.RemoveListener()

	frame := lmp.EncodeFrame(cmd, lmxutil.NextSeq(), true)

	log.Debugf("Tx query: %s", hex.Dump(frame))
	if err := s.txCb(frame); err != nil {
		return lmp.Payload{}, err
	}

	for {
		select {
		case err := <-l.ErrChan:
			return lmp.Payload{}, err
		case p := <-l.RspChan:
			return p, nil
		case _, ok := <-l.AfterTimeout(tmo):
			if ok {
				return lmp.Payload{}, lmxutil.NewRspTimeoutError(
					"query timeout")
			}
		}
	}
}

func (s *Sesn) QueryState(opt TxOptions) (*statedec.DeviceState, error) {
	p, err := s.TxQueryOnce(cmdenc.StateQueryCmd(), opt)
	if err != nil {
		return nil, err
	}

	return statedec.Decode(s.desc, p.Data)
}

func (s *Sesn) QuerySettings(opt TxOptions) (*statedec.DeviceSettings, error) {
	p, err := s.TxQueryOnce(cmdenc.SettingsQueryCmd(), opt)
	if err != nil {
		return nil, err
	}

	return statedec.DecodeSettings(p.Data)
}

// Probe sends one conservative command to an unclassified device and
// inspects the result.  A structurally valid, checksummed response
// upgrades the session's descriptor; a negative result, including a
// timeout, is non-fatal and leaves it unchanged.
func (s *Sesn) Probe(opt TxOptions) (upgraded bool, err error) {
	if s.desc.Family != lmdefs.FAMILY_UNKNOWN {
		return false, nil
	}

	p, err := s.TxQueryOnce(cmdenc.StateQueryCmd(), opt)
	if err != nil {
		if lmxutil.IsRspTimeout(err) {
			return false, nil
		}
		return false, err
	}

	if !family.EvalProbe(p.Data) {
		return false, nil
	}

	// The conservative probe command is the simple-family state query, so
	// a positive result upgrades to that family.
	s.desc = s.desc.Upgrade(lmdefs.FAMILY_SIMPLE)
	log.Debugf("capability probe upgraded device; %s", s.desc.String())

	return true, nil
}

func (s *Sesn) encoder() (cmdenc.Encoder, error) {
	return cmdenc.Lookup(s.desc)
}

func (s *Sesn) SetPower(on bool) error {
	e, err := s.encoder()
	if err != nil {
		return err
	}

	cmd, err := e.Power(on)
	if err != nil {
		return err
	}

	return s.TxCmdOnce(cmd)
}

func (s *Sesn) SetColor(c lmdefs.RGB) error {
	e, err := s.encoder()
	if err != nil {
		return err
	}

	cmd, err := e.Color(c)
	if err != nil {
		return err
	}

	return s.TxCmdOnce(cmd)
}

func (s *Sesn) SetBrightness(level int) error {
	e, err := s.encoder()
	if err != nil {
		return err
	}

	cmd, err := e.Brightness(level)
	if err != nil {
		return err
	}

	return s.TxCmdOnce(cmd)
}

func (s *Sesn) SetEffect(id int, speed int, brightness int) error {
	e, err := s.encoder()
	if err != nil {
		return err
	}

	cmd, err := e.Effect(id, speed, brightness)
	if err != nil {
		return err
	}

	return s.TxCmdOnce(cmd)
}

func (s *Sesn) SetDualEffect(id int, fg lmdefs.RGB, bg lmdefs.RGB,
	speed int, dir lmdefs.Direction) error {

	e, err := s.encoder()
	if err != nil {
		return err
	}

	cmd, err := e.DualEffect(id, fg, bg, speed, dir)
	if err != nil {
		return err
	}

	return s.TxCmdOnce(cmd)
}
