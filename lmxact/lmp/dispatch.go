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
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

type Listener struct {
	RspChan chan Payload
	ErrChan chan error
	tmoChan chan time.Time
	timer   *time.Timer
}

func NewListener() *Listener {
	return &Listener{
		RspChan: make(chan Payload, 1),
		ErrChan: make(chan error, 1),
		tmoChan: make(chan time.Time, 1),
	}
}

func (l *Listener) AfterTimeout(tmo time.Duration) <-chan time.Time {
	fn := func() {
		l.tmoChan <- time.Now()
	}
	l.timer = time.AfterFunc(tmo, fn)
	return l.tmoChan
}

func (l *Listener) Stop() {
	if l.timer != nil {
		l.timer.Stop()
	}
}

// Dispatcher routes inbound notifications to the single outstanding query
// listener.  The sequence byte is not used for correlation: the reference
// devices do not echo it reliably, so correctness instead requires at most
// one outstanding query per device.  The dispatcher enforces that
// discipline by refusing a second concurrent listener.
type Dispatcher struct {
	listener *Listener
	mutex    sync.Mutex
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) AddListener() (*Listener, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.listener != nil {
		return nil, fmt.Errorf("Duplicate listener; a query is already " +
			"outstanding")
	}

	l := NewListener()
	d.listener = l
	return l, nil
}

func (d *Dispatcher) removeListenerNoLock() *Listener {
	l := d.listener
	if l != nil {
		l.Stop()
		d.listener = nil
	}
	return l
}

func (d *Dispatcher) RemoveListener() *Listener {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	return d.removeListenerNoLock()
}

func (d *Dispatcher) FakeRxError(err error) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.listener == nil {
		return fmt.Errorf("No outstanding listener")
	}

	d.listener.ErrChan <- err

	return nil
}

// Dispatch decodes one notification and delivers its classified payload to
// the outstanding listener.  Returns true if the payload was dispatched.
// Acknowledgment frames and malformed frames are dropped; malformed bytes
// never propagate past this boundary.
func (d *Dispatcher) Dispatch(data []byte) bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	hdr, payload, err := DecodeFrame(data)
	if err != nil {
		log.Debugf("Failure decoding transport frame: %s\nframe=\n%s",
			err.Error(), hex.Dump(data))
		return false
	}

	if hdr == nil {
		// Acknowledgment frame; dropped without further processing.
		log.Debugf("Filtered transport ack frame")
		return false
	}

	p := Classify(data, payload)
	log.Debugf("Received payload: wrapped=%v len=%d", p.Wrapped, len(p.Data))

	if d.listener == nil {
		log.Printf("No listener for incoming message")
		return false
	}

	d.listener.RspChan <- p

	return true
}
