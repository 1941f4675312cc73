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

package lmxutil

import (
	"fmt"
	"math/rand"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/ugorji/go/codec"
)

var Debug bool

var nextSeq uint8
var seqBeenRead bool
var seqMutex sync.Mutex

var logFormatter = log.TextFormatter{
	FullTimestamp:   true,
	TimestampFormat: "2006-01-02 15:04:05.999",
	ForceColors:     true,
}

var ListenLog = &log.Logger{
	Out:       os.Stderr,
	Formatter: &logFormatter,
	Level:     log.DebugLevel,
}

func SetLogLevel(level log.Level) {
	log.SetLevel(level)
	log.SetFormatter(&logFormatter)
	ListenLog.Level = level
}

func Assert(cond bool) {
	if Debug && !cond {
		panic("Failed assertion")
	}
}

func NextSeq() uint8 {
	seqMutex.Lock()
	defer seqMutex.Unlock()

	if !seqBeenRead {
		nextSeq = uint8(rand.Uint32())
		seqBeenRead = true
	}

	val := nextSeq
	nextSeq++

	return val
}

// Clamp coerces val into [min, max].  Encoders clamp out-of-range input
// rather than rejecting it.
func Clamp(min int, max int, val int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Checksum computes the 1-byte sum-mod-256 integrity byte over b.
func Checksum(b []byte) byte {
	var sum byte
	for _, x := range b {
		sum += x
	}
	return sum
}

// AppendChecksum appends the sum-mod-256 of the preceding bytes.
func AppendChecksum(b []byte) []byte {
	return append(b, Checksum(b))
}

// VerifyChecksum reports whether the final byte of b equals the sum-mod-256
// of everything before it.
func VerifyChecksum(b []byte) bool {
	if len(b) < 2 {
		return false
	}
	return b[len(b)-1] == Checksum(b[:len(b)-1])
}

func DecodeJsonMap(j []byte) (map[string]interface{}, error) {
	m := map[string]interface{}{}

	dec := codec.NewDecoderBytes(j, new(codec.JsonHandle))
	if err := dec.Decode(&m); err != nil {
		log.Debugf("Attempt to decode invalid json: %#v", j)
		return nil, fmt.Errorf("failure decoding json; %s", err.Error())
	}

	return m, nil
}
