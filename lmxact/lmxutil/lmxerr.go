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
)

// Indicates a transport frame shorter than the fixed 8-byte header, or a
// state response shorter than its family's layout requires.
type FrameTooShortError struct {
	Text string
}

func NewFrameTooShortError(text string) *FrameTooShortError {
	return &FrameTooShortError{
		Text: text,
	}
}

func FmtFrameTooShortError(format string,
	args ...interface{}) *FrameTooShortError {

	return NewFrameTooShortError(fmt.Sprintf(format, args...))
}

func (e *FrameTooShortError) Error() string {
	return e.Text
}

func IsFrameTooShort(err error) bool {
	_, ok := err.(*FrameTooShortError)
	return ok
}

// Indicates a transport frame with non-zero version bits or the segmented
// bit set.  Multi-segment reassembly is not supported.
type UnsupportedVersionError struct {
	Text string
}

func NewUnsupportedVersionError(text string) *UnsupportedVersionError {
	return &UnsupportedVersionError{
		Text: text,
	}
}

func FmtUnsupportedVersionError(format string,
	args ...interface{}) *UnsupportedVersionError {

	return NewUnsupportedVersionError(fmt.Sprintf(format, args...))
}

func (e *UnsupportedVersionError) Error() string {
	return e.Text
}

func IsUnsupportedVersion(err error) bool {
	_, ok := err.(*UnsupportedVersionError)
	return ok
}

// Indicates a state response whose trailing sum-mod-256 byte does not match
// its contents.  The frame must not be interpreted further.
type ChecksumMismatchError struct {
	Text     string
	Expected byte
	Actual   byte
}

func NewChecksumMismatchError(expected byte, actual byte,
	text string) *ChecksumMismatchError {

	return &ChecksumMismatchError{
		Text:     text,
		Expected: expected,
		Actual:   actual,
	}
}

func FmtChecksumMismatchError(expected byte,
	actual byte) *ChecksumMismatchError {

	return NewChecksumMismatchError(expected, actual,
		fmt.Sprintf("checksum mismatch; expected=0x%02x actual=0x%02x",
			expected, actual))
}

func (e *ChecksumMismatchError) Error() string {
	return e.Text
}

func IsChecksumMismatch(err error) bool {
	_, ok := err.(*ChecksumMismatchError)
	return ok
}

// Indicates an operation against a descriptor whose family could not be
// resolved.  Non-fatal; classification itself never fails.
type UnknownFamilyError struct {
	Text string
}

func NewUnknownFamilyError(text string) *UnknownFamilyError {
	return &UnknownFamilyError{
		Text: text,
	}
}

func FmtUnknownFamilyError(format string,
	args ...interface{}) *UnknownFamilyError {

	return NewUnknownFamilyError(fmt.Sprintf(format, args...))
}

func (e *UnknownFamilyError) Error() string {
	return e.Text
}

func IsUnknownFamily(err error) bool {
	_, ok := err.(*UnknownFamilyError)
	return ok
}

// Indicates bytes that could not be decoded at an application boundary
// (e.g., malformed manufacturer data).  Payload classification never
// surfaces this; it degrades to a raw-binary interpretation instead.
type PayloadDecodeError struct {
	Text string
}

func NewPayloadDecodeError(text string) *PayloadDecodeError {
	return &PayloadDecodeError{
		Text: text,
	}
}

func FmtPayloadDecodeError(format string,
	args ...interface{}) *PayloadDecodeError {

	return NewPayloadDecodeError(fmt.Sprintf(format, args...))
}

func (e *PayloadDecodeError) Error() string {
	return e.Text
}

func IsPayloadDecode(err error) bool {
	_, ok := err.(*PayloadDecodeError)
	return ok
}

// Indicates caller misuse: an operation the target family does not define,
// e.g. a dual-color effect against a non-addressable device.
type NotSupportedError struct {
	Text string
}

func NewNotSupportedError(text string) *NotSupportedError {
	return &NotSupportedError{
		Text: text,
	}
}

func FmtNotSupportedError(format string,
	args ...interface{}) *NotSupportedError {

	return NewNotSupportedError(fmt.Sprintf(format, args...))
}

func (e *NotSupportedError) Error() string {
	return e.Text
}

func IsNotSupported(err error) bool {
	_, ok := err.(*NotSupportedError)
	return ok
}

// Represents an application-layer timeout; request sent, but no response
// received within the collaborator's deadline.
type RspTimeoutError struct {
	Text string
}

func NewRspTimeoutError(text string) *RspTimeoutError {
	return &RspTimeoutError{
		Text: text,
	}
}

func FmtRspTimeoutError(format string, args ...interface{}) *RspTimeoutError {
	return NewRspTimeoutError(fmt.Sprintf(format, args...))
}

func (e *RspTimeoutError) Error() string {
	return e.Text
}

func IsRspTimeout(err error) bool {
	_, ok := err.(*RspTimeoutError)
	return ok
}
