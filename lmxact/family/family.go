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

// Package family resolves an advertised identity record into a command
// family.  Classification is an ordered pipeline: an authoritative
// product-id table, then a lower-confidence status-byte heuristic, then
// UNKNOWN.  Both tables are pure data; new hardware is supported by
// appending a row and a codec pair, never by editing control flow.
package family

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/lummgr/lummgr/lmxact/adv"
	"github.com/lummgr/lummgr/lmxact/lmdefs"
	"github.com/lummgr/lummgr/lmxact/lmxutil"
)

// Descriptor is built once per discovered device and is immutable
// thereafter.  A later advertisement reporting a different product id is
// treated as a new logical device and classified from scratch.
type Descriptor struct {
	ProductId   uint16
	Family      lmdefs.Family
	Addressable bool
	Tier        lmdefs.ProtoTier

	// Effect-id bounds for this hardware; encoders clamp into them.
	EffectMin uint8
	EffectMax uint8

	// True when the family came from the status-byte heuristic rather
	// than a product-id match.  Empirical correlation, not a protocol
	// guarantee; a capability probe may override it.
	ViaHeuristic bool
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("product=0x%04x family=%s addressable=%v tier=%s",
		d.ProductId, d.Family.String(), d.Addressable, d.Tier.String())
}

type productRange struct {
	Lo uint16
	Hi uint16
}

func (pr productRange) contains(id uint16) bool {
	return id >= pr.Lo && id <= pr.Hi
}

// One row per hardware group.  Symphony appears twice because its product
// tiers share an encoding but differ in effect-id bounds.
type productRow struct {
	Name        string
	Products    []productRange
	Family      lmdefs.Family
	Addressable bool
	EffectMin   uint8
	EffectMax   uint8
}

var productTable = []productRow{
	{
		Name:      "simple-legacy",
		Products:  []productRange{{0x0015, 0x0017}, {0x001e, 0x001e}},
		Family:    lmdefs.FAMILY_SIMPLE,
		EffectMin: 0x25,
		EffectMax: 0x38,
	},
	{
		Name:      "simple",
		Products:  []productRange{{0x0033, 0x0035}, {0x0044, 0x0044}},
		Family:    lmdefs.FAMILY_SIMPLE,
		EffectMin: 0x25,
		EffectMax: 0x38,
	},
	{
		Name:        "symphony-t1",
		Products:    []productRange{{0x0a1b, 0x0a1f}},
		Family:      lmdefs.FAMILY_SYMPHONY,
		Addressable: true,
		EffectMin:   1,
		EffectMax:   100,
	},
	{
		Name:        "symphony-t2",
		Products:    []productRange{{0x0a21, 0x0a33}},
		Family:      lmdefs.FAMILY_SYMPHONY,
		Addressable: true,
		EffectMin:   1,
		EffectMax:   210,
	},
	{
		Name:        "addressable-a",
		Products:    []productRange{{0x0053, 0x0059}},
		Family:      lmdefs.FAMILY_ADDR_A,
		Addressable: true,
		EffectMin:   1,
		EffectMax:   113,
	},
	{
		Name:        "addressable-b",
		Products:    []productRange{{0x0804, 0x0807}, {0x081a, 0x081e}},
		Family:      lmdefs.FAMILY_ADDR_B,
		Addressable: true,
		EffectMin:   1,
		EffectMax:   100,
	},
}

// Status-byte correlation observed across captures.  The status byte is an
// unreliable proxy for device type; this tier only runs when the product id
// is unknown, and its result is flagged ViaHeuristic.
type statusRow struct {
	Status      uint8
	Family      lmdefs.Family
	Addressable bool
	EffectMin   uint8
	EffectMax   uint8
}

var statusTable = []statusRow{
	{Status: 0x33, Family: lmdefs.FAMILY_SIMPLE,
		EffectMin: 0x25, EffectMax: 0x38},
	{Status: 0x44, Family: lmdefs.FAMILY_SIMPLE,
		EffectMin: 0x25, EffectMax: 0x38},
	{Status: 0x53, Family: lmdefs.FAMILY_SYMPHONY, Addressable: true,
		EffectMin: 1, EffectMax: 100},
	{Status: 0x5b, Family: lmdefs.FAMILY_ADDR_A, Addressable: true,
		EffectMin: 1, EffectMax: 113},
	{Status: 0x65, Family: lmdefs.FAMILY_ADDR_B, Addressable: true,
		EffectMin: 1, EffectMax: 100},
}

func matchProduct(id uint16) *productRow {
	for i := range productTable {
		row := &productTable[i]
		for _, pr := range row.Products {
			if pr.contains(id) {
				return row
			}
		}
	}

	return nil
}

func matchStatus(status uint8) *statusRow {
	for i := range statusTable {
		if statusTable[i].Status == status {
			return &statusTable[i]
		}
	}

	return nil
}

// Classify never fails; an unmatched record yields an UNKNOWN-family
// descriptor, which callers may later upgrade via a capability probe.
func Classify(rec *adv.Record) *Descriptor {
	d := &Descriptor{
		ProductId: rec.ProductId,
		Family:    lmdefs.FAMILY_UNKNOWN,
		Tier:      rec.Tier(),
	}

	if row := matchProduct(rec.ProductId); row != nil {
		d.Family = row.Family
		d.Addressable = row.Addressable
		d.EffectMin = row.EffectMin
		d.EffectMax = row.EffectMax
		return d
	}

	if row := matchStatus(rec.Status); row != nil {
		log.Debugf("classified device via status byte heuristic; "+
			"status=0x%02x family=%s", rec.Status, row.Family.String())

		d.Family = row.Family
		d.Addressable = row.Addressable
		d.EffectMin = row.EffectMin
		d.EffectMax = row.EffectMax
		d.ViaHeuristic = true
		return d
	}

	log.Debugf("unclassifiable device; product=0x%04x status=0x%02x",
		rec.ProductId, rec.Status)

	return d
}

// EvalProbe inspects the response to a capability probe (the universal
// state query).  A structurally valid, checksum-correct response is a
// positive result.
func EvalProbe(rsp []byte) bool {
	if len(rsp) < 4 {
		return false
	}
	if rsp[0] != lmdefs.OP_STATE_QUERY {
		return false
	}

	return lmxutil.VerifyChecksum(rsp)
}

// Upgrade produces a copy of d reclassified as the given family.  Used
// after a positive capability probe; the original descriptor is left
// untouched (descriptors are otherwise immutable).
func (d *Descriptor) Upgrade(f lmdefs.Family) *Descriptor {
	row := rowForFamily(f)

	up := *d
	up.Family = f
	up.ViaHeuristic = true
	if row != nil {
		up.Addressable = row.Addressable
		up.EffectMin = row.EffectMin
		up.EffectMax = row.EffectMax
	}

	return &up
}

// ForFamily builds a descriptor for a known family without an
// advertisement, e.g. for offline decoding of captured bytes.
func ForFamily(f lmdefs.Family, tier lmdefs.ProtoTier) *Descriptor {
	d := &Descriptor{
		Family: f,
		Tier:   tier,
	}

	if row := rowForFamily(f); row != nil {
		d.Addressable = row.Addressable
		d.EffectMin = row.EffectMin
		d.EffectMax = row.EffectMax
	}

	return d
}

func rowForFamily(f lmdefs.Family) *productRow {
	for i := range productTable {
		if productTable[i].Family == f {
			return &productTable[i]
		}
	}

	return nil
}
