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

package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lummgr/lummgr/lmxact/adv"
	"github.com/lummgr/lummgr/lmxact/family"
	"github.com/lummgr/lummgr/lmxact/lmp"
	"github.com/lummgr/lummgr/lmxact/statedec"
)

func advRunCmd(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		lmUsage(cmd, nil)
	}

	mfg, err := parseHexArg(args[0])
	if err != nil {
		lmUsage(cmd, err)
	}

	rec, err := adv.Decode(mfg)
	if err != nil {
		lmUsage(nil, err)
	}

	desc := family.Classify(rec)

	fmt.Printf("record:     %s\n", rec.String())
	fmt.Printf("descriptor: %s\n", desc.String())
	if desc.ViaHeuristic {
		fmt.Printf("            (status-byte heuristic; low confidence)\n")
	}
	if rec.ExtState != nil {
		fmt.Printf("ext state:  %s\n", hex.EncodeToString(rec.ExtState))
	}
}

func advCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "adv <mfg-data-hex>",
		Short: "Decode advertisement manufacturer data and classify the device",
		Run:   advRunCmd,
	}
}

func frameRunCmd(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		lmUsage(cmd, nil)
	}

	frame, err := parseHexArg(args[0])
	if err != nil {
		lmUsage(cmd, err)
	}

	hdr, payload, err := lmp.DecodeFrame(frame)
	if err != nil {
		lmUsage(nil, err)
	}
	if hdr == nil {
		fmt.Printf("acknowledgment frame; filtered\n")
		return
	}

	fmt.Printf("header:  seq=%d type=%d cmd=%d totlen=%d\n",
		hdr.Seq, hdr.Type, hdr.CmdId, hdr.TotalLen)

	p := lmp.Classify(frame, payload)
	fmt.Printf("payload: wrapped=%v data=%s\n",
		p.Wrapped, hex.EncodeToString(p.Data))

	// Full state decode is only possible when the caller names a family.
	desc, err := familyDescriptor()
	if err != nil {
		return
	}

	state, err := statedec.Decode(desc, p.Data)
	if err != nil {
		fmt.Printf("state:   undecodable (%s)\n", err.Error())
		return
	}

	fmt.Printf("state:   on=%v mode=%s color=%s effect=%d speed=%d "+
		"brightness=%d\n", state.On, state.Mode.String(),
		state.Color.String(), state.Effect, state.Speed, state.Brightness)
}

func frameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "frame <frame-hex>",
		Short: "Decode a transport frame, classify its payload, and " +
			"optionally decode device state (--family)",
		Run: frameRunCmd,
	}
}
