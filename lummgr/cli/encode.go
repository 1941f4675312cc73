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

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/lummgr/lummgr/lmxact/cmdenc"
	"github.com/lummgr/lummgr/lmxact/lmdefs"
	"github.com/lummgr/lummgr/lmxact/lmp"
)

// printEncoded shows the application frame and the fully wrapped transport
// frame; nothing is transmitted.
func printEncoded(payload []byte, expectRsp bool) {
	fmt.Printf("payload: %s\n", hex.EncodeToString(payload))
	fmt.Printf("frame:   %s\n",
		hex.EncodeToString(lmp.EncodeFrame(payload, 0, expectRsp)))
}

func encodePowerRunCmd(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		lmUsage(cmd, nil)
	}

	desc, err := familyDescriptor()
	if err != nil {
		lmUsage(cmd, err)
	}

	e, err := cmdenc.Lookup(desc)
	if err != nil {
		lmUsage(nil, err)
	}

	var on bool
	switch args[0] {
	case "on":
		on = true
	case "off":
		on = false
	default:
		on, err = cast.ToBoolE(args[0])
		if err != nil {
			lmUsage(cmd, err)
		}
	}

	payload, err := e.Power(on)
	if err != nil {
		lmUsage(nil, err)
	}

	printEncoded(payload, false)
}

func encodeColorRunCmd(cmd *cobra.Command, args []string) {
	if len(args) < 3 {
		lmUsage(cmd, nil)
	}

	desc, err := familyDescriptor()
	if err != nil {
		lmUsage(cmd, err)
	}

	e, err := cmdenc.Lookup(desc)
	if err != nil {
		lmUsage(nil, err)
	}

	c := lmdefs.RGB{
		R: uint8(cast.ToInt(args[0])),
		G: uint8(cast.ToInt(args[1])),
		B: uint8(cast.ToInt(args[2])),
	}

	payload, err := e.Color(c)
	if err != nil {
		lmUsage(nil, err)
	}

	printEncoded(payload, false)
}

func encodeEffectRunCmd(cmd *cobra.Command, args []string) {
	if len(args) < 3 {
		lmUsage(cmd, nil)
	}

	desc, err := familyDescriptor()
	if err != nil {
		lmUsage(cmd, err)
	}

	e, err := cmdenc.Lookup(desc)
	if err != nil {
		lmUsage(nil, err)
	}

	payload, err := e.Effect(cast.ToInt(args[0]), cast.ToInt(args[1]),
		cast.ToInt(args[2]))
	if err != nil {
		lmUsage(nil, err)
	}

	printEncoded(payload, false)
}

func encodeQueryRunCmd(cmd *cobra.Command, args []string) {
	printEncoded(cmdenc.StateQueryCmd(), true)
}

func encodeSettingsRunCmd(cmd *cobra.Command, args []string) {
	printEncoded(cmdenc.SettingsQueryCmd(), true)
}

func encodeCmd() *cobra.Command {
	encCmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a command for a given family and print it as hex",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	encCmd.AddCommand(&cobra.Command{
		Use:   "power <on|off>",
		Short: "Encode a power command (--family)",
		Run:   encodePowerRunCmd,
	})

	encCmd.AddCommand(&cobra.Command{
		Use:   "color <r> <g> <b>",
		Short: "Encode a static color command (--family)",
		Run:   encodeColorRunCmd,
	})

	encCmd.AddCommand(&cobra.Command{
		Use:   "effect <id> <speed> <brightness>",
		Short: "Encode an effect command (--family)",
		Run:   encodeEffectRunCmd,
	})

	encCmd.AddCommand(&cobra.Command{
		Use:   "query",
		Short: "Encode the universal state query",
		Run:   encodeQueryRunCmd,
	})

	encCmd.AddCommand(&cobra.Command{
		Use:   "settings",
		Short: "Encode the settings query",
		Run:   encodeSettingsRunCmd,
	})

	return encCmd
}
