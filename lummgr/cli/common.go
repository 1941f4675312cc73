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
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/lummgr/lummgr/lmxact/family"
	"github.com/lummgr/lummgr/lmxact/lmdefs"
	"github.com/lummgr/lummgr/lummgr/lmutil"
)

func lmUsage(cmd *cobra.Command, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
	}

	if cmd != nil {
		fmt.Fprintf(os.Stderr, "\n")
		cmd.Help()
	}
	os.Exit(1)
}

// parseHexArg accepts "00058000...", "00:05:80:..." or "00 05 80 ..." so
// captures can be pasted from most sniffers unedited.
func parseHexArg(s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', ':', '-', ',':
			return -1
		}
		return r
	}, s)

	b, err := hex.DecodeString(clean)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid hex argument: %s", s)
	}

	return b, nil
}

// familyDescriptor resolves the --family flag into a descriptor for
// offline decoding.
func familyDescriptor() (*family.Descriptor, error) {
	if lmutil.DeviceFamily == "" {
		return nil, fmt.Errorf("--family is required for this command")
	}

	f, err := lmdefs.FamilyFromString(lmutil.DeviceFamily)
	if err != nil {
		return nil, err
	}

	return family.ForFamily(f, lmdefs.TIER_LEGACY), nil
}
