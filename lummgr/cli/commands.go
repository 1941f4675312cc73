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
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lummgr/lummgr/lmxact/lmxutil"
	"github.com/lummgr/lummgr/lummgr/lmutil"
)

var LummgrLogLevel log.Level

func Commands() *cobra.Command {
	logLevelStr := ""
	lmCmd := &cobra.Command{
		Use:   lmutil.ToolInfo.ExeName,
		Short: lmutil.ToolInfo.ShortName + " inspects lighting-controller protocol bytes",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var err error
			LummgrLogLevel, err = log.ParseLevel(logLevelStr)
			if err != nil {
				lmUsage(nil, err)
			}

			lmxutil.SetLogLevel(LummgrLogLevel)
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	lmCmd.PersistentFlags().StringVarP(&logLevelStr, "loglevel", "l", "info",
		"log level to use")

	lmCmd.PersistentFlags().StringVarP(&lmutil.DeviceFamily, "family", "f",
		"", "command family to assume instead of classifying")

	versCmd := &cobra.Command{
		Use:     "version",
		Short:   "Display the " + lmutil.ToolInfo.ShortName + " version number",
		Example: "  " + lmutil.ToolInfo.ExeName + " version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s %s\n",
				lmutil.ToolInfo.LongName,
				lmutil.ToolInfo.VersionString)
		},
	}
	lmCmd.AddCommand(versCmd)

	lmCmd.AddCommand(advCmd())
	lmCmd.AddCommand(frameCmd())
	lmCmd.AddCommand(encodeCmd())

	return lmCmd
}
