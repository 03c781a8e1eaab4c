// Copyright 2020-2024 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"golang.org/x/sync/errgroup"

	"github.com/bufbuild/cpptree/directive"
	"github.com/bufbuild/cpptree/intern"
	"github.com/bufbuild/cpptree/report"
)

// headerCacheSize bounds how many parsed headers are kept when following
// includes.
const headerCacheSize = 1024

func newDumpCmd() *cobra.Command {
	var (
		dumpFormat  string
		standalone  bool
		verbosity   int
		follow      bool
		includeDirs []string
		jobs        int
	)

	cmd := &cobra.Command{
		Use:   "dump <file>...",
		Short: "Dump the directive tree of each file",
		Args:  cobra.MinimumNArgs(1),
		// Diagnostics already say what went wrong.
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var enc encoder
			switch dumpFormat {
			case "text":
				enc = textEncoder{}
			case "yaml":
				enc = yamlEncoder{}
			default:
				return fmt.Errorf("unknown format: %s (expected text or yaml)", dumpFormat)
			}

			var sink report.Sink
			if standalone {
				sink = report.StreamSink(cmd.ErrOrStderr())
			} else {
				commonlog.Configure(verbosity, nil)
				sink = report.DefaultSink()
			}

			cache, err := lru.New[string, *loaded](headerCacheSize)
			if err != nil {
				return fmt.Errorf("create header cache: %w", err)
			}
			l := &loader{
				table:       new(intern.Table),
				parser:      &directive.Parser{Sink: sink},
				cache:       cache,
				includeDirs: includeDirs,
			}

			return dump(cmd.OutOrStdout(), enc, l, args, follow, jobs)
		},
	}

	cmd.Flags().StringVarP(&dumpFormat, "format", "f", "text", "output format (text, yaml)")
	cmd.Flags().BoolVar(&standalone, "standalone", false, "write diagnostics to stderr instead of the log")
	cmd.Flags().CountVarP(&verbosity, "verbose", "v", "log verbosity (repeat for more)")
	cmd.Flags().BoolVar(&follow, "follow", false, "also dump the headers each file includes")
	cmd.Flags().StringArrayVarP(&includeDirs, "include", "I", nil, "add a directory to the include search path")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.GOMAXPROCS(0), "number of files to parse in parallel")

	return cmd
}

// dump parses paths in parallel and writes their trees to w in argument
// order. Files with severe diagnostics are still printed, but make dump
// return an error.
func dump(w io.Writer, enc encoder, l *loader, paths []string, follow bool, jobs int) error {
	results := make([][]*loaded, len(paths))

	var g errgroup.Group
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, path := range paths {
		g.Go(func() error {
			root, err := l.load(path)
			if err != nil {
				return err
			}
			results[i] = []*loaded{root}
			if follow {
				results[i] = append(results[i], l.follow(root)...)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var errs []error
	for _, files := range results {
		for _, f := range files {
			if err := enc.encode(w, f); err != nil {
				return fmt.Errorf("encode %s: %w", f.path, err)
			}
			if f.malformed {
				errs = append(errs, fmt.Errorf("%s: %w", f.path, report.ErrMalformedSource))
			}
		}
	}
	return errors.Join(errs...)
}
