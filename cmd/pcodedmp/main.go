// Copyright 2021 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	pcodedmp "github.com/malware-tools/pcodedmp"
)

var (
	verbose    bool
	disasmOnly bool
	noRecurse  bool
	outPath    string
)

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func disasmFile(path string) error {
	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	opts := &pcodedmp.Options{
		Verbose:    verbose,
		DisasmOnly: disasmOnly,
	}
	doc, err := pcodedmp.New(path, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer doc.Close()

	fmt.Fprintf(out, "Opening file %s\n", path)
	if err := doc.Disassemble(out); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for _, a := range doc.Anomalies {
		fmt.Fprintln(os.Stderr, "anomaly:", a)
	}
	return nil
}

func disasm(cmd *cobra.Command, args []string) {
	for _, arg := range args {
		if !isDirectory(arg) {
			if err := disasmFile(arg); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			continue
		}
		if noRecurse {
			entries, err := os.ReadDir(arg)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			for _, e := range entries {
				if e.IsDir() {
					continue
				}
				if derr := disasmFile(filepath.Join(arg, e.Name())); derr != nil {
					fmt.Fprintln(os.Stderr, derr)
				}
			}
			continue
		}
		filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return nil
			}
			if derr := disasmFile(path); derr != nil {
				fmt.Fprintln(os.Stderr, derr)
			}
			return nil
		})
	}
}

func main() {
	var rootCmd = &cobra.Command{
		Use:   "pcodedmp",
		Short: "A VBA p-code disassembler",
		Long:  "pcodedmp disassembles the compiled p-code of VBA macros in legacy Office compound documents",
		Args:  cobra.MinimumNArgs(1),
		Run:   disasm,
	}

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Long:  "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("pcodedmp version 2.0.0")
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "dump every stream and table alongside the disassembly")
	rootCmd.PersistentFlags().BoolVarP(&disasmOnly, "disasm-only", "d", false, "only print the p-code disassembly, skip the stream/identifier dumps")
	rootCmd.PersistentFlags().BoolVar(&noRecurse, "no-recurse", false, "only process the files directly inside directories given on the command line, not their subdirectories")
	rootCmd.PersistentFlags().StringVarP(&outPath, "output", "o", "", "write the report to a file instead of stdout")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
