/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Command arcodec is a thin CLI over the bytecodec package: it entropy
// codes a file's raw bytes under either a static or an adaptive model,
// optionally bracketed by a whole-message checksum.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arcodec/arcodec/bytecodec"
	"github.com/arcodec/arcodec/bytestream"
)

const (
	_APP_HEADER = "arcodec 1.0 (c) Frederic Langlet"

	_ARG_INPUT           = "--input="
	_ARG_OUTPUT          = "--output="
	_ARG_MODEL           = "--model="
	_ARG_VERBOSE         = "--verbose="
	_ARG_CONFIG          = "--config="
	_ARG_CHECKSUM        = "--checksum="
	_ARG_VERIFY_CHECKSUM = "--verify-checksum"

	// modelMarkerStatic and modelMarkerAdaptive are the one-byte prefixes
	// an encoded file carries so decode can tell which bytecodec reader
	// to build without the caller repeating --model, the same role the
	// teacher's own block-format magic numbers play (see DESIGN.md).
	modelMarkerStatic   = 'S'
	modelMarkerAdaptive = 'A'
)

var log = Printer{os: bufio.NewWriter(os.Stdout)}

type options struct {
	action         string // "encode" or "decode"
	model          string // "static" or "adaptive"
	input          string
	output         string
	verbose        bool
	verboseSet     bool
	config         string
	checksum       string
	verifyChecksum bool
	frequencies    []uint64
}

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	opts, status := processCommandLine(args)

	if status != 0 {
		return status
	}

	if opts.action == "" {
		printUsage()
		return 0
	}

	if opts.config != "" {
		cfg, err := loadConfig(opts.config)

		if err != nil {
			fmt.Println(err)
			return 1
		}

		applyConfig(&opts, cfg)
	}

	if opts.model == "" {
		opts.model = "static"
	}

	if opts.input == "" || opts.output == "" {
		fmt.Println("Missing --input or --output (see --help)")
		return 1
	}

	var err error

	switch opts.action {
	case "encode":
		err = runEncode(opts)
	case "decode":
		err = runDecode(opts)
	default:
		fmt.Printf("Unknown action %q: must be encode or decode\n", opts.action)
		return 1
	}

	if err != nil {
		fmt.Println(err)
		return 1
	}

	return 0
}

func processCommandLine(args []string) (options, int) {
	var opts options

	for i, arg := range args {
		if i == 0 {
			continue
		}

		arg = strings.TrimSpace(arg)

		switch {
		case arg == "encode" || arg == "-e":
			opts.action = "encode"
		case arg == "decode" || arg == "-d":
			opts.action = "decode"
		case arg == "--help" || arg == "-h":
			printUsage()
			return opts, -1
		case arg == _ARG_VERIFY_CHECKSUM:
			opts.verifyChecksum = true
		case strings.HasPrefix(arg, _ARG_INPUT):
			opts.input = arg[len(_ARG_INPUT):]
		case strings.HasPrefix(arg, _ARG_OUTPUT):
			opts.output = arg[len(_ARG_OUTPUT):]
		case strings.HasPrefix(arg, _ARG_MODEL):
			opts.model = arg[len(_ARG_MODEL):]
		case strings.HasPrefix(arg, _ARG_CONFIG):
			opts.config = arg[len(_ARG_CONFIG):]
		case strings.HasPrefix(arg, _ARG_CHECKSUM):
			opts.checksum = arg[len(_ARG_CHECKSUM):]
		case strings.HasPrefix(arg, _ARG_VERBOSE):
			opts.verbose = arg[len(_ARG_VERBOSE):] == "true"
			opts.verboseSet = true
		default:
			fmt.Printf("Unknown argument: %s\n", arg)
			return opts, 1
		}
	}

	return opts, 0
}

func printUsage() {
	fmt.Println(_APP_HEADER)
	fmt.Println("Usage: arcodec encode --input=<file> --output=<file> [--model=static|adaptive] [--checksum=none|xxhash64|siphash|blake2b] [--config=<file>] [--verbose=true]")
	fmt.Println("       arcodec decode --input=<file> --output=<file> [--verify-checksum] [--verbose=true]")
}

func runEncode(opts options) error {
	in, err := os.Open(opts.input)
	if err != nil {
		return fmt.Errorf("arcodec: opening input: %w", err)
	}
	defer in.Close()

	out, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("arcodec: creating output: %w", err)
	}
	defer out.Close()

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("arcodec: reading input: %w", err)
	}

	switch opts.model {
	case "static":
		if _, err := out.Write([]byte{modelMarkerStatic}); err != nil {
			return fmt.Errorf("arcodec: writing model marker: %w", err)
		}

		sink := bytestream.NewWriterSink(out)
		w := bytecodec.NewStaticWriter(sink)

		if len(opts.frequencies) != 0 {
			if err := w.SetFrequencies(opts.frequencies); err != nil {
				return fmt.Errorf("arcodec: applying configured frequencies: %w", err)
			}
		}

		if opts.checksum != "" && opts.checksum != "none" {
			if err := w.SetChecksum(opts.checksum); err != nil {
				return fmt.Errorf("arcodec: setting checksum: %w", err)
			}
		}

		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("arcodec: encoding: %w", err)
		}
		if err := w.Close(true); err != nil {
			return fmt.Errorf("arcodec: finalizing: %w", err)
		}
	case "adaptive", "stream":
		if opts.checksum != "" && opts.checksum != "none" {
			return fmt.Errorf("arcodec: --checksum requires --model=static (adaptive mode has no header to store it in)")
		}

		if _, err := out.Write([]byte{modelMarkerAdaptive}); err != nil {
			return fmt.Errorf("arcodec: writing model marker: %w", err)
		}

		sink := bytestream.NewWriterSink(out)
		w, err := bytecodec.NewStreamWriter(sink)

		if err != nil {
			return fmt.Errorf("arcodec: creating adaptive writer: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("arcodec: encoding: %w", err)
		}
		if err := w.Close(true); err != nil {
			return fmt.Errorf("arcodec: finalizing: %w", err)
		}
	default:
		return fmt.Errorf("arcodec: unknown model %q: must be static or adaptive", opts.model)
	}

	log.Println(fmt.Sprintf("Encoded %s -> %s (%d bytes in, model=%s)", opts.input, opts.output, len(data), opts.model), opts.verbose)
	return nil
}

func runDecode(opts options) error {
	in, err := os.Open(opts.input)
	if err != nil {
		return fmt.Errorf("arcodec: opening input: %w", err)
	}
	defer in.Close()

	out, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("arcodec: creating output: %w", err)
	}
	defer out.Close()

	var marker [1]byte
	if _, err := io.ReadFull(in, marker[:]); err != nil {
		return fmt.Errorf("arcodec: reading model marker: %w", err)
	}

	source := bytestream.NewReaderSource(in)
	buf := make([]byte, 64*1024)
	total := 0

	switch marker[0] {
	case modelMarkerStatic:
		r := bytecodec.NewStaticReader(source)

		for !r.Ended() {
			n, err := r.Read(buf)
			total += n

			if n > 0 {
				if _, werr := out.Write(buf[:n]); werr != nil {
					return fmt.Errorf("arcodec: writing output: %w", werr)
				}
			}

			if err != nil {
				return fmt.Errorf("arcodec: decoding: %w", err)
			}
		}

		if err := r.Finalize(true); err != nil {
			return fmt.Errorf("arcodec: finalizing: %w", err)
		}

		if opts.verifyChecksum {
			ok, err := r.VerifyChecksum()
			if err != nil {
				return fmt.Errorf("arcodec: verifying checksum: %w", err)
			}
			if !ok {
				return fmt.Errorf("arcodec: checksum mismatch: %s is corrupted", opts.input)
			}
		}
	case modelMarkerAdaptive:
		if opts.verifyChecksum {
			return fmt.Errorf("arcodec: --verify-checksum requires a static-model file (adaptive mode stores no checksum)")
		}

		r, err := bytecodec.NewStreamReader(source)

		if err != nil {
			return fmt.Errorf("arcodec: creating adaptive reader: %w", err)
		}

		for !r.Ended() {
			n, err := r.Read(buf)
			total += n

			if n > 0 {
				if _, werr := out.Write(buf[:n]); werr != nil {
					return fmt.Errorf("arcodec: writing output: %w", werr)
				}
			}

			if err != nil {
				return fmt.Errorf("arcodec: decoding: %w", err)
			}
		}

		if err := r.Finalize(true); err != nil {
			return fmt.Errorf("arcodec: finalizing: %w", err)
		}
	default:
		return fmt.Errorf("arcodec: %s: unrecognized model marker %q", opts.input, marker[0])
	}

	log.Println(fmt.Sprintf("Decoded %s -> %s (%d bytes out)", opts.input, opts.output, total), opts.verbose)
	return nil
}
