// The osr-recomp command rewrites a replay file with its action
// stream recompressed at a chosen level.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/osukit/osufile/osr"
)

const usage = `usage: osr-recomp [-level N] [INPUT] [OUTPUT]

Reads a standalone .osr replay from INPUT, and writes to OUTPUT the
same replay with its action stream recompressed.

INPUT and OUTPUT are paths to files. If INPUT is "-" or unspecified,
then stdin is used. If OUTPUT is "-" or unspecified, then stdout is
used. Errors are written to stderr.
`

func main() {
	var input io.Reader = os.Stdin
	var output io.Writer = os.Stdout

	level := flag.Int("level", osr.DefaultCompressionLevel, "LZMA compression level, 1 to 9")
	flag.Usage = func() { fmt.Fprintf(flag.CommandLine.Output(), usage) }
	flag.Parse()
	args := flag.Args()
	if len(args) >= 1 && args[0] != "-" {
		in, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, fmt.Errorf("open input: %w", err))
			return
		}
		input = in
		defer in.Close()
	}
	if len(args) >= 2 && args[1] != "-" {
		out, err := os.Create(args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, fmt.Errorf("create output: %w", err))
			return
		}
		defer out.Close()
		defer func() {
			if err := out.Sync(); err != nil {
				fmt.Fprintln(os.Stderr, fmt.Errorf("sync output: %w", err))
			}
		}()
		output = out
	}

	replay, err := osr.Decoder{}.Decode(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("error: %w", err))
		return
	}
	if err := (osr.Encoder{Level: *level}).Encode(output, replay); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("error: %w", err))
	}
}
