// Command rtcm3dump decodes a file of length-prefixed RTCM3 message
// bodies and prints each decoded record, in the style of de-bkg-gognss's
// cmd/rnxgo: a small urfave/cli/v2 app wrapping one library call.
package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"rtcm3"
)

// readFrame reads one 2-byte big-endian length prefix followed by that
// many bytes of RTCM3 message body. This length-prefixed framing is the
// tool's own, for feeding pre-split message bodies into the decoder; it
// is not part of the RTCM3 wire format itself.
func readFrame(r io.Reader) ([]byte, error) {
	var lenBuf [2]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint16(lenBuf[:])
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func dump(path string, stations []int, verbose bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	opts := rtcm3.DecoderOptions{StationIDFilter: stations}
	if verbose {
		opts.MinTraceLevel = 4
	} else {
		opts.MinTraceLevel = 2
	}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid decoder options: %w", err)
	}

	count, errCount := 0, 0
	for {
		frame, err := readFrame(f)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		v, err := rtcm3.DecodeWithOptions(frame, opts)
		if err != nil {
			errCount++
			fmt.Fprintf(os.Stderr, "frame %d: %v\n", count, err)
			count++
			continue
		}
		fmt.Printf("frame %d: %+v\n", count, v)
		count++
	}
	fmt.Fprintf(os.Stderr, "%d frames, %d errors\n", count, errCount)
	return nil
}

func main() {
	app := &cli.App{
		Name:  "rtcm3dump",
		Usage: "decode a file of length-prefixed RTCM3 message bodies",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "enable decoder tracing"},
			&cli.IntSliceFlag{Name: "station", Usage: "restrict output to these reference station IDs (repeatable)"},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return cli.Exit("usage: rtcm3dump [--verbose] [--station id]... <file>", 1)
			}
			if err := dump(c.Args().First(), c.IntSlice("station"), c.Bool("verbose")); err != nil {
				return cli.Exit(err, 1)
			}
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
