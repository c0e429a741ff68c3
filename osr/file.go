package osr

import (
	"bufio"
	"os"

	"github.com/osukit/osufile"
)

// DecodeFile reads a replay from the standalone .osr file at path.
func DecodeFile(path string) (*osufile.Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decoder{}.Decode(bufio.NewReader(f))
}

// EncodeFile writes the replay to the file at path, replacing it if
// it exists. level is the LZMA compression level; 0 means
// DefaultCompressionLevel.
func EncodeFile(path string, rp *osufile.Replay, level int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := (Encoder{Level: level}).Encode(bw, rp); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
