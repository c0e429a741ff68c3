package osudb

import (
	"bufio"
	"os"

	"github.com/osukit/osufile"
)

// DecodeFile reads a catalogue from the osu!.db file at path.
func DecodeFile(path string) (l *osufile.Listing, warn, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return Decoder{}.Decode(bufio.NewReader(f))
}

// EncodeFile writes the listing to the file at path, replacing it if
// it exists.
func EncodeFile(path string, l *osufile.Listing) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := (Encoder{}).Encode(bw, l); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
