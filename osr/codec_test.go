package osr

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/osukit/osufile"
	"github.com/osukit/osufile/osubin"
)

func strptr(s string) *string { return &s }

func testReplay() *osufile.Replay {
	return &osufile.Replay{
		Mode:         osufile.ModeStandard,
		Version:      20210520,
		BeatmapHash:  strptr("d41d8cd98f00b204e9800998ecf8427e"),
		PlayerName:   strptr("player"),
		ReplayHash:   strptr("a3cca2b2aa1e3b5b3b5aad99a8529074"),
		Count300:     1978,
		Count100:     24,
		Count50:      1,
		CountGeki:    247,
		CountKatsu:   12,
		CountMiss:    0,
		Score:        132408001,
		MaxCombo:     2385,
		PerfectCombo: true,
		Mods:         osufile.ModSet(0).With(osufile.ModHidden).With(osufile.ModHardRock),
		LifeGraph:    strptr("0|1,1500|0.95,"),
		Timestamp:    637500000000000000,
		Data: &osufile.ReplayData{Actions: []osufile.Action{
			{Delta: 0, X: 256, Y: 192, Z: 0},
			{Delta: 12, X: 256.5, Y: 191.25, Z: 1},
			{Delta: 17, X: 258, Y: 190, Z: 0},
		}},
		OnlineScoreID: 1827417203,
	}
}

func TestRoundTrip(t *testing.T) {
	rp := testReplay()
	var buf bytes.Buffer
	if err := (Encoder{}).Encode(&buf, rp); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decoder{}.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(rp, got); diff != "" {
		t.Errorf("replay mismatch (-want +got):\n%s", diff)
	}

	var again bytes.Buffer
	if err := (Encoder{}).Encode(&again, got); err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), again.Bytes()) {
		t.Error("re-encoded bytes differ from first encoding")
	}
}

func TestRoundTripLevels(t *testing.T) {
	rp := testReplay()
	for _, level := range []int{1, 5, 9} {
		var buf bytes.Buffer
		if err := (Encoder{Level: level}).Encode(&buf, rp); err != nil {
			t.Fatalf("level %d: encode: %v", level, err)
		}
		got, err := Decoder{}.Decode(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("level %d: decode: %v", level, err)
		}
		if diff := cmp.Diff(rp.Data.Actions, got.Data.Actions); diff != "" {
			t.Errorf("level %d: actions mismatch (-want +got):\n%s", level, diff)
		}
	}
}

func TestRawActionsPassthrough(t *testing.T) {
	rp := testReplay()
	var buf bytes.Buffer
	if err := (Encoder{}).Encode(&buf, rp); err != nil {
		t.Fatal(err)
	}

	got, err := Decoder{RawActions: true}.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got.Data == nil || got.Data.Raw == nil {
		t.Fatal("expected raw payload")
	}
	if got.Data.Actions != nil {
		t.Error("actions parsed despite RawActions")
	}

	// A raw payload re-emits unchanged, with no recompression.
	var again bytes.Buffer
	if err := (Encoder{Level: 9}).Encode(&again, got); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), again.Bytes()) {
		t.Error("raw passthrough altered the encoding")
	}
}

func TestNilPayloadEncodesEmptyList(t *testing.T) {
	rp := testReplay()
	rp.Data = nil
	var buf bytes.Buffer
	if err := (Encoder{}).Encode(&buf, rp); err != nil {
		t.Fatal(err)
	}
	got, err := Decoder{}.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got.Data == nil {
		t.Fatal("standalone decode must produce a payload")
	}
	if len(got.Data.Actions) != 0 {
		t.Errorf("actions: got %v", got.Data.Actions)
	}
}

func TestZeroLengthBlockIsEmptyList(t *testing.T) {
	actions, err := decodeActions(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(actions) != 0 {
		t.Errorf("got %v", actions)
	}
}

func TestEmbeddedSentinel(t *testing.T) {
	rp := testReplay()
	var buf bytes.Buffer
	bw := osubin.NewWriter(&buf)
	if err := (Encoder{}).WriteTo(bw, rp, false); err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := Decoder{}.ReadFrom(osubin.NewReader(bytes.NewReader(buf.Bytes())), false)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	// The embedded form drops the payload, whatever the value held.
	if got.Data != nil {
		t.Errorf("payload: got %v, want nil", got.Data)
	}
	want := testReplay()
	want.Data = nil
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("replay mismatch (-want +got):\n%s", diff)
	}

	// Anything but the sentinel in the payload slot fails the decode.
	data := append([]byte(nil), buf.Bytes()...)
	data[len(data)-12] = 0xfe
	_, err = Decoder{}.ReadFrom(osubin.NewReader(bytes.NewReader(data)), false)
	var sentinelErr SentinelError
	if !errors.As(err, &sentinelErr) {
		t.Fatalf("got %v, want SentinelError", err)
	}
	if uint32(sentinelErr) != 0xfffffffe {
		t.Errorf("got %08x", uint32(sentinelErr))
	}
}

func TestInvalidMode(t *testing.T) {
	rp := testReplay()
	var buf bytes.Buffer
	if err := (Encoder{}).Encode(&buf, rp); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	data[0] = 4
	_, err := Decoder{}.Decode(bytes.NewReader(data))
	var modeErr ModeError
	if !errors.As(err, &modeErr) {
		t.Fatalf("got %v, want ModeError", err)
	}
	if uint8(modeErr) != 4 {
		t.Errorf("got code %d", uint8(modeErr))
	}
}

func TestTruncatedInput(t *testing.T) {
	rp := testReplay()
	var buf bytes.Buffer
	if err := (Encoder{}).Encode(&buf, rp); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	for n := 0; n < len(data); n++ {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data[:n])); err == nil {
			t.Fatalf("prefix %d of %d: expected error", n, len(data))
		}
	}
}

func TestParseActions(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []osufile.Action
		fail bool
	}{
		{"empty", "", nil, false},
		{"single", "12|3.5|-0.25|0,", []osufile.Action{{Delta: 12, X: 3.5, Y: -0.25, Z: 0}}, false},
		{"pair", "1|2|3|4,5|6|7|8,", []osufile.Action{
			{Delta: 1, X: 2, Y: 3, Z: 4},
			{Delta: 5, X: 6, Y: 7, Z: 8},
		}, false},
		{"no trailing terminator", "1|2|3|4", []osufile.Action{{Delta: 1, X: 2, Y: 3, Z: 4}}, false},
		{"delta truncates", "5.9|0|0|0,", []osufile.Action{{Delta: 5}}, false},
		{"missing field", "12|3.5|-0.25,", nil, true},
		{"non-digit field", "12|3.5|x|0,", nil, true},
		{"leading plus", "+1|2|3|4,", nil, true},
		{"exponent", "1|2|3|4e5,", nil, true},
		{"dot without digits", "1.|2|3|4,", nil, true},
		{"bare minus", "-|1|2|3,", nil, true},
		{"double terminator", "1|2|3|4,,", nil, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := parseActions([]byte(c.text))
			if c.fail {
				var actionErr ActionError
				if !errors.As(err, &actionErr) {
					t.Fatalf("got %v, want ActionError", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("actions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestActionFormatting(t *testing.T) {
	got := appendAction(nil, osufile.Action{Delta: 12, X: 3.5, Y: -0.25, Z: 0})
	if want := "12|3.5|-0.25|0,"; string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}

	// Formatting must re-parse to the same float32, even for values
	// with no short decimal form.
	a := osufile.Action{Delta: -3, X: 1.0 / 3, Y: 123456.78, Z: 0.1}
	parsed, err := parseActions(appendAction(nil, a))
	if err != nil {
		t.Fatal(err)
	}
	if len(parsed) != 1 || parsed[0] != a {
		t.Errorf("got %+v, want %+v", parsed, a)
	}
}
