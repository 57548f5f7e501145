package convert

import (
	"errors"
	"math/rand"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/hidconf/hidconf-go/pkg/option"
)

func TestBitmaskRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for iter := 0; iter < 200; iter++ {
		n := rng.Intn(24)
		indices := make([]int, n)
		for i := range indices {
			indices[i] = rng.Intn(MaxChannel + 1)
		}

		mask, err := EncodeBitmask(indices)
		if err != nil {
			t.Fatalf("EncodeBitmask(%v) failed: %v", indices, err)
		}

		want := slices.Clone(indices)
		slices.Sort(want)
		want = slices.Compact(want)
		parts := make([]string, len(want))
		for i, idx := range want {
			parts[i] = strconv.Itoa(idx)
		}

		if got := DecodeBitmask(mask); got != strings.Join(parts, ", ") {
			t.Fatalf("DecodeBitmask(EncodeBitmask(%v)) = %q, want %q", indices, got, strings.Join(parts, ", "))
		}
	}
}

func TestBitmaskExamples(t *testing.T) {
	tests := []struct {
		indices []int
		mask    uint16
		text    string
	}{
		{nil, 0, ""},
		{[]int{0}, 0x0001, "0"},
		{[]int{11, 1, 5, 5}, 0x0822, "1, 5, 11"},
		{[]int{15}, 0x8000, "15"},
	}
	for _, tt := range tests {
		mask, err := EncodeBitmask(tt.indices)
		if err != nil {
			t.Fatalf("EncodeBitmask(%v) failed: %v", tt.indices, err)
		}
		if mask != tt.mask {
			t.Errorf("EncodeBitmask(%v) = 0x%04X, want 0x%04X", tt.indices, mask, tt.mask)
		}
		if got := DecodeBitmask(mask); got != tt.text {
			t.Errorf("DecodeBitmask(0x%04X) = %q, want %q", mask, got, tt.text)
		}
	}
}

func TestBitmaskOutOfRange(t *testing.T) {
	for _, idx := range []int{-1, 16} {
		if _, err := EncodeBitmask([]int{idx}); !errors.Is(err, ErrChannel) {
			t.Errorf("EncodeBitmask(%d) = %v, want ErrChannel", idx, err)
		}
	}
}

func TestDecodeReversedHex(t *testing.T) {
	got := DecodeReversedHex([]byte{0x01, 0x02, 0x03, 0x04, 0x05})
	if got != "0x0504030201" {
		t.Errorf("expected 0x0504030201, got %s", got)
	}

	got = DecodeReversedHex([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x1F})
	if got != "0x1FFFFFFFFF" {
		t.Errorf("expected 0x1FFFFFFFFF, got %s", got)
	}
}

func TestEncodeDispatch(t *testing.T) {
	v, err := Encode(BitmaskList, option.Text("1, 6, 11"))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if n, _ := v.Int(); n != 0x0842 {
		t.Errorf("expected 0x0842, got 0x%X", n)
	}

	v, err = Encode(None, option.Int(7))
	if err != nil || !v.Equal(option.Int(7)) {
		t.Errorf("None should pass through, got %v, %v", v, err)
	}

	_, err = Encode(ReversedHex, option.Text("0x0504030201"))
	if !errors.Is(err, ErrNoEncoder) {
		t.Errorf("expected ErrNoEncoder, got %v", err)
	}

	raw := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	v, err = Encode(ReversedHex, option.Bytes(raw))
	if err != nil || !v.Equal(option.Bytes(raw)) {
		t.Errorf("raw bytes should pass through, got %v, %v", v, err)
	}

	_, err = Encode(BitmaskList, option.Int(3))
	if !errors.Is(err, ErrInput) {
		t.Errorf("expected ErrInput, got %v", err)
	}
}

func TestDecodeDispatch(t *testing.T) {
	v, err := Decode(BitmaskList, option.Int(0x0842))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if s, _ := v.Text(); s != "1, 6, 11" {
		t.Errorf("expected \"1, 6, 11\", got %q", s)
	}

	v, err = Decode(ReversedHex, option.Bytes([]byte{1, 2, 3, 4, 5}))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if s, _ := v.Text(); s != "0x0504030201" {
		t.Errorf("expected 0x0504030201, got %s", s)
	}

	if _, err := Decode(ReversedHex, option.Int(1)); !errors.Is(err, ErrInput) {
		t.Errorf("expected ErrInput, got %v", err)
	}
}

func TestKindNames(t *testing.T) {
	for _, k := range []Kind{None, BitmaskList, ReversedHex} {
		parsed, err := ParseKind(k.String())
		if err != nil || parsed != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), parsed, err)
		}
	}
	if ReversedHex.Invertible() || !BitmaskList.Invertible() || !None.Invertible() {
		t.Error("unexpected Invertible result")
	}
}
