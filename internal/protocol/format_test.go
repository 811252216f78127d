package protocol

import "testing"

func TestFormatCount(t *testing.T) {
	cases := map[uint32]string{
		0:          "0",
		999:        "999",
		1000:       "1,000",
		1234567:    "1,234,567",
		4294967295: "4,294,967,295",
	}
	for in, want := range cases {
		if got := FormatCount(in); got != want {
			t.Errorf("FormatCount(%d) = %q, want %q", in, got, want)
		}
	}
}
