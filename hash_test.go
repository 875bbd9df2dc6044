package libcds

import "testing"

func TestDefaultHasher_EqualKeysEqualHashes(t *testing.T) {
	h := DefaultHasher[int]()
	if h(42) != h(42) {
		t.Fatal("equal int keys hashed differently")
	}

	hs := DefaultHasher[string]()
	if hs("abc") != hs("abc") {
		t.Fatal("equal string keys hashed differently")
	}
}

func TestNextPow2(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 5: 8, 32: 32, 33: 64}
	for in, want := range cases {
		if got := nextPow2(in); got != want {
			t.Fatalf("nextPow2(%d) = %d, want %d", in, got, want)
		}
	}
}
