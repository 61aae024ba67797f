package pricing

import (
	"testing"

	"trailporter/internal/trail"
)

func routeOfLength(n int) []trail.Segment {
	segs := make([]trail.Segment, n)
	for i := range segs {
		segs[i] = trail.Segment{From: "A", To: "B"}
	}
	return segs
}

func TestPriceTable(t *testing.T) {
	cases := []struct {
		name      string
		transfers int
		bags      int
		want      int
	}{
		{"four legs three bags", 4, 3, 4*15 + 4*1*5}, // 80
		{"two legs two bags", 2, 2, 2 * 20},          // 40
		{"three legs short rate", 3, 1, 3 * 20},
		{"five legs long rate", 5, 2, 5 * 15},
		{"extra bags scale per leg", 4, 5, 4*15 + 4*3*5},
	}
	for _, c := range cases {
		got, ok := Price(routeOfLength(c.transfers), c.bags)
		if !ok {
			t.Fatalf("%s: unexpectedly not ok", c.name)
		}
		if got != c.want {
			t.Fatalf("%s: got %d want %d", c.name, got, c.want)
		}
	}
}

func TestPriceInvalidInputs(t *testing.T) {
	if _, ok := Price(nil, 2); ok {
		t.Fatal("empty route must not price")
	}
	if _, ok := Price(routeOfLength(3), 0); ok {
		t.Fatal("zero bags must not price")
	}
	if _, ok := Price(routeOfLength(3), -1); ok {
		t.Fatal("negative bags must not price")
	}
}

func TestPriceMatchesGeneratedRoute(t *testing.T) {
	route := trail.GenerateRoute("ST", "LG")
	got, ok := Price(route, 2)
	if !ok {
		t.Fatal("full trail should price")
	}
	if want := len(route) * 15; got != want {
		t.Fatalf("full trail price got %d want %d", got, want)
	}
}
