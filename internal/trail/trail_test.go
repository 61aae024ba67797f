package trail

import "testing"

func TestGenerateRouteChains(t *testing.T) {
	route := GenerateRoute("PC", "OD")
	if len(route) != 4 {
		t.Fatalf("expected 4 segments PC->OD, got %d", len(route))
	}
	if route[0].From != "PC" || route[len(route)-1].To != "OD" {
		t.Fatalf("route endpoints wrong: %+v", route)
	}
	for i := 0; i < len(route)-1; i++ {
		if route[i].To != route[i+1].From {
			t.Fatalf("segments do not chain at %d: %+v", i, route)
		}
	}
}

func TestGenerateRouteReversalProperty(t *testing.T) {
	fwd := GenerateRoute("ST", "LG")
	rev := GenerateRoute("LG", "ST")
	if len(fwd) != len(rev) {
		t.Fatalf("length mismatch: %d vs %d", len(fwd), len(rev))
	}
	if len(fwd) != len(Stages)-1 {
		t.Fatalf("full trail should have %d legs, got %d", len(Stages)-1, len(fwd))
	}
	for i := range fwd {
		mirror := rev[len(rev)-1-i]
		if fwd[i].From != mirror.To || fwd[i].To != mirror.From {
			t.Fatalf("segment %d not mirrored: %+v vs %+v", i, fwd[i], mirror)
		}
	}
}

func TestGenerateRouteEmptyCases(t *testing.T) {
	cases := [][2]string{
		{"PC", "PC"},
		{"XX", "LG"},
		{"PC", "XX"},
		{"", ""},
	}
	for _, c := range cases {
		if got := GenerateRoute(c[0], c[1]); len(got) != 0 {
			t.Fatalf("GenerateRoute(%q,%q) should be empty, got %+v", c[0], c[1], got)
		}
	}
}

func TestSegmentsForDirection(t *testing.T) {
	ns := SegmentsForDirection(NorthToSouth)
	sn := SegmentsForDirection(SouthToNorth)
	if len(ns) != len(Stages)-1 || len(sn) != len(Stages)-1 {
		t.Fatalf("expected %d segments each, got %d and %d", len(Stages)-1, len(ns), len(sn))
	}
	if ns[0].From != "ST" || ns[0].To != "PC" {
		t.Fatalf("first NS segment wrong: %+v", ns[0])
	}
	if sn[0].From != "LG" || sn[0].To != "LZ" {
		t.Fatalf("first SN segment wrong: %+v", sn[0])
	}
}

func TestRemainingDays(t *testing.T) {
	if d, ok := RemainingDays("ST", NorthToSouth); !ok || d != len(Stages)-1 {
		t.Fatalf("ST northbound remaining = %d,%v", d, ok)
	}
	if d, ok := RemainingDays("LG", NorthToSouth); !ok || d != 0 {
		t.Fatalf("LG northbound remaining = %d,%v", d, ok)
	}
	if d, ok := RemainingDays("LG", SouthToNorth); !ok || d != len(Stages)-1 {
		t.Fatalf("LG southbound remaining = %d,%v", d, ok)
	}
	if _, ok := RemainingDays("XX", NorthToSouth); ok {
		t.Fatal("unknown stage should not resolve")
	}
	if _, ok := RemainingDays("PC", Direction("")); ok {
		t.Fatal("missing direction should not resolve")
	}
}

func TestValidSegment(t *testing.T) {
	if !ValidSegment("PC", "VM") || !ValidSegment("VM", "PC") {
		t.Fatal("adjacent stages should be valid either way")
	}
	if ValidSegment("PC", "AL") {
		t.Fatal("non-adjacent stages should be invalid")
	}
	if ValidSegment("PC", "PC") || ValidSegment("PC", "XX") {
		t.Fatal("identical or unknown stages should be invalid")
	}
}

func TestRouteDirection(t *testing.T) {
	if d, ok := RouteDirection("ST", "LG"); !ok || d != NorthToSouth {
		t.Fatalf("ST->LG = %q,%v", d, ok)
	}
	if d, ok := RouteDirection("LG", "ST"); !ok || d != SouthToNorth {
		t.Fatalf("LG->ST = %q,%v", d, ok)
	}
	if _, ok := RouteDirection("PC", "PC"); ok {
		t.Fatal("equal endpoints have no direction")
	}
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{
		"NS":          NorthToSouth,
		"north_south": NorthToSouth,
		"SN":          SouthToNorth,
		"south_north": SouthToNorth,
	} {
		got, ok := ParseDirection(in)
		if !ok || got != want {
			t.Fatalf("ParseDirection(%q) = %q,%v", in, got, ok)
		}
	}
	if _, ok := ParseDirection("east"); ok {
		t.Fatal("unexpected direction accepted")
	}
}
