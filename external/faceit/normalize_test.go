package faceit

import (
	"math"
	"testing"
	"time"
)

func TestNum(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		in       any
		fallback float64
		want     float64
	}{
		{name: "percent string", in: "55%", want: 55},
		{name: "nil", in: nil, want: 0},
		{name: "garbage", in: "abc", want: 0},
		{name: "float", in: 3.5, want: 3.5},
		{name: "int", in: 7, want: 7},
		{name: "spaced string", in: " 1.25 ", want: 1.25},
		{name: "nan uses fallback", in: math.NaN(), fallback: -1, want: -1},
		{name: "inf string uses fallback", in: "Inf", fallback: 2, want: 2},
		{name: "bool uses fallback", in: true, fallback: 4, want: 4},
	}
	for _, tc := range cases {
		if got := num(tc.in, tc.fallback); got != tc.want {
			t.Fatalf("%s: num(%v) = %v, want %v", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestToMillis(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if got, want := toMillis(float64(1700000000), now), int64(1700000000000); got != want {
		t.Fatalf("seconds: got %d want %d", got, want)
	}
	if got, want := toMillis(float64(1700000000000), now), int64(1700000000000); got != want {
		t.Fatalf("millis: got %d want %d", got, want)
	}
	if got, want := toMillis("1700000000", now), int64(1700000000000); got != want {
		t.Fatalf("numeric string: got %d want %d", got, want)
	}
	if got, want := toMillis("2023-11-14T22:13:20Z", now), int64(1700000000000); got != want {
		t.Fatalf("iso string: got %d want %d", got, want)
	}
	if got, want := toMillis("2023-11-14", now), time.Date(2023, 11, 14, 0, 0, 0, 0, time.UTC).UnixMilli(); got != want {
		t.Fatalf("date only: got %d want %d", got, want)
	}
	if got := toMillis("not a date", now); got != now.UnixMilli() {
		t.Fatalf("unparsable: got %d want now %d", got, now.UnixMilli())
	}
	if got := toMillis(nil, now); got != now.UnixMilli() {
		t.Fatalf("missing: got %d want now %d", got, now.UnixMilli())
	}
}

func TestKDRatio(t *testing.T) {
	t.Parallel()

	if got := kdRatio(20, 15); got != 1.33 {
		t.Fatalf("kdRatio(20,15) = %v", got)
	}
	if got := kdRatio(9, 0); got != 9 {
		t.Fatalf("kdRatio(9,0) = %v", got)
	}
}

func TestMapName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		doc  Payload
		want string
	}{
		{name: "voting pick list", doc: Payload{"voting": map[string]any{"map": map[string]any{"pick": []any{"de_mirage"}}}}, want: "de_mirage"},
		{name: "voting pick string", doc: Payload{"voting": map[string]any{"map": map[string]any{"pick": "de_inferno"}}}, want: "de_inferno"},
		{name: "flat field", doc: Payload{"map": "de_nuke"}, want: "de_nuke"},
		{name: "maps list", doc: Payload{"maps": []any{map[string]any{"name": "de_anubis"}}}, want: "de_anubis"},
		{name: "missing", doc: Payload{}, want: ""},
	}
	for _, tc := range cases {
		if got := mapName(tc.doc); got != tc.want {
			t.Fatalf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}
}
