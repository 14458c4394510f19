package scorecard

import (
	"errors"
	"testing"
)

func TestOversToBalls(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "4.3", want: 27},
		{in: "10", want: 60},
		{in: "0.5", want: 3},
		{in: "7.0", want: 42},
		{in: "", want: 0},
		{in: "4.6", wantErr: true},
		{in: "4.10", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "four", wantErr: true},
		{in: "4.", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := OversToBalls(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidStatValue) {
					t.Fatalf("expected ErrInvalidStatValue, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("overs to balls: %v", err)
			}
			if got != tc.want {
				t.Fatalf("unexpected balls: got=%d want=%d", got, tc.want)
			}
		})
	}
}

func TestOversFromBallsRoundTrip(t *testing.T) {
	for balls := 0; balls <= 120; balls++ {
		overs := OversFromBalls(balls)
		if overs.TotalBalls() != balls {
			t.Fatalf("round trip failed for %d balls: %s", balls, overs)
		}
		parsed, err := ParseOvers(overs.String())
		if err != nil || parsed != overs {
			t.Fatalf("parse of %q failed: %+v %v", overs.String(), parsed, err)
		}
	}
}
