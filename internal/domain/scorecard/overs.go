package scorecard

import (
	"fmt"
	"strconv"
	"strings"
)

const BallsPerOver = 6

// Overs is a bowling workload. Balls counts deliveries in the unfinished
// over and is always 0..5, so 4.3 means four overs and three balls.
type Overs struct {
	Whole int
	Balls int
}

// ParseOvers reads "4", "4.3" or "4.0". The fractional part must be a single
// digit between 0 and 5.
func ParseOvers(raw string) (Overs, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Overs{}, nil
	}

	wholePart, fracPart, hasFraction := strings.Cut(value, ".")
	whole, err := strconv.Atoi(wholePart)
	if err != nil || whole < 0 {
		return Overs{}, fmt.Errorf("%w: overs %q", ErrInvalidStatValue, raw)
	}
	if !hasFraction {
		return Overs{Whole: whole}, nil
	}

	if len(fracPart) != 1 || fracPart[0] < '0' || fracPart[0] > '5' {
		return Overs{}, fmt.Errorf("%w: overs %q has fraction outside 0-5 balls", ErrInvalidStatValue, raw)
	}
	return Overs{Whole: whole, Balls: int(fracPart[0] - '0')}, nil
}

// OversToBalls converts an overs string to deliveries: whole*6 + balls.
func OversToBalls(raw string) (int, error) {
	overs, err := ParseOvers(raw)
	if err != nil {
		return 0, err
	}
	return overs.TotalBalls(), nil
}

func OversFromBalls(balls int) Overs {
	if balls <= 0 {
		return Overs{}
	}
	return Overs{Whole: balls / BallsPerOver, Balls: balls % BallsPerOver}
}

func (o Overs) TotalBalls() int {
	return o.Whole*BallsPerOver + o.Balls
}

func (o Overs) Validate() error {
	if o.Whole < 0 || o.Balls < 0 || o.Balls >= BallsPerOver {
		return fmt.Errorf("%w: overs %d.%d", ErrInvalidStatValue, o.Whole, o.Balls)
	}
	return nil
}

func (o Overs) String() string {
	if o.Balls == 0 {
		return strconv.Itoa(o.Whole)
	}
	return fmt.Sprintf("%d.%d", o.Whole, o.Balls)
}
