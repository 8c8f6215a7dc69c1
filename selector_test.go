package junction

import "testing"

func TestNextLane_ActuatedPicksLongestQueue(t *testing.T) {
	waiting := LaneCounts{North: 1, East: 6, South: 2, West: 0}

	lane, ok := NextLane(ModeVehicleActuated, waiting, nil)
	if !ok {
		t.Fatal("Expected a lane to be selected")
	}
	if lane != East {
		t.Errorf("Expected E, got %s", lane)
	}
}

func TestNextLane_TieBreakPrefersWest(t *testing.T) {
	waiting := LaneCounts{North: 2, East: 0, South: 0, West: 2}

	lane, ok := NextLane(ModeVehicleActuated, waiting, nil)
	if !ok {
		t.Fatal("Expected a lane to be selected")
	}
	if lane != West {
		t.Errorf("Expected W on the N/W tie, got %s", lane)
	}
}

func TestNextLane_TieBreakOrdering(t *testing.T) {
	// On equal counts the label sorting last wins: W > S > N > E
	cases := []struct {
		name     string
		waiting  LaneCounts
		expected Direction
	}{
		{"S over N", LaneCounts{North: 3, East: 0, South: 3, West: 0}, South},
		{"N over E", LaneCounts{North: 4, East: 4, South: 1, West: 0}, North},
		{"W over everyone", LaneCounts{North: 2, East: 2, South: 2, West: 2}, West},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lane, ok := NextLane(ModeVehicleActuated, tc.waiting, nil)
			if !ok {
				t.Fatal("Expected a lane to be selected")
			}
			if lane != tc.expected {
				t.Errorf("Expected %s, got %s", tc.expected, lane)
			}
		})
	}
}

func TestNextLane_ActuatedNoDemand(t *testing.T) {
	waiting := NewLaneCounts()

	_, ok := NextLane(ModeVehicleActuated, waiting, nil)
	if ok {
		t.Error("Expected no selection with zero demand")
	}
}

func TestNextLane_FixedCycleStartsAtNorth(t *testing.T) {
	lane, ok := NextLane(ModeFixedCycle, NewLaneCounts(), nil)
	if !ok {
		t.Fatal("Expected fixed cycle to always select")
	}
	if lane != North {
		t.Errorf("Expected fresh cycle to start at N, got %s", lane)
	}
}

func TestNextLane_FixedCycleAdvancesAndWraps(t *testing.T) {
	cases := []struct {
		last     Direction
		expected Direction
	}{
		{North, East},
		{East, South},
		{South, West},
		{West, North},
	}
	for _, tc := range cases {
		lane, ok := NextLane(ModeFixedCycle, NewLaneCounts(), lanePtr(tc.last))
		if !ok {
			t.Fatal("Expected fixed cycle to always select")
		}
		if lane != tc.expected {
			t.Errorf("After %s: expected %s, got %s", tc.last, tc.expected, lane)
		}
	}
}

func TestNextLane_FixedCycleIgnoresQueues(t *testing.T) {
	// West has the whole queue; the rotation still hands green to East
	waiting := LaneCounts{North: 0, East: 0, South: 0, West: 50}

	lane, ok := NextLane(ModeFixedCycle, waiting, lanePtr(North))
	if !ok {
		t.Fatal("Expected fixed cycle to always select")
	}
	if lane != East {
		t.Errorf("Expected E regardless of demand, got %s", lane)
	}
}
