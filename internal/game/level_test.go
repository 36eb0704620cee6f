package game

import "testing"

func TestLevelNext_Wraps(t *testing.T) {
	if Level1.Next() != Level2 || Level2.Next() != Level3 {
		t.Fatal("next should step up one level")
	}
	if Level3.Next() != Level1 {
		t.Fatalf("next from level 3 should wrap to 1, got %s", Level3.Next())
	}
}

func TestLevelPrev_Wraps(t *testing.T) {
	if Level3.Prev() != Level2 || Level2.Prev() != Level1 {
		t.Fatal("prev should step down one level")
	}
	if Level1.Prev() != Level3 {
		t.Fatalf("prev from level 1 should wrap to 3, got %s", Level1.Prev())
	}
}

func TestLevel_InvalidCyclesBackIn(t *testing.T) {
	if Level(0).Next() != Level1 || Level(9).Prev() != Level3 {
		t.Fatal("out-of-range levels should cycle back into range")
	}
	if Level(0).Valid() || Level(4).Valid() {
		t.Fatal("0 and 4 are not playable levels")
	}
}
