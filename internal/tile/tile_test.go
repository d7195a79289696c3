package tile

import "testing"

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		base  int
		flags Flag
	}{
		{Dirt, 0},
		{River, BullBit},
		{FreeZ, ZoneBit | BLBNCN},
		{Nuclear, PowerBit | ZoneBit | BNCN},
		{TileCount - 1, AllBits},
	}
	for _, tt := range tests {
		got := Encode(tt.base, tt.flags)
		base, flags := Decode(got)
		if base != tt.base || flags != tt.flags {
			t.Errorf("Decode(Encode(%d, %#x)) = %d, %#x", tt.base, tt.flags, base, flags)
		}
		if !got.Valid() {
			t.Errorf("tile %d reported invalid", tt.base)
		}
	}
}

func TestEncodeMasksBase(t *testing.T) {
	if got := Encode(0x0400|Fire, 0); got.Base() != Fire || got.Has(ZoneBit) {
		t.Fatalf("Encode leaked high base bits: %#x", uint16(got))
	}
	if Encode(1000, 0).Valid() {
		t.Fatal("base 1000 should be invalid")
	}
}

func TestFlagHelpers(t *testing.T) {
	tl := Encode(Roads, BLBN)
	if !tl.Has(BullBit) || !tl.Has(BLBN) || tl.Has(CondBit) {
		t.Fatalf("Has mismatch for %#x", uint16(tl))
	}
	tl = tl.With(CondBit | PowerBit)
	if !tl.Has(BLBNCN) || !tl.Has(PowerBit) {
		t.Fatal("With did not set bits")
	}
	tl = tl.Without(PowerBit | BurnBit)
	if tl.Any(PowerBit|BurnBit) || tl.Base() != Roads {
		t.Fatal("Without cleared the wrong bits")
	}
}

func TestCategories(t *testing.T) {
	tests := []struct {
		base int
		want Category
	}{
		{Dirt, CatDirt},
		{River, CatWater},
		{Channel, CatWater},
		{TreeBase, CatTree},
		{Woods5, CatTree},
		{Rubble, CatRubble},
		{Flood + 2, CatFlood},
		{RadTile, CatRadioactive},
		{Fire, CatFire},
		{LastFire, CatFire},
		{HBridge, CatRoad},
		{LastRoad, CatRoad},
		{PowerBase, CatPower},
		{RailHPowerV, CatPower},
		{RailBase, CatRail},
		{VRailRoad, CatRail},
		{FreeZ, CatResidential},
		{Hospital, CatHospital},
		{Church, CatHospital},
		{ComClr, CatCommercial},
		{IndClr, CatIndustrial},
		{Port, CatSeaport},
		{Airport, CatAirport},
		{PowerPlant, CatCoalPlant},
		{FireStation, CatFireStation},
		{PoliceStation, CatPoliceStation},
		{FullStadium, CatStadium},
		{Nuclear, CatNuclear},
		{HBrdg2, CatBridge},
		{VBrdg3, CatBridge},
		{Fountain, CatPark},
		{TeleBase, CatNetwork},
		{SomeTinyExp, CatExplosion},
		{CoalSmoke2, CatCoalPlant},
		{FootballGame2, CatStadium},
		{LightningBolt, CatEffect},
	}
	for _, tt := range tests {
		if got := CategoryOf(tt.base); got != tt.want {
			t.Errorf("CategoryOf(%d) = %v, want %v", tt.base, got, tt.want)
		}
	}
}

func TestInBounds(t *testing.T) {
	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{WorldX - 1, WorldY - 1, true},
		{-1, 0, false},
		{0, -1, false},
		{WorldX, 0, false},
		{0, WorldY, false},
	}
	for _, tt := range tests {
		if got := InBounds(tt.x, tt.y); got != tt.want {
			t.Errorf("InBounds(%d, %d) = %v", tt.x, tt.y, got)
		}
	}
}

func TestClearable(t *testing.T) {
	for _, base := range []int{FirstRiverEdge, TreeBase, Rubble, Flood, RadTile, Fire, Roads, PowerBase + 2, TinyExp} {
		if !Clearable(base) {
			t.Errorf("Clearable(%d) = false", base)
		}
	}
	for _, base := range []int{Dirt, River, Channel, PowerBase, RailBase, FreeZ, Nuclear} {
		if Clearable(base) {
			t.Errorf("Clearable(%d) = true", base)
		}
	}
}
