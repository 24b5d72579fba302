package packets

import (
	"testing"

	"mcjavaproto/buffer"
	"mcjavaproto/types"
)

// TestBossBarAddRequiresColor is spec.md §8 E6 (ADD half).
func TestBossBarAddRequiresColor(t *testing.T) {
	title := types.PlainText("boss")
	health := float32(1.0)
	division := BossBarDivisionNone
	b := BossBar{
		Action:   BossBarAdd,
		Title:    &title,
		Health:   &health,
		Division: &division,
		// Color deliberately omitted.
	}
	if err := b.Validate(); err == nil {
		t.Fatal("expected ValidationFailed-equivalent error for BossBar ADD missing color")
	}
}

// TestBossBarUpdateHealthValidatesWithOnlyHealth is spec.md §8 E6 (UPDATE_HEALTH half).
func TestBossBarUpdateHealthValidatesWithOnlyHealth(t *testing.T) {
	health := float32(0.5)
	b := BossBar{Action: BossBarUpdateHealth, Health: &health}
	if err := b.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBossBarAddRoundTrip(t *testing.T) {
	title := types.PlainText("boss")
	health := float32(0.75)
	color := BossBarRed
	division := BossBarDivisionSixNotches
	id, _ := types.ParseUUID("00112233-4455-6677-8899-AABBCCDDEEFF")
	b := BossBar{
		UUID: id, Action: BossBarAdd, Title: &title, Health: &health,
		Color: &color, Division: &division, DarkenSky: true, CreateFog: true,
	}
	if err := b.Validate(); err != nil {
		t.Fatal(err)
	}
	buf := buffer.New(nil)
	if err := b.SerializeTo(buf); err != nil {
		t.Fatal(err)
	}
	got, err := DeserializeBossBar(buffer.New(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got.Action != b.Action || *got.Health != *b.Health || *got.Color != *b.Color ||
		!got.DarkenSky || got.IsDragonBar || !got.CreateFog {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}

func TestRespawnValidateRequiresBothDeathFields(t *testing.T) {
	loc := types.Position{}
	r := Respawn{DeathLocation: &loc} // DeathDimensionName left nil
	if err := r.Validate(); err == nil {
		t.Fatal("expected validation error when only one death field is set")
	}
}

func TestRespawnRoundTripWithDeathLocation(t *testing.T) {
	dim, err := types.NewIdentifier("minecraft:overworld")
	if err != nil {
		t.Fatal(err)
	}
	deathDim, err := types.NewIdentifier("minecraft:the_nether")
	if err != nil {
		t.Fatal(err)
	}
	deathLoc := types.Position{X: 1, Y: 2, Z: 3}
	r := Respawn{
		DimensionType: 0, DimensionName: dim, HashedSeed: 42, GameMode: 0, PreviousGameMode: -1,
		DeathDimensionName: &deathDim, DeathLocation: &deathLoc, PortalCooldown: 10, DataKept: 0x3,
	}
	if err := r.Validate(); err != nil {
		t.Fatal(err)
	}
	buf := buffer.New(nil)
	if err := r.SerializeTo(buf); err != nil {
		t.Fatal(err)
	}
	got, err := DeserializeRespawn(buffer.New(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got.DeathDimensionName == nil || !got.DeathDimensionName.Equal(deathDim) || *got.DeathLocation != deathLoc {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}

func TestSetEntityMetadataRoundTrip(t *testing.T) {
	m := SetEntityMetadata{
		EntityID: 7,
		Metadata: []types.MetadataEntry{
			{Index: 0, Type: types.MetaByte, Value: int8(1)},
			{Index: 8, Type: types.MetaBoolean, Value: true},
		},
	}
	buf := buffer.New(nil)
	if err := m.SerializeTo(buf); err != nil {
		t.Fatal(err)
	}
	got, err := DeserializeSetEntityMetadata(buffer.New(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got.EntityID != 7 || len(got.Metadata) != 2 {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}

func TestPlayerInfoUpdateValidateRejectsMismatchedBitmask(t *testing.T) {
	u := PlayerInfoUpdate{
		Actions: playerInfoActionUpdateListed,
		Players: []PlayerInfoEntry{{HasListed: false}}, // bit set but field absent
	}
	if err := u.Validate(); err == nil {
		t.Fatal("expected validation error for bitmask/presence mismatch")
	}
}

func TestPlayerInfoUpdateRoundTrip(t *testing.T) {
	id, _ := types.ParseUUID("00112233-4455-6677-8899-AABBCCDDEEFF")
	u := PlayerInfoUpdate{
		Actions: playerInfoActionAddPlayer | playerInfoActionUpdateListed,
		Players: []PlayerInfoEntry{
			{UUID: id, Name: "Notch", Properties: map[string]string{}, HasListed: true, Listed: true},
		},
	}
	if err := u.Validate(); err != nil {
		t.Fatal(err)
	}
	buf := buffer.New(nil)
	if err := u.SerializeTo(buf); err != nil {
		t.Fatal(err)
	}
	got, err := DeserializePlayerInfoUpdate(buffer.New(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Players) != 1 || got.Players[0].Name != "Notch" || !got.Players[0].Listed {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}

func TestSetEquipmentValidateRejectsEmpty(t *testing.T) {
	s := SetEquipment{EntityID: 1}
	if err := s.Validate(); err == nil {
		t.Fatal("expected validation error for empty equipment list")
	}
}

func TestSetEquipmentRoundTrip(t *testing.T) {
	s := SetEquipment{
		EntityID: 1,
		Equipment: []EquipmentEntry{
			{Slot: EquipmentMainHand, Item: types.EmptySlot()},
			{Slot: EquipmentHelmet, Item: types.EmptySlot()},
		},
	}
	buf := buffer.New(nil)
	if err := s.SerializeTo(buf); err != nil {
		t.Fatal(err)
	}
	got, err := DeserializeSetEquipment(buffer.New(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Equipment) != 2 || got.Equipment[1].Slot != EquipmentHelmet {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}

func TestUpdateScoreValidateRequiresContentForFormat(t *testing.T) {
	format := int32(2)
	u := UpdateScore{EntityName: "x", ObjectiveName: "y", NumberFormat: &format}
	if err := u.Validate(); err == nil {
		t.Fatal("expected validation error when number_format=2 lacks content")
	}
}

func TestUpdateScoreRoundTripNoFormat(t *testing.T) {
	u := UpdateScore{EntityName: "Notch", ObjectiveName: "kills", Value: 5}
	buf := buffer.New(nil)
	if err := u.SerializeTo(buf); err != nil {
		t.Fatal(err)
	}
	got, err := DeserializeUpdateScore(buffer.New(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got.Value != 5 || got.NumberFormat != nil {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}
