package packets

import (
	"testing"

	"mcjavaproto/buffer"
	"mcjavaproto/types"
)

func TestCommandsRoundTrip(t *testing.T) {
	c := Commands{Data: []byte{0x01, 0x02, 0x03}}
	buf := buffer.New(nil)
	if err := c.SerializeTo(buf); err != nil {
		t.Fatal(err)
	}
	got, err := DeserializeCommands(buffer.New(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Data) != 3 || got.Data[2] != 0x03 {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}

func TestMapDataRoundTripNoColumns(t *testing.T) {
	m := MapData{MapID: 5, Scale: 2, Locked: true}
	buf := buffer.New(nil)
	if err := m.SerializeTo(buf); err != nil {
		t.Fatal(err)
	}
	got, err := DeserializeMapData(buffer.New(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got.MapID != 5 || got.Columns != 0 || len(got.Icons) != 0 {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}

func TestMapDataRoundTripWithIconsAndPixels(t *testing.T) {
	m := MapData{
		MapID:  7,
		Scale:  1,
		Icons:  []types.MapIcon{{Type: 0, X: 10, Z: -5, Direction: 3}},
		Columns: 4,
		Rows:    4,
		X:       0,
		Z:       0,
		Data:    []uint8{1, 2, 3, 4},
	}
	buf := buffer.New(nil)
	if err := m.SerializeTo(buf); err != nil {
		t.Fatal(err)
	}
	got, err := DeserializeMapData(buffer.New(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got.Columns != 4 || len(got.Icons) != 1 || len(got.Data) != 4 {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}

func TestMerchantOffersRoundTrip(t *testing.T) {
	offers := MerchantOffers{
		WindowID: 3,
		Trades: []types.Trade{
			{FirstInput: types.EmptySlot(), Output: types.EmptySlot(), MaxUses: 10},
		},
		VillagerLevel:     2,
		Experience:        100,
		IsRegularVillager: true,
	}
	buf := buffer.New(nil)
	if err := offers.SerializeTo(buf); err != nil {
		t.Fatal(err)
	}
	got, err := DeserializeMerchantOffers(buffer.New(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got.WindowID != 3 || len(got.Trades) != 1 || got.VillagerLevel != 2 {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}

func TestChatMessageValidateRejectsWrongSignatureLength(t *testing.T) {
	c := ChatMessage{Message: "hi", Signature: make([]byte, 10)}
	if err := c.Validate(); err == nil {
		t.Fatal("expected validation error for short signature")
	}
}

func TestChatMessageRoundTripWithSignature(t *testing.T) {
	sig := make([]byte, 256)
	sig[0] = 0xAB
	c := ChatMessage{
		Message:      "hello server",
		Timestamp:    1000,
		Salt:         42,
		Signature:    sig,
		MessageCount: 1,
		Acknowledged: types.NewFixedBitset(20),
	}
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	buf := buffer.New(nil)
	if err := c.SerializeTo(buf); err != nil {
		t.Fatal(err)
	}
	got, err := DeserializeChatMessage(buffer.New(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got.Message != c.Message || len(got.Signature) != 256 || got.Signature[0] != 0xAB {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}

func TestChatMessageRoundTripWithoutSignature(t *testing.T) {
	c := ChatMessage{
		Message:      "no sig",
		Timestamp:    1,
		Salt:         0,
		MessageCount: 0,
		Acknowledged: types.NewFixedBitset(20),
	}
	buf := buffer.New(nil)
	if err := c.SerializeTo(buf); err != nil {
		t.Fatal(err)
	}
	got, err := DeserializeChatMessage(buffer.New(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got.Signature != nil {
		t.Fatalf("expected nil signature, got %+v", got.Signature)
	}
}
