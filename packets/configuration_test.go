package packets

import (
	"testing"

	"mcjavaproto/buffer"
	"mcjavaproto/types"
)

func TestAddResourcePackValidateRejectsBadHash(t *testing.T) {
	id, _ := types.ParseUUID("00112233-4455-6677-8899-AABBCCDDEEFF")
	a := AddResourcePack{UUID: id, URL: "https://example.com/pack.zip", HashSHA1: "not-a-valid-hash"}
	if err := a.Validate(); err == nil {
		t.Fatal("expected validation error for malformed hash_sha1")
	}
}

func TestAddResourcePackValidateAcceptsEmptyHash(t *testing.T) {
	id, _ := types.ParseUUID("00112233-4455-6677-8899-AABBCCDDEEFF")
	a := AddResourcePack{UUID: id, URL: "https://example.com/pack.zip", HashSHA1: ""}
	if err := a.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAddResourcePackValidateAcceptsProperHash(t *testing.T) {
	id, _ := types.ParseUUID("00112233-4455-6677-8899-AABBCCDDEEFF")
	a := AddResourcePack{
		UUID:     id,
		URL:      "https://example.com/pack.zip",
		HashSHA1: "0123456789abcdef0123456789abcdef012345678",
	}
	// 41 chars above is deliberately wrong-length to make sure length is checked too.
	if err := a.Validate(); err == nil {
		t.Fatal("expected validation error for 41-character hash")
	}

	a.HashSHA1 = "0123456789abcdef0123456789abcdef0123456a"[:40]
	if err := a.Validate(); err != nil {
		t.Fatalf("unexpected error for valid 40-char hex hash: %v", err)
	}
}

func TestResourcePackResponseRoundTrip(t *testing.T) {
	id, _ := types.ParseUUID("00112233-4455-6677-8899-AABBCCDDEEFF")
	r := ResourcePackResponse{UUID: id, Result: ResourcePackDeclined}
	buf := buffer.New(nil)
	if err := r.SerializeTo(buf); err != nil {
		t.Fatal(err)
	}
	got, err := DeserializeResourcePackResponse(buffer.New(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got.Result != ResourcePackDeclined || !got.UUID.Equal(id) {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}

func TestClientInformationValidateRejectsBadChatMode(t *testing.T) {
	c := ClientInformation{Locale: "en_US", ChatMode: 7, MainHand: 0}
	if err := c.Validate(); err == nil {
		t.Fatal("expected validation error for chat_mode=7")
	}
}

func TestClientInformationRoundTrip(t *testing.T) {
	c := ClientInformation{
		Locale:              "en_US",
		ViewDistance:        10,
		ChatMode:            0,
		ChatColors:          true,
		DisplayedSkinParts:  0x7F,
		MainHand:            1,
		EnableTextFiltering: false,
		AllowServerListings: true,
	}
	buf := buffer.New(nil)
	if err := c.SerializeTo(buf); err != nil {
		t.Fatal(err)
	}
	got, err := DeserializeClientInformation(buffer.New(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got != c {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, c)
	}
}

func TestConfigurationUpdateTagsRoundTrip(t *testing.T) {
	registryID, err := types.NewIdentifier("minecraft:block")
	if err != nil {
		t.Fatal(err)
	}
	tagName, err := types.NewIdentifier("minecraft:mineable/pickaxe")
	if err != nil {
		t.Fatal(err)
	}
	u := ConfigurationUpdateTags{
		Groups: []TagGroup{
			{
				Registry: registryID,
				Tags: []RegistryTag{
					{Name: tagName, Entries: []int32{1, 2, 3}},
				},
			},
		},
	}
	buf := buffer.New(nil)
	if err := u.SerializeTo(buf); err != nil {
		t.Fatal(err)
	}
	got, err := DeserializeConfigurationUpdateTags(buffer.New(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Groups) != 1 || len(got.Groups[0].Tags) != 1 || len(got.Groups[0].Tags[0].Entries) != 3 {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}
