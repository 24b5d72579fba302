package nbt

import (
	"bytes"
	"testing"

	"mcjavaproto/buffer"
)

// TestHelloWorldRoundTrip is spec.md §8 E2, the canonical NBT fixture.
func TestHelloWorldRoundTrip(t *testing.T) {
	raw := []byte{
		0x0A, 0x00, 0x0B, 'h', 'e', 'l', 'l', 'o', ' ', 'w', 'o', 'r', 'l', 'd',
		0x08, 0x00, 0x04, 'n', 'a', 'm', 'e', 0x00, 0x09, 'B', 'a', 'n', 'a', 'n', 'r', 'a', 'm', 'a',
		0x00,
	}

	buf := buffer.New(raw)
	tag, err := Read(buf, true, 0, true)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if tag.Kind != KindCompound || tag.Name != "hello world" {
		t.Fatalf("got kind=%s name=%q", tag.Kind, tag.Name)
	}
	name, ok := tag.CompoundGet("name")
	if !ok || name.Kind != KindString || name.Str != "Bananrama" {
		t.Fatalf("expected name=Bananrama, got %+v ok=%v", name, ok)
	}

	out := buffer.New(nil)
	if err := tag.Write(out, true, true); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !bytes.Equal(out.Bytes(), raw) {
		t.Fatalf("re-serialized = %x, want %x", out.Bytes(), raw)
	}
}

func TestNumericRoundTrip(t *testing.T) {
	cases := []struct {
		tag  Tag
		want []byte
	}{
		{Byte(0), []byte{0x01, 0x00}},
		{Byte(-1), []byte{0x01, 0xFF}},
		{Short(32767), []byte{0x02, 0x7F, 0xFF}},
		{Int(-2147483648), []byte{0x03, 0x80, 0x00, 0x00, 0x00}},
		{Long(12), []byte{0x04, 0, 0, 0, 0, 0, 0, 0, 0x0C}},
	}
	for _, c := range cases {
		buf := buffer.New(nil)
		if err := c.tag.Write(buf, true, false); err != nil {
			t.Fatalf("Write(%v): %v", c.tag, err)
		}
		if !bytes.Equal(buf.Bytes(), c.want) {
			t.Errorf("Write(%v) = %x, want %x", c.tag, buf.Bytes(), c.want)
		}
		r := buffer.New(c.want)
		got, err := Read(r, true, 0, false)
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if !Equal(got, c.tag) {
			t.Errorf("Read(%x) = %+v, want %+v", c.want, got, c.tag)
		}
	}
}

func TestByteArrayAndString(t *testing.T) {
	tag := ByteArray([]byte{0, 1, 2, 3})
	buf := buffer.New(nil)
	if err := tag.Write(buf, true, false); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x07, 0x00, 0x00, 0x00, 0x04, 0, 1, 2, 3}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("got %x want %x", buf.Bytes(), want)
	}

	str := String("test")
	sbuf := buffer.New(nil)
	if err := str.Write(sbuf, true, false); err != nil {
		t.Fatal(err)
	}
	swant := []byte{0x08, 0x00, 0x04, 't', 'e', 's', 't'}
	if !bytes.Equal(sbuf.Bytes(), swant) {
		t.Fatalf("got %x want %x", sbuf.Bytes(), swant)
	}
}

func TestEmptyListAnyKindSucceeds(t *testing.T) {
	tag := List(KindByte, nil)
	buf := buffer.New(nil)
	if err := tag.Write(buf, true, false); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x09, 0x01, 0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("got %x want %x", buf.Bytes(), want)
	}
}

func TestListOfLists(t *testing.T) {
	tag := List(KindList, []Tag{
		List(KindByte, []Tag{Byte(0)}),
		List(KindInt, []Tag{Int(256)}),
	})
	buf := buffer.New(nil)
	if err := tag.Write(buf, true, false); err != nil {
		t.Fatal(err)
	}
	want := []byte{
		0x09, 0x09, 0x00, 0x00, 0x00, 0x02,
		0x01, 0x00, 0x00, 0x00, 0x01, 0x00,
		0x03, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x01, 0x00,
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("got %x want %x", buf.Bytes(), want)
	}

	r := buffer.New(want)
	got, err := Read(r, true, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(got, tag) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, tag)
	}
}

func TestCompoundRejectsDuplicateNamesOnWrite(t *testing.T) {
	tag := Compound([]Tag{Byte(1).Named("a"), Byte(2).Named("a")})
	buf := buffer.New(nil)
	if err := tag.Write(buf, true, false); err == nil {
		t.Fatal("expected duplicate-name error, got nil")
	}
}

func TestCompoundPreservesInsertionOrder(t *testing.T) {
	tag := Compound([]Tag{
		Short(128).Named("Short"),
		Byte(-1).Named("Byte"),
	})
	buf := buffer.New(nil)
	if err := tag.Write(buf, true, false); err != nil {
		t.Fatal(err)
	}
	r := buffer.New(buf.Bytes())
	got, err := Read(r, true, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Compound) != 2 || got.Compound[0].Name != "Short" || got.Compound[1].Name != "Byte" {
		t.Fatalf("order not preserved: %+v", got.Compound)
	}
}

func TestNegativeListCountIsMalformed(t *testing.T) {
	raw := []byte{0x09, 0x01, 0xFF, 0xFF, 0xFF, 0xFF} // element kind Byte, count -1
	buf := buffer.New(raw)
	_, err := Read(buf, true, 0, false)
	if err == nil {
		t.Fatal("expected error for negative list count")
	}
}

func TestObjectProjectionRoundTrip(t *testing.T) {
	schema := map[string]Schema{
		"text": KindString,
		"bold": KindByte,
	}
	data := map[string]Object{
		"text": "hi",
		"bold": int64(1),
	}
	tag, err := FromObject(data, schema)
	if err != nil {
		t.Fatalf("FromObject: %v", err)
	}
	obj, gotSchema := ToObject(tag, true)
	tag2, err := FromObject(obj, gotSchema)
	if err != nil {
		t.Fatalf("FromObject(round trip): %v", err)
	}
	if !Equal(tag, tag2) {
		t.Fatalf("from_object(to_object(x)) != x: %+v vs %+v", tag, tag2)
	}
}

func TestObjectProjectionHeterogeneousListFails(t *testing.T) {
	schema := []Schema{KindInt}
	data := []Object{int64(1), "oops"}
	if _, err := FromObject(data, schema); err == nil {
		t.Fatal("expected failure on heterogeneous list element")
	}
}
