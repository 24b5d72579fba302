package types

import (
	"testing"

	"mcjavaproto/buffer"
)

// TestPositionVector is spec.md §8 E4.
func TestPositionVector(t *testing.T) {
	p := Position{X: 18357644, Y: 831, Z: -20882616}
	got := p.Pack()
	want := uint64(0x4847861866C5B47F)
	if got != want {
		t.Fatalf("Pack() = %#x, want %#x", got, want)
	}
	back := UnpackPosition(want)
	if back != p {
		t.Fatalf("UnpackPosition(%#x) = %+v, want %+v", want, back, p)
	}
}

func TestPositionSerializeRoundTrip(t *testing.T) {
	cases := []Position{
		{X: 0, Y: 0, Z: 0},
		{X: -1, Y: -1, Z: -1},
		{X: 33554431, Y: 2047, Z: -33554432},
	}
	for _, p := range cases {
		buf := buffer.New(nil)
		if err := p.SerializeTo(buf); err != nil {
			t.Fatal(err)
		}
		got, err := DeserializePosition(buffer.New(buf.Bytes()))
		if err != nil {
			t.Fatal(err)
		}
		if got != p {
			t.Fatalf("round trip %+v -> %+v", p, got)
		}
	}
}

func TestAngleFromDegrees(t *testing.T) {
	cases := []struct {
		deg  float64
		want uint8
	}{
		{0, 0},
		{180, 128},
		{360, 0},
		{-90, 192},
	}
	for _, c := range cases {
		got := AngleFromDegrees(c.deg).Steps
		if got != c.want {
			t.Errorf("AngleFromDegrees(%v).Steps = %d, want %d", c.deg, got, c.want)
		}
	}
}

func TestVec3RoundTrip(t *testing.T) {
	v := Vec3{X: 1.5, Y: -2.25, Z: 1000000.125}
	buf := buffer.New(nil)
	if err := v.SerializeTo(buf); err != nil {
		t.Fatal(err)
	}
	got, err := DeserializeVec3(buffer.New(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got != v {
		t.Fatalf("got %+v want %+v", got, v)
	}
}

func TestQuaternionRoundTrip(t *testing.T) {
	q := Quaternion{X: 0, Y: 0, Z: 0, W: 1}
	buf := buffer.New(nil)
	if err := q.SerializeTo(buf); err != nil {
		t.Fatal(err)
	}
	got, err := DeserializeQuaternion(buffer.New(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got != q {
		t.Fatalf("got %+v want %+v", got, q)
	}
}
