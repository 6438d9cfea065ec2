package codec

import (
	"strings"
	"testing"

	"google.golang.org/protobuf/types/known/wrapperspb"
)

type rec struct {
	Key   string `json:"key" msgpack:"key"`
	Value string `json:"value" msgpack:"value"`
}

func TestLimitRejectsOversizedPayloads(t *testing.T) {
	inner := JSON[rec]{}
	c := Limit[rec]{Inner: inner, MaxDecode: 8}

	blob, err := c.Encode(rec{Key: "k", Value: strings.Repeat("v", 64)})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// Encode is unaffected by the limit
	if len(blob) <= 8 {
		t.Fatalf("test payload too small: %d", len(blob))
	}
	if _, err := c.Decode(blob); err == nil {
		t.Fatalf("expected size-limit error")
	}

	// disabled limit passes through
	open := Limit[rec]{Inner: inner, MaxDecode: 0}
	if _, err := open.Decode(blob); err != nil {
		t.Fatalf("disabled limit must delegate: %v", err)
	}
}

func TestMsgpackAndCBORRoundTrip(t *testing.T) {
	in := rec{Key: "currency", Value: "EUR"}

	mp := Msgpack[rec]{}
	b, err := mp.Encode(in)
	if err != nil {
		t.Fatalf("msgpack Encode: %v", err)
	}
	if got, err := mp.Decode(b); err != nil || got != in {
		t.Fatalf("msgpack Decode: %+v err=%v", got, err)
	}

	cb := MustCBOR[rec](true)
	b, err = cb.Encode(in)
	if err != nil {
		t.Fatalf("cbor Encode: %v", err)
	}
	if got, err := cb.Decode(b); err != nil || got != in {
		t.Fatalf("cbor Decode: %+v err=%v", got, err)
	}

	// deterministic mode is byte-stable
	b2, _ := cb.Encode(in)
	if string(b) != string(b2) {
		t.Fatalf("deterministic CBOR produced differing bytes")
	}
}

func TestProtobufCodec(t *testing.T) {
	c := NewProtobuf(func() *wrapperspb.StringValue { return &wrapperspb.StringValue{} })

	b, err := c.Encode(wrapperspb.String("hello"))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := c.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.GetValue() != "hello" {
		t.Fatalf("round trip: got %q", got.GetValue())
	}
}
