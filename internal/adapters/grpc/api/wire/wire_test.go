package wire

import (
	"strings"
	"testing"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type sample struct {
	ID    string   `json:"id"`
	Dates []string `json:"dates,omitempty"`
}

func TestCodec_Registered(t *testing.T) {
	t.Parallel()

	if encoding.GetCodec(Name) == nil {
		t.Fatalf("codec %q is not registered", Name)
	}
}

func TestCodec_PlainStruct(t *testing.T) {
	t.Parallel()

	var c Codec
	b, err := c.Marshal(&sample{ID: "emp-1", Dates: []string{"2024-01-01"}})
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(b) != `{"id":"emp-1","dates":["2024-01-01"]}` {
		t.Fatalf("unexpected payload: %s", b)
	}

	var out sample
	if err := c.Unmarshal(b, &out); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if out.ID != "emp-1" || len(out.Dates) != 1 {
		t.Fatalf("unexpected value: %+v", out)
	}
}

func TestCodec_ProtoMessage(t *testing.T) {
	t.Parallel()

	var c Codec
	b, err := c.Marshal(wrapperspb.String("hello"))
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if !strings.Contains(string(b), "hello") {
		t.Fatalf("unexpected payload: %s", b)
	}

	var empty emptypb.Empty
	if err := c.Unmarshal([]byte(`{"unknown":1}`), &empty); err != nil {
		t.Fatalf("unknown fields must be discarded: %v", err)
	}
}

func TestCodec_EmptyPayload(t *testing.T) {
	t.Parallel()

	var c Codec
	var out sample
	if err := c.Unmarshal(nil, &out); err != nil {
		t.Fatalf("Unmarshal(nil) returned error: %v", err)
	}
	if err := c.Unmarshal([]byte("{"), &out); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
