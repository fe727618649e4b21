package datauri_test

import (
	"encoding/base64"
	"testing"

	"github.com/oriongate/gltfkit/datauri"
)

func TestIsDataURI(t *testing.T) {
	if !datauri.IsDataURI("data:text/plain;base64,aGk=") {
		t.Fatalf("expected data: prefix to be recognized")
	}
	if datauri.IsDataURI("https://example.com/buffer.bin") {
		t.Fatalf("external URI must not be recognized as a data URI")
	}
	if datauri.IsDataURI("buffer.bin") {
		t.Fatalf("relative path must not be recognized as a data URI")
	}
}

func TestDecode_Base64(t *testing.T) {
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	uri := "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(payload)
	data, mediaType, ok := datauri.Decode(uri)
	if !ok {
		t.Fatalf("expected decode success")
	}
	if mediaType != "application/octet-stream" {
		t.Fatalf("mediaType = %q", mediaType)
	}
	if string(data) != string(payload) {
		t.Fatalf("decoded payload mismatch: got %v want %v", data, payload)
	}
}

func TestDecode_Base64Unpadded(t *testing.T) {
	payload := []byte{1, 2, 3}
	uri := "data:image/png;base64," + base64.RawStdEncoding.EncodeToString(payload)
	data, _, ok := datauri.Decode(uri)
	if !ok {
		t.Fatalf("expected decode success for unpadded base64")
	}
	if string(data) != string(payload) {
		t.Fatalf("decoded payload mismatch: got %v want %v", data, payload)
	}
}

func TestDecode_PercentEncodedNonBase64(t *testing.T) {
	uri := "data:text/plain,hello%20world"
	data, mediaType, ok := datauri.Decode(uri)
	if !ok {
		t.Fatalf("expected decode success")
	}
	if mediaType != "text/plain" {
		t.Fatalf("mediaType = %q", mediaType)
	}
	if string(data) != "hello world" {
		t.Fatalf("decoded payload = %q", data)
	}
}

func TestDecode_MissingCommaFails(t *testing.T) {
	_, _, ok := datauri.Decode("data:text/plain;base64")
	if ok {
		t.Fatalf("expected decode failure when no comma is present")
	}
}

func TestDecode_PlusIsNotSpace(t *testing.T) {
	// unlike net/url.QueryUnescape, "+" must be preserved literally.
	uri := "data:text/plain,a+b"
	data, _, ok := datauri.Decode(uri)
	if !ok {
		t.Fatalf("expected decode success")
	}
	if string(data) != "a+b" {
		t.Fatalf("decoded payload = %q, want %q", data, "a+b")
	}
}
