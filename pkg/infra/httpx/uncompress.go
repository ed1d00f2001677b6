package httpx

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// decoders maps a Content-Encoding token to the routine that unwraps
// one layer of it.
var decoders = map[string]func([]byte) ([]byte, error){
	"br":      decodeBrotli,
	"gzip":    decodeGzip,
	"zstd":    decodeZstd,
	"deflate": decodeDeflate,
}

// DecodeChain unwraps a payload whose Content-Encoding may stack
// several codings ("gzip, br" decodes right to left). It returns the
// decoded payload and whether any layer was removed. identity and
// compress segments pass through untouched.
func DecodeChain(contentEncoding string, body []byte) ([]byte, bool, error) {
	if contentEncoding == "" {
		return body, false, nil
	}

	segments := strings.Split(contentEncoding, ",")
	changed := false
	for i := len(segments) - 1; i >= 0; i-- {
		token := strings.TrimSpace(strings.ToLower(segments[i]))
		if token == "" || token == "identity" || token == "compress" {
			continue
		}

		decode, ok := decoders[token]
		if !ok {
			return nil, false, fmt.Errorf("unsupported content-encoding: %q", segments[i])
		}
		out, err := decode(body)
		if err != nil {
			return nil, false, err
		}
		body = out
		changed = true
	}
	return body, changed, nil
}

func decodeBrotli(body []byte) ([]byte, error) {
	return io.ReadAll(brotli.NewReader(bytes.NewReader(body)))
}

func decodeGzip(body []byte) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	out, err := io.ReadAll(gr)
	if cerr := gr.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func decodeZstd(body []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}

// decodeDeflate tries the zlib wrapping the RFC asks for, then falls
// back to raw DEFLATE, which several clients send anyway.
func decodeDeflate(body []byte) ([]byte, error) {
	if zr, err := zlib.NewReader(bytes.NewReader(body)); err == nil {
		out, err := io.ReadAll(zr)
		if cerr := zr.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return nil, err
		}
		return out, nil
	}

	fr := flate.NewReader(bytes.NewReader(body))
	out, err := io.ReadAll(fr)
	if cerr := fr.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SniffEncoding inspects magic bytes for payloads uploaded without a
// Content-Encoding header. Brotli has no magic number, so brotli
// uploads must declare themselves.
func SniffEncoding(body []byte) string {
	if len(body) >= 2 && body[0] == 0x1f && body[1] == 0x8b {
		return "gzip"
	}
	if len(body) >= 4 && body[0] == 0x28 && body[1] == 0xb5 && body[2] == 0x2f && body[3] == 0xfd {
		return "zstd"
	}
	if len(body) >= 2 && body[0] == 0x78 {
		switch body[1] {
		case 0x01, 0x5e, 0x9c, 0xda:
			return "deflate"
		}
	}
	return ""
}
