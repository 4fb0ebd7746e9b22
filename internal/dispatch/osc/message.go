// internal/dispatch/osc/message.go
package osc

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/tamzrod/lifelights/internal/payload"
)

//
// ---- OSC 1.0 message layout ----
//
// address   OSC-string ("/name", NUL-terminated, padded to 4)
// type tags OSC-string ("," followed by one tag per argument)
// arguments big-endian, each padded to 4
//
// Tags used: i int32, h int64, f float32, s string, T true, F false, N nil.
//

// Flatten turns a payload into an ordered argument list:
// key, value, key, value... with keys sorted. Lists and nested maps are
// expanded in place.
func Flatten(p map[string]any) ([]any, error) {
	var out []any
	for _, k := range payload.SortedKeys(p) {
		out = append(out, k)
		var err error
		out, err = flattenValue(out, p[k])
		if err != nil {
			return nil, fmt.Errorf("osc: payload %q: %w", k, err)
		}
	}
	return out, nil
}

func flattenValue(out []any, v any) ([]any, error) {
	switch t := v.(type) {
	case []int:
		for _, e := range t {
			out = append(out, e)
		}
	case []any:
		for _, e := range t {
			var err error
			if out, err = flattenValue(out, e); err != nil {
				return nil, err
			}
		}
	case map[string]any:
		nested, err := Flatten(t)
		if err != nil {
			return nil, err
		}
		out = append(out, nested...)
	default:
		out = append(out, v)
	}
	return out, nil
}

// EncodeMessage builds one OSC message packet.
func EncodeMessage(address string, args []any) ([]byte, error) {
	if !strings.HasPrefix(address, "/") {
		return nil, fmt.Errorf("osc: address %q must start with '/'", address)
	}

	tags := []byte{','}
	var data []byte

	for _, a := range args {
		switch v := a.(type) {
		case nil:
			tags = append(tags, 'N')
		case bool:
			if v {
				tags = append(tags, 'T')
			} else {
				tags = append(tags, 'F')
			}
		case int:
			if v >= math.MinInt32 && v <= math.MaxInt32 {
				tags = append(tags, 'i')
				data = binary.BigEndian.AppendUint32(data, uint32(int32(v)))
			} else {
				tags = append(tags, 'h')
				data = binary.BigEndian.AppendUint64(data, uint64(int64(v)))
			}
		case int32:
			tags = append(tags, 'i')
			data = binary.BigEndian.AppendUint32(data, uint32(v))
		case int64:
			tags = append(tags, 'h')
			data = binary.BigEndian.AppendUint64(data, uint64(v))
		case float32:
			tags = append(tags, 'f')
			data = binary.BigEndian.AppendUint32(data, math.Float32bits(v))
		case float64:
			tags = append(tags, 'f')
			data = binary.BigEndian.AppendUint32(data, math.Float32bits(float32(v)))
		case string:
			tags = append(tags, 's')
			data = appendString(data, v)
		default:
			return nil, fmt.Errorf("osc: unsupported argument type %T", a)
		}
	}

	pkt := appendString(nil, address)
	pkt = appendString(pkt, string(tags))
	return append(pkt, data...), nil
}

// appendString writes an OSC-string: bytes, NUL, zero padding to 4.
func appendString(dst []byte, s string) []byte {
	dst = append(dst, s...)
	pad := 4 - len(s)%4
	for i := 0; i < pad; i++ {
		dst = append(dst, 0)
	}
	return dst
}
