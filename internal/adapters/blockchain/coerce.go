package blockchain

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var bigIntType = reflect.TypeOf((*big.Int)(nil))

// CoerceArgs converts loosely typed constructor arguments, as decoded from a
// plan file, into the Go types abi.Arguments.Pack expects for inputs.
func CoerceArgs(inputs abi.Arguments, values []any) ([]any, error) {
	if len(values) != len(inputs) {
		return nil, fmt.Errorf("constructor takes %d arguments, got %d", len(inputs), len(values))
	}
	out := make([]any, len(values))
	for i, input := range inputs {
		v, err := coerce(input.Type, values[i])
		if err != nil {
			name := input.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("argument %s (%s): %w", name, input.Type.String(), err)
		}
		out[i] = v
	}
	return out, nil
}

func coerce(t abi.Type, v any) (any, error) {
	switch t.T {
	case abi.AddressTy:
		return toAddress(v)
	case abi.BoolTy:
		return toBool(v)
	case abi.StringTy:
		if s, ok := v.(string); ok {
			return s, nil
		}
		return nil, fmt.Errorf("expected a string, got %T", v)
	case abi.IntTy, abi.UintTy:
		return toInteger(t, v)
	case abi.FixedBytesTy:
		return toFixedBytes(t, v)
	case abi.BytesTy:
		return toBytes(v)
	default:
		// arrays, tuples and the like must already be in their packed Go form
		return v, nil
	}
}

func toAddress(v any) (common.Address, error) {
	switch val := v.(type) {
	case common.Address:
		return val, nil
	case string:
		s := strings.TrimSpace(val)
		if !common.IsHexAddress(s) {
			return common.Address{}, fmt.Errorf("invalid address %q", val)
		}
		return common.HexToAddress(s), nil
	}
	return common.Address{}, fmt.Errorf("expected an address, got %T", v)
}

func toBool(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return false, fmt.Errorf("invalid bool %q", val)
	}
	return false, fmt.Errorf("expected a bool, got %T", v)
}

func toBigInt(v any) (*big.Int, error) {
	switch val := v.(type) {
	case int:
		return big.NewInt(int64(val)), nil
	case int32:
		return big.NewInt(int64(val)), nil
	case int64:
		return big.NewInt(val), nil
	case uint:
		return new(big.Int).SetUint64(uint64(val)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(val)), nil
	case uint64:
		return new(big.Int).SetUint64(val), nil
	case float64:
		if math.IsInf(val, 0) || math.IsNaN(val) || math.Trunc(val) != val {
			return nil, fmt.Errorf("%v is not an integer", val)
		}
		n, _ := big.NewFloat(val).Int(nil)
		return n, nil
	case *big.Int:
		if val == nil {
			return nil, fmt.Errorf("nil integer")
		}
		return new(big.Int).Set(val), nil
	case string:
		s := strings.TrimSpace(val)
		n, ok := new(big.Int).SetString(s, 0)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", val)
		}
		return n, nil
	}
	return nil, fmt.Errorf("expected an integer, got %T", v)
}

func toInteger(t abi.Type, v any) (any, error) {
	n, err := toBigInt(v)
	if err != nil {
		return nil, err
	}

	if t.T == abi.UintTy {
		if n.Sign() < 0 {
			return nil, fmt.Errorf("%s is negative", n)
		}
		if n.BitLen() > t.Size {
			return nil, fmt.Errorf("%s overflows uint%d", n, t.Size)
		}
	} else {
		limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
		minimum := new(big.Int).Neg(limit)
		maximum := new(big.Int).Sub(limit, big.NewInt(1))
		if n.Cmp(minimum) < 0 || n.Cmp(maximum) > 0 {
			return nil, fmt.Errorf("%s overflows int%d", n, t.Size)
		}
	}

	rt := t.GetType()
	if rt == bigIntType {
		return n, nil
	}
	out := reflect.New(rt).Elem()
	if t.T == abi.UintTy {
		out.SetUint(n.Uint64())
	} else {
		out.SetInt(n.Int64())
	}
	return out.Interface(), nil
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}

func toFixedBytes(t abi.Type, v any) (any, error) {
	var raw []byte
	switch val := v.(type) {
	case string:
		b, err := decodeHex(val)
		if err != nil {
			return nil, fmt.Errorf("invalid hex %q: %w", val, err)
		}
		raw = b
	case []byte:
		raw = val
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Array || rv.Type().Elem().Kind() != reflect.Uint8 {
			return nil, fmt.Errorf("expected bytes, got %T", v)
		}
		raw = make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(raw), rv)
	}
	if len(raw) > t.Size {
		return nil, fmt.Errorf("%d bytes do not fit bytes%d", len(raw), t.Size)
	}

	out := reflect.New(t.GetType()).Elem()
	reflect.Copy(out, reflect.ValueOf(raw))
	return out.Interface(), nil
}

func toBytes(v any) ([]byte, error) {
	switch val := v.(type) {
	case []byte:
		return val, nil
	case string:
		b, err := decodeHex(val)
		if err != nil {
			return nil, fmt.Errorf("invalid hex %q: %w", val, err)
		}
		return b, nil
	}
	return nil, fmt.Errorf("expected bytes, got %T", v)
}
