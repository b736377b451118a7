package lib

import "encoding/json"
import "unsafe"

// Bytes2str morph byte slice to a string without copying. Note that
// the source byte-slice should remain in scope as long as string is
// in scope.
func Bytes2str(bytes []byte) string {
	if bytes == nil {
		return ""
	}
	return unsafe.String(unsafe.SliceData(bytes), len(bytes))
}

// Str2bytes morph string to a byte-slice without copying. Note that
// the source string should remain in scope as long as byte-slice is
// in scope.
func Str2bytes(str string) []byte {
	if str == "" {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(str), len(str))
}

// Prettystats uses json.MarshalIndent, if pretty is true, instead of
// json.Marshal. If Marshal return error Prettystats will panic.
func Prettystats(stats map[string]interface{}, pretty bool) string {
	if pretty {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			panic(err)
		}
		return string(data)
	}
	data, err := json.Marshal(stats)
	if err != nil {
		panic(err)
	}
	return string(data)
}

// AbsInt64 absolute value of int64 number. Except for -2^63, where
// returned value will be same as input.
func AbsInt64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
