package log

import (
	"fmt"
	"strconv"
)

type fieldKind uint8

const (
	kindBool fieldKind = iota + 1
	kindString
	kindHex8
	kindHex16
	kindInt
	kindError
	kindStringer
)

// field is formatted only when its line is emitted. num holds booleans and
// integers, val holds errors and stringers.
type field struct {
	key  string
	kind fieldKind
	num  int64
	str  string
	val  any
}

func (f *field) format() string {
	switch f.kind {
	case kindBool:
		return strconv.FormatBool(f.num != 0)
	case kindString:
		return f.str
	case kindHex8:
		return fmt.Sprintf("%02X", uint8(f.num))
	case kindHex16:
		return fmt.Sprintf("%04X", uint16(f.num))
	case kindInt:
		return strconv.FormatInt(f.num, 10)
	case kindError, kindStringer:
		switch v := f.val.(type) {
		case error:
			return v.Error()
		case fmt.Stringer:
			return v.String()
		}
		return "<nil>"
	}
	return "?"
}
