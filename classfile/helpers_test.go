package classfile

import (
	"encoding/hex"
	"strings"
	"testing"
)

// allTagsPool holds one entry of every base tag, count 17.
const allTagsPool = `
00 11
01 00 03 46 6F 6F
07 00 01
01 00 03 62 61 72
01 00 01 49
0C 00 03 00 04
09 00 02 00 05
0A 00 02 00 05
0B 00 02 00 05
08 00 01
03 FF FF FF FF
04 3F C0 00 00
05 00 00 00 01 00 00 00 01
06 3F F0 00 00 00 00 00 00
0F 06 00 07
10 00 04
12 00 00 00 05
`

func mustHex(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

func classBytes(t testing.TB, pool string) []byte {
	t.Helper()
	return append(mustHex(t, "CA FE BA BE 00 00 00 34"), mustHex(t, pool)...)
}
