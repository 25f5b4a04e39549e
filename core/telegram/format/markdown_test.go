package format

import "testing"

func TestEscape(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"a*b_c`d[e", `a\*b\_c\` + "`" + `d\[e`},
		{"", ""},
		{"ዩኒቨርሲቲ *", `ዩኒቨርሲቲ \*`},
	}
	for _, tc := range cases {
		if got := Escape(tc.in); got != tc.want {
			t.Errorf("Escape(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEscapeV2(t *testing.T) {
	if got := EscapeV2("a.b!c(d)"); got != `a\.b\!c\(d\)` {
		t.Errorf("EscapeV2 = %q", got)
	}
}
