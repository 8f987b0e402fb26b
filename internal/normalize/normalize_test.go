package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizer_Default(t *testing.T) {
	n := New(Options{})

	got, err := n.Runes(nil, "  John Smith ")
	require.NoError(t, err)
	assert.Equal(t, []rune("  John Smith "), got, "default applies no transformation")
}

func TestNormalizer_Transforms(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		in   string
		want string
	}{
		{"case fold", Options{CaseFold: true}, "John SMITH", "john smith"},
		{"case fold non-ascii", Options{CaseFold: true}, "ÅNGSTRÖM", "ångström"},
		{"trim", Options{TrimSpace: true}, " \tjohn smith\n", "john smith"},
		{"collapse", Options{CollapseSpace: true}, "  john \t  smith  ", "john smith"},
		{"collapse wins over trim", Options{TrimSpace: true, CollapseSpace: true}, " a  b ", "a b"},
		{"nfc composes", Options{Form: FormNFC}, "e\u0301", "\u00e9"},
		{"nfd decomposes", Options{Form: FormNFD}, "\u00e9", "e\u0301"},
		{"nfkc compat", Options{Form: FormNFKC}, "ﬁ", "fi"},
		{"nfkd compat", Options{Form: FormNFKD}, "①", "1"},
		{"combined", Options{Form: FormNFC, CaseFold: true, CollapseSpace: true}, " JOSE\u0301  Smith", "jos\u00e9 smith"},
		{"empty", Options{CaseFold: true, CollapseSpace: true}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := New(tt.opts)

			got, err := n.String(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			runes, err := n.Runes(nil, tt.in)
			require.NoError(t, err)
			if tt.want == "" {
				assert.Empty(t, runes)
				return
			}
			assert.Equal(t, []rune(tt.want), runes)
		})
	}
}

func TestNormalizer_ReusesBuffer(t *testing.T) {
	n := New(Options{})
	buf := make([]rune, 0, 32)

	a, err := n.Runes(buf, "abc")
	require.NoError(t, err)
	b, err := n.Runes(a, "xy")
	require.NoError(t, err)

	assert.Equal(t, []rune("xy"), b)
	assert.Equal(t, &buf[:1][0], &b[0], "buffer is reused")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		wantOffset int
		wantErr    bool
	}{
		{"ascii", "john", 0, false},
		{"multibyte", "jürgen 東京", 0, false},
		{"empty", "", 0, false},
		{"invalid lead byte", "ab\xffcd", 2, true},
		{"truncated sequence", "ok\xe6\x9d", 2, true},
		{"surrogate half", "x\xed\xa0\x80", 1, true},
		{"literal replacement char is valid", "a�b", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.wantOffset, de.Offset)
			assert.Contains(t, de.Error(), "invalid UTF-8")
		})
	}
}

func TestNormalizer_DecodeError(t *testing.T) {
	n := New(Options{CaseFold: true})

	_, err := n.Runes(nil, "bad\x80")
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 3, de.Offset)
}

func TestParseForm(t *testing.T) {
	for _, f := range []Form{FormNone, FormNFC, FormNFD, FormNFKC, FormNFKD} {
		got, err := ParseForm(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	got, err := ParseForm(" NFC ")
	require.NoError(t, err)
	assert.Equal(t, FormNFC, got)

	got, err = ParseForm("")
	require.NoError(t, err)
	assert.Equal(t, FormNone, got)

	_, err = ParseForm("nfx")
	assert.Error(t, err)

	assert.Equal(t, "unknown", Form(42).String())
	assert.Error(t, Options{Form: Form(42)}.Validate())
	assert.NoError(t, Options{Form: FormNFKC}.Validate())
}
