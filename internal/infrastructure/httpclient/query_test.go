package httpclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsEncode(t *testing.T) {
	var nilStr *string
	search := "citric"

	qs, err := Params{
		"page":        2,
		"search_text": nil,
		"missing":     nilStr,
		"q":           &search,
		"flag":        false,
		"ratio":       0.5,
		"size":        uint8(10),
		"name":        "a b&c",
	}.Encode()
	require.NoError(t, err)

	assert.Equal(t, "flag=false&name=a+b%26c&page=2&q=citric&ratio=0.5&size=10", qs)
}

func TestParamsEncodeEmpty(t *testing.T) {
	qs, err := Params(nil).Encode()
	require.NoError(t, err)
	assert.Empty(t, qs)

	qs, err = Params{"only": nil}.Encode()
	require.NoError(t, err)
	assert.Empty(t, qs)
}

func TestParamsEncodeRejectsComposite(t *testing.T) {
	_, err := Params{"m": map[string]string{"a": "b"}}.Encode()
	assert.ErrorIs(t, err, ErrUnsupportedParam)
}
