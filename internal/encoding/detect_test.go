package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfcarvalho/caixa-escolar/internal/encoding"
)

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "ESCOLA,VALOR,MÊS\nEMEI São João,\"R$ 1.234,56\",8. Agosto\n"
	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_Latin1(t *testing.T) {
	// ISO-8859-1 encoded "MÊS;SITUAÇÃO\n": Ê = 0xCA, Ç = 0xC7, Ã = 0xC3.
	latin1 := []byte{'M', 0xCA, 'S', ';', 'S', 'I', 'T', 'U', 'A', 0xC7, 0xC3, 'O', '\n'}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(latin1))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "MÊS;SITUAÇÃO\n", string(got))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("ESCOLA,VALOR\n")...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "ESCOLA,VALOR\n", string(got))
}
