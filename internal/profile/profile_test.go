package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromReader(t *testing.T) {
	in := `
sample_rate: 48000
baud: 1200
carrier_freq: 2400
precision: single
strict: true
`
	p, err := LoadFromReader(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, &Profile{
		SampleRate:  48000,
		Baud:        1200,
		CarrierFreq: 2400,
		Precision:   PrecisionSingle,
		Strict:      true,
	}, p)
}

func TestLoadFromReader_Partial(t *testing.T) {
	p, err := LoadFromReader(strings.NewReader("carrier_freq: 1500.5\n"))
	require.NoError(t, err)
	assert.Equal(t, &Profile{CarrierFreq: 1500.5}, p)
}

func TestLoadFromReader_Empty(t *testing.T) {
	p, err := LoadFromReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, &Profile{}, p)
}

func TestLoadFromReader_UnknownField(t *testing.T) {
	_, err := LoadFromReader(strings.NewReader("sample_rate: 8000\nbaudrate: 1000\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "baudrate")
}

func TestLoadFromReader_BadType(t *testing.T) {
	_, err := LoadFromReader(strings.NewReader("baud: fast\n"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		wantErr []string
	}{
		{"empty", Profile{}, nil},
		{"full", Profile{SampleRate: 44100, Baud: 1000, CarrierFreq: 2000, Precision: PrecisionDouble}, nil},
		{"negative rate", Profile{SampleRate: -1}, []string{"sample_rate"}},
		{"baud above rate", Profile{SampleRate: 8000, Baud: 9600}, []string{"exceeds"}},
		{"negative carrier", Profile{CarrierFreq: -5}, []string{"carrier_freq"}},
		{"bad precision", Profile{Precision: "half"}, []string{"precision"}},
		{
			"several problems",
			Profile{Baud: -1, CarrierFreq: -1, Precision: "quad"},
			[]string{"baud", "carrier_freq", "precision"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "link.yaml")
	want := &Profile{SampleRate: 8000, Baud: 1000, CarrierFreq: 1000, Precision: PrecisionDouble}

	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "strict")
}

func TestSave_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")

	require.Error(t, Save(path, &Profile{Baud: -3}))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
