package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Parallel()

	c, err := Parse(Defaults())
	require.NoError(t, err)
	assert.Equal(t, "NW_ALL", c.Mode)
	assert.Equal(t, "CSPELL", c.Ranking.Mode)
	assert.Equal(t, 25, c.Candidates.MaxCandidates)
	assert.Equal(t, 1.0, c.Ranking.EdFac)
	assert.Equal(t, 0.7, c.Ranking.PhoneticFac)
	assert.Equal(t, 0.8, c.Ranking.OverlapFac)
	assert.Equal(t, "full", c.Files.Variant)
	assert.Nil(t, c.Files.CheckDic)
	for _, ct := range CorrectionTypes {
		assert.Equal(t, 2, c.Stage(ct).ContextRadius, ct)
	}
	assert.Equal(t, int64(65), c.Stage(RW1To1).MinWC)
	assert.Equal(t, -1.0, c.Stage(NW1To1).MinContext)
}

func TestParseFailsFast(t *testing.T) {
	t.Parallel()

	m := Defaults()
	delete(m, "CS_CAN_MAX_CANDIDATES")
	m["CS_RW_1TO1_C_FAC"] = "high"
	m["CS_W2V_SKIP_WORD"] = "maybe"
	m["CS_CAN_NW_MAX_EDIT_DIST"] = "5"

	_, err := Parse(m)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingKey))
	assert.True(t, errors.Is(err, ErrInvalidValue))
	assert.Contains(t, err.Error(), "CS_CAN_MAX_CANDIDATES")
	assert.Contains(t, err.Error(), "CS_RW_1TO1_C_FAC")
	assert.Contains(t, err.Error(), "CS_W2V_SKIP_WORD")
	assert.Contains(t, err.Error(), "CS_CAN_NW_MAX_EDIT_DIST")
}

func TestParseLists(t *testing.T) {
	t.Parallel()

	c, err := Parse(Merge(Defaults(), map[string]string{"CS_CHECK_DIC_FILES": "a.txt; b.txt;"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, c.Files.CheckDic)
}

func TestLoadTOMLAndYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "cspell.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(`
CS_FUNC_MODE = "RW_ALL"
CS_CAN_MAX_CANDIDATES = 10
CS_W2V_SKIP_WORD = false
CS_CHECK_DIC_FILES = ["a.txt", "b.txt"]

[extra]
note = "x"
`), 0o644))
	m, err := Load(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, "RW_ALL", m["CS_FUNC_MODE"])
	assert.Equal(t, "10", m["CS_CAN_MAX_CANDIDATES"])
	assert.Equal(t, "false", m["CS_W2V_SKIP_WORD"])
	assert.Equal(t, "a.txt;b.txt", m["CS_CHECK_DIC_FILES"])
	assert.Equal(t, "x", m["extra.note"])

	c, err := LoadFile(tomlPath, true)
	require.NoError(t, err)
	assert.Equal(t, 10, c.Candidates.MaxCandidates)
	assert.False(t, c.Ranking.SkipUnknownWord)

	_, err = LoadFile(tomlPath, false)
	assert.ErrorIs(t, err, ErrMissingKey)

	yamlPath := filepath.Join(dir, "cspell.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("CS_FUNC_MODE: NW_1TO1\nCS_ORTHO_SCORE_ED_FAC: 0.5\n"), 0o644))
	c, err = LoadFile(yamlPath, true)
	require.NoError(t, err)
	assert.Equal(t, "NW_1TO1", c.Mode)
	assert.Equal(t, 0.5, c.Ranking.EdFac)

	_, err = Load(filepath.Join(dir, "cspell.ini"))
	assert.Error(t, err)
}
