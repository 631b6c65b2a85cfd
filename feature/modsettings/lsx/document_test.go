package lsx

import (
	"bytes"
	"strings"
	"testing"

	"bg3-modsettings/feature/modsettings/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alphaMeta() models.ArchiveMetadata {
	return models.ArchiveMetadata{
		Folder:    models.Plain("Alpha"),
		Name:      models.Plain("Alpha"),
		UUID:      models.Plain("1111"),
		Version64: models.Plain("5"),
		MD5:       models.Plain("deadbeef"),
		ModNames:  []string{"Alpha"},
	}
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument()

	assert.Equal(t, DocumentVersion, doc.Version)
	assert.Equal(t, []string{BaseModule.UUID.Value}, doc.Order)
	require.Len(t, doc.Mods, 1)
	assert.Equal(t, BaseModule, doc.Mods[0])
	assert.Equal(t, 1, doc.Len())
}

func TestDocument_AddModule(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.AddModule(alphaMeta()))

	assert.Equal(t, []string{BaseModule.UUID.Value, "1111"}, doc.Order)
	require.Len(t, doc.Mods, 2)

	desc := doc.Mods[1]
	assert.Equal(t, "Alpha", desc.Folder.Value)
	assert.Equal(t, models.TypeLSString, desc.Folder.Type)
	assert.Equal(t, "Alpha", desc.Name.Value)
	assert.Equal(t, "1111", desc.UUID.Value)
	assert.Equal(t, models.TypeFixedString, desc.UUID.Type)
	assert.Equal(t, "5", desc.Version64.Value)
	assert.Equal(t, models.TypeInt64, desc.Version64.Type)
	assert.Equal(t, "0", desc.PublishHandle.Value)
	assert.Equal(t, "", desc.MD5.Value, "MD5 is never emitted for mods")
	assert.True(t, desc.Version.IsZero())
}

func TestDocument_AddModuleKeepsDeclaredTypes(t *testing.T) {
	meta := alphaMeta()
	meta.Version64 = models.Typed("5", models.TypeUint64)
	meta.PublishHandle = models.Typed("77", models.TypeUint64)
	meta.Version = models.Typed("3", "")

	doc := NewDocument()
	require.NoError(t, doc.AddModule(meta))

	desc := doc.Mods[1]
	assert.Equal(t, models.TypeUint64, desc.Version64.Type)
	assert.Equal(t, "77", desc.PublishHandle.Value)
	assert.Equal(t, models.Typed("3", models.TypeInt32), desc.Version)
}

func TestDocument_AddModuleWithoutUUID(t *testing.T) {
	doc := NewDocument()
	err := doc.AddModule(models.ArchiveMetadata{Folder: models.Plain("Nameless")})
	assert.ErrorIs(t, err, ErrMissingUUID)
	assert.Equal(t, 1, doc.Len())
}

func TestDocument_MarshalIndent(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.AddModule(alphaMeta()))

	out, err := doc.MarshalIndent()
	require.NoError(t, err)
	text := string(out)

	assert.True(t, strings.HasPrefix(text, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, text, `<version major="4" minor="7" revision="1" build="3">`)
	assert.Contains(t, text, `<region id="ModuleSettings">`)
	assert.Contains(t, text, `<attribute id="UUID" value="1111" type="FixedString">`)
	assert.Contains(t, text, "\n  <region")
	assert.Less(t, strings.Index(text, `id="ModOrder"`), strings.Index(text, `id="Mods"`))

	again, err := doc.MarshalIndent()
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestParseDocument_RoundTrip(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.AddModule(alphaMeta()))

	out, err := doc.MarshalIndent()
	require.NoError(t, err)

	parsed, err := ParseDocument(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, doc.Version, parsed.Version)
	assert.Equal(t, doc.Order, parsed.Order)
	assert.Equal(t, doc.Mods, parsed.Mods)
}

func TestParseDocument_Invalid(t *testing.T) {
	_, err := ParseDocument(strings.NewReader("<save>"))
	assert.Error(t, err)
}
