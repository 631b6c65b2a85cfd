package lsx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"bg3-modsettings/core/utils"
	"bg3-modsettings/feature/modsettings/models"
)

// MetaFileName is the descriptor every mod archive carries.
const MetaFileName = "meta.lsx"

// ModuleInfoNode is the descriptor node holding the module identity.
const ModuleInfoNode = "ModuleInfo"

// ErrMalformedDescriptor is returned when a descriptor lacks the ModuleInfo node or is not LSX at all.
var ErrMalformedDescriptor = errors.New("malformed descriptor")

// ParseMeta reads a meta.lsx document and returns the archive identity it declares.
// The result carries no mod references.
func ParseMeta(r io.Reader) (models.ArchiveMetadata, error) {
	var save Save
	if err := xml.NewDecoder(r).Decode(&save); err != nil {
		return models.ArchiveMetadata{}, fmt.Errorf("%w: %v", ErrMalformedDescriptor, err)
	}

	info := save.FindNode(ModuleInfoNode)
	if info == nil {
		return models.ArchiveMetadata{}, fmt.Errorf("%w: %q node not found", ErrMalformedDescriptor, ModuleInfoNode)
	}

	get := func(id string) models.TypedValue {
		a, ok := info.Attribute(id)
		if !ok {
			return models.TypedValue{}
		}
		return models.Typed(a.Value, a.Type)
	}

	return models.ArchiveMetadata{
		Folder:        get("Folder"),
		Name:          get("Name"),
		PublishHandle: get("PublishHandle"),
		UUID:          get("UUID"),
		MD5:           get("MD5"),
		Version64:     get("Version64"),
		Version:       get("Version"),
	}, nil
}

// ParseMetaFile opens and parses the descriptor at path.
func ParseMetaFile(path string) (models.ArchiveMetadata, error) {
	f, err := os.Open(utils.LongPath(path))
	if err != nil {
		return models.ArchiveMetadata{}, err
	}
	defer f.Close()

	meta, err := ParseMeta(f)
	if err != nil {
		return models.ArchiveMetadata{}, fmt.Errorf("%s: %w", path, err)
	}
	return meta, nil
}
