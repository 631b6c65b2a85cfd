package lsx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"bg3-modsettings/feature/modsettings/models"
)

// Region and node ids of modsettings.lsx.
const (
	regionModuleSettings = "ModuleSettings"
	nodeRoot             = "root"
	nodeModOrder         = "ModOrder"
	nodeModule           = "Module"
	nodeMods             = "Mods"
	nodeModuleShortDesc  = "ModuleShortDesc"
)

// ErrMissingUUID is returned when a module without a UUID is added to a document.
var ErrMissingUUID = errors.New("module has no UUID")

// DocumentVersion is the header written to every load order.
var DocumentVersion = Version{Major: 4, Minor: 7, Revision: 1, Build: 3}

// BaseModule describes the built-in game module that always loads first.
var BaseModule = ModuleDesc{
	Folder:        models.Typed("GustavDev", models.TypeLSString),
	MD5:           models.Typed("5e66b6872b07a6b2283a4e4a9cccb325", models.TypeLSString),
	Name:          models.Typed("GustavDev", models.TypeLSString),
	PublishHandle: models.Typed("0", models.TypeUint64),
	UUID:          models.Typed("28ac9ce2-2aba-8cda-b3b5-6e922f71b6b8", models.TypeFixedString),
	Version64:     models.Typed("144961545746289842", models.TypeInt64),
}

// ModuleDesc is one ModuleShortDesc entry.
type ModuleDesc struct {
	Folder        models.TypedValue
	MD5           models.TypedValue
	Name          models.TypedValue
	PublishHandle models.TypedValue
	UUID          models.TypedValue
	Version64     models.TypedValue
	Version       models.TypedValue
}

// DescFromMetadata converts cached archive metadata into a description. MD5 is left blank because
// the game does not check it; PublishHandle defaults to 0.
func DescFromMetadata(meta models.ArchiveMetadata) ModuleDesc {
	desc := ModuleDesc{
		Folder:        models.Typed(meta.Folder.Value, meta.Folder.TypeOr(models.TypeLSString)),
		MD5:           models.Typed("", models.TypeLSString),
		Name:          models.Typed(meta.Name.Value, meta.Name.TypeOr(models.TypeLSString)),
		PublishHandle: models.Typed("0", meta.PublishHandle.TypeOr(models.TypeUint64)),
		UUID:          models.Typed(meta.UUID.Value, meta.UUID.TypeOr(models.TypeFixedString)),
	}
	if !meta.PublishHandle.IsZero() {
		desc.PublishHandle.Value = meta.PublishHandle.Value
	}
	if !meta.Version64.IsZero() {
		desc.Version64 = models.Typed(meta.Version64.Value, meta.Version64.TypeOr(models.TypeInt64))
	}
	if !meta.Version.IsZero() {
		desc.Version = models.Typed(meta.Version.Value, meta.Version.TypeOr(models.TypeInt32))
	}
	return desc
}

func (d ModuleDesc) node() Node {
	n := Node{ID: nodeModuleShortDesc}
	add := func(id string, v models.TypedValue) {
		n.Attributes = append(n.Attributes, Attribute{ID: id, Value: v.Value, Type: v.Type})
	}
	add("Folder", d.Folder)
	add("MD5", d.MD5)
	add("Name", d.Name)
	add("PublishHandle", d.PublishHandle)
	add("UUID", d.UUID)
	if !d.Version64.IsZero() {
		add("Version64", d.Version64)
	}
	if !d.Version.IsZero() {
		add("Version", d.Version)
	}
	return n
}

// Document is the load order: module UUIDs in application order and their descriptions.
type Document struct {
	Version Version
	Order   []string
	Mods    []ModuleDesc
}

// NewDocument returns a load order holding only the base module.
func NewDocument() *Document {
	return &Document{
		Version: DocumentVersion,
		Order:   []string{BaseModule.UUID.Value},
		Mods:    []ModuleDesc{BaseModule},
	}
}

// AddModule appends meta to both the order and the description lists.
func (d *Document) AddModule(meta models.ArchiveMetadata) error {
	if meta.UUID.IsZero() {
		return fmt.Errorf("%w: folder %q", ErrMissingUUID, meta.Folder.Value)
	}
	d.Order = append(d.Order, meta.UUID.Value)
	d.Mods = append(d.Mods, DescFromMetadata(meta))
	return nil
}

// Len returns the number of modules including the base module.
func (d *Document) Len() int {
	return len(d.Order)
}

func (d *Document) save() Save {
	order := Node{ID: nodeModOrder}
	for _, uuid := range d.Order {
		order.Children = append(order.Children, Node{
			ID:         nodeModule,
			Attributes: []Attribute{{ID: "UUID", Value: uuid, Type: models.TypeFixedString}},
		})
	}

	mods := Node{ID: nodeMods}
	for _, desc := range d.Mods {
		mods.Children = append(mods.Children, desc.node())
	}

	return Save{
		Version: d.Version,
		Regions: []Region{{
			ID: regionModuleSettings,
			Nodes: []Node{{
				ID:       nodeRoot,
				Children: []Node{order, mods},
			}},
		}},
	}
}

// MarshalIndent renders the document with an XML declaration and two-space indentation.
func (d *Document) MarshalIndent() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(d.save()); err != nil {
		return nil, fmt.Errorf("failed to encode load order: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// ParseDocument reads a modsettings.lsx document.
func ParseDocument(r io.Reader) (*Document, error) {
	var save Save
	if err := xml.NewDecoder(r).Decode(&save); err != nil {
		return nil, fmt.Errorf("failed to decode load order: %w", err)
	}

	doc := &Document{Version: save.Version}
	if order := save.FindNode(nodeModOrder); order != nil {
		for _, n := range order.Children {
			if a, ok := n.Attribute("UUID"); ok {
				doc.Order = append(doc.Order, a.Value)
			}
		}
	}
	if mods := save.FindNode(nodeMods); mods != nil {
		for _, n := range mods.Children {
			doc.Mods = append(doc.Mods, descFromNode(n))
		}
	}
	return doc, nil
}

func descFromNode(n Node) ModuleDesc {
	get := func(id string) models.TypedValue {
		for _, a := range n.Attributes {
			if a.ID == id {
				return models.Typed(a.Value, a.Type)
			}
		}
		return models.TypedValue{}
	}
	return ModuleDesc{
		Folder:        get("Folder"),
		MD5:           get("MD5"),
		Name:          get("Name"),
		PublishHandle: get("PublishHandle"),
		UUID:          get("UUID"),
		Version64:     get("Version64"),
		Version:       get("Version"),
	}
}
