package blocks

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goliatone/go-global-styles/internal/hydrate"
)

// BlockJSONFile is the conventional metadata file name.
const BlockJSONFile = "block.json"

var blockDecoder = hydrate.Decoder[BlockType]{
	Normalizers: []hydrate.Normalizer{normaliseSupports},
	Validators:  []hydrate.Validator[BlockType]{requireName},
}

// DecodeBlockType hydrates a BlockType from a decoded block.json payload.
// Unknown keys such as attributes or editorScript are ignored.
func DecodeBlockType(payload map[string]any) (BlockType, error) {
	name, _ := payload["name"].(string)
	return blockDecoder.Decode(hydrate.Source{Name: name}, payload)
}

// LoadBlockJSON reads one block.json file. Comments and trailing commas are
// tolerated.
func LoadBlockJSON(path string) (BlockType, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return BlockType{}, fmt.Errorf("blocks: read %s: %w", path, err)
	}
	return blockDecoder.Parse(hydrate.Source{Path: path}, raw)
}

// LoadDir walks root and registers every block.json found below it.
func LoadDir(root string) (*MemoryRegistry, error) {
	registry, _ := NewMemoryRegistry()
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || entry.Name() != BlockJSONFile {
			return nil
		}
		bt, err := LoadBlockJSON(path)
		if err != nil {
			return err
		}
		return registry.Register(bt)
	})
	if err != nil {
		return nil, err
	}
	return registry, nil
}

// normaliseSupports drops a non-object supports value so it decodes as an
// empty capability set instead of failing the whole file.
func normaliseSupports(_ hydrate.Source, payload map[string]any) error {
	if supports, ok := payload["supports"]; ok {
		if _, isMap := supports.(map[string]any); !isMap {
			delete(payload, "supports")
		}
	}
	return nil
}

func requireName(_ hydrate.Source, bt *BlockType) error {
	if bt.Name == "" {
		return ErrBlockNameRequired
	}
	return nil
}
