package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Save writes the editor and log sections of cfg to the config file.
// Comments and unknown keys elsewhere in the file are preserved by editing
// the yaml.Node tree in place.
func Save(configPath string, cfg Config) error {
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	editorNode, err := encodeNode(cfg.Editor)
	if err != nil {
		return fmt.Errorf("building editor node: %w", err)
	}
	logNode, err := encodeNode(cfg.Log)
	if err != nil {
		return fmt.Errorf("building log node: %w", err)
	}

	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("parsing config: top level is not a mapping")
	}
	root := doc.Content[0]
	setSection(root, "editor", editorNode)
	setSection(root, "log", logNode)

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return writeAtomic(configPath, buf.Bytes())
}

func encodeNode(v any) (*yaml.Node, error) {
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return &n, nil
}

// setSection replaces the value under key, keeping the comments attached to
// the existing key and its children, or appends key when absent.
func setSection(root *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i < len(root.Content)-1; i += 2 {
		if root.Content[i].Value != key {
			continue
		}
		old := root.Content[i+1]
		if old.Kind == yaml.MappingNode {
			mergeMapping(old, value)
			return
		}
		root.Content[i+1] = value
		return
	}
	root.Content = append(root.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		value,
	)
}

// mergeMapping copies scalar values from src into dst, field by field.
func mergeMapping(dst, src *yaml.Node) {
	for j := 0; j < len(src.Content)-1; j += 2 {
		k, v := src.Content[j], src.Content[j+1]
		found := false
		for i := 0; i < len(dst.Content)-1; i += 2 {
			if dst.Content[i].Value == k.Value {
				v.HeadComment = dst.Content[i+1].HeadComment
				v.LineComment = dst.Content[i+1].LineComment
				dst.Content[i+1] = v
				found = true
				break
			}
		}
		if !found {
			dst.Content = append(dst.Content, k, v)
		}
	}
}

// writeAtomic writes to a temp file and renames it over path.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".kilovim.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
