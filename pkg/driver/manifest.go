package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"plc/interpreter-go/pkg/logs"
)

// ManifestFileName is the file FindManifest searches for.
const ManifestFileName = "plc.yml"

var (
	ErrManifestNotFound = errors.New("manifest: plc.yml not found")
	ErrNoTargets        = errors.New("manifest: no targets defined")
)

// Manifest represents the parsed contents of plc.yml.
type Manifest struct {
	Path        string
	Name        string
	Version     string
	Authors     []string
	Log         LogConfig
	Targets     map[string]*Target
	TargetOrder []string
}

// LogConfig mirrors logs.Options without the writer.
type LogConfig struct {
	Level   string
	Format  string
	File    string
	Journal bool
}

// TargetMode selects what a target does with its main file.
type TargetMode string

const (
	TargetModeRun  TargetMode = "run"
	TargetModeJava TargetMode = "java"
)

func (m TargetMode) IsValid() bool {
	return m == TargetModeRun || m == TargetModeJava
}

// Target describes one entry under targets.
type Target struct {
	Name   string
	Main   string
	Mode   TargetMode
	Output string
	Class  string
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses plc.yml from disk, returning a validated manifest.
// Target paths are resolved against the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// FindManifest walks from start towards the filesystem root looking for plc.yml.
func FindManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ManifestFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", ManifestFileName, origin, ErrManifestNotFound)
		}
		dir = parent
	}
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if _, err := logs.ParseLevel(m.Log.Level); err != nil {
		errs.Issues = append(errs.Issues, fmt.Sprintf("log.level %q is not one of debug, info, warn, error", m.Log.Level))
	}
	if !lo.Contains([]string{"", "text", "json"}, m.Log.Format) {
		errs.Issues = append(errs.Issues, fmt.Sprintf("log.format %q is not one of text, json", m.Log.Format))
	}
	for _, name := range m.TargetOrder {
		target := m.Targets[name]
		if target.Main == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q requires a main entrypoint", name))
		}
		if !target.Mode.IsValid() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q has unsupported mode %q", name, target.Mode))
		}
		if target.Mode != TargetModeJava && (target.Output != "" || target.Class != "") {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q sets output or class outside java mode", name))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// DefaultTarget returns the first target in manifest order.
func (m *Manifest) DefaultTarget() (*Target, error) {
	if m == nil || len(m.TargetOrder) == 0 {
		return nil, ErrNoTargets
	}
	return m.Targets[m.TargetOrder[0]], nil
}

// Target looks up a target by name, ignoring case.
func (m *Manifest) Target(name string) (*Target, bool) {
	if m == nil {
		return nil, false
	}
	name = strings.TrimSpace(name)
	if target, ok := m.Targets[name]; ok {
		return target, true
	}
	key, ok := lo.Find(m.TargetOrder, func(candidate string) bool {
		return strings.EqualFold(candidate, name)
	})
	if !ok {
		return nil, false
	}
	return m.Targets[key], true
}

type manifestFile struct {
	Name    string     `yaml:"name"`
	Version string     `yaml:"version"`
	Authors stringList `yaml:"authors"`
	Log     struct {
		Level   string `yaml:"level"`
		Format  string `yaml:"format"`
		File    string `yaml:"file"`
		Journal bool   `yaml:"journal"`
	} `yaml:"log"`
	Targets targetMap `yaml:"targets"`
}

type targetYAML struct {
	Main   string `yaml:"main"`
	Mode   string `yaml:"mode"`
	Output string `yaml:"output"`
	Class  string `yaml:"class"`
}

// targetMap keeps the document order of the targets mapping.
type targetMap struct {
	items []targetMapEntry
}

type targetMapEntry struct {
	name string
	spec *targetYAML
}

func (tm *targetMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 || (value.Kind == yaml.ScalarNode && value.Tag == "!!null") {
		tm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: targets must be a mapping")
	}
	items := make([]targetMapEntry, 0, len(value.Content)/2)
	seen := make(map[string]struct{}, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		var key string
		if err := value.Content[i].Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("manifest: targets must not use empty keys")
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("manifest: target %q defined twice", key)
		}
		seen[key] = struct{}{}
		entry := new(targetYAML)
		valueNode := value.Content[i+1]
		if err := checkKnownKeys(valueNode, targetKeys); err != nil {
			return fmt.Errorf("manifest: target %q: %w", key, err)
		}
		if err := valueNode.Decode(entry); err != nil {
			return fmt.Errorf("manifest: target %q: %w", key, err)
		}
		items = append(items, targetMapEntry{name: key, spec: entry})
	}
	tm.items = items
	return nil
}

var targetKeys = []string{"main", "mode", "output", "class"}

// checkKnownKeys rejects unknown mapping keys; Node.Decode does not inherit
// the decoder's KnownFields setting.
func checkKnownKeys(node *yaml.Node, known []string) error {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if !lo.Contains(known, key) {
			return fmt.Errorf("line %d: field %s not found", node.Content[i].Line, key)
		}
	}
	return nil
}

type stringList []string

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*l = nil
			return nil
		}
		*l = stringList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = lo.Compact(lo.Map(items, func(item string, _ int) string {
			return strings.TrimSpace(item)
		}))
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	case 0:
		*l = nil
		return nil
	default:
		return fmt.Errorf("manifest: expected string or sequence for list but found %s", value.ShortTag())
	}
}

func (mf manifestFile) toManifest(path string) *Manifest {
	dir := filepath.Dir(path)
	resolve := func(p string) string {
		p = strings.TrimSpace(p)
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, filepath.FromSlash(p))
	}
	result := &Manifest{
		Path:    path,
		Name:    strings.TrimSpace(mf.Name),
		Version: strings.TrimSpace(mf.Version),
		Authors: []string(mf.Authors),
		Log: LogConfig{
			Level:   strings.ToLower(strings.TrimSpace(mf.Log.Level)),
			Format:  strings.ToLower(strings.TrimSpace(mf.Log.Format)),
			File:    resolve(mf.Log.File),
			Journal: mf.Log.Journal,
		},
		Targets:     make(map[string]*Target, len(mf.Targets.items)),
		TargetOrder: make([]string, 0, len(mf.Targets.items)),
	}
	for _, item := range mf.Targets.items {
		mode := TargetMode(strings.ToLower(strings.TrimSpace(item.spec.Mode)))
		if mode == "" {
			mode = TargetModeRun
		}
		result.Targets[item.name] = &Target{
			Name:   item.name,
			Main:   resolve(item.spec.Main),
			Mode:   mode,
			Output: resolve(item.spec.Output),
			Class:  strings.TrimSpace(item.spec.Class),
		}
		result.TargetOrder = append(result.TargetOrder, item.name)
	}
	return result
}
