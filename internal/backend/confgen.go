package backend

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/dshills/glrnvim/internal/config"
	"github.com/dshills/glrnvim/internal/config/loader"
	"github.com/dshills/glrnvim/internal/termconf"
)

// termSpec is the static description of one terminal.
type termSpec struct {
	name config.Backend
	exe  string

	// configFlag passes a config file. Empty means the terminal is
	// configured through its command line only.
	configFlag string

	// multiConfig terminals accept configFlag repeatedly, later files
	// overriding earlier ones.
	multiConfig bool

	// subcommand follows the config flags.
	subcommand []string

	classFlag string
	// classOn reports whether classFlag exists on goos. Nil means always.
	classOn func(goos string) bool

	cwdFlag   string
	separator string

	// format is used for generated files.
	format termconf.Format
	// formatFor picks the format of an existing file. Nil means format.
	formatFor func(path string) termconf.Format

	// base and priority are the discovery candidates, see loader.Locate.
	base     []string
	priority []string
}

// base implements the parts of Backend shared by every terminal.
type base struct {
	term termSpec
	cfg  *config.Config
	sys  System
	exe  string
	temp *tempFile
}

func newBase(term termSpec, cfg *config.Config, sys System) (*base, error) {
	exe, err := resolveExecutable(sys, cfg.TermExePath, term.exe)
	if err != nil {
		return nil, err
	}
	return &base{term: term, cfg: cfg, sys: sys, exe: exe}, nil
}

// Name implements Backend.
func (b *base) Name() config.Backend {
	return b.term.name
}

// Close implements Backend.
func (b *base) Close() error {
	err := b.temp.Remove()
	b.temp = nil
	return err
}

// Command implements Backend.
func (b *base) Command() (*Command, error) {
	files, err := b.configFiles()
	if err != nil {
		return nil, err
	}
	return b.command(files, nil), nil
}

func (b *base) overrides() termconf.Overrides {
	return termconf.Overrides{
		Fonts:          b.cfg.Fonts,
		FontSize:       b.cfg.FontSize,
		ClearShortcuts: b.term.multiConfig && b.cfg.LoadTermConf,
	}
}

func (b *base) formatFor(path string) termconf.Format {
	if b.term.formatFor != nil {
		return b.term.formatFor(path)
	}
	return b.term.format
}

// configFiles returns the files to pass with configFlag, in order.
//
// An explicit config path is validated and passed alone. Otherwise the
// generated file comes last so its settings win.
func (b *base) configFiles() ([]string, error) {
	if b.term.configFlag == "" {
		if b.cfg.TermConfigPath != "" {
			log.Warn("Terminal has no config file option, ignoring term_config_path",
				"backend", b.term.name, "path", b.cfg.TermConfigPath)
		}
		return nil, nil
	}

	if explicit := b.cfg.TermConfigPath; explicit != "" {
		if _, _, _, err := b.loadDocument(explicit, false); err != nil {
			return nil, err
		}
		return []string{explicit}, nil
	}

	doc, format, discovered, err := b.loadDocument("", b.cfg.LoadTermConf)
	if err != nil {
		return nil, err
	}
	doc.Merge(b.overrides())

	data, err := doc.Encode()
	if err != nil {
		return nil, fmt.Errorf("encoding %s config: %w", b.term.name, err)
	}
	if err := b.writeTemp(format.Ext, data); err != nil {
		return nil, err
	}
	log.Debug("Generated terminal config", "path", b.temp.Path(), "format", format.Name)

	return append(discovered, b.temp.Path()), nil
}

// loadDocument returns the document to merge into, its format, and for
// multi-config terminals the discovered files to pass before it.
//
// An explicit path must parse. A malformed discovered file is replaced by
// an empty document unless StrictTermConf is set.
func (b *base) loadDocument(explicit string, loadExisting bool) (termconf.Document, termconf.Format, []string, error) {
	if explicit != "" {
		doc, format, err := b.parseFile(explicit)
		return doc, format, nil, err
	}

	format := b.term.format
	if !loadExisting {
		return format.New(), format, nil, nil
	}

	found := loader.Locate(b.sys.FS, b.sys.Env, b.term.base, b.term.priority)
	if b.term.multiConfig {
		return format.New(), format, found, nil
	}
	if len(found) == 0 {
		log.Debug("No terminal config found", "backend", b.term.name)
		return format.New(), format, nil, nil
	}

	doc, docFormat, err := b.parseFile(found[0])
	if err != nil {
		if b.cfg.StrictTermConf {
			return nil, format, nil, err
		}
		log.Warn("Ignoring malformed terminal config", "path", found[0], "error", err)
		return format.New(), format, nil, nil
	}
	log.Debug("Loaded terminal config", "path", found[0])
	return doc, docFormat, nil, nil
}

func (b *base) parseFile(path string) (termconf.Document, termconf.Format, error) {
	format := b.formatFor(path)
	data, err := b.sys.FS.ReadFile(path)
	if err != nil {
		return nil, format, fmt.Errorf("reading terminal config: %w", err)
	}
	doc, err := format.Parse(path, data)
	if err != nil {
		return nil, format, err
	}
	return doc, format, nil
}

// writeTemp replaces the generated file with data.
func (b *base) writeTemp(ext string, data []byte) error {
	if err := b.Close(); err != nil {
		log.Warn("Failed to remove old terminal config", "error", err)
	}
	t, err := newTempFile(b.sys.tempDir(), ext, data)
	if err != nil {
		return err
	}
	b.temp = t
	return nil
}
