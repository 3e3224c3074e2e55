package brew

import "path/filepath"

// kegOnlyFormulae are formulae Homebrew does not link into the main
// prefix, so their opt directories must be added to the search path
// individually. Order here fixes the order of the resulting entries.
var kegOnlyFormulae = []string{
	"expat",
	"icu4c",
	"libarchive",
	"libxml2",
	"ncurses",
	"openssl@1.1",
	"openssl@3",
	"readline",
	"sqlite",
}

// discoverKegOnly appends <root>/opt/<formula> to the search path for
// every known keg-only formula that is actually installed. Extra
// formulae configured by the user are probed after the built-in list.
func (p *Prober) discoverKegOnly(cfg *Config) {
	if cfg.Root == "" {
		return
	}

	names := kegOnlyFormulae
	if len(p.extra) > 0 {
		names = append(append([]string{}, kegOnlyFormulae...), p.extra...)
	}

	for _, name := range names {
		opt := filepath.Join(cfg.Root, "opt", name)
		if !dirExists(opt) {
			continue
		}
		before := len(cfg.PrefixPath)
		cfg.PrefixPath = appendUnique(cfg.PrefixPath, opt)
		if len(cfg.PrefixPath) > before {
			p.logf("Adding keg-only %s to search path", name)
		}
	}
}
