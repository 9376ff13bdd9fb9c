package maincmd

import "github.com/caarlos0/env/v6"

// Options holds the handful of settings that configure the backend pathway
// (see internal/backend) but have no corresponding CLI flag: they are
// expected to vary by build environment, not by invocation, so they are
// sourced purely from MALINC_-prefixed environment variables rather than
// mainer.Parser's flag-or-env handling.
type Options struct {
	// CC is the external C compiler invoked to link output.o against
	// libmalinCGlue.a.
	CC string `env:"CC" envDefault:"cc"`
	// ObjectFile is the path the backend writes the compiled object file to.
	ObjectFile string `env:"OBJECT_FILE" envDefault:"output.o"`
	// CGluePath is the path to the C runtime glue static library linked
	// against the emitted object file.
	CGluePath string `env:"CGLUE_PATH" envDefault:"libmalinCGlue.a"`
}

// LoadOptions reads Options from the environment, applying the MALINC_
// prefix to every field's env tag.
func LoadOptions() (*Options, error) {
	var o Options
	if err := env.ParseWithOptions(&o, env.Options{Prefix: "MALINC_"}); err != nil {
		return nil, err
	}
	return &o, nil
}
