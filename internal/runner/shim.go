package runner

import (
	"fmt"
	"os"

	"github.com/norm42-dev/norm42/internal/resolver"
)

// shimTemplate is the throwaway entry point generated when only a package
// directory is known. It puts the directory on the import path and calls the
// formatter's main the way its console script would.
const shimTemplate = `import sys

sys.path.insert(0, %q)

try:
    from %s.__main__ import main
except ImportError as exc:
    print("cannot import %s: " + str(exc), file=sys.stderr)
    sys.exit(1)

sys.exit(main())
`

// writeShim renders the shim for moduleRoot into a temporary script and
// returns its path. The caller removes it after the run.
func writeShim(dir, moduleRoot string) (string, error) {
	tmp, err := os.CreateTemp(dir, "norm42-shim-*.py")
	if err != nil {
		return "", err
	}

	script := fmt.Sprintf(shimTemplate, moduleRoot, resolver.ModuleName, resolver.ModuleName)
	if _, err := tmp.WriteString(script); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	return tmp.Name(), nil
}
