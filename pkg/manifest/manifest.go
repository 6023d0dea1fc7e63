package manifest

import (
	"bufio"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"strings"
)

// constraint operators ordered by match precedence, longest first.
var constraintOperators = []string{"===", "==", "~=", "!=", "<=", ">=", "<", ">"}

// Requirement is a single declared package constraint of the dependency manifest.
type Requirement struct {
	// Name of the package, including any extras suffix.
	Name string

	// Constraint is the version constraint expression, empty if unpinned.
	Constraint string
}

func (r Requirement) String() string {
	return r.Name + r.Constraint
}

// Manifest is the parsed dependency manifest: an ordered sequence of package
// constraints plus any installer option lines it carries.
type Manifest struct {
	Requirements []Requirement

	// Options are the installer option lines of the manifest, e.g. index urls.
	Options []string

	// canonical holds the cleaned manifest lines in declaration order.
	// It is the input of the content digest.
	canonical []string
}

// Parse reads a dependency manifest in the one-constraint-per-line format.
// Blank lines and comments are skipped, trailing backslashes continue the
// logical line.
func Parse(r io.Reader) (*Manifest, error) {
	m := &Manifest{}

	scanner := bufio.NewScanner(r)
	pending := ""
	for scanner.Scan() {
		line := pending + strings.TrimSpace(scanner.Text())
		pending = ""

		if cut := strings.Index(line, "#"); cut >= 0 {
			line = strings.TrimSpace(line[:cut])
		}
		if line == "" {
			continue
		}
		if strings.HasSuffix(line, "\\") {
			pending = strings.TrimSpace(strings.TrimSuffix(line, "\\"))
			continue
		}

		m.addLine(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	if pending != "" {
		m.addLine(pending)
	}

	return m, nil
}

// ParseFile reads and parses the dependency manifest at the given path.
func ParseFile(path string) (*Manifest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

func (m *Manifest) addLine(line string) {
	m.canonical = append(m.canonical, line)

	if strings.HasPrefix(line, "-") {
		m.Options = append(m.Options, line)
		return
	}

	// environment markers are not part of the constraint
	spec := line
	if cut := strings.Index(spec, ";"); cut >= 0 {
		spec = strings.TrimSpace(spec[:cut])
	}

	for _, op := range constraintOperators {
		if cut := strings.Index(spec, op); cut >= 0 {
			m.Requirements = append(m.Requirements, Requirement{
				Name:       strings.TrimSpace(spec[:cut]),
				Constraint: strings.ReplaceAll(spec[cut:], " ", ""),
			})
			return
		}
	}

	m.Requirements = append(m.Requirements, Requirement{Name: spec})
}

// Len returns the number of declared package constraints.
func (m *Manifest) Len() int {
	return len(m.Requirements)
}

// Digest returns the content digest of the manifest. Two manifests with the
// same declared constraints in the same order share the digest, regardless of
// comments or surrounding whitespace. The digest is the cache key that gates
// the dependency install stage of the build pipeline.
func (m *Manifest) Digest() string {
	sum := sha256.Sum256([]byte(strings.Join(m.canonical, "\n")))
	return fmt.Sprintf("sha256:%x", sum)
}
