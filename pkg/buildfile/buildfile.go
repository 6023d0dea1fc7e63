package buildfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/slipway-sh/slipway/pkg/recipe"
)

// FileName is the name of the rendered build file inside the staging
// directory. The suffix keeps it from clobbering a Dockerfile the
// application source tree may carry itself.
const FileName = "Dockerfile.slipway"

// fileTemplate realizes the ordered build contract. The manifest copy and
// the dependency install run strictly before the full source copy, so source
// changes alone never invalidate the install layer.
const fileTemplate = `FROM {{.BaseImage}}

{{- range .EnvLines}}
ENV {{.}}
{{- end}}

WORKDIR {{.WorkDir}}

COPY {{.ManifestFile}} .
RUN pip install --no-cache-dir -r {{.ManifestFile}}

COPY . .

EXPOSE {{.ExposePort}}

CMD {{.LaunchJson}}
`

var parsedTemplate = template.Must(template.New("buildfile").Parse(fileTemplate))

type templateData struct {
	BaseImage    string
	EnvLines     []string
	WorkDir      string
	ManifestFile string
	ExposePort   int
	LaunchJson   string
}

// Render produces the build file text for the given recipe. The output is
// deterministic: identical recipes render byte-identical build files.
func Render(r *recipe.Recipe) (string, error) {
	launchJson, err := json.Marshal(r.Launch.Argv())
	if err != nil {
		return "", fmt.Errorf("failed to encode launch command: %w", err)
	}

	data := templateData{
		BaseImage:    r.BaseImage,
		EnvLines:     r.EnvSlice(),
		WorkDir:      r.WorkDir,
		ManifestFile: r.ManifestFile,
		ExposePort:   r.ExposePort,
		LaunchJson:   string(launchJson),
	}

	var rendered strings.Builder
	if err := parsedTemplate.Execute(&rendered, data); err != nil {
		return "", fmt.Errorf("failed to render build file: %w", err)
	}

	return rendered.String(), nil
}

// WriteFile renders the build file for the given recipe and writes it into
// the given directory under FileName. It returns the written path.
func WriteFile(dir string, r *recipe.Recipe) (string, error) {
	rendered, err := Render(r)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("failed to write build file: %w", err)
	}

	return path, nil
}
