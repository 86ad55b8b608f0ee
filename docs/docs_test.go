package docs

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type annotatedOperation struct {
	summary     string
	description string
	codes       []string
}

var annotationLine = regexp.MustCompile(`^//\s*@(\w+)\s+(.*)$`)

// readAnnotations collects the godoc blocks of the controllers keyed by
// "method path".
func readAnnotations(t *testing.T) map[string]annotatedOperation {
	t.Helper()
	files, err := filepath.Glob("../api/controllers/*.go")
	require.NoError(t, err)

	ops := map[string]annotatedOperation{}
	for _, name := range files {
		if strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := os.Open(name)
		require.NoError(t, err)

		var current annotatedOperation
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			m := annotationLine.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
			if m == nil {
				continue
			}
			value := strings.TrimSpace(m[2])
			switch m[1] {
			case "Summary":
				current = annotatedOperation{summary: value}
			case "Description":
				current.description = value
			case "Success", "Failure":
				current.codes = append(current.codes, strings.Fields(value)[0])
			case "Router":
				parts := strings.Fields(value)
				method := strings.Trim(parts[1], "[]")
				sort.Strings(current.codes)
				ops[method+" "+parts[0]] = current
				current = annotatedOperation{}
			}
		}
		require.NoError(t, scanner.Err())
		_ = f.Close()
	}
	return ops
}

type swaggerDoc struct {
	Paths map[string]map[string]struct {
		Summary     string                     `json:"summary"`
		Description string                     `json:"description"`
		Responses   map[string]json.RawMessage `json:"responses"`
	} `json:"paths"`
}

func TestDocMatchesAnnotations(t *testing.T) {
	annotations := readAnnotations(t)
	require.NotEmpty(t, annotations)

	var doc swaggerDoc
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))

	documented := map[string]bool{}
	for path, methods := range doc.Paths {
		for method, op := range methods {
			key := method + " " + path
			documented[key] = true

			want, ok := annotations[key]
			if !assert.True(t, ok, "%s is documented but has no handler annotation", key) {
				continue
			}
			codes := make([]string, 0, len(op.Responses))
			for code := range op.Responses {
				codes = append(codes, code)
			}
			sort.Strings(codes)

			assert.Equal(t, want.summary, op.Summary, key)
			assert.Equal(t, want.description, op.Description, key)
			assert.Equal(t, want.codes, codes, key)
		}
	}

	for key := range annotations {
		assert.True(t, documented[key], "%s is annotated but missing from the doc", key)
	}
}
