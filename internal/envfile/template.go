package envfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// RequiredKey is the secret the governance agents cannot run without.
const RequiredKey = "GOOGLE_API_KEY"

// Template is the env file scaffolded when no configuration exists
// yet. The header carries two spaces; the backend writes the same file
// and the two must stay byte-identical.
const Template = `# TrustLensAI  Environment Variables
GOOGLE_API_KEY=your_gemini_api_key_here
SECRET_KEY=change-this-in-production
HOST=0.0.0.0
PORT=5001
DEBUG=True
`

// WriteTemplate writes Template to path unless a file already exists
// there. Returns true if the file was written.
func WriteTemplate(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, []byte(Template), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}
