// Package editor lets a user fill a release form in $EDITOR as YAML.
package editor

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/mithrel/pressgen/internal/release"
)

// ErrAborted is returned when the user closes the editor without changes.
var ErrAborted = errors.New("edit aborted: form left unchanged")

// Runner opens path in an editor and returns once the user is done.
type Runner func(path string) error

// PreferredEditor finds a suitable editor from env or common defaults.
func PreferredEditor() (string, error) {
	if v := os.Getenv("VISUAL"); v != "" {
		return v, nil
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e, nil
	}
	for _, cand := range []string{"nvim", "vim", "vi", "nano"} {
		if p, err := exec.LookPath(cand); err == nil {
			return p, nil
		}
	}
	return "", errors.New("no editor found; set $EDITOR or $VISUAL")
}

// PathFor returns a fresh temp file path for editing a form of kind k.
func PathFor(k release.Kind) (string, error) {
	name := string(k) + "." + uuid.NewString()[:8] + ".pressgen.yaml"
	if xdg := os.Getenv("XDG_RUNTIME_DIR"); xdg != "" {
		return filepath.Join(xdg, "pressgen", name), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "pressgen", "edit", name), nil
}

func writeFile0600(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, data, fs.FileMode(0o600))
}

// Terminal runs the user's editor attached to the current terminal.
func Terminal(path string) error {
	// Honor VISUAL/EDITOR including flags by running via a shell wrapper.
	ed := os.Getenv("VISUAL")
	if ed == "" {
		ed = os.Getenv("EDITOR")
	}
	var cmd *exec.Cmd
	if strings.TrimSpace(ed) != "" {
		cmd = exec.Command("sh", "-c", "$EDITORCMD \"$FILEPATH\"")
		cmd.Env = append(os.Environ(), "EDITORCMD="+ed, "FILEPATH="+path)
	} else {
		prog, err := PreferredEditor()
		if err != nil {
			return err
		}
		cmd = exec.Command(prog, path)
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// OpenAt writes initial to path, runs the editor and returns the final bytes
// and whether they changed.
func OpenAt(path string, initial []byte, run Runner) (final []byte, changed bool, err error) {
	if err := writeFile0600(path, initial); err != nil {
		return nil, false, err
	}
	if run == nil {
		run = Terminal
	}
	if err := run(path); err != nil {
		return nil, false, err
	}
	out, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	return out, !bytes.Equal(out, initial), nil
}

// Compose renders the form presented to the editor. problem, when set, is
// shown at the top so the user can fix it.
func Compose(k release.Kind, cur map[string]string, problem string) (string, error) {
	sk, err := release.Skeleton(k, cur)
	if err != nil {
		return "", err
	}
	if problem == "" {
		return sk, nil
	}
	var b strings.Builder
	for _, l := range strings.Split(problem, "\n") {
		b.WriteString("# ERROR: " + l + "\n")
	}
	b.WriteString(sk)
	return b.String(), nil
}

// EditRelease loops until the edited form validates. Validation problems are
// shown on the next round with the user's values kept. Closing the editor
// without changes aborts.
func EditRelease(k release.Kind, run Runner) (release.Release, error) {
	path, err := PathFor(k)
	if err != nil {
		return nil, err
	}
	defer os.Remove(path)

	var (
		cur     map[string]string
		problem string
	)
	for {
		initial, err := Compose(k, cur, problem)
		if err != nil {
			return nil, err
		}
		out, changed, err := OpenAt(path, []byte(initial), run)
		if err != nil {
			return nil, fmt.Errorf("run editor: %w", err)
		}
		if !changed {
			return nil, ErrAborted
		}
		rel, err := release.Load(bytes.NewReader(out))
		if err == nil {
			return rel, nil
		}
		var verr *release.ValidationError
		if !errors.As(err, &verr) {
			return nil, err
		}
		problem = verr.Error()
		cur = rawValues(out)
	}
}

// rawValues recovers the entered values from a form that failed validation.
func rawValues(data []byte) map[string]string {
	var m map[string]string
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}
