package doctor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/termbot-labs/termbot/internal/instance"
	"github.com/termbot-labs/termbot/internal/platform"
)

// CheckInstances validates each registered instance's directory tree and
// permissions. When fix is true it repairs what it can.
func CheckInstances(w io.Writer, root string, fix bool) error {
	records, err := instance.List(root)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Instance check:")
	if len(records) == 0 {
		fmt.Fprintln(w, "  no instances registered")
		return nil
	}

	for _, rec := range records {
		checkInstanceTree(w, root, rec.Name, fix)
	}
	return nil
}

func checkInstanceTree(w io.Writer, root, name string, fix bool) {
	configDir := instance.ConfigPath(root, name)
	checkDirWithPerm(w, configDir, instance.DirPermSecure, fix)

	logsDir := filepath.Join(instance.Dir(root, name), instance.LogsDir)
	checkDirExists(w, logsDir, fix)

	for _, file := range []string{instance.SettingsFile, instance.MessagesFile, instance.GroupsFile} {
		checkFileExists(w, filepath.Join(configDir, file))
	}

	// The token file is optional until set-token runs, but when present it
	// must be private.
	tokenPath := instance.TokenPath(root, name)
	if info, err := os.Stat(tokenPath); err == nil {
		checkPerm(w, tokenPath, info.Mode().Perm(), instance.FilePermSecure, fix)
	}
}

func checkDirWithPerm(w io.Writer, path string, expected os.FileMode, fix bool) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", path)
		if fix {
			if mkErr := os.MkdirAll(path, expected); mkErr != nil {
				fmt.Fprintf(w, "  [FAIL] could not create %s: %v\n", path, mkErr)
				return
			}
			platform.Chmod(path, expected)
			fmt.Fprintf(w, "  [FIX ] created %s with %o\n", path, expected)
		}
		return
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return
	}
	checkPerm(w, path, info.Mode().Perm(), expected, fix)
}

func checkPerm(w io.Writer, path string, actual, expected os.FileMode, fix bool) {
	if actual == expected {
		fmt.Fprintf(w, "  [ OK ] %s (permissions %o)\n", path, actual)
		return
	}
	fmt.Fprintf(w, "  [WARN] %s has permissions %o (expected %o)\n", path, actual, expected)
	if fix {
		if err := platform.Chmod(path, expected); err != nil {
			fmt.Fprintf(w, "  [FAIL] could not fix permissions on %s: %v\n", path, err)
			return
		}
		fmt.Fprintf(w, "  [FIX ] fixed permissions on %s to %o\n", path, expected)
	}
}

func checkDirExists(w io.Writer, path string, fix bool) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", path)
		if fix {
			if mkErr := os.MkdirAll(path, instance.DirPermNormal); mkErr != nil {
				fmt.Fprintf(w, "  [FAIL] could not create %s: %v\n", path, mkErr)
				return
			}
			fmt.Fprintf(w, "  [FIX ] created %s\n", path)
		}
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", path)
}

func checkFileExists(w io.Writer, path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", path)
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", path)
}
