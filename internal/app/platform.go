package app

import (
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

var commandBuilder = exec.Command

func detectClipboard() ([]string, bool) {
	return detectClipboardInternal(runtime.GOOS, exec.LookPath)
}

func detectClipboardInternal(goos string, lookPath func(string) (string, error)) ([]string, bool) {
	trySingle := func(candidates ...string) ([]string, bool) {
		for _, candidate := range candidates {
			if candidate == "" {
				continue
			}
			if path, err := lookPath(candidate); err == nil && path != "" {
				return []string{path}, true
			}
		}
		return nil, false
	}

	if strings.EqualFold(goos, "windows") {
		if cmd, ok := trySingle("clip.exe", "clip"); ok {
			return cmd, true
		}
		for _, ps := range []string{"powershell", "powershell.exe", "pwsh"} {
			if path, err := lookPath(ps); err == nil && path != "" {
				return []string{path, "-NoLogo", "-NoProfile", "-Command", "Set-Clipboard"}, true
			}
		}
	}

	// xclip and xsel default to the primary selection; ask for the clipboard.
	commands := [][]string{
		{"pbcopy"},
		{"wl-copy"},
		{"xclip", "-selection", "clipboard"},
		{"xsel", "--clipboard", "--input"},
	}
	for _, cmd := range commands {
		if resolved, err := lookPath(cmd[0]); err == nil && resolved != "" {
			return append([]string{resolved}, cmd[1:]...), true
		}
	}

	return nil, false
}

// clipboardName is the short command name used in notices.
func clipboardName(cmd []string) string {
	if len(cmd) == 0 {
		return ""
	}
	return strings.TrimSuffix(filepath.Base(cmd[0]), ".exe")
}
