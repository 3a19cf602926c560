package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Chrome   chromeInfo `json:"chrome"`
	Git      gitInfo    `json:"git"`
	Auth     authInfo   `json:"auth"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// gitInfo holds git detection results, needed by "changed" and "publish --changed".
type gitInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// authInfo reports which note.com credentials are present, never their values.
type authInfo struct {
	Method string `json:"method,omitempty"` // "cookie", "credentials" or empty
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// doctorProbes abstracts the lookups doctor performs, for tests.
type doctorProbes struct {
	getenv     func(string) string
	lookChrome func() (string, bool)
	lookPath   func(string) (string, error)
	version    func(bin string) (string, error)
	stat       func(string) (os.FileInfo, error)
	tempDir    func() string
}

// defaultProbes returns probes backed by the real system.
func defaultProbes(getenv func(string) string) doctorProbes {
	return doctorProbes{
		getenv:     getenv,
		lookChrome: launcher.LookPath,
		lookPath:   exec.LookPath,
		version: func(bin string) (string, error) {
			out, err := exec.Command(bin, "--version").Output() // #nosec G204 -- detected binary
			return strings.TrimSpace(string(out)), err
		},
		stat:    os.Stat,
		tempDir: os.TempDir,
	}
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		switch arg {
		case "--json":
			jsonOutput = true
		case "-h", "--help":
			runHelp([]string{"doctor"}, env)
			return ExitSuccess
		default:
			fmt.Fprintf(env.Stderr, "error: %v: doctor: unknown argument %q\n", ErrUsage, arg)
			return ExitUsage
		}
	}

	result := runDoctor(defaultProbes(env.Getenv))

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(p doctorProbes) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  p.getenv(envNoSandbox),
			BrowserBin: p.getenv(envBrowserBin),
		},
	}

	checkChrome(result, p)
	checkGit(result, p)
	checkAuth(result, p)
	checkEnvironment(result, p)
	checkSystem(result, p)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkChrome detects Chrome/Chromium installation.
// A missing browser only blocks publishing, so it is reported as a warning.
func checkChrome(result *doctorResult, p doctorProbes) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		var found bool
		chromePath, found = p.lookChrome()
		if !found {
			result.Warnings = append(result.Warnings,
				"Chrome/Chromium not found. publish will download one, or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := p.stat(chromePath); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	if v, err := p.version(chromePath); err == nil {
		result.Chrome.Version = v
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	// Sandbox status: disabled if ROD_NO_SANDBOX=1
	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkGit detects the git binary.
func checkGit(result *doctorResult, p doctorProbes) {
	gitPath, err := p.lookPath("git")
	if err != nil {
		result.Warnings = append(result.Warnings,
			"git not found. changed and publish --changed need it")
		return
	}
	result.Git.Found = true
	result.Git.Path = gitPath
	if v, err := p.version(gitPath); err == nil {
		result.Git.Version = v
	}
}

// checkAuth reports which note.com credentials publish would use.
func checkAuth(result *doctorResult, p doctorProbes) {
	switch {
	case strings.TrimSpace(p.getenv(envNoteCookie)) != "":
		result.Auth.Method = "cookie"
	case p.getenv(envNoteEmail) != "" && p.getenv(envNotePassword) != "":
		result.Auth.Method = "credentials"
	default:
		result.Warnings = append(result.Warnings,
			"No note.com credentials. Set NOTE_COOKIE, or NOTE_EMAIL and NOTE_PASSWORD, to publish")
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, p doctorProbes) {
	result.Env.Container, result.Env.ContainerHint = isContainer(p)

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if p.getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(p doctorProbes) (bool, string) {
	if _, err := p.stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	// Podman / systemd-nspawn
	if v := p.getenv("container"); v != "" {
		return true, "container=" + v
	}
	if p.getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies system requirements.
func checkSystem(result *doctorResult, p doctorProbes) {
	tmpDir := p.tempDir()
	testFile := filepath.Join(tmpDir, "md2note-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "md2note doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Git")
	if r.Git.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Git.Path)
		if r.Git.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Git.Version)
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "note.com")
	if r.Auth.Method != "" {
		fmt.Fprintf(w, "  [OK] Auth: %s\n", r.Auth.Method)
	} else {
		fmt.Fprintln(w, "  [WARN] Auth: none")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to publish")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
