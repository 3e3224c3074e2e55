package facts

import (
	"bufio"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// OSFacts contains operating system information
type OSFacts struct {
	Name    string // OS name (darwin, linux)
	Version string // Product version (15.2, 22.04)
}

// gatherOSFacts collects OS-related facts
func gatherOSFacts() OSFacts {
	facts := OSFacts{
		Name: runtime.GOOS,
	}

	switch runtime.GOOS {
	case "darwin":
		facts.Version = getMacOSVersion()
	case "linux":
		osRelease, err := parseOSRelease()
		if err == nil {
			facts.Version = strings.Trim(osRelease["VERSION_ID"], "\"")
		}
	default:
		facts.Version = getUnameVersion()
	}

	return facts
}

// getMacOSVersion gets the macOS version using sw_vers
func getMacOSVersion() string {
	out, err := exec.Command("sw_vers", "--productVersion").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// getUnameVersion gets the OS version using uname -r
func getUnameVersion() string {
	out, err := exec.Command("uname", "-r").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// parseOSRelease reads and parses /etc/os-release
func parseOSRelease() (map[string]string, error) {
	file, err := os.Open("/etc/os-release")
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	result := make(map[string]string)
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		result[parts[0]] = strings.Trim(parts[1], "\"")
	}

	return result, scanner.Err()
}
